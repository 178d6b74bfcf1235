package model

import (
	"fmt"

	"github.com/gnolang/loopx/internal/syntax"
)

// Block is the net effect of one straight-line run of statements.
type Block struct {
	Name      string
	Variables *VariableTable
}

func NewBlock(name string) *Block {
	return &Block{Name: name, Variables: NewVariableTable()}
}

// Path is one trace through a function body. Steps name the blocks and
// loops it passes through, in order.
type Path struct {
	Name        string
	Constraints *ConstraintList
	Steps       []string
	ReturnValue syntax.Expr
	isReturn    bool
}

func NewPath(name string) *Path {
	return &Path{Name: name, Constraints: NewConstraintList()}
}

func (p *Path) IsReturn() bool {
	return p.isReturn
}

func (p *Path) Live() bool {
	return !p.isReturn
}

// Return freezes the path with the given return value, which may be nil.
func (p *Path) Return(value syntax.Expr) {
	p.ReturnValue = value
	p.isReturn = true
}

// Clone copies the path under a new name.
func (p *Path) Clone(name string) *Path {
	return &Path{
		Name:        name,
		Constraints: p.Constraints.Clone(),
		Steps:       append([]string(nil), p.Steps...),
		ReturnValue: p.ReturnValue,
		isReturn:    p.isReturn,
	}
}

// Function is the set of traces through one function body.
type Function struct {
	Name       string
	Parameters []string
	Variables  *VariableTable
	Paths      []*Path
	Loops      []*Loop
	Blocks     []*Block
}

func NewFunction(name string) *Function {
	return &Function{Name: name, Variables: NewVariableTable()}
}

func (f *Function) AddParameter(name string) {
	for _, p := range f.Parameters {
		if p == name {
			return
		}
	}
	f.Parameters = append(f.Parameters, name)
}

func (f *Function) AddPath(p *Path)   { f.Paths = append(f.Paths, p) }
func (f *Function) AddLoop(l *Loop)   { f.Loops = append(f.Loops, l) }
func (f *Function) AddBlock(b *Block) { f.Blocks = append(f.Blocks, b) }

func (f *Function) LivePaths() []*Path {
	var live []*Path
	for _, p := range f.Paths {
		if p.Live() {
			live = append(live, p)
		}
	}
	return live
}

func (f *Function) HasLive() bool {
	for _, p := range f.Paths {
		if p.Live() {
			return true
		}
	}
	return false
}

// AppendStep records that every live path runs the named block or loop.
func (f *Function) AppendStep(name string) {
	for _, p := range f.LivePaths() {
		p.Steps = append(p.Steps, name)
	}
}

// AddGuard appends guard to every live path.
func (f *Function) AddGuard(guard syntax.Expr) {
	for _, p := range f.LivePaths() {
		p.Constraints.Add(guard)
	}
}

// Return runs the named block on every live path and then freezes them with
// the given return value.
func (f *Function) Return(step string, value syntax.Expr) {
	for _, p := range f.LivePaths() {
		p.Steps = append(p.Steps, step)
		p.Return(value)
	}
}

// CloneNotReturnPaths returns a function that shares f's variable table and
// holds renamed copies of the live paths.
func (f *Function) CloneNotReturnPaths(names *Names) *Function {
	c := &Function{
		Name:       f.Name,
		Parameters: f.Parameters,
		Variables:  f.Variables,
	}
	for _, p := range f.LivePaths() {
		c.Paths = append(c.Paths, p.Clone(names.Path()))
	}
	return c
}

// Merge moves the paths, loops and blocks of other into f. other must be a
// clone of f; it is emptied and must not be used afterwards.
func (f *Function) Merge(other *Function) error {
	if other == f {
		return nil
	}
	if other.Name != f.Name || other.Variables != f.Variables {
		return fmt.Errorf("%w: function %s with function %s", ErrMergeMismatch, f.Name, other.Name)
	}
	f.Paths = append(f.Paths, other.Paths...)
	f.Loops = append(f.Loops, other.Loops...)
	f.Blocks = append(f.Blocks, other.Blocks...)
	*other = Function{}
	return nil
}

// Block returns the block with the given name, or nil.
func (f *Function) Block(name string) *Block {
	for _, b := range f.Blocks {
		if b.Name == name {
			return b
		}
	}
	return nil
}

// Loop returns the top-level loop with the given name, or nil.
func (f *Function) Loop(name string) *Loop {
	for _, l := range f.Loops {
		if l.Name == name {
			return l
		}
	}
	return nil
}
