package formatter

import (
	"github.com/gnolang/loopx/internal/model"
	"github.com/gnolang/loopx/internal/syntax"
)

// Document is the serialisable form of one extracted file.
type Document struct {
	File      string     `json:"file" yaml:"file"`
	Program   string     `json:"program" yaml:"program"`
	Globals   []Variable `json:"globals,omitempty" yaml:"globals,omitempty"`
	Functions []Function `json:"functions,omitempty" yaml:"functions,omitempty"`
	Warnings  []string   `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

type Variable struct {
	Name  string `json:"name" yaml:"name"`
	Type  string `json:"type,omitempty" yaml:"type,omitempty"`
	Init  string `json:"init,omitempty" yaml:"init,omitempty"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
}

type Function struct {
	Name       string     `json:"name" yaml:"name"`
	Parameters []string   `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Variables  []Variable `json:"variables,omitempty" yaml:"variables,omitempty"`
	Blocks     []Block    `json:"blocks,omitempty" yaml:"blocks,omitempty"`
	Loops      []Loop     `json:"loops,omitempty" yaml:"loops,omitempty"`
	Paths      []Path     `json:"paths,omitempty" yaml:"paths,omitempty"`
}

type Block struct {
	Name     string     `json:"name" yaml:"name"`
	Bindings []Variable `json:"bindings,omitempty" yaml:"bindings,omitempty"`
}

// Loop describes one loop. A loop reachable from more than one place is
// described in full once; later occurrences only carry its name and Ref.
type Loop struct {
	Name       string     `json:"name" yaml:"name"`
	Ref        bool       `json:"ref,omitempty" yaml:"ref,omitempty"`
	Locals     []Variable `json:"locals,omitempty" yaml:"locals,omitempty"`
	Paths      []LoopPath `json:"paths,omitempty" yaml:"paths,omitempty"`
	InnerLoops []Loop     `json:"inner_loops,omitempty" yaml:"inner_loops,omitempty"`
}

type LoopPath struct {
	Constraints []string   `json:"constraints,omitempty" yaml:"constraints,omitempty"`
	Guard       string     `json:"guard" yaml:"guard"`
	Bindings    []Variable `json:"bindings,omitempty" yaml:"bindings,omitempty"`
	InnerLoops  []string   `json:"inner_loops,omitempty" yaml:"inner_loops,omitempty"`
	Break       bool       `json:"break" yaml:"break"`
}

type Path struct {
	Name        string   `json:"name" yaml:"name"`
	Constraints []string `json:"constraints,omitempty" yaml:"constraints,omitempty"`
	Guard       string   `json:"guard" yaml:"guard"`
	Steps       []string `json:"steps,omitempty" yaml:"steps,omitempty"`
	Returns     bool     `json:"returns" yaml:"returns"`
	Return      string   `json:"return,omitempty" yaml:"return,omitempty"`
}

// NewDocument converts an extracted program.
func NewDocument(file string, prog *model.Program, warnings []string) *Document {
	doc := &Document{
		File:      file,
		Program:   prog.Name,
		Globals:   variables(prog.Variables),
		Functions: make([]Function, 0, len(prog.Functions)),
		Warnings:  warnings,
	}
	for _, fn := range prog.Functions {
		doc.Functions = append(doc.Functions, function(fn))
	}
	return doc
}

// Filter returns a copy of d holding only the named functions. No names
// returns d itself.
func (d *Document) Filter(names []string) *Document {
	if len(names) == 0 {
		return d
	}
	keep := make(map[string]bool, len(names))
	for _, n := range names {
		keep[n] = true
	}
	out := *d
	out.Functions = make([]Function, 0, len(names))
	for _, fn := range d.Functions {
		if keep[fn.Name] {
			out.Functions = append(out.Functions, fn)
		}
	}
	return &out
}

func variables(t *model.VariableTable) []Variable {
	var out []Variable
	for _, b := range t.Bindings() {
		out = append(out, Variable{
			Name:  b.Name(),
			Type:  b.Type(),
			Init:  syntax.Render(b.Initial()),
			Value: syntax.Render(b.Value()),
		})
	}
	return out
}

func constraints(c *model.ConstraintList) []string {
	items := c.Items()
	out := make([]string, len(items))
	for i, g := range items {
		out[i] = g.String()
	}
	return out
}

func function(fn *model.Function) Function {
	out := Function{
		Name:       fn.Name,
		Parameters: fn.Parameters,
		Variables:  variables(fn.Variables),
		Paths:      make([]Path, 0, len(fn.Paths)),
	}
	for _, b := range fn.Blocks {
		out.Blocks = append(out.Blocks, Block{Name: b.Name, Bindings: variables(b.Variables)})
	}
	seen := make(map[*model.Loop]bool)
	for _, l := range fn.Loops {
		out.Loops = append(out.Loops, loop(l, seen))
	}
	for _, p := range fn.Paths {
		out.Paths = append(out.Paths, Path{
			Name:        p.Name,
			Constraints: constraints(p.Constraints),
			Guard:       p.Constraints.String(),
			Steps:       append([]string{}, p.Steps...),
			Returns:     p.IsReturn(),
			Return:      syntax.Render(p.ReturnValue),
		})
	}
	return out
}

func loop(l *model.Loop, seen map[*model.Loop]bool) Loop {
	if seen[l] {
		return Loop{Name: l.Name, Ref: true}
	}
	seen[l] = true

	out := Loop{Name: l.Name, Locals: variables(l.LocalVariables)}
	for _, p := range l.Paths {
		out.Paths = append(out.Paths, LoopPath{
			Constraints: constraints(p.Constraints),
			Guard:       p.Constraints.String(),
			Bindings:    variables(p.Variables),
			InnerLoops:  p.InnerLoops(),
			Break:       p.CanBreak(),
		})
	}
	for _, inner := range l.InnerLoops {
		out.InnerLoops = append(out.InnerLoops, loop(inner, seen))
	}
	return out
}
