package model

import (
	"fmt"
	"sort"

	"github.com/gnolang/loopx/internal/syntax"
)

// LoopPath is one trace through a loop body, up to the next loop test or an
// exit.
type LoopPath struct {
	Variables   *VariableTable
	Constraints *ConstraintList
	innerLoops  map[string]struct{}
	canBreak    bool
}

func NewLoopPath(vars *VariableTable, constraints *ConstraintList, canBreak bool) *LoopPath {
	return &LoopPath{
		Variables:   vars,
		Constraints: constraints,
		innerLoops:  make(map[string]struct{}),
		canBreak:    canBreak,
	}
}

// CanBreak reports whether the trace has left the loop.
func (p *LoopPath) CanBreak() bool {
	return p.canBreak
}

func (p *LoopPath) Live() bool {
	return !p.canBreak
}

// Freeze marks the trace as having left the loop. It cannot be undone.
func (p *LoopPath) Freeze() {
	p.canBreak = true
}

// InnerLoops returns the names of the nested loops this trace runs, sorted.
func (p *LoopPath) InnerLoops() []string {
	names := make([]string, 0, len(p.innerLoops))
	for name := range p.innerLoops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (p *LoopPath) Clone() *LoopPath {
	c := NewLoopPath(p.Variables.Clone(), p.Constraints.Clone(), p.canBreak)
	for name := range p.innerLoops {
		c.innerLoops[name] = struct{}{}
	}
	return c
}

// Loop is the set of traces through one loop.
type Loop struct {
	Name           string
	LocalVariables *VariableTable
	Paths          []*LoopPath
	InnerLoops     []*Loop
}

func NewLoop(name string) *Loop {
	return &Loop{Name: name, LocalVariables: NewVariableTable()}
}

func (l *Loop) AddPath(p *LoopPath) {
	l.Paths = append(l.Paths, p)
}

// LivePaths returns the traces that can still be updated.
func (l *Loop) LivePaths() []*LoopPath {
	var live []*LoopPath
	for _, p := range l.Paths {
		if p.Live() {
			live = append(live, p)
		}
	}
	return live
}

func (l *Loop) HasLive() bool {
	for _, p := range l.Paths {
		if p.Live() {
			return true
		}
	}
	return false
}

// Fork returns a loop with the same name holding clones of the live traces.
// Frozen traces stay behind.
func (l *Loop) Fork() *Loop {
	f := &Loop{Name: l.Name, LocalVariables: l.LocalVariables}
	for _, p := range l.LivePaths() {
		f.Paths = append(f.Paths, p.Clone())
	}
	return f
}

// FreezeAll freezes every trace in the loop.
func (l *Loop) FreezeAll() {
	for _, p := range l.Paths {
		p.Freeze()
	}
}

// AddInnerLoop records inner as nested in l and as run by every live trace.
func (l *Loop) AddInnerLoop(inner *Loop) {
	l.addInner(inner)
	for _, p := range l.LivePaths() {
		p.innerLoops[inner.Name] = struct{}{}
	}
}

func (l *Loop) addInner(inner *Loop) {
	for _, existing := range l.InnerLoops {
		if existing == inner {
			return
		}
	}
	l.InnerLoops = append(l.InnerLoops, inner)
}

// Merge moves the traces and inner loops of other into l. other is emptied
// and must not be used afterwards.
func (l *Loop) Merge(other *Loop) error {
	if other == l {
		return nil
	}
	if other.Name != l.Name {
		return fmt.Errorf("%w: loop %s with loop %s", ErrMergeMismatch, l.Name, other.Name)
	}
	l.Paths = append(l.Paths, other.Paths...)
	for _, inner := range other.InnerLoops {
		l.addInner(inner)
	}
	*other = Loop{}
	return nil
}

// AddGuard appends guard to every live trace.
func (l *Loop) AddGuard(guard syntax.Expr) {
	for _, p := range l.LivePaths() {
		p.Constraints.Add(guard)
	}
}
