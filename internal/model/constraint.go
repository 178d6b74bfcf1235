package model

import (
	"strings"

	"github.com/gnolang/loopx/internal/syntax"
)

// ConstraintList is the conjunction of guards, in order, that makes a trace
// reachable.
type ConstraintList struct {
	items []syntax.Expr
}

func NewConstraintList(guards ...syntax.Expr) *ConstraintList {
	return &ConstraintList{items: append([]syntax.Expr(nil), guards...)}
}

func (c *ConstraintList) Add(guard syntax.Expr) {
	c.items = append(c.items, guard)
}

func (c *ConstraintList) Clone() *ConstraintList {
	return NewConstraintList(c.items...)
}

func (c *ConstraintList) Len() int {
	return len(c.items)
}

// Items returns a copy of the guards.
func (c *ConstraintList) Items() []syntax.Expr {
	return append([]syntax.Expr(nil), c.items...)
}

// Conjunction folds the guards into one expression. An empty list is true.
func (c *ConstraintList) Conjunction() syntax.Expr {
	if len(c.items) == 0 {
		return syntax.Bool(true)
	}
	out := c.items[0]
	for _, g := range c.items[1:] {
		out = syntax.And(out, g)
	}
	return out
}

func (c *ConstraintList) String() string {
	if len(c.items) == 0 {
		return "true"
	}
	parts := make([]string, len(c.items))
	for i, g := range c.items {
		parts[i] = g.String()
	}
	return strings.Join(parts, " && ")
}
