package model

import (
	"sort"

	"github.com/gnolang/loopx/internal/syntax"
)

// VariableBinding is the symbolic state of one variable. Bindings are
// immutable; an update inserts a new binding under the same name.
type VariableBinding struct {
	name    string
	typ     string
	initial syntax.Expr
	value   syntax.Expr
}

// Bind creates a binding holding value.
func Bind(name string, value syntax.Expr) *VariableBinding {
	return &VariableBinding{name: name, value: value}
}

// Declare creates the binding for a declared variable. Its current value
// starts as the initializer, which may be nil.
func Declare(name, typ string, init syntax.Expr) *VariableBinding {
	return &VariableBinding{name: name, typ: typ, initial: init, value: init}
}

func (b *VariableBinding) Name() string {
	return b.name
}

// Type is the declared type, if the binding comes from a declaration.
func (b *VariableBinding) Type() string {
	return b.typ
}

func (b *VariableBinding) Initial() syntax.Expr {
	return b.initial
}

// Value is the current symbolic value. It is nil for a variable declared
// without an initializer.
func (b *VariableBinding) Value() syntax.Expr {
	return b.value
}

func (b *VariableBinding) String() string {
	return b.name + ": " + syntax.Render(b.value)
}

// VariableTable maps syntactic variable names to their bindings.
type VariableTable struct {
	vars map[string]*VariableBinding
}

func NewVariableTable() *VariableTable {
	return &VariableTable{vars: make(map[string]*VariableBinding)}
}

// Get returns the binding for name, or nil.
func (t *VariableTable) Get(name string) *VariableBinding {
	return t.vars[name]
}

// Insert adds b, replacing any binding with the same name.
func (t *VariableTable) Insert(b *VariableBinding) {
	t.vars[b.name] = b
}

// Clone returns an independent table that shares the (immutable) bindings.
func (t *VariableTable) Clone() *VariableTable {
	c := &VariableTable{vars: make(map[string]*VariableBinding, len(t.vars))}
	for k, v := range t.vars {
		c.vars[k] = v
	}
	return c
}

func (t *VariableTable) Len() int {
	return len(t.vars)
}

// Names returns the bound names in sorted order.
func (t *VariableTable) Names() []string {
	names := make([]string, 0, len(t.vars))
	for k := range t.vars {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Bindings returns the bindings sorted by name.
func (t *VariableTable) Bindings() []*VariableBinding {
	names := t.Names()
	out := make([]*VariableBinding, len(names))
	for i, name := range names {
		out[i] = t.vars[name]
	}
	return out
}
