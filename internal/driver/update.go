package driver

import (
	"fmt"

	"github.com/gnolang/loopx/internal/model"
	"github.com/gnolang/loopx/internal/rewrite"
	"github.com/gnolang/loopx/internal/syntax"
)

// ApplyExpression folds the side effects of e into table. Operands are
// folded first, so nested updates such as a[i++] = x are visible before the
// outer assignment is stored.
func ApplyExpression(e syntax.Expr, table *model.VariableTable) error {
	switch e := e.(type) {
	case nil:
		return nil
	case syntax.Unary:
		if err := ApplyExpression(e.Operand, table); err != nil {
			return err
		}
	case syntax.Binary:
		if err := applyAll(table, e.Left, e.Right); err != nil {
			return err
		}
	case syntax.Assign:
		if err := applyAll(table, e.Left, e.Right); err != nil {
			return err
		}
	case syntax.CompoundAssign:
		if err := applyAll(table, e.Left, e.Right); err != nil {
			return err
		}
	case syntax.Call:
		if err := applyAll(table, e.Args...); err != nil {
			return err
		}
	}

	switch e := e.(type) {
	case syntax.Assign:
		name := rewrite.NameOf(e.Left)
		table.Insert(model.Bind(name, compose(rewrite.Clone(e.Right), table, name)))
	case syntax.Unary:
		if !e.Op.IsIncDec() {
			return nil
		}
		name := rewrite.NameOf(e.Operand)
		table.Insert(model.Bind(name, compose(rewrite.Clone(e), table, name)))
	case syntax.CompoundAssign:
		name := rewrite.NameOf(e.Left)
		lhs, rhs := rewrite.Clone(e.Left), rewrite.Clone(e.Right)
		if prior := table.Get(name); prior != nil && prior.Value() != nil {
			sub, ok := rewrite.Substitute(rewrite.Clone(e), prior.Value(), name).(syntax.CompoundAssign)
			if !ok {
				return fmt.Errorf("substitution of %s changed the shape of %s", name, e)
			}
			lhs, rhs = sub.Left, sub.Right
		}
		value, err := rewrite.DesugarCompoundAssign(e.Op, lhs, rhs, e.Type)
		if err != nil {
			return err
		}
		table.Insert(model.Bind(name, value))
	}
	return nil
}

func applyAll(table *model.VariableTable, exprs ...syntax.Expr) error {
	for _, e := range exprs {
		if err := ApplyExpression(e, table); err != nil {
			return err
		}
	}
	return nil
}

// compose replaces name inside value with its current binding, if any.
func compose(value syntax.Expr, table *model.VariableTable, name string) syntax.Expr {
	prior := table.Get(name)
	if prior == nil || prior.Value() == nil {
		return value
	}
	return rewrite.Substitute(value, prior.Value(), name)
}
