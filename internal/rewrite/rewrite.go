// Package rewrite clones, substitutes and re-derives expression trees.
package rewrite

import (
	"errors"
	"fmt"

	"github.com/gnolang/loopx/internal/syntax"
)

// ErrUnsupportedOperator is returned when a compound assignment has no
// binary counterpart.
var ErrUnsupportedOperator = errors.New("unsupported operator")

// compoundOps maps compound assignments to the binary operator they apply.
// &= and |= map to the logical operators, not the bitwise ones.
var compoundOps = map[syntax.AssignOp]syntax.BinaryOp{
	syntax.OpAddAssign:    syntax.OpAdd,
	syntax.OpSubAssign:    syntax.OpSub,
	syntax.OpMulAssign:    syntax.OpMul,
	syntax.OpDivAssign:    syntax.OpDiv,
	syntax.OpModAssign:    syntax.OpMod,
	syntax.OpAndAssign:    syntax.OpLogicalAnd,
	syntax.OpOrAssign:     syntax.OpLogicalOr,
	syntax.OpXorAssign:    syntax.OpBitXor,
	syntax.OpShlAssign:    syntax.OpShl,
	syntax.OpShrAssign:    syntax.OpShr,
	syntax.OpAndNotAssign: syntax.OpAndNot,
}

// BinaryOpFor returns the binary operator applied by a compound assignment.
func BinaryOpFor(op syntax.AssignOp) (syntax.BinaryOp, bool) {
	bop, ok := compoundOps[op]
	return bop, ok
}

// Clone deep-copies an expression tree.
func Clone(e syntax.Expr) syntax.Expr {
	switch e := e.(type) {
	case nil:
		return nil
	case syntax.Literal, syntax.VarRef:
		return e
	case syntax.Unary:
		e.Operand = Clone(e.Operand)
		return e
	case syntax.Binary:
		e.Left, e.Right = Clone(e.Left), Clone(e.Right)
		return e
	case syntax.Assign:
		e.Left, e.Right = Clone(e.Left), Clone(e.Right)
		return e
	case syntax.CompoundAssign:
		e.Left, e.Right = Clone(e.Left), Clone(e.Right)
		return e
	case syntax.Call:
		args := make([]syntax.Expr, len(e.Args))
		for i, arg := range e.Args {
			args[i] = Clone(arg)
		}
		e.Args = args
		return e
	default:
		panic(fmt.Sprintf("rewrite: unknown expression %T", e))
	}
}

// Substitute returns tree with every operand named name replaced by target.
// An operand matches when it is a variable reference, a dereference or an
// index expression whose NameOf equals name. Replaced subtrees are not
// visited again, and tree itself is left untouched.
func Substitute(tree, target syntax.Expr, name string) syntax.Expr {
	if tree == nil {
		return nil
	}
	if matches(tree, name) {
		return target
	}
	switch e := tree.(type) {
	case syntax.Unary:
		e.Operand = Substitute(e.Operand, target, name)
		return e
	case syntax.Binary:
		e.Left = Substitute(e.Left, target, name)
		e.Right = Substitute(e.Right, target, name)
		return e
	case syntax.Assign:
		e.Left = Substitute(e.Left, target, name)
		e.Right = Substitute(e.Right, target, name)
		return e
	case syntax.CompoundAssign:
		e.Left = Substitute(e.Left, target, name)
		e.Right = Substitute(e.Right, target, name)
		return e
	case syntax.Call:
		args := make([]syntax.Expr, len(e.Args))
		for i, arg := range e.Args {
			args[i] = Substitute(arg, target, name)
		}
		e.Args = args
		return e
	default:
		return tree
	}
}

func matches(e syntax.Expr, name string) bool {
	switch e := e.(type) {
	case syntax.VarRef:
		return e.Name == name
	case syntax.Unary:
		return e.Op == syntax.OpDeref && NameOf(e) == name
	case syntax.Binary:
		return e.Op == syntax.OpIndex && NameOf(e) == name
	}
	return false
}

// DesugarCompoundAssign builds the binary expression that a compound
// assignment stores: x op= y becomes (x op y).
func DesugarCompoundAssign(op syntax.AssignOp, lhs, rhs syntax.Expr, typ string) (syntax.Expr, error) {
	bop, ok := compoundOps[op]
	if !ok {
		return nil, fmt.Errorf("%w: compound assignment %s", ErrUnsupportedOperator, op)
	}
	return syntax.Binary{Op: bop, Left: lhs, Right: rhs, Type: typ}, nil
}

// NameOf renders an lvalue to the key it is stored under: x, *p, arr[i].
// Names are syntactic; p[0] and *p are different keys.
func NameOf(lvalue syntax.Expr) string {
	switch e := lvalue.(type) {
	case syntax.VarRef:
		return e.Name
	case syntax.Unary:
		if e.Op == syntax.OpDeref {
			return "*" + NameOf(e.Operand)
		}
	case syntax.Binary:
		if e.Op == syntax.OpIndex {
			return NameOf(e.Left) + "[" + e.Right.String() + "]"
		}
	}
	return syntax.Render(lvalue)
}
