package syntax

import "strings"

// Expr is an expression node. The set of implementations is closed; nodes
// are values and are never modified after construction.
type Expr interface {
	isExpr()
	String() string
}

// Literal is a constant, or the verbatim text of an opaque expression.
type Literal struct {
	Kind  LitKind
	Value string
}

func (Literal) isExpr() {}
func (e Literal) String() string {
	return e.Value
}

// VarRef references a variable by its syntactic name. Member accesses such
// as s.f or p->f are kept as a single reference named after the access path.
type VarRef struct {
	Name string
}

func (VarRef) isExpr() {}
func (e VarRef) String() string {
	return e.Name
}

// Unary is a prefix or postfix operator applied to one operand.
// Type is only set for casts.
type Unary struct {
	Op      UnaryOp
	Operand Expr
	Type    string
}

func (Unary) isExpr() {}
func (e Unary) String() string {
	switch e.Op {
	case OpPreInc, OpPostInc:
		return "(" + e.Operand.String() + " + 1)"
	case OpPreDec, OpPostDec:
		return "(" + e.Operand.String() + " - 1)"
	case OpCast:
		if e.Type == "" {
			return "(" + e.Operand.String() + ")"
		}
		return "((" + e.Type + ")" + e.Operand.String() + ")"
	default:
		return "(" + e.Op.String() + e.Operand.String() + ")"
	}
}

// Binary is an infix operator. Index nodes render as a[i].
type Binary struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
	Type  string
}

func (Binary) isExpr() {}
func (e Binary) String() string {
	if e.Op == OpIndex {
		return e.Left.String() + "[" + e.Right.String() + "]"
	}
	return "(" + e.Left.String() + " " + e.Op.String() + " " + e.Right.String() + ")"
}

// Assign is a plain assignment used as an expression: l = r.
type Assign struct {
	Left  Expr
	Right Expr
}

func (Assign) isExpr() {}
func (e Assign) String() string {
	return "(" + e.Left.String() + " = " + e.Right.String() + ")"
}

// CompoundAssign is an operator assignment such as l += r.
type CompoundAssign struct {
	Op    AssignOp
	Left  Expr
	Right Expr
	Type  string
}

func (CompoundAssign) isExpr() {}
func (e CompoundAssign) String() string {
	return "(" + e.Left.String() + " " + e.Op.String() + " " + e.Right.String() + ")"
}

// Call is an opaque function call. It has no effect on symbolic state
// beyond the side effects of its arguments.
type Call struct {
	Func string
	Args []Expr
}

func (Call) isExpr() {}
func (e Call) String() string {
	args := make([]string, len(e.Args))
	for i, arg := range e.Args {
		args[i] = arg.String()
	}
	return e.Func + "(" + strings.Join(args, ", ") + ")"
}

// Render returns the printed form of e, or the empty string for nil.
func Render(e Expr) string {
	if e == nil {
		return ""
	}
	return e.String()
}
