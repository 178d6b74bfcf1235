package syntax

import "strconv"

// Helper functions to construct nodes.

// Var creates a variable reference.
func Var(name string) Expr {
	return VarRef{Name: name}
}

// Int creates an integer literal.
func Int(v int64) Expr {
	return Literal{Kind: LitInt, Value: strconv.FormatInt(v, 10)}
}

// Bool creates a boolean literal.
func Bool(v bool) Expr {
	return Literal{Kind: LitBool, Value: strconv.FormatBool(v)}
}

// Opaque wraps source text that has no structured form.
func Opaque(text string) Expr {
	return Literal{Kind: LitOpaque, Value: text}
}

// Bin creates a binary expression.
func Bin(op BinaryOp, left, right Expr) Expr {
	return Binary{Op: op, Left: left, Right: right}
}

// Un creates a unary expression.
func Un(op UnaryOp, operand Expr) Expr {
	return Unary{Op: op, Operand: operand}
}

// Not creates a logical negation.
func Not(e Expr) Expr {
	return Unary{Op: OpNot, Operand: e}
}

// And creates a logical conjunction.
func And(left, right Expr) Expr {
	return Binary{Op: OpLogicalAnd, Left: left, Right: right}
}

// Index creates an array subscript.
func Index(array, index Expr) Expr {
	return Binary{Op: OpIndex, Left: array, Right: index}
}

// Deref creates a pointer dereference.
func Deref(e Expr) Expr {
	return Unary{Op: OpDeref, Operand: e}
}

// Set creates a plain assignment.
func Set(lhs, rhs Expr) Expr {
	return Assign{Left: lhs, Right: rhs}
}

// SetOp creates a compound assignment such as +=.
func SetOp(op AssignOp, lhs, rhs Expr) Expr {
	return CompoundAssign{Op: op, Left: lhs, Right: rhs}
}

// Statement helpers. Positions are left unset.

// Do creates an expression statement.
func Do(e Expr) Stmt {
	return ExprStmt{X: e}
}

// Seq creates a block of statements.
func Seq(stmts ...Stmt) Block {
	return Block{Stmts: stmts}
}

// Declare creates a single variable declaration. init may be nil.
func Declare(name, typ string, init Expr) Stmt {
	return Decl{Specs: []VarSpec{{Name: name, Type: typ, Init: init}}}
}

// IfElse creates an if statement. els may be nil.
func IfElse(cond Expr, then, els Stmt) Stmt {
	return If{Cond: cond, Then: then, Else: els}
}

// Ret creates a return statement. e may be nil.
func Ret(e Expr) Stmt {
	return Return{Value: e}
}
