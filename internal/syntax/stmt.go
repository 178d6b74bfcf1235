package syntax

import "fmt"

// Pos is a 1-based source position. The zero value means unknown.
type Pos struct {
	Line   int
	Column int
}

func (p Pos) IsValid() bool {
	return p.Line > 0
}

func (p Pos) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Stmt is a statement node. Like Expr, the set of implementations is closed.
type Stmt interface {
	isStmt()
	Position() Pos
}

// Block is a braced statement list.
type Block struct {
	At    Pos
	Stmts []Stmt
}

// ExprStmt evaluates an expression for its side effects.
type ExprStmt struct {
	At Pos
	X  Expr
}

// VarSpec declares one variable. Init may be nil.
type VarSpec struct {
	Name string
	Type string
	Init Expr
}

// Decl declares one or more variables.
type Decl struct {
	At    Pos
	Specs []VarSpec
}

// If is a two-way conditional. Else may be nil.
type If struct {
	At   Pos
	Cond Expr
	Then Stmt
	Else Stmt
}

// For is a C-style for loop. Cond and Post may be nil.
type For struct {
	At   Pos
	Init []Stmt
	Cond Expr
	Post Expr
	Body Stmt
}

// While tests Cond before each iteration.
type While struct {
	At   Pos
	Cond Expr
	Body Stmt
}

// DoWhile tests Cond after each iteration.
type DoWhile struct {
	At   Pos
	Body Stmt
	Cond Expr
}

// Switch is kept only so that it can be reported.
type Switch struct {
	At  Pos
	Tag Expr
}

type Break struct {
	At Pos
}

type Continue struct {
	At Pos
}

// Return leaves the function. Value is nil for a bare return.
type Return struct {
	At    Pos
	Value Expr
}

// Unsupported stands in for a construct the front-end could not lower.
type Unsupported struct {
	At   Pos
	Kind string
}

func (Block) isStmt()       {}
func (ExprStmt) isStmt()    {}
func (Decl) isStmt()        {}
func (If) isStmt()          {}
func (For) isStmt()         {}
func (While) isStmt()       {}
func (DoWhile) isStmt()     {}
func (Switch) isStmt()      {}
func (Break) isStmt()       {}
func (Continue) isStmt()    {}
func (Return) isStmt()      {}
func (Unsupported) isStmt() {}

func (s Block) Position() Pos       { return s.At }
func (s ExprStmt) Position() Pos    { return s.At }
func (s Decl) Position() Pos        { return s.At }
func (s If) Position() Pos          { return s.At }
func (s For) Position() Pos         { return s.At }
func (s While) Position() Pos       { return s.At }
func (s DoWhile) Position() Pos     { return s.At }
func (s Switch) Position() Pos      { return s.At }
func (s Break) Position() Pos       { return s.At }
func (s Continue) Position() Pos    { return s.At }
func (s Return) Position() Pos      { return s.At }
func (s Unsupported) Position() Pos { return s.At }

// Describe names the statement kind for diagnostics.
func Describe(s Stmt) string {
	switch s := s.(type) {
	case Block:
		return "block"
	case ExprStmt:
		return "expression statement"
	case Decl:
		return "declaration"
	case If:
		return "if statement"
	case For:
		return "for loop"
	case While:
		return "while loop"
	case DoWhile:
		return "do-while loop"
	case Switch:
		return "switch statement"
	case Break:
		return "break statement"
	case Continue:
		return "continue statement"
	case Return:
		return "return statement"
	case Unsupported:
		return s.Kind
	default:
		return fmt.Sprintf("%T", s)
	}
}

// Param is a function parameter.
type Param struct {
	Name string
	Type string
}

// FuncDecl is a function definition with a body.
type FuncDecl struct {
	At     Pos
	Name   string
	Params []Param
	Body   Block
}

// File is one parsed translation unit.
type File struct {
	Name    string
	Globals []Decl
	Funcs   []*FuncDecl
	// Skipped lists top-level constructs that were not lowered.
	Skipped []Unsupported
}
