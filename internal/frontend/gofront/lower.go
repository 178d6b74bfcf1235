package gofront

import (
	"go/ast"
	"go/token"
	"go/types"

	"github.com/gnolang/loopx/internal/syntax"
)

func typeString(e ast.Expr) string {
	if e == nil {
		return ""
	}
	return types.ExprString(e)
}

func (l *lowerer) block(b *ast.BlockStmt) syntax.Block {
	out := syntax.Block{At: l.pos(b.Pos())}
	for _, s := range b.List {
		out.Stmts = append(out.Stmts, l.stmt(s))
	}
	return out
}

func (l *lowerer) stmt(stmt ast.Stmt) syntax.Stmt {
	pos := l.pos(stmt.Pos())
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		return l.block(s)
	case *ast.ExprStmt:
		return syntax.ExprStmt{At: pos, X: l.expr(s.X)}
	case *ast.IncDecStmt:
		return syntax.ExprStmt{At: pos, X: l.incDec(s)}
	case *ast.AssignStmt:
		return l.assign(s)
	case *ast.DeclStmt:
		if gen, ok := s.Decl.(*ast.GenDecl); ok && (gen.Tok == token.VAR || gen.Tok == token.CONST) {
			return l.genDecl(gen)
		}
		// local type declarations have no effect on values
		return syntax.Block{At: pos}
	case *ast.IfStmt:
		return l.ifStmt(s)
	case *ast.ForStmt:
		return l.forStmt(s)
	case *ast.SwitchStmt:
		return syntax.Switch{At: pos, Tag: l.expr(s.Tag)}
	case *ast.TypeSwitchStmt:
		return syntax.Switch{At: pos}
	case *ast.BranchStmt:
		return l.branch(s)
	case *ast.ReturnStmt:
		return syntax.Return{At: pos, Value: l.results(s.Results)}
	case *ast.LabeledStmt:
		return l.stmt(s.Stmt)
	case *ast.EmptyStmt:
		return syntax.Block{At: pos}
	case *ast.RangeStmt:
		return syntax.Unsupported{At: pos, Kind: "range loop"}
	case *ast.SelectStmt:
		return syntax.Unsupported{At: pos, Kind: "select statement"}
	case *ast.GoStmt:
		return syntax.Unsupported{At: pos, Kind: "go statement"}
	case *ast.DeferStmt:
		return syntax.Unsupported{At: pos, Kind: "defer statement"}
	case *ast.SendStmt:
		return syntax.Unsupported{At: pos, Kind: "send statement"}
	default:
		return syntax.Unsupported{At: pos, Kind: "malformed statement"}
	}
}

func (l *lowerer) incDec(s *ast.IncDecStmt) syntax.Expr {
	op := syntax.OpPostInc
	if s.Tok == token.DEC {
		op = syntax.OpPostDec
	}
	return syntax.Unary{Op: op, Operand: l.expr(s.X)}
}

func (l *lowerer) assign(s *ast.AssignStmt) syntax.Stmt {
	pos := l.pos(s.Pos())
	if s.Tok == token.DEFINE {
		decl := syntax.Decl{At: pos}
		paired := len(s.Lhs) == len(s.Rhs)
		for i, lhs := range s.Lhs {
			spec := syntax.VarSpec{Name: typeString(lhs)}
			if paired {
				spec.Init = l.expr(s.Rhs[i])
			}
			decl.Specs = append(decl.Specs, spec)
		}
		if paired {
			return decl
		}
		// a, b := f(x): fold the call, the results are opaque
		return syntax.Block{At: pos, Stmts: []syntax.Stmt{
			syntax.ExprStmt{At: pos, X: l.expr(s.Rhs[0])},
			decl,
		}}
	}

	if len(s.Lhs) != 1 || len(s.Rhs) != 1 {
		return syntax.Unsupported{At: pos, Kind: "parallel assignment"}
	}
	lhs, rhs := l.expr(s.Lhs[0]), l.expr(s.Rhs[0])
	if s.Tok == token.ASSIGN {
		return syntax.ExprStmt{At: pos, X: syntax.Assign{Left: lhs, Right: rhs}}
	}
	op, ok := assignOp(s.Tok)
	if !ok {
		return syntax.Unsupported{At: pos, Kind: s.Tok.String() + " assignment"}
	}
	return syntax.ExprStmt{At: pos, X: syntax.CompoundAssign{Op: op, Left: lhs, Right: rhs}}
}

func (l *lowerer) genDecl(d *ast.GenDecl) syntax.Decl {
	decl := syntax.Decl{At: l.pos(d.Pos())}
	for _, spec := range d.Specs {
		vs, ok := spec.(*ast.ValueSpec)
		if !ok {
			continue
		}
		typ := typeString(vs.Type)
		for i, name := range vs.Names {
			v := syntax.VarSpec{Name: name.Name, Type: typ}
			if len(vs.Values) == len(vs.Names) {
				v.Init = l.expr(vs.Values[i])
			}
			decl.Specs = append(decl.Specs, v)
		}
	}
	return decl
}

// ifStmt lowers if init; cond { } to a block running init first.
func (l *lowerer) ifStmt(s *ast.IfStmt) syntax.Stmt {
	out := syntax.If{At: l.pos(s.Pos()), Cond: l.expr(s.Cond), Then: l.block(s.Body)}
	if s.Else != nil {
		out.Else = l.stmt(s.Else)
	}
	if s.Init == nil {
		return out
	}
	return syntax.Block{At: out.At, Stmts: []syntax.Stmt{l.stmt(s.Init), out}}
}

// forStmt lowers for cond { } to a while loop and everything else to a
// for loop.
func (l *lowerer) forStmt(s *ast.ForStmt) syntax.Stmt {
	pos := l.pos(s.Pos())
	body := l.block(s.Body)
	if s.Init == nil && s.Post == nil && s.Cond != nil {
		return syntax.While{At: pos, Cond: l.expr(s.Cond), Body: body}
	}
	out := syntax.For{At: pos, Cond: l.expr(s.Cond), Body: body}
	if s.Init != nil {
		out.Init = []syntax.Stmt{l.stmt(s.Init)}
	}
	if s.Post != nil {
		switch post := l.stmt(s.Post).(type) {
		case syntax.ExprStmt:
			out.Post = post.X
		default:
			// the driver reports it at the end of each iteration
			body.Stmts = append(body.Stmts, post)
			out.Body = body
		}
	}
	return out
}

func (l *lowerer) branch(s *ast.BranchStmt) syntax.Stmt {
	pos := l.pos(s.Pos())
	switch {
	case s.Tok == token.BREAK && s.Label == nil:
		return syntax.Break{At: pos}
	case s.Tok == token.CONTINUE && s.Label == nil:
		return syntax.Continue{At: pos}
	case s.Tok == token.BREAK || s.Tok == token.CONTINUE:
		return syntax.Unsupported{At: pos, Kind: "labelled " + s.Tok.String() + " statement"}
	}
	return syntax.Unsupported{At: pos, Kind: s.Tok.String() + " statement"}
}

// results joins multiple return values with the comma operator.
func (l *lowerer) results(results []ast.Expr) syntax.Expr {
	var out syntax.Expr
	for i, r := range results {
		if i == 0 {
			out = l.expr(r)
			continue
		}
		out = syntax.Binary{Op: syntax.OpComma, Left: out, Right: l.expr(r)}
	}
	return out
}

func (l *lowerer) expr(expr ast.Expr) syntax.Expr {
	switch e := expr.(type) {
	case nil:
		return nil
	case *ast.ParenExpr:
		return l.expr(e.X)
	case *ast.BasicLit:
		return syntax.Literal{Kind: litKind(e.Kind), Value: e.Value}
	case *ast.Ident:
		switch e.Name {
		case "true", "false":
			return syntax.Literal{Kind: syntax.LitBool, Value: e.Name}
		case "nil":
			return syntax.Literal{Kind: syntax.LitNull, Value: e.Name}
		}
		return syntax.VarRef{Name: e.Name}
	case *ast.SelectorExpr:
		return syntax.VarRef{Name: types.ExprString(e)}
	case *ast.BinaryExpr:
		op, ok := binaryOp(e.Op)
		if !ok {
			return syntax.Opaque(types.ExprString(e))
		}
		return syntax.Binary{Op: op, Left: l.expr(e.X), Right: l.expr(e.Y)}
	case *ast.UnaryExpr:
		op, ok := unaryOp(e.Op)
		if !ok {
			return syntax.Opaque(types.ExprString(e))
		}
		return syntax.Unary{Op: op, Operand: l.expr(e.X)}
	case *ast.StarExpr:
		return syntax.Unary{Op: syntax.OpDeref, Operand: l.expr(e.X)}
	case *ast.IndexExpr:
		return syntax.Binary{Op: syntax.OpIndex, Left: l.expr(e.X), Right: l.expr(e.Index)}
	case *ast.CallExpr:
		call := syntax.Call{Func: types.ExprString(e.Fun)}
		for _, arg := range e.Args {
			call.Args = append(call.Args, l.expr(arg))
		}
		return call
	default:
		return syntax.Opaque(types.ExprString(e))
	}
}

func litKind(tok token.Token) syntax.LitKind {
	switch tok {
	case token.INT:
		return syntax.LitInt
	case token.FLOAT, token.IMAG:
		return syntax.LitFloat
	case token.CHAR:
		return syntax.LitChar
	default:
		return syntax.LitString
	}
}

func binaryOp(tok token.Token) (syntax.BinaryOp, bool) {
	switch tok {
	case token.ADD:
		return syntax.OpAdd, true
	case token.SUB:
		return syntax.OpSub, true
	case token.MUL:
		return syntax.OpMul, true
	case token.QUO:
		return syntax.OpDiv, true
	case token.REM:
		return syntax.OpMod, true
	case token.EQL:
		return syntax.OpEq, true
	case token.NEQ:
		return syntax.OpNeq, true
	case token.LSS:
		return syntax.OpLt, true
	case token.LEQ:
		return syntax.OpLte, true
	case token.GTR:
		return syntax.OpGt, true
	case token.GEQ:
		return syntax.OpGte, true
	case token.LAND:
		return syntax.OpLogicalAnd, true
	case token.LOR:
		return syntax.OpLogicalOr, true
	case token.AND:
		return syntax.OpBitAnd, true
	case token.OR:
		return syntax.OpBitOr, true
	case token.XOR:
		return syntax.OpBitXor, true
	case token.SHL:
		return syntax.OpShl, true
	case token.SHR:
		return syntax.OpShr, true
	case token.AND_NOT:
		return syntax.OpAndNot, true
	default:
		return 0, false
	}
}

func unaryOp(tok token.Token) (syntax.UnaryOp, bool) {
	switch tok {
	case token.SUB:
		return syntax.OpNeg, true
	case token.ADD:
		return syntax.OpPlus, true
	case token.NOT:
		return syntax.OpNot, true
	case token.XOR:
		return syntax.OpBitNot, true
	case token.AND:
		return syntax.OpAddressOf, true
	default:
		return 0, false
	}
}

func assignOp(tok token.Token) (syntax.AssignOp, bool) {
	switch tok {
	case token.ADD_ASSIGN:
		return syntax.OpAddAssign, true
	case token.SUB_ASSIGN:
		return syntax.OpSubAssign, true
	case token.MUL_ASSIGN:
		return syntax.OpMulAssign, true
	case token.QUO_ASSIGN:
		return syntax.OpDivAssign, true
	case token.REM_ASSIGN:
		return syntax.OpModAssign, true
	case token.AND_ASSIGN:
		return syntax.OpAndAssign, true
	case token.OR_ASSIGN:
		return syntax.OpOrAssign, true
	case token.XOR_ASSIGN:
		return syntax.OpXorAssign, true
	case token.SHL_ASSIGN:
		return syntax.OpShlAssign, true
	case token.SHR_ASSIGN:
		return syntax.OpShrAssign, true
	case token.AND_NOT_ASSIGN:
		return syntax.OpAndNotAssign, true
	default:
		return 0, false
	}
}
