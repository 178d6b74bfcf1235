package cfront

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/gnolang/loopx/internal/syntax"
)

type lowerer struct {
	src []byte
}

func (l *lowerer) text(n *sitter.Node) string {
	return strings.Join(strings.Fields(n.Content(l.src)), " ")
}

// namedChildren returns the named children of n, without comments.
func namedChildren(n *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child == nil || child.Type() == "comment" {
			continue
		}
		out = append(out, child)
	}
	return out
}

func firstNamed(n *sitter.Node) *sitter.Node {
	if children := namedChildren(n); len(children) > 0 {
		return children[0]
	}
	return nil
}

func (l *lowerer) topLevel(n *sitter.Node, out *syntax.File) {
	for _, child := range namedChildren(n) {
		switch child.Type() {
		case "function_definition":
			if fd := l.funcDef(child); fd != nil {
				out.Funcs = append(out.Funcs, fd)
			}
		case "declaration":
			if decl := l.decl(child); len(decl.Specs) > 0 {
				out.Globals = append(out.Globals, decl)
			}
		case "preproc_if", "preproc_ifdef", "preproc_else", "preproc_elif", "linkage_specification", "declaration_list":
			// conditional sections may hold definitions
			l.topLevel(child, out)
		case "preproc_include", "preproc_def", "preproc_function_def", "preproc_call",
			"type_definition", "struct_specifier", "union_specifier", "enum_specifier":
		default:
			out.Skipped = append(out.Skipped, syntax.Unsupported{At: position(child), Kind: strings.ReplaceAll(child.Type(), "_", " ")})
		}
	}
}

func (l *lowerer) funcDef(n *sitter.Node) *syntax.FuncDecl {
	fn := functionDeclarator(n.ChildByFieldName("declarator"))
	body := n.ChildByFieldName("body")
	if fn == nil || body == nil {
		return nil
	}
	fd := &syntax.FuncDecl{
		At:   position(n),
		Name: l.declName(fn.ChildByFieldName("declarator")),
		Body: l.block(body),
	}
	if params := fn.ChildByFieldName("parameters"); params != nil {
		for _, p := range namedChildren(params) {
			if p.Type() != "parameter_declaration" {
				continue
			}
			decl := p.ChildByFieldName("declarator")
			if decl == nil {
				// void, or an unnamed parameter
				continue
			}
			fd.Params = append(fd.Params, syntax.Param{
				Name: l.declName(decl),
				Type: l.declType(l.typeText(p), decl),
			})
		}
	}
	return fd
}

// functionDeclarator finds the function declarator under pointer and
// parenthesized declarators, as in int *(f)(void).
func functionDeclarator(n *sitter.Node) *sitter.Node {
	for n != nil {
		switch n.Type() {
		case "function_declarator":
			return n
		case "pointer_declarator", "attributed_declarator":
			n = n.ChildByFieldName("declarator")
		case "parenthesized_declarator":
			n = firstNamed(n)
		default:
			return nil
		}
	}
	return nil
}

func (l *lowerer) declName(n *sitter.Node) string {
	for n != nil {
		switch n.Type() {
		case "identifier", "field_identifier", "type_identifier":
			return n.Content(l.src)
		case "parenthesized_declarator":
			n = firstNamed(n)
		default:
			next := n.ChildByFieldName("declarator")
			if next == nil {
				return l.text(n)
			}
			n = next
		}
	}
	return ""
}

func (l *lowerer) typeText(n *sitter.Node) string {
	if t := n.ChildByFieldName("type"); t != nil {
		return l.text(t)
	}
	return ""
}

// declType decorates base with the pointer and array declarators around
// the declared name.
func (l *lowerer) declType(base string, n *sitter.Node) string {
	for n != nil {
		switch n.Type() {
		case "pointer_declarator":
			base += "*"
		case "array_declarator":
			base += "[]"
		case "init_declarator", "attributed_declarator":
		default:
			return base
		}
		n = n.ChildByFieldName("declarator")
	}
	return base
}

func (l *lowerer) decl(n *sitter.Node) syntax.Decl {
	decl := syntax.Decl{At: position(n)}
	base := l.typeText(n)
	for _, child := range namedChildren(n) {
		switch child.Type() {
		case "identifier", "pointer_declarator", "array_declarator", "parenthesized_declarator", "attributed_declarator":
			decl.Specs = append(decl.Specs, syntax.VarSpec{Name: l.declName(child), Type: l.declType(base, child)})
		case "init_declarator":
			spec := syntax.VarSpec{Name: l.declName(child), Type: l.declType(base, child)}
			if value := child.ChildByFieldName("value"); value != nil {
				spec.Init = l.expr(value)
			}
			decl.Specs = append(decl.Specs, spec)
		}
		// function_declarator: a prototype, nothing to record
	}
	return decl
}

func (l *lowerer) block(n *sitter.Node) syntax.Block {
	out := syntax.Block{At: position(n)}
	for _, child := range namedChildren(n) {
		out.Stmts = append(out.Stmts, l.stmt(child))
	}
	return out
}

// body lowers the statement under field, allowing it to be absent.
func (l *lowerer) body(n *sitter.Node, field string) syntax.Stmt {
	child := n.ChildByFieldName(field)
	if child == nil {
		return syntax.Block{At: position(n)}
	}
	return l.stmt(child)
}

func (l *lowerer) stmt(n *sitter.Node) syntax.Stmt {
	pos := position(n)
	switch n.Type() {
	case "compound_statement":
		return l.block(n)
	case "expression_statement":
		x := firstNamed(n)
		if x == nil {
			return syntax.Block{At: pos}
		}
		return syntax.ExprStmt{At: pos, X: l.expr(x)}
	case "declaration":
		return l.decl(n)
	case "if_statement":
		out := syntax.If{At: pos, Cond: l.cond(n), Then: l.body(n, "consequence")}
		if alt := n.ChildByFieldName("alternative"); alt != nil {
			if alt.Type() == "else_clause" {
				alt = firstNamed(alt)
			}
			if alt != nil {
				out.Else = l.stmt(alt)
			}
		}
		return out
	case "while_statement":
		return syntax.While{At: pos, Cond: l.cond(n), Body: l.body(n, "body")}
	case "do_statement":
		return syntax.DoWhile{At: pos, Body: l.body(n, "body"), Cond: l.cond(n)}
	case "for_statement":
		return l.forStmt(n)
	case "return_statement":
		out := syntax.Return{At: pos}
		if x := firstNamed(n); x != nil {
			out.Value = l.expr(x)
		}
		return out
	case "break_statement":
		return syntax.Break{At: pos}
	case "continue_statement":
		return syntax.Continue{At: pos}
	case "switch_statement":
		return syntax.Switch{At: pos, Tag: l.cond(n)}
	case "labeled_statement":
		children := namedChildren(n)
		return l.stmt(children[len(children)-1])
	case "type_definition":
		return syntax.Block{At: pos}
	default:
		return syntax.Unsupported{At: pos, Kind: strings.ReplaceAll(n.Type(), "_", " ")}
	}
}

func (l *lowerer) cond(n *sitter.Node) syntax.Expr {
	c := n.ChildByFieldName("condition")
	if c == nil {
		return nil
	}
	return l.expr(c)
}

func (l *lowerer) forStmt(n *sitter.Node) syntax.Stmt {
	out := syntax.For{At: position(n), Body: l.body(n, "body")}
	if init := n.ChildByFieldName("initializer"); init != nil {
		if init.Type() == "declaration" {
			out.Init = []syntax.Stmt{l.decl(init)}
		} else {
			out.Init = []syntax.Stmt{syntax.ExprStmt{At: position(init), X: l.expr(init)}}
		}
	}
	if c := n.ChildByFieldName("condition"); c != nil {
		out.Cond = l.expr(c)
	}
	if update := n.ChildByFieldName("update"); update != nil {
		out.Post = l.expr(update)
	}
	return out
}
