package cfront

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/gnolang/loopx/internal/syntax"
)

var binaryOps = map[string]syntax.BinaryOp{
	"+":  syntax.OpAdd,
	"-":  syntax.OpSub,
	"*":  syntax.OpMul,
	"/":  syntax.OpDiv,
	"%":  syntax.OpMod,
	"==": syntax.OpEq,
	"!=": syntax.OpNeq,
	"<":  syntax.OpLt,
	"<=": syntax.OpLte,
	">":  syntax.OpGt,
	">=": syntax.OpGte,
	"&&": syntax.OpLogicalAnd,
	"||": syntax.OpLogicalOr,
	"&":  syntax.OpBitAnd,
	"|":  syntax.OpBitOr,
	"^":  syntax.OpBitXor,
	"<<": syntax.OpShl,
	">>": syntax.OpShr,
}

var assignOps = map[string]syntax.AssignOp{
	"+=":  syntax.OpAddAssign,
	"-=":  syntax.OpSubAssign,
	"*=":  syntax.OpMulAssign,
	"/=":  syntax.OpDivAssign,
	"%=":  syntax.OpModAssign,
	"&=":  syntax.OpAndAssign,
	"|=":  syntax.OpOrAssign,
	"^=":  syntax.OpXorAssign,
	"<<=": syntax.OpShlAssign,
	">>=": syntax.OpShrAssign,
}

var unaryOps = map[string]syntax.UnaryOp{
	"-": syntax.OpNeg,
	"+": syntax.OpPlus,
	"!": syntax.OpNot,
	"~": syntax.OpBitNot,
	"*": syntax.OpDeref,
	"&": syntax.OpAddressOf,
}

func (l *lowerer) operator(n *sitter.Node) string {
	if op := n.ChildByFieldName("operator"); op != nil {
		return op.Type()
	}
	return ""
}

// expr lowers an expression. Forms without a dedicated node keep their
// source text as an opaque literal.
func (l *lowerer) expr(n *sitter.Node) syntax.Expr {
	if n == nil {
		return nil
	}
	switch n.Type() {
	case "parenthesized_expression":
		return l.expr(firstNamed(n))
	case "identifier":
		return syntax.VarRef{Name: n.Content(l.src)}
	case "number_literal":
		return numberLiteral(n.Content(l.src))
	case "char_literal":
		return syntax.Literal{Kind: syntax.LitChar, Value: n.Content(l.src)}
	case "string_literal", "concatenated_string":
		return syntax.Literal{Kind: syntax.LitString, Value: l.text(n)}
	case "true", "false":
		return syntax.Literal{Kind: syntax.LitBool, Value: n.Type()}
	case "null":
		return syntax.Literal{Kind: syntax.LitNull, Value: n.Content(l.src)}
	case "field_expression":
		arg := l.expr(n.ChildByFieldName("argument"))
		field := n.ChildByFieldName("field")
		if arg == nil || field == nil {
			break
		}
		return syntax.VarRef{Name: arg.String() + l.operator(n) + field.Content(l.src)}
	case "binary_expression":
		op, ok := binaryOps[l.operator(n)]
		if !ok {
			break
		}
		return syntax.Binary{Op: op, Left: l.expr(n.ChildByFieldName("left")), Right: l.expr(n.ChildByFieldName("right"))}
	case "comma_expression":
		return syntax.Binary{Op: syntax.OpComma, Left: l.expr(n.ChildByFieldName("left")), Right: l.expr(n.ChildByFieldName("right"))}
	case "subscript_expression":
		return syntax.Binary{Op: syntax.OpIndex, Left: l.expr(n.ChildByFieldName("argument")), Right: l.expr(n.ChildByFieldName("index"))}
	case "unary_expression", "pointer_expression":
		op, ok := unaryOps[l.operator(n)]
		if !ok {
			break
		}
		return syntax.Unary{Op: op, Operand: l.expr(n.ChildByFieldName("argument"))}
	case "update_expression":
		return l.update(n)
	case "cast_expression":
		return syntax.Unary{
			Op:      syntax.OpCast,
			Operand: l.expr(n.ChildByFieldName("value")),
			Type:    l.text(n.ChildByFieldName("type")),
		}
	case "assignment_expression":
		left, right := l.expr(n.ChildByFieldName("left")), l.expr(n.ChildByFieldName("right"))
		op := l.operator(n)
		if op == "=" {
			return syntax.Assign{Left: left, Right: right}
		}
		aop, ok := assignOps[op]
		if !ok {
			break
		}
		return syntax.CompoundAssign{Op: aop, Left: left, Right: right}
	case "call_expression":
		call := syntax.Call{Func: l.text(n.ChildByFieldName("function"))}
		if args := n.ChildByFieldName("arguments"); args != nil {
			for _, arg := range namedChildren(args) {
				call.Args = append(call.Args, l.expr(arg))
			}
		}
		return call
	}
	return syntax.Opaque(l.text(n))
}

// update lowers ++ and --. The operator comes first in the prefix forms.
func (l *lowerer) update(n *sitter.Node) syntax.Expr {
	op := l.operator(n)
	prefix := n.ChildCount() > 0 && n.Child(0).Type() == op
	var uop syntax.UnaryOp
	switch {
	case op == "++" && prefix:
		uop = syntax.OpPreInc
	case op == "++":
		uop = syntax.OpPostInc
	case op == "--" && prefix:
		uop = syntax.OpPreDec
	default:
		uop = syntax.OpPostDec
	}
	return syntax.Unary{Op: uop, Operand: l.expr(n.ChildByFieldName("argument"))}
}

func numberLiteral(text string) syntax.Expr {
	lower := strings.ToLower(text)
	kind := syntax.LitInt
	if !strings.HasPrefix(lower, "0x") && strings.ContainsAny(lower, ".e") {
		kind = syntax.LitFloat
	} else if strings.HasPrefix(lower, "0x") && strings.ContainsAny(lower, ".p") {
		kind = syntax.LitFloat
	}
	return syntax.Literal{Kind: kind, Value: text}
}
