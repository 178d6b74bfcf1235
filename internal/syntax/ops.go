package syntax

// BinaryOp represents binary operators.
type BinaryOp int

const (
	_ BinaryOp = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNeq
	OpLt
	OpLte
	OpGt
	OpGte
	OpLogicalAnd
	OpLogicalOr
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl
	OpShr
	OpAndNot
	OpComma
	OpIndex
)

func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpEq:
		return "=="
	case OpNeq:
		return "!="
	case OpLt:
		return "<"
	case OpLte:
		return "<="
	case OpGt:
		return ">"
	case OpGte:
		return ">="
	case OpLogicalAnd:
		return "&&"
	case OpLogicalOr:
		return "||"
	case OpBitAnd:
		return "&"
	case OpBitOr:
		return "|"
	case OpBitXor:
		return "^"
	case OpShl:
		return "<<"
	case OpShr:
		return ">>"
	case OpAndNot:
		return "&^"
	case OpComma:
		return ","
	case OpIndex:
		return "[]"
	default:
		return "?"
	}
}

// UnaryOp represents unary operators.
type UnaryOp int

const (
	_ UnaryOp = iota
	OpNeg
	OpPlus
	OpNot
	OpBitNot
	OpPreInc
	OpPreDec
	OpPostInc
	OpPostDec
	OpAddressOf
	OpDeref
	OpCast
)

func (op UnaryOp) String() string {
	switch op {
	case OpNeg:
		return "-"
	case OpPlus:
		return "+"
	case OpNot:
		return "!"
	case OpBitNot:
		return "~"
	case OpPreInc, OpPostInc:
		return "++"
	case OpPreDec, OpPostDec:
		return "--"
	case OpAddressOf:
		return "&"
	case OpDeref:
		return "*"
	case OpCast:
		return "cast"
	default:
		return "?"
	}
}

// IsIncDec reports whether op is one of the increment or decrement forms.
func (op UnaryOp) IsIncDec() bool {
	switch op {
	case OpPreInc, OpPreDec, OpPostInc, OpPostDec:
		return true
	}
	return false
}

// AssignOp represents compound assignment operators.
type AssignOp int

const (
	_ AssignOp = iota
	OpAddAssign
	OpSubAssign
	OpMulAssign
	OpDivAssign
	OpModAssign
	OpAndAssign
	OpOrAssign
	OpXorAssign
	OpShlAssign
	OpShrAssign
	OpAndNotAssign
)

func (op AssignOp) String() string {
	switch op {
	case OpAddAssign:
		return "+="
	case OpSubAssign:
		return "-="
	case OpMulAssign:
		return "*="
	case OpDivAssign:
		return "/="
	case OpModAssign:
		return "%="
	case OpAndAssign:
		return "&="
	case OpOrAssign:
		return "|="
	case OpXorAssign:
		return "^="
	case OpShlAssign:
		return "<<="
	case OpShrAssign:
		return ">>="
	case OpAndNotAssign:
		return "&^="
	default:
		return "?="
	}
}

// LitKind classifies literal values.
type LitKind int

const (
	LitInt LitKind = iota
	LitFloat
	LitChar
	LitString
	LitBool
	LitNull
	// LitOpaque holds the source text of an expression that has no
	// dedicated node, such as a ternary or a composite literal.
	LitOpaque
)

func (k LitKind) String() string {
	switch k {
	case LitInt:
		return "int"
	case LitFloat:
		return "float"
	case LitChar:
		return "char"
	case LitString:
		return "string"
	case LitBool:
		return "bool"
	case LitNull:
		return "null"
	case LitOpaque:
		return "opaque"
	default:
		return "unknown"
	}
}
