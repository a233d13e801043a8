package query

import (
	"fmt"
	"strconv"
	"strings"
)

// Expr is a filter expression tree
type Expr interface {
	isExpr()
}

// LogicalOp joins two sub-expressions
type LogicalOp int

const (
	OpAnd LogicalOp = iota
	OpOr
)

func (op LogicalOp) String() string {
	if op == OpOr {
		return "or"
	}
	return "and"
}

// Logical combines two expressions
type Logical struct {
	Op    LogicalOp
	Left  Expr
	Right Expr
}

// Condition compares one field against a literal
type Condition struct {
	Field string
	Op    CmpOp
	Value Literal
}

func (Logical) isExpr()   {}
func (Condition) isExpr() {}

// CmpOp is a comparison operator
type CmpOp int

const (
	CmpEq CmpOp = iota
	CmpNe
	CmpGt
	CmpLt
	CmpGe
	CmpLe
)

var cmpNames = map[string]CmpOp{
	"eq": CmpEq,
	"ne": CmpNe,
	"gt": CmpGt,
	"lt": CmpLt,
	"ge": CmpGe,
	"le": CmpLe,
}

// LookupCmpOp resolves a filter operator word.
func LookupCmpOp(word string) (CmpOp, bool) {
	op, ok := cmpNames[word]
	return op, ok
}

// Name returns the filter spelling of the operator.
func (op CmpOp) Name() string {
	switch op {
	case CmpEq:
		return "eq"
	case CmpNe:
		return "ne"
	case CmpGt:
		return "gt"
	case CmpLt:
		return "lt"
	case CmpGe:
		return "ge"
	case CmpLe:
		return "le"
	default:
		return "?"
	}
}

func (op CmpOp) String() string {
	switch op {
	case CmpEq:
		return "=="
	case CmpNe:
		return "!="
	case CmpGt:
		return ">"
	case CmpLt:
		return "<"
	case CmpGe:
		return ">="
	case CmpLe:
		return "<="
	default:
		return "?"
	}
}

// SQL returns the SQL comparison operator
func (op CmpOp) SQL() string {
	switch op {
	case CmpEq:
		return "="
	case CmpNe:
		return "<>"
	default:
		return op.String()
	}
}

// LiteralKind tags a Literal
type LiteralKind int

const (
	LitNumber LiteralKind = iota
	LitText
)

// Literal is the right-hand side of a condition. Raw holds the literal as it
// was written (without quotes). Quoted is set for quoted text only.
type Literal struct {
	Kind   LiteralKind
	Num    float64
	Raw    string
	Quoted bool
}

// Number builds a numeric literal.
func Number(v float64) Literal {
	return Literal{Kind: LitNumber, Num: v, Raw: strconv.FormatFloat(v, 'g', -1, 64)}
}

// Text builds a quoted text literal.
func Text(s string) Literal {
	return Literal{Kind: LitText, Raw: s, Quoted: true}
}

func (l Literal) String() string {
	if l.Quoted {
		return "'" + l.Raw + "'"
	}
	return l.Raw
}

// Format renders e fully parenthesized, e.g. ((a eq 1) and (b eq 'x')).
func Format(e Expr) string {
	var sb strings.Builder
	format(&sb, e)
	return sb.String()
}

func format(sb *strings.Builder, e Expr) {
	switch n := e.(type) {
	case Logical:
		sb.WriteByte('(')
		format(sb, n.Left)
		sb.WriteByte(' ')
		sb.WriteString(n.Op.String())
		sb.WriteByte(' ')
		format(sb, n.Right)
		sb.WriteByte(')')
	case Condition:
		fmt.Fprintf(sb, "(%s %s %s)", n.Field, n.Op.Name(), n.Value)
	default:
		fmt.Fprintf(sb, "<%T>", e)
	}
}

// Fields returns every field referenced by e, left to right.
func Fields(e Expr) []string {
	var out []string
	var walk func(Expr)
	walk = func(e Expr) {
		switch n := e.(type) {
		case Logical:
			walk(n.Left)
			walk(n.Right)
		case Condition:
			out = append(out, n.Field)
		}
	}
	walk(e)
	return out
}
