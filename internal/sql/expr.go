package sql

import (
	"fmt"
	"strings"

	"godbtypes/internal/sqlerr"
)

// ArithmeticOperator is one of + - * /.
type ArithmeticOperator int

const (
	OpAdd ArithmeticOperator = iota
	OpSub
	OpMul
	OpDiv
)

func (op ArithmeticOperator) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	default:
		return fmt.Sprintf("ArithmeticOperator(%d)", int(op))
	}
}

func parseOperator(s string) (ArithmeticOperator, error) {
	switch s {
	case "+":
		return OpAdd, nil
	case "-":
		return OpSub, nil
	case "*":
		return OpMul, nil
	case "/":
		return OpDiv, nil
	default:
		return 0, fmt.Errorf("unknown operator %q", s)
	}
}

// BinaryOp applies Op to Left and Right.
type BinaryOp struct {
	Op    ArithmeticOperator
	Left  Expression
	Right Expression
}

func (*BinaryOp) exprNode() {}

func (b *BinaryOp) String() string {
	return "(" + b.Left.String() + " " + b.Op.String() + " " + b.Right.String() + ")"
}

// ParseExpression parses the text of one value position.
// '*' and '/' bind tighter than '+' and '-'; operators of equal precedence
// associate to the left. Parentheses group.
func ParseExpression(text string) (Expression, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil, sqlerr.NewMalformedLiteralError(text, fmt.Errorf("empty expression"))
	}

	parsed, err := exprParser.ParseString("", s)
	if err != nil {
		return nil, sqlerr.NewMalformedLiteralError(text, err)
	}
	return parsed.toExpression(text)
}

func (g *grammarExpr) toExpression(text string) (Expression, error) {
	left, err := g.Left.toExpression(text)
	if err != nil {
		return nil, err
	}
	for _, r := range g.Right {
		right, err := r.Term.toExpression(text)
		if err != nil {
			return nil, err
		}
		op, err := parseOperator(r.Op)
		if err != nil {
			return nil, sqlerr.NewMalformedLiteralError(text, err)
		}
		left = &BinaryOp{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (g *grammarTerm) toExpression(text string) (Expression, error) {
	left, err := g.Left.toExpression(text)
	if err != nil {
		return nil, err
	}
	for _, r := range g.Right {
		right, err := r.Factor.toExpression(text)
		if err != nil {
			return nil, err
		}
		op, err := parseOperator(r.Op)
		if err != nil {
			return nil, sqlerr.NewMalformedLiteralError(text, err)
		}
		left = &BinaryOp{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (g *grammarFactor) toExpression(text string) (Expression, error) {
	if g.Sub != nil {
		return g.Sub.toExpression(text)
	}
	return g.Literal.toLiteral(text)
}
