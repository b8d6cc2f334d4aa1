package sql

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"godbtypes/internal/sqlerr"
)

// Expression is a value position of an INSERT or UPDATE: either a Literal or
// a *BinaryOp. The set is closed; consumers switch over it exhaustively.
type Expression interface {
	exprNode()
	String() string
}

// Literal is the provisional classification of one token, made without
// knowledge of the destination type.
type Literal interface {
	Expression
	literalNode()
}

// IntegerLiteral is an optional sign followed by decimal digits.
type IntegerLiteral struct {
	Text     string // sign (if any) and digits as written
	Negative bool
	Digits   string
}

// StringLiteral is a single-quoted string. Content excludes the quotes.
type StringLiteral struct {
	Content string
}

// BareKeyword is an unquoted word such as TRUE.
type BareKeyword struct {
	Text string
}

// CastExpression is Inner followed by an explicit ::type marker.
type CastExpression struct {
	Inner  Literal
	Target ColumnType
}

func (*IntegerLiteral) exprNode()    {}
func (*StringLiteral) exprNode()     {}
func (*BareKeyword) exprNode()       {}
func (*CastExpression) exprNode()    {}
func (*IntegerLiteral) literalNode() {}
func (*StringLiteral) literalNode()  {}
func (*BareKeyword) literalNode()    {}
func (*CastExpression) literalNode() {}

func (l *IntegerLiteral) String() string { return l.Text }
func (l *StringLiteral) String() string  { return "'" + l.Content + "'" }
func (l *BareKeyword) String() string    { return l.Text }
func (l *CastExpression) String() string { return l.Inner.String() + "::" + l.Target.Kind.String() }

// Fold lowercases s. Keyword lookups go through Fold so that any mixed-case
// spelling maps to the same table key. Only case changes: compatibility
// letters such as U+017F (long s) stay distinct from their ASCII look-alikes.
func Fold(s string) string {
	// cases.Caser is stateful, so build one per call.
	return cases.Lower(language.Und).String(s)
}

// ClassifyLiteral classifies a single value token:
//
//	-42, 7          IntegerLiteral
//	'text'          StringLiteral
//	TRUE            BareKeyword
//	'f'::boolean    CastExpression
func ClassifyLiteral(token string) (Literal, error) {
	s := strings.TrimSpace(token)
	if s == "" {
		return nil, sqlerr.NewMalformedLiteralError(token, fmt.Errorf("empty literal"))
	}

	parsed, err := literalParser.ParseString("", s)
	if err != nil {
		return nil, sqlerr.NewMalformedLiteralError(token, err)
	}
	return parsed.toLiteral(token)
}

func (g *grammarLiteral) toLiteral(token string) (Literal, error) {
	var lit Literal
	switch {
	case g.Int != nil:
		lit = &IntegerLiteral{
			Text:     g.Sign + *g.Int,
			Negative: g.Sign == "-",
			Digits:   *g.Int,
		}
	case g.Sign != "":
		return nil, sqlerr.NewMalformedLiteralError(token, fmt.Errorf("sign %q must be followed by digits", g.Sign))
	case g.String != nil:
		quoted := *g.String
		lit = &StringLiteral{Content: quoted[1 : len(quoted)-1]}
	case g.Keyword != nil:
		lit = &BareKeyword{Text: *g.Keyword}
	default:
		return nil, sqlerr.NewMalformedLiteralError(token, fmt.Errorf("empty literal"))
	}

	for _, target := range g.Casts {
		switch Fold(target) {
		case "boolean", "bool":
			lit = &CastExpression{Inner: lit, Target: Boolean()}
		default:
			return nil, sqlerr.NewMalformedLiteralError(token, fmt.Errorf("unsupported cast target %q", target))
		}
	}
	return lit, nil
}
