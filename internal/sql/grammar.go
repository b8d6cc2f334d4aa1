package sql

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// valueLexer tokenizes a single value position.
// A quote with no closing quote matches no rule and fails lexing.
var valueLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `'[^']*'`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Cast", Pattern: `::`},
	{Name: "Op", Pattern: `[-+*/()]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

//nolint:govet // participle grammar tags are not standard struct tags
type grammarLiteral struct {
	Sign    string   `@("-" | "+")?`
	Int     *string  `( @Int`
	String  *string  `| @String`
	Keyword *string  `| @Ident )`
	Casts   []string `( "::" @Ident )*`
}

//nolint:govet // participle grammar tags are not standard struct tags
type grammarExpr struct {
	Left  *grammarTerm     `@@`
	Right []*grammarOpTerm `@@*`
}

//nolint:govet // participle grammar tags are not standard struct tags
type grammarOpTerm struct {
	Op   string       `@("+" | "-")`
	Term *grammarTerm `@@`
}

//nolint:govet // participle grammar tags are not standard struct tags
type grammarTerm struct {
	Left  *grammarFactor     `@@`
	Right []*grammarOpFactor `@@*`
}

//nolint:govet // participle grammar tags are not standard struct tags
type grammarOpFactor struct {
	Op     string         `@("*" | "/")`
	Factor *grammarFactor `@@`
}

//nolint:govet // participle grammar tags are not standard struct tags
type grammarFactor struct {
	Sub     *grammarExpr    `  "(" @@ ")"`
	Literal *grammarLiteral `| @@`
}

var literalParser = participle.MustBuild[grammarLiteral](
	participle.Lexer(valueLexer),
	participle.Elide("Whitespace"),
)

var exprParser = participle.MustBuild[grammarExpr](
	participle.Lexer(valueLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)
