package descriptor

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// typeExpr is a type argument or type: a wildcard or a reference
type typeExpr struct {
	Wildcard *wildcardExpr `parser:"  @@"`
	Ref      *refExpr      `parser:"| @@"`
}

type wildcardExpr struct {
	Bound string    `parser:"'?' ( @( 'extends' | 'super' )"`
	Type  *typeExpr `parser:"      @@ )?"`
}

// refExpr is a dotted name with optional type arguments and array dimensions
type refExpr struct {
	Parts []string    `parser:"@Ident ( '.' @Ident )*"`
	Args  []*typeExpr `parser:"( '<' @@ ( ',' @@ )* '>' )?"`
	Dims  []string    `parser:"( @'[' ']' )*"`
}

// paramExpr is "Type name" or "Type... name"
type paramExpr struct {
	Type     *typeExpr `parser:"@@"`
	Variadic bool      `parser:"@'...'?"`
	Name     string    `parser:"@Ident"`
}

// typeParamExpr is "T" or "T extends A & B"
type typeParamExpr struct {
	Name   string      `parser:"@Ident"`
	Bounds []*typeExpr `parser:"( 'extends' @@ ( '&' @@ )* )?"`
}

var typeLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Ident", Pattern: `[a-zA-Z_$][a-zA-Z0-9_$]*`},
	{Name: "Ellipsis", Pattern: `\.\.\.`},
	{Name: "Punct", Pattern: `[<>,.?&\[\]]`},
})

var (
	typeParser      = build[typeExpr]()
	paramParser     = build[paramExpr]()
	typeParamParser = build[typeParamExpr]()
)

func build[G any]() *participle.Parser[G] {
	return participle.MustBuild[G](
		participle.Lexer(typeLexer),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)
}
