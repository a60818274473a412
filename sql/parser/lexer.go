package parser

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// sqlLexer defines the token types for the minimal SQL dialect.
// Anything the lexer cannot tokenize (string literals, casts, operators
// outside this set) fails the parse, which routes the statement to the
// raw fallback path.
var sqlLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Keyword", Pattern: `(?i)\b(select|insert|into|values|update|set|delete|from|where|and|or|is|null|any|order|by|asc|desc|limit|truncate|table|refresh|materialized|view|concurrently)\b`},

	// Positional parameter reference ($1, $2, ...)
	{Name: "Param", Pattern: `\$\d+`},
	{Name: "Number", Pattern: `\d+`},

	{Name: "Operator", Pattern: `<>|!=|>=|<=|=|<|>`},

	// Punctuation
	{Name: "Star", Pattern: `\*`},
	{Name: "Comma", Pattern: `,`},
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
	{Name: "Semicolon", Pattern: `;`},
	{Name: "Dot", Pattern: `\.`},

	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},

	{Name: "Whitespace", Pattern: `\s+`},
})
