// Package grammar holds the lexical grammar of the Tact language.
package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// TactLexer tokenizes Tact sources. Rule order matters: longer operators are
// listed before their prefixes.
var TactLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*|/\*([^*]|\*+[^*/])*\*+/`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},

	// Integer literals: hex, binary, octal and decimal, all with `_` separators
	{Name: "Number", Pattern: `0[xX][0-9a-fA-F][0-9a-fA-F_]*|0[bB][01][01_]*|0[oO][0-7][0-7_]*|[0-9][0-9_]*`},
	{Name: "String", Pattern: `"(\\.|[^"\\\n])*"`},

	// Keywords are identifiers; the parser tells them apart by value
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},

	{Name: "Operator", Pattern: `\|\|=|&&=|<<=|>>=|!!|\|\||&&|==|!=|<=|>=|<<|>>|\+=|-=|\*=|/=|%=|\|=|&=|\^=|[-+*/%<>=!~?|&^]`},
	{Name: "Punct", Pattern: `[{}()\[\];:,.@]`},
})

// Token kinds produced by TactLexer.
var (
	CommentToken    = TactLexer.Symbols()["Comment"]
	WhitespaceToken = TactLexer.Symbols()["Whitespace"]
	NumberToken     = TactLexer.Symbols()["Number"]
	StringToken     = TactLexer.Symbols()["String"]
	IdentToken      = TactLexer.Symbols()["Ident"]
	OperatorToken   = TactLexer.Symbols()["Operator"]
	PunctToken      = TactLexer.Symbols()["Punct"]
)
