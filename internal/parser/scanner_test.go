package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanTypes(tokens []Token) []TokenType {
	types := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	return types
}

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	scanner := NewScanner("contract Counter with Deployable")
	tokens := scanner.ScanTokens()

	assert.Equal(t, []TokenType{IDENTIFIER, IDENTIFIER, IDENTIFIER, IDENTIFIER, EOF}, scanTypes(tokens))
	assert.Equal(t, "contract", tokens[0].Lexeme)
	assert.Equal(t, "Deployable", tokens[3].Lexeme)
}

func TestScanSkipsCommentsAndWhitespace(t *testing.T) {
	source := "// line comment\nlet /* block\ncomment */ x = 1;"
	scanner := NewScanner(source)
	tokens := scanner.ScanTokens()

	require.Empty(t, scanner.errors)
	assert.Equal(t, []TokenType{IDENTIFIER, IDENTIFIER, OPERATOR, NUMBER, PUNCT, EOF}, scanTypes(tokens))
	assert.Equal(t, "x", tokens[1].Lexeme)
	assert.Equal(t, Position{Line: 3, Column: 12, Offset: 40}, tokens[1].Position)
}

func TestScanOperators(t *testing.T) {
	scanner := NewScanner("a <<= b >> c != d !! ?")
	tokens := scanner.ScanTokens()

	var lexemes []string
	for _, tok := range tokens {
		if tok.Type == OPERATOR {
			lexemes = append(lexemes, tok.Lexeme)
		}
	}
	assert.Equal(t, []string{"<<=", ">>", "!=", "!!", "?"}, lexemes)
}

func TestScanStrings(t *testing.T) {
	scanner := NewScanner(`"hello" "esc\"aped"`)
	tokens := scanner.ScanTokens()

	assert.Equal(t, []TokenType{STRING, STRING, EOF}, scanTypes(tokens))
	assert.Equal(t, `"esc\"aped"`, tokens[1].Lexeme)
}

func TestScanRecoversFromInvalidCharacter(t *testing.T) {
	scanner := NewScanner("let a = 1 $ 2;\nlet b = 3;")
	tokens := scanner.ScanTokens()

	require.Len(t, scanner.errors, 1)
	assert.Equal(t, Position{Line: 1, Column: 11, Offset: 10}, scanner.errors[0].Position)

	last := tokens[len(tokens)-2]
	assert.Equal(t, ";", last.Lexeme)
	assert.Equal(t, 2, last.Position.Line)
	assert.Equal(t, 10, last.Position.Column)

	two := tokens[4]
	assert.Equal(t, "2", two.Lexeme)
	assert.Equal(t, Position{Line: 1, Column: 13, Offset: 12}, two.Position)
}
