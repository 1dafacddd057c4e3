package grammar

import (
	"testing"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lex(t *testing.T, src string) []lexer.Token {
	t.Helper()
	l, err := TactLexer.LexString("test.tact", src)
	require.NoError(t, err)
	tokens, err := lexer.ConsumeAll(l)
	require.NoError(t, err)

	var significant []lexer.Token
	for _, tok := range tokens {
		if tok.Type != WhitespaceToken && tok.Type != CommentToken && !tok.EOF() {
			significant = append(significant, tok)
		}
	}
	return significant
}

func TestLongestOperatorWins(t *testing.T) {
	tokens := lex(t, "a >>= b != c /= 0x1F_ff")

	values := make([]string, len(tokens))
	for i, tok := range tokens {
		values[i] = tok.Value
	}
	assert.Equal(t, []string{"a", ">>=", "b", "!=", "c", "/=", "0x1F_ff"}, values)
	assert.Equal(t, OperatorToken, tokens[1].Type)
	assert.Equal(t, NumberToken, tokens[6].Type)
}

func TestCommentsAndStrings(t *testing.T) {
	tokens := lex(t, "// line\nreceive(\"inc\") /* block\n comment */ { }")

	require.Len(t, tokens, 6)
	assert.Equal(t, IdentToken, tokens[0].Type)
	assert.Equal(t, 2, tokens[0].Pos.Line)
	assert.Equal(t, StringToken, tokens[2].Type)
	assert.Equal(t, `"inc"`, tokens[2].Value)
	assert.Equal(t, PunctToken, tokens[4].Type)
	assert.Equal(t, 3, tokens[4].Pos.Line)
}

func TestInvalidCharacter(t *testing.T) {
	l, err := TactLexer.LexString("test.tact", "let x = #;")
	require.NoError(t, err)
	_, err = lexer.ConsumeAll(l)
	require.Error(t, err)
}
