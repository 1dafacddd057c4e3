package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tactscan/internal/ast"
)

func TestPrattPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"a - b - c", "((a - b) - c)"},
		{"a / b % c", "((a / b) % c)"},
		{"a << 2 + 1", "(a << (2 + 1))"},
		{"a & b | c ^ d", "((a & b) | (c ^ d))"},
		{"a == b && c != d || e", "(((a == b) && (c != d)) || e)"},
		{"a < b == c >= d", "((a < b) == (c >= d))"},
		{"-a * b", "((-a) * b)"},
		{"!ok && done", "((!ok) && done)"},
		{"c ? a : b + 1", "(c ? a : (b + 1))"},
		{"a ? b : c ? d : e", "(a ? b : (c ? d : e))"},
		{"x!! + 1", "(x!! + 1)"},
		{"self.balances.get(k)!!", "self.balances.get(k)!!"},
		{"-self.value", "(-self.value)"},
		{"min(a, b) / 2", "(min(a, b) / 2)"},
		{"Point{ x: 1, y }", "Point{ x: 1, y: y }"},
		{"initOf Child(owner, 0)", "initOf Child(owner, 0)"},
		{"0x1_F + 0b101 + 0o17 + 1_000", "(((0x1_F + 0b101) + 0o17) + 1_000)"},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			expr, parseErrors, scanErrors := ParseExpression("expr.tact", test.input)
			require.Empty(t, scanErrors)
			require.Empty(t, parseErrors)
			assert.Equal(t, test.expected, expr.String())
		})
	}
}

func TestNumberLiteralValues(t *testing.T) {
	tests := map[string]int64{
		"42":       42,
		"0x1_F":    31,
		"0XFF":     255,
		"0b101":    5,
		"0o17":     15,
		"1_000":    1000,
		"0":        0,
		"00":       0,
		"12345678": 12345678,
	}

	for input, value := range tests {
		expr, parseErrors, _ := ParseExpression("expr.tact", input)
		require.Empty(t, parseErrors, input)
		n, ok := expr.(*ast.NumberExpr)
		require.True(t, ok, input)
		assert.Equal(t, value, n.Value.Int64(), input)
	}
}

func TestStructInstanceDisabledInConditions(t *testing.T) {
	file, parseErrors, _ := ParseSource("test.tact", `fun f() { while (Flag) { return; } if Ready { return; } }`)
	require.Empty(t, parseErrors)

	fn := file.Items[0].(*ast.Function)
	require.Len(t, fn.Body, 2)
	cond := fn.Body[1].(*ast.IfStmt).Cond
	_, isIdent := cond.(*ast.IdentExpr)
	assert.True(t, isIdent, "condition should be a plain identifier, got %T", cond)
}

func TestUnexpectedTokenInExpression(t *testing.T) {
	expr, parseErrors, _ := ParseExpression("expr.tact", "1 + )")
	require.NotEmpty(t, parseErrors)
	bin := expr.(*ast.BinaryExpr)
	_, isBad := bin.Right.(*ast.BadExpr)
	assert.True(t, isBad)
}
