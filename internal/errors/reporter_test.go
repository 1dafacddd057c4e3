package errors

import (
	"fmt"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tactscan/internal/ast"
)

func init() {
	color.NoColor = true
}

const source = `contract Test {
    fun f(a: Int, b: Int): Int {
        let c = b;
        return a / c;
    }
}`

func TestErrorReporter(t *testing.T) {
	reporter := NewErrorReporter("test.tact", source)

	d := NewWarning("DivisionByZero", `Potential division by zero: variable "c" could be zero`,
		ast.Position{Filename: "test.tact", Line: 4, Column: 20}).
		WithNote("Variable value range: [-∞, +∞]").
		WithSuggestion("check that c is non-zero before dividing").
		Build()
	formatted := reporter.FormatError(d)

	assert.Contains(t, formatted, "warning[DivisionByZero]")
	assert.Contains(t, formatted, "test.tact:4:20")
	assert.Contains(t, formatted, "return a / c;")
	assert.Contains(t, formatted, "let c = b;", "previous line is shown for context")
	assert.Contains(t, formatted, "note: Variable value range: [-∞, +∞]")
	assert.Contains(t, formatted, "help try: check that c is non-zero")
}

func TestMarkerAlignment(t *testing.T) {
	reporter := NewErrorReporter("test.tact", source)
	marker := reporter.createMarker(5, 3, Error)
	assert.Equal(t, "    ^^^", marker)

	assert.Equal(t, "^", reporter.createMarker(1, 0, Warning))
}

func TestUnknownFileOmitsSnippet(t *testing.T) {
	reporter := NewErrorReporter("test.tact", source)
	formatted := reporter.FormatError(SyntaxError("expected ';'", ast.Position{Filename: "other.tact", Line: 2, Column: 1}))

	assert.Contains(t, formatted, "error[E0100]: expected ';'")
	assert.Contains(t, formatted, "other.tact:2:1")
	assert.NotContains(t, formatted, "fun f(")
}

func TestUnknownNameSuggestions(t *testing.T) {
	known := []string{"DivisionByZero", "RaceCondition"}

	err := UnknownName("detector", "DivisionByZer", known)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did you mean 'DivisionByZero'?")
	assert.True(t, IsExecution(err))
	assert.False(t, IsInternal(err))

	err = UnknownName("detector", "Reentrancy", known)
	assert.Contains(t, err.Error(), "available: DivisionByZero, RaceCondition")
}

func TestLevenshteinDistance(t *testing.T) {
	assert.Equal(t, 0, levenshteinDistance("same", "same"))
	assert.Equal(t, 1, levenshteinDistance("DumpAst", "DumpAs"))
	assert.Equal(t, 3, levenshteinDistance("kitten", "sitting"))
	assert.Equal(t, 4, levenshteinDistance("", "four"))
}

func TestInternalErrorWrapping(t *testing.T) {
	cause := fmt.Errorf("statement 42 not found")
	err := Internalf("cfg %d: %w", 7, cause)

	assert.True(t, IsInternal(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "internal error: cfg 7: statement 42 not found", err.Error())

	wrapped := fmt.Errorf("analyzing f: %w", err)
	assert.True(t, IsInternal(wrapped))
}
