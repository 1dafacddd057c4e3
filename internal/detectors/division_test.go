package detectors

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tactscan/internal/ast"
	"tactscan/internal/ir"
	"tactscan/internal/numbers"
)

func TestDivisionByUnknownVariable(t *testing.T) {
	ws := check(t, NewDivisionByZero(DefaultOptions()), `
fun f(a: Int, b: Int): Int {
    let c = b;
    return a / c;
}`)

	require.Len(t, ws, 1)
	w := ws[0]
	assert.Equal(t, "DivisionByZero", w.DetectorID)
	assert.Equal(t, `Potential division by zero: variable "c" could be zero`, w.Message)
	assert.Equal(t, "Variable value range: [-∞, +∞]", w.ExtraDescription)
	assert.Equal(t, "Add a check to ensure the divisor is not zero", w.Suggestion)
	assert.Equal(t, 4, w.Position.Line)
}

func TestDivisionByKnownValue(t *testing.T) {
	ws := check(t, NewDivisionByZero(DefaultOptions()), `
fun f(): Int {
    let x = 5;
    let y = x + 3;
    let z = 10 / y;
    return z;
}`)
	assert.Empty(t, ws)
}

func TestDivisionByLiteralZero(t *testing.T) {
	ws := check(t, NewDivisionByZero(DefaultOptions()), `
const NONE: Int = 0;

fun f(a: Int): Int {
    let r = a / 0;
    return a % NONE + r;
}`)

	require.Len(t, ws, 2)
	for _, w := range ws {
		assert.Equal(t, "Division by zero", w.Message)
		assert.Equal(t, "This will cause a runtime error", w.ExtraDescription)
	}
	assert.Equal(t, 5, ws[0].Position.Line)
	assert.Equal(t, 6, ws[1].Position.Line)
}

func TestAugmentedDivision(t *testing.T) {
	ws := check(t, NewDivisionByZero(DefaultOptions()), `
fun f(a: Int, b: Int): Int {
    let x = a;
    x /= b;
    x %= 7;
    return x;
}`)

	require.Len(t, ws, 1)
	assert.Contains(t, ws[0].Message, `variable "b"`)
}

func TestDivisionAfterLoop(t *testing.T) {
	ws := check(t, NewDivisionByZero(DefaultOptions()), `
fun f(): Int {
    let d = 0;
    let i = 0;
    while (i < 3) {
        d = d + 1;
        i = i + 1;
    }
    return 10 / d;
}`)

	require.Len(t, ws, 1)
	assert.Contains(t, ws[0].Message, `variable "d"`)
}

func TestLoopCounterStaysPositive(t *testing.T) {
	ws := check(t, NewDivisionByZero(DefaultOptions()), `
fun f(): Int {
    let i = 1;
    let s = 0;
    while (i < 100) {
        s = s + 1;
        i = i + 1;
    }
    return 10 / i;
}`)
	assert.Empty(t, ws, "i never drops below 1")
}

func TestDivisionInCatchHandler(t *testing.T) {
	ws := check(t, NewDivisionByZero(DefaultOptions()), `
fun f(): Int {
    let d = 0;
    try {
        d = 5;
    } catch (e) {
        return 10 / d;
    }
    return 10 / d;
}`)

	// the handler can be entered before d = 5 runs
	require.Len(t, ws, 1)
	assert.Contains(t, ws[0].Message, `variable "d"`)
	assert.Equal(t, "Variable value range: [0, 5]", ws[0].ExtraDescription)
	assert.Equal(t, 7, ws[0].Position.Line)
}

func TestDivisionInUntilBody(t *testing.T) {
	src := func(start int) string {
		return fmt.Sprintf(`
fun f(): Int {
    let d = %d;
    let x = 0;
    do {
        x = 10 / d;
        d = d + 1;
    } until (d > 5);
    return x;
}`, start)
	}

	ws := check(t, NewDivisionByZero(DefaultOptions()), src(0))
	require.Len(t, ws, 1)
	assert.Contains(t, ws[0].Message, `variable "d"`)
	assert.Equal(t, 6, ws[0].Position.Line)

	assert.Empty(t, check(t, NewDivisionByZero(DefaultOptions()), src(1)))
}

func TestRequireSuppressesWarning(t *testing.T) {
	src := `
fun f(a: Int, b: Int): Int {
    require(b > 0, "b must be positive");
    return a / b;
}`

	assert.Empty(t, check(t, NewDivisionByZero(DefaultOptions()), src))

	opts := DefaultOptions()
	opts.Narrowing = false
	assert.Len(t, check(t, NewDivisionByZero(opts), src), 1)
}

func TestNotEqualAloneKeepsWarning(t *testing.T) {
	ws := check(t, NewDivisionByZero(DefaultOptions()), `
fun f(a: Int, b: Int): Int {
    require(b != 0, "b must not be zero");
    return a / b;
}`)
	assert.Len(t, ws, 1, "!= cannot split an interval around zero")
}

func TestWarningsFollowFunctionOrder(t *testing.T) {
	src := `
fun first(a: Int, b: Int): Int { return a / b; }
fun second(a: Int, c: Int): Int { return a % c; }
contract C {
    fun third(a: Int, d: Int): Int { return a / d; }
}`

	for _, workers := range []int{1, 4} {
		opts := DefaultOptions()
		opts.Workers = workers
		ws := check(t, NewDivisionByZero(opts), src)
		require.Len(t, ws, 3)
		assert.Contains(t, ws[0].Message, `"b"`)
		assert.Contains(t, ws[1].Message, `"c"`)
		assert.Contains(t, ws[2].Message, `"d"`)
	}
}

func TestStdlibIsSkipped(t *testing.T) {
	cu := compile(t, `fun f(a: Int, b: Int): Int { return a / b; }`)
	cu.Files[0].Origin = ast.OriginStdlib
	stdlib := ir.NewCompilationUnit("test", cu.Files)

	ws, err := NewDivisionByZero(DefaultOptions()).Check(context.Background(), stdlib)
	require.NoError(t, err)
	assert.Empty(t, ws)

	opts := DefaultOptions()
	opts.IncludeStdlib = true
	ws, err = NewDivisionByZero(opts).Check(context.Background(), stdlib)
	require.NoError(t, err)
	assert.Len(t, ws, 1)
}

func TestDivisorRanges(t *testing.T) {
	tests := []struct {
		name    string
		divisor numbers.Interval
		flagged bool
	}{
		{"zero", numbers.FromInt64(0), true},
		{"positive", numbers.NewInterval(numbers.Int64(1), numbers.Int64(10)), false},
		{"around zero", numbers.NewInterval(numbers.Int64(-5), numbers.Int64(5)), true},
		{"unbounded positive", numbers.NewInterval(numbers.Int64(1), numbers.PosInf()), false},
		{"unbounded negative", numbers.NewInterval(numbers.NegInf(), numbers.Int64(-1)), false},
		{"top", numbers.Top(), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := checker{DivisionByZero: NewDivisionByZero(DefaultOptions())}
			c.checkVariable("x", tt.divisor, ast.Position{})
			assert.Equal(t, tt.flagged, len(c.found) == 1)
		})
	}
}
