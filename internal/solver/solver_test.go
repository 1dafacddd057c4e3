package solver

import (
	"context"
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tactscan/internal/ast"
	"tactscan/internal/errors"
	"tactscan/internal/intervals"
	"tactscan/internal/ir"
	"tactscan/internal/parser"
	"tactscan/internal/transfer"
)

func compile(t *testing.T, src string) *ir.CompilationUnit {
	t.Helper()
	file, parseErrs, scanErrs := parser.ParseSource("test.tact", src)
	require.Empty(t, parseErrs)
	require.Empty(t, scanErrs)
	return ir.NewCompilationUnit("test", []*ast.File{file})
}

func solveIntervals(t *testing.T, cu *ir.CompilationUnit, name string) (*ir.Cfg, *Results[intervals.State]) {
	t.Helper()
	cfg, ok := cu.FindCfg(name)
	require.True(t, ok)
	ref, err := cu.Function(cfg.ID)
	require.NoError(t, err)

	res, err := NewWideningWorklistSolver[intervals.State](
		cu, cfg, intervals.NewLattice(-1), intervals.NewTransfer(cu.Constants(), false), Forward,
	).WithSeed(intervals.Seed(ref.Decl)).Solve(context.Background())
	require.NoError(t, err)
	return cfg, res
}

func rangeAfter(t *testing.T, res *Results[intervals.State], idx int, name string) string {
	t.Helper()
	state, ok, err := res.State(idx)
	require.NoError(t, err)
	require.True(t, ok)
	v, ok := state.Get(name)
	require.True(t, ok, "%s bound after bb%d", name, idx)
	return v.String()
}

func TestStraightLineFixpoint(t *testing.T) {
	cu := compile(t, `
fun f(): Int {
    let x = 5;
    let y = x + 3;
    let z = 10 / y;
    return z;
}`)
	_, res := solveIntervals(t, cu, "f")

	assert.Equal(t, "[5, 5]", rangeAfter(t, res, 0, "x"))
	assert.Equal(t, "[8, 8]", rangeAfter(t, res, 1, "y"))
	assert.Equal(t, "[1, 1]", rangeAfter(t, res, 2, "z"))
	assert.Equal(t, 4, res.Iterations, "each block is processed once")
}

func TestLoopWideningTerminates(t *testing.T) {
	cu := compile(t, `
fun f(): Int {
    let i = 0;
    while (i < 10) {
        i = i + 1;
    }
    return i;
}`)
	cfg, res := solveIntervals(t, cu, "f")
	require.Len(t, cfg.Blocks, 4)

	in, ok, err := res.InState(3)
	require.NoError(t, err)
	require.True(t, ok)
	i, _ := in.Get("i")
	assert.Equal(t, "[0, +∞]", i.String())
	assert.Equal(t, "[1, +∞]", rangeAfter(t, res, 2, "i"))
}

const countingLoop = `
fun f(): Int {
    let i = 1;
    let s = 0;
    while (i < 100) {
        s = s + 1;
        i = i + 1;
    }
    return 10 / i;
}`

func TestLoopWithSeveralStatementsKeepsLowerBound(t *testing.T) {
	cu := compile(t, countingLoop)
	cfg, res := solveIntervals(t, cu, "f")
	require.Len(t, cfg.Blocks, 6)

	// every block on the loop path widens i once, at its own site
	in, ok, err := res.InState(5)
	require.NoError(t, err)
	require.True(t, ok)
	i, _ := in.Get("i")
	assert.Equal(t, "[1, +∞]", i.String())
	assert.Equal(t, "[2, +∞]", rangeAfter(t, res, 4, "i"))
	assert.Equal(t, "[1, +∞]", rangeAfter(t, res, 3, "s"))
}

func TestWideningThresholdStillForcesTop(t *testing.T) {
	cu := compile(t, countingLoop)
	cfg, ok := cu.FindCfg("f")
	require.True(t, ok)
	ref, err := cu.Function(cfg.ID)
	require.NoError(t, err)

	res, err := NewWideningWorklistSolver[intervals.State](
		cu, cfg, intervals.NewLattice(0), intervals.NewTransfer(cu.Constants(), false), Forward,
	).WithSeed(intervals.Seed(ref.Decl)).Solve(context.Background())
	require.NoError(t, err)

	in, ok, err := res.InState(5)
	require.NoError(t, err)
	require.True(t, ok)
	i, _ := in.Get("i")
	assert.True(t, i.IsTop(), i.String())
}

func TestNestedLoopsTerminate(t *testing.T) {
	cu := compile(t, `
fun f(n: Int): Int {
    let total = 0;
    let i = 0;
    while (i < n) {
        let j = 0;
        repeat (n) {
            total = total + j;
            j = j + 1;
        }
        i = i + 1;
    }
    return total;
}`)
	cfg, res := solveIntervals(t, cu, "f")

	ret := cfg.Exits[0]
	in, ok, err := res.InState(ret)
	require.NoError(t, err)
	require.True(t, ok)
	total, ok := in.Get("total")
	require.True(t, ok)
	assert.True(t, total.IsTop() || total.String() == "[0, +∞]", total.String())
	assert.Less(t, res.Iterations, 100)
}

func TestUnreachableBlocks(t *testing.T) {
	cu := compile(t, `
fun f(): Int {
    return 1;
    let x = 2;
}`)
	_, res := solveIntervals(t, cu, "f")

	assert.True(t, res.Reached(0))
	assert.False(t, res.Reached(1))

	_, ok, err := res.State(1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEmptyBody(t *testing.T) {
	cu := compile(t, `fun f() {}`)
	cfg, res := solveIntervals(t, cu, "f")

	assert.Empty(t, cfg.Blocks)
	assert.Zero(t, res.Iterations)
}

func TestStateOutOfRange(t *testing.T) {
	cu := compile(t, `fun f(): Int { return 1; }`)
	_, res := solveIntervals(t, cu, "f")

	_, _, err := res.State(7)
	require.Error(t, err)
	assert.True(t, errors.IsInternal(err))

	_, _, err = res.InState(-1)
	assert.True(t, errors.IsInternal(err))
	assert.False(t, res.Reached(7))
}

type noStatements struct{}

func (noStatements) Statement(id ast.NodeID) (ast.Stmt, error) {
	return nil, errors.Internalf("statement %d not found", id)
}

func TestMissingStatementIsInternal(t *testing.T) {
	cu := compile(t, `fun f(): Int { return 1; }`)
	cfg, _ := cu.FindCfg("f")

	_, err := NewWideningWorklistSolver[intervals.State](
		noStatements{}, cfg, intervals.NewLattice(-1), intervals.NewTransfer(nil, false), Forward,
	).Solve(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsInternal(err))
	assert.Contains(t, err.Error(), "f, bb0")
}

func TestCancelledContext(t *testing.T) {
	cu := compile(t, `fun f(): Int { return 1; }`)
	cfg, _ := cu.FindCfg("f")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewWideningWorklistSolver[intervals.State](
		cu, cfg, intervals.NewLattice(-1), intervals.NewTransfer(nil, false), Forward,
	).Solve(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

// blockSet is a set of block indices, used to check which blocks lie on the
// way to an exit.
type blockSet uint64

type blockSets struct{}

func (blockSets) Bottom() blockSet                   { return 0 }
func (blockSets) Join(a, b blockSet) blockSet        { return a | b }
func (blockSets) Leq(a, b blockSet) bool             { return a&^b == 0 }
func (blockSets) Widen(prev, next blockSet) blockSet { return prev | next }

func members(s blockSet) []int {
	var idxs []int
	for s != 0 {
		idx := bits.TrailingZeros64(uint64(s))
		idxs = append(idxs, idx)
		s &^= 1 << idx
	}
	return idxs
}

func TestBackwardDirection(t *testing.T) {
	cu := compile(t, `
fun f(a: Int): Int {
    let x = 0;
    if (a > 0) {
        x = 1;
    } else {
        return 2;
    }
    return x;
}`)
	cfg, ok := cu.FindCfg("f")
	require.True(t, ok)

	visit := transfer.Func[blockSet](func(in blockSet, block *ir.BasicBlock, _ ast.Stmt) blockSet {
		return in | 1<<block.Idx
	})
	res, err := NewWideningWorklistSolver[blockSet](cu, cfg, blockSets{}, visit, Backward).
		Solve(context.Background())
	require.NoError(t, err)

	// bb0 let, bb1 if, bb2 x = 1, bb3 return 2, bb4 return x
	tests := []struct {
		idx  int
		want []int
	}{
		{4, []int{4}},
		{3, []int{3}},
		{2, []int{2, 4}},
		{1, []int{1, 2, 3, 4}},
		{0, []int{0, 1, 2, 3, 4}},
	}
	for _, tt := range tests {
		state, ok, err := res.State(tt.idx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, tt.want, members(state), "bb%d", tt.idx)
	}
	assert.Equal(t, "backward", Backward.String())
}
