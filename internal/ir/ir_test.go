package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tactscan/internal/ast"
	"tactscan/internal/errors"
	"tactscan/internal/parser"
)

func parseFile(t *testing.T, src string) *ast.File {
	t.Helper()
	file, parseErrs, scanErrs := parser.ParseSource("test.tact", src)
	require.Empty(t, parseErrs)
	require.Empty(t, scanErrs)
	return file
}

func unit(t *testing.T, src string) *CompilationUnit {
	t.Helper()
	return NewCompilationUnit("test", []*ast.File{parseFile(t, src)})
}

func cfgOf(t *testing.T, cu *CompilationUnit, name string) *Cfg {
	t.Helper()
	cfg, ok := cu.FindCfg(name)
	require.True(t, ok, "cfg %s", name)
	return cfg
}

func TestStraightLineCfg(t *testing.T) {
	cu := unit(t, `
fun f(): Int {
    let x = 5;
    let y = x + 3;
    return y;
}`)
	cfg := cfgOf(t, cu, "f")

	assert.Equal(t, KindFunction, cfg.Kind)
	assert.Equal(t, 0, cfg.Entry)
	require.Len(t, cfg.Blocks, 3)
	assert.Equal(t, []Edge{{0, 1}, {1, 2}}, cfg.Edges())
	assert.Equal(t, []int{2}, cfg.Exits)
	assert.True(t, cfg.Blocks[2].Exit)

	for i, block := range cfg.Blocks {
		assert.Equal(t, i, block.Idx)
		_, err := cu.Statement(block.StmtID)
		assert.NoError(t, err)
	}
}

func TestIfElseCfg(t *testing.T) {
	cu := unit(t, `
fun g(a: Int): Int {
    let x = 0;
    if (a > 0) {
        x = 1;
    } else {
        x = 2;
    }
    return x;
}`)
	cfg := cfgOf(t, cu, "g")

	require.Len(t, cfg.Blocks, 5)
	assert.Equal(t, []Edge{{0, 1}, {1, 2}, {1, 3}, {2, 4}, {3, 4}}, cfg.Edges())
	assert.Equal(t, []int{2, 3}, cfg.Predecessors(4))
	assert.Equal(t, []int{4}, cfg.Exits)
}

func TestIfWithoutElseFallsThrough(t *testing.T) {
	cu := unit(t, `
fun g(a: Int) {
    if (a > 0) {
        a = 1;
    }
    a = 2;
}`)
	cfg := cfgOf(t, cu, "g")

	assert.Equal(t, []Edge{{0, 1}, {0, 2}, {1, 2}}, cfg.Edges())
	assert.Equal(t, []int{2}, cfg.Exits)
}

func TestWhileCfgHasBackEdge(t *testing.T) {
	cu := unit(t, `
fun h(): Int {
    let i = 0;
    while (i < 10) {
        i = i + 1;
    }
    return i;
}`)
	cfg := cfgOf(t, cu, "h")

	require.Len(t, cfg.Blocks, 4)
	assert.Equal(t, []Edge{{0, 1}, {1, 2}, {1, 3}, {2, 1}}, cfg.Edges())
	assert.Equal(t, []int{0, 2}, cfg.Predecessors(1))
	assert.Equal(t, []int{2, 3}, cfg.Successors(1))
}

func TestUntilCfgRunsBodyFirst(t *testing.T) {
	cu := unit(t, `
fun u() {
    let i = 3;
    do {
        i -= 1;
    } until (i == 0);
}`)
	cfg := cfgOf(t, cu, "u")

	// bb1 is the until condition, bb2 the body
	assert.Equal(t, []Edge{{0, 2}, {1, 2}, {2, 1}}, cfg.Edges())
	assert.Equal(t, []int{1}, cfg.Exits)
}

func TestThrowEndsPath(t *testing.T) {
	cu := unit(t, `
fun d(x: Int): Int {
    if (x == 0) {
        throw(1);
    }
    return 10 / x;
}`)
	cfg := cfgOf(t, cu, "d")

	assert.Equal(t, []Edge{{0, 1}, {0, 2}}, cfg.Edges())
	assert.Equal(t, []int{1, 2}, cfg.Exits)
}

func TestTryCatchCfg(t *testing.T) {
	cu := unit(t, `
fun c() {
    try {
        throw(7);
    } catch (e) {
        let z = 1;
    }
}`)
	cfg := cfgOf(t, cu, "c")

	assert.Equal(t, []Edge{{0, 1}, {0, 2}, {1, 2}}, cfg.Edges())
	assert.False(t, cfg.Blocks[1].Exit, "a caught throw does not leave the function")
	assert.Equal(t, []int{2}, cfg.Exits)
}

func TestEmptyFunctionCfg(t *testing.T) {
	cu := unit(t, `
contract C {
    receive() {}
    abstract fun todo();
}`)
	require.Len(t, cu.Cfgs(), 1, "functions without a body get no cfg")

	cfg := cu.Cfgs()[0]
	assert.Equal(t, "C::receive()", cfg.Name)
	assert.Equal(t, KindReceiver, cfg.Kind)
	assert.Equal(t, -1, cfg.Entry)
	assert.Empty(t, cfg.Exits)
	_, ok := cfg.Block(0)
	assert.False(t, ok)
}

func TestCompilationUnitLookups(t *testing.T) {
	cu := unit(t, `
const LIMIT: Int = 10;

contract Counter {
    const STEP: Int = 2;
    value: Int = 0;

    init() {}

    receive("inc") {
        self.value += STEP;
    }

    receive(msg: Deploy) {}

    get fun value(): Int {
        return self.value;
    }
}`)

	var names []string
	cu.ForEachCFG(ForEachOptions{}, func(cfg *Cfg) {
		names = append(names, cfg.Name)
	})
	assert.Equal(t, []string{
		"Counter::init",
		`Counter::receive("inc")`,
		"Counter::receive(Deploy)",
		"Counter::value",
	}, names)

	getter := cfgOf(t, cu, "Counter::value")
	assert.Equal(t, KindGetter, getter.Kind)
	assert.Equal(t, "Counter", getter.Contract)

	ref, err := cu.Function(getter.ID)
	require.NoError(t, err)
	assert.Equal(t, "value", ref.Decl.Name.Value)
	assert.Equal(t, "Counter", ref.Contract.Name.Value)

	_, err = cu.Function(CfgID(42))
	assert.True(t, errors.IsInternal(err))

	_, err = cu.Statement(ast.NodeID(1 << 30))
	require.Error(t, err)
	assert.True(t, errors.IsInternal(err))

	assert.Contains(t, cu.Constants(), "LIMIT")
	assert.Contains(t, cu.Constants(), "Counter::STEP")
}

func TestForEachCFGSkipsStdlib(t *testing.T) {
	user := parseFile(t, `fun mine() { let a = 1; }`)
	std := parseFile(t, `fun theirs() { let b = 2; }`)
	std.Origin = ast.OriginStdlib

	cu := NewCompilationUnit("test", []*ast.File{user, std})

	count := 0
	cu.ForEachCFG(ForEachOptions{}, func(*Cfg) { count++ })
	assert.Equal(t, 1, count)

	count = 0
	cu.ForEachCFG(ForEachOptions{IncludeStdlib: true}, func(*Cfg) { count++ })
	assert.Equal(t, 2, count)
}
