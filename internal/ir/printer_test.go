package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const loopSource = `
fun h(): Int {
    let i = 0;
    while (i < 10) {
        i = i + 1;
    }
    return i;
}`

func TestPrintCfg(t *testing.T) {
	cu := unit(t, loopSource)
	p := NewPrinter(cu)
	require.NoError(t, p.PrintCfg(cfgOf(t, cu, "h")))

	want := `h (function)
  bb0: let i = 0;  -> bb1
  bb1: while (i < 10)  -> bb2, bb3
  bb2: i = (i + 1);  -> bb1
  bb3: return i;  [exit]
`
	assert.Equal(t, want, p.String())
}

func TestPrintCfgDot(t *testing.T) {
	cu := unit(t, loopSource)
	p := NewPrinter(cu)
	require.NoError(t, p.PrintCfgDot(cu.Cfgs()))

	out := p.String()
	assert.Contains(t, out, `digraph "CFG" {`)
	assert.Contains(t, out, `label="h";`)
	assert.Contains(t, out, `"0_1" [label="while (i < 10)"];`)
	assert.Contains(t, out, `"0_3" [label="return i;", style=bold];`)
	assert.Contains(t, out, `"0_2" -> "0_1";`)
}

func TestPrintCallGraph(t *testing.T) {
	cu := unit(t, walletSource)

	p := NewPrinter(cu)
	p.PrintCallGraph(cu.CallGraph)
	assert.Contains(t, p.String(), "Wallet::pay [send|state-read]\n  -> fee\n")

	p = NewPrinter(cu)
	p.PrintCallGraphDot(cu.CallGraph)
	assert.Contains(t, p.String(), `digraph "CallGraph" {`)
	assert.Contains(t, p.String(), `[label="fee"];`)
}
