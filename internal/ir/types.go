package ir

import (
	"slices"

	"tactscan/internal/ast"
)

// CfgID identifies a control-flow graph within a compilation unit.
type CfgID int

// Kind classifies the function a CFG was built from.
type Kind int

const (
	KindFunction Kind = iota // top-level function
	KindMethod               // contract or trait function
	KindGetter
	KindReceiver
	KindInit
)

func (k Kind) String() string {
	switch k {
	case KindMethod:
		return "method"
	case KindGetter:
		return "getter"
	case KindReceiver:
		return "receiver"
	case KindInit:
		return "init"
	}
	return "function"
}

// BasicBlock holds exactly one statement. Compound statements such as if or
// while get a block for their header; their bodies are blocks of their own.
type BasicBlock struct {
	Idx    int
	StmtID ast.NodeID
	// Exit marks blocks that leave the function: return statements and
	// calls that always throw.
	Exit bool
}

// Edge is a control-flow edge between two block indices.
type Edge struct {
	Src, Dst int
}

// Cfg is the control-flow graph of one function. Blocks are numbered in
// source order and stored at their index.
type Cfg struct {
	ID       CfgID
	Name     string
	Contract string // empty for top-level functions
	Kind     Kind
	Origin   ast.Origin
	FuncID   ast.NodeID

	Blocks []*BasicBlock
	Entry  int // -1 when the function has no statements
	Exits  []int

	succs [][]int
	preds [][]int
}

// Block returns the block at idx.
func (c *Cfg) Block(idx int) (*BasicBlock, bool) {
	if idx < 0 || idx >= len(c.Blocks) {
		return nil, false
	}
	return c.Blocks[idx], true
}

// Successors returns the indices of the blocks control may flow to from idx.
func (c *Cfg) Successors(idx int) []int {
	if idx < 0 || idx >= len(c.succs) {
		return nil
	}
	return c.succs[idx]
}

// Predecessors returns the indices of the blocks control may flow from into idx.
func (c *Cfg) Predecessors(idx int) []int {
	if idx < 0 || idx >= len(c.preds) {
		return nil
	}
	return c.preds[idx]
}

// Edges returns all edges ordered by source, then destination.
func (c *Cfg) Edges() []Edge {
	var edges []Edge
	for src, dsts := range c.succs {
		for _, dst := range slices.Sorted(slices.Values(dsts)) {
			edges = append(edges, Edge{Src: src, Dst: dst})
		}
	}
	return edges
}

// IsExit reports whether idx is one of the function's exit blocks.
func (c *Cfg) IsExit(idx int) bool {
	return slices.Contains(c.Exits, idx)
}

func (c *Cfg) addBlock(stmt ast.Stmt) int {
	idx := len(c.Blocks)
	c.Blocks = append(c.Blocks, &BasicBlock{Idx: idx, StmtID: stmt.NodeID()})
	c.succs = append(c.succs, nil)
	c.preds = append(c.preds, nil)
	return idx
}

func (c *Cfg) addEdge(src, dst int) {
	if slices.Contains(c.succs[src], dst) {
		return
	}
	c.succs[src] = append(c.succs[src], dst)
	c.preds[dst] = append(c.preds[dst], src)
}
