package ir

import (
	"slices"

	"tactscan/internal/ast"
)

// NodeIdx identifies a call graph node.
type NodeIdx int

// CallGraphNode is a function with its direct effects and resolved calls.
type CallGraphNode struct {
	Idx      NodeIdx
	Name     string
	Contract string
	CfgID    CfgID
	Effects  Effect
	Callees  []NodeIdx
	Callers  []NodeIdx
}

// HasEffect reports whether the function itself has effect e.
func (n *CallGraphNode) HasEffect(e Effect) bool {
	return n.Effects.Has(e)
}

// CallGraph connects the functions of a compilation unit. Calls that cannot
// be resolved to a function with a body, such as stdlib natives, have no edge.
type CallGraph struct {
	nodes  []*CallGraphNode
	byName map[string]NodeIdx
}

// Nodes returns all nodes in CFG order.
func (g *CallGraph) Nodes() []*CallGraphNode {
	return g.nodes
}

func (g *CallGraph) Node(idx NodeIdx) (*CallGraphNode, bool) {
	if idx < 0 || int(idx) >= len(g.nodes) {
		return nil, false
	}
	return g.nodes[idx], true
}

// NodeByName finds the node of a qualified function name.
func (g *CallGraph) NodeByName(name string) (*CallGraphNode, bool) {
	idx, ok := g.byName[name]
	if !ok {
		return nil, false
	}
	return g.nodes[idx], true
}

// Edges returns caller to callee edges ordered by caller, then callee.
func (g *CallGraph) Edges() []Edge {
	var edges []Edge
	for _, n := range g.nodes {
		for _, c := range n.Callees {
			edges = append(edges, Edge{Src: int(n.Idx), Dst: int(c)})
		}
	}
	return edges
}

// ReachesEffect reports whether the function or anything it transitively
// calls has effect e.
func (g *CallGraph) ReachesEffect(idx NodeIdx, e Effect) bool {
	seen := make(map[NodeIdx]bool)
	queue := []NodeIdx{idx}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if seen[cur] {
			continue
		}
		seen[cur] = true
		node, ok := g.Node(cur)
		if !ok {
			continue
		}
		if node.HasEffect(e) {
			return true
		}
		queue = append(queue, node.Callees...)
	}
	return false
}

type callGraphBuilder struct {
	cu        *CompilationUnit
	graph     *CallGraph
	contracts map[string]*ast.Contract
}

func buildCallGraph(cu *CompilationUnit) *CallGraph {
	b := &callGraphBuilder{
		cu:        cu,
		graph:     &CallGraph{byName: make(map[string]NodeIdx)},
		contracts: make(map[string]*ast.Contract),
	}
	for _, c := range cu.Contracts(ForEachOptions{IncludeStdlib: true}) {
		b.contracts[c.Name.Value] = c
	}

	for _, cfg := range cu.cfgs {
		idx := NodeIdx(len(b.graph.nodes))
		b.graph.nodes = append(b.graph.nodes, &CallGraphNode{
			Idx:      idx,
			Name:     cfg.Name,
			Contract: cfg.Contract,
			CfgID:    cfg.ID,
		})
		b.graph.byName[cfg.Name] = idx
	}

	for _, node := range b.graph.nodes {
		b.connect(node)
	}
	return b.graph
}

func (b *callGraphBuilder) connect(node *CallGraphNode) {
	cfg := b.cu.cfgs[node.CfgID]
	for _, block := range cfg.Blocks {
		stmt, ok := b.cu.statements[block.StmtID]
		if !ok {
			continue
		}
		node.Effects |= StatementEffects(stmt)

		for _, root := range ast.StatementExpressions(stmt) {
			ast.ForEachExpression(root, func(e ast.Expr) {
				callee, ok := b.resolve(cfg.Contract, e)
				if !ok || slices.Contains(node.Callees, callee) {
					return
				}
				node.Callees = append(node.Callees, callee)
				b.graph.nodes[callee].Callers = append(b.graph.nodes[callee].Callers, node.Idx)
			})
		}
	}
	slices.Sort(node.Callees)
}

func (b *callGraphBuilder) resolve(contract string, e ast.Expr) (NodeIdx, bool) {
	switch e := e.(type) {
	case *ast.CallExpr:
		idx, ok := b.graph.byName[e.Callee.Value]
		return idx, ok
	case *ast.MethodCallExpr:
		if id, ok := e.Receiver.(*ast.IdentExpr); ok && id.Name == "self" && contract != "" {
			return b.resolveMethod(contract, e.Method.Value, make(map[string]bool))
		}
		// extension functions: `extends fun double(self: Int): Int`
		idx, ok := b.graph.byName[e.Method.Value]
		if !ok {
			return 0, false
		}
		ref := b.cu.functions[b.graph.nodes[idx].CfgID]
		return idx, ref.Decl.HasAttribute("extends")
	}
	return 0, false
}

// resolveMethod looks a method up in the contract and then in its traits.
func (b *callGraphBuilder) resolveMethod(contract, method string, visited map[string]bool) (NodeIdx, bool) {
	if visited[contract] {
		return 0, false
	}
	visited[contract] = true

	if idx, ok := b.graph.byName[contract+"::"+method]; ok {
		return idx, true
	}
	c, ok := b.contracts[contract]
	if !ok {
		return 0, false
	}
	for _, trait := range c.Traits {
		if idx, ok := b.resolveMethod(trait.Value, method, visited); ok {
			return idx, true
		}
	}
	return 0, false
}
