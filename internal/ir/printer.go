package ir

import (
	"fmt"
	"strconv"
	"strings"

	"tactscan/internal/ast"
)

// Printer renders CFGs and the call graph as text or Graphviz DOT.
type Printer struct {
	cu     *CompilationUnit
	indent int
	output strings.Builder
}

// NewPrinter creates a printer resolving statements through cu.
func NewPrinter(cu *CompilationUnit) *Printer {
	return &Printer{cu: cu}
}

func (p *Printer) String() string {
	return p.output.String()
}

func (p *Printer) writeLine(format string, args ...interface{}) {
	p.output.WriteString(strings.Repeat("  ", p.indent))
	p.output.WriteString(fmt.Sprintf(format, args...))
	p.output.WriteString("\n")
}

// StatementLabel renders a statement on one line. Compound statements are
// shown by their header only, since their bodies are blocks of their own.
func StatementLabel(s ast.Stmt) string {
	switch s := s.(type) {
	case *ast.IfStmt:
		return "if " + parenthesized(s.Cond)
	case *ast.WhileStmt:
		return "while " + parenthesized(s.Cond)
	case *ast.RepeatStmt:
		return "repeat " + parenthesized(s.Count)
	case *ast.UntilStmt:
		return "until " + parenthesized(s.Cond)
	case *ast.TryStmt:
		return "try"
	case *ast.ForEachStmt:
		return fmt.Sprintf("foreach (%s, %s in %s)", s.Key.Value, s.Value.Value, s.Map)
	case *ast.BlockStmt:
		return "{ }"
	}
	return s.String()
}

// parenthesized wraps e in parentheses unless its rendering already is.
func parenthesized(e ast.Expr) string {
	if _, ok := e.(*ast.BinaryExpr); ok {
		return e.String()
	}
	return "(" + e.String() + ")"
}

func (p *Printer) blockLabel(cfg *Cfg, block *BasicBlock) (string, error) {
	stmt, err := p.cu.Statement(block.StmtID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", cfg.Name, err)
	}
	return StatementLabel(stmt), nil
}

// PrintCfg writes one CFG as an indented listing:
//
//	Counter::inc (receiver)
//	  bb0: let x = 1;  -> bb1
//	  bb1: return x;  [exit]
func (p *Printer) PrintCfg(cfg *Cfg) error {
	p.writeLine("%s (%s)", cfg.Name, cfg.Kind)
	p.indent++
	defer func() { p.indent-- }()

	if len(cfg.Blocks) == 0 {
		p.writeLine("<empty>")
		return nil
	}
	for _, block := range cfg.Blocks {
		label, err := p.blockLabel(cfg, block)
		if err != nil {
			return err
		}

		line := fmt.Sprintf("bb%d: %s", block.Idx, label)
		if succs := cfg.Successors(block.Idx); len(succs) > 0 {
			targets := make([]string, len(succs))
			for i, s := range succs {
				targets[i] = fmt.Sprintf("bb%d", s)
			}
			line += "  -> " + strings.Join(targets, ", ")
		}
		if cfg.IsExit(block.Idx) {
			line += "  [exit]"
		}
		p.writeLine("%s", line)
	}
	return nil
}

// PrintCfgDot writes the CFGs as one DOT digraph with a cluster per function.
func (p *Printer) PrintCfgDot(cfgs []*Cfg) error {
	p.writeLine("digraph \"CFG\" {")
	p.indent++
	p.writeLine("node [shape=box];")

	for _, cfg := range cfgs {
		p.writeLine("subgraph \"cluster_%d\" {", cfg.ID)
		p.indent++
		p.writeLine("label=%s;", strconv.Quote(cfg.Name))

		for _, block := range cfg.Blocks {
			label, err := p.blockLabel(cfg, block)
			if err != nil {
				return err
			}
			attrs := ""
			if cfg.IsExit(block.Idx) {
				attrs = ", style=bold"
			}
			p.writeLine("\"%d_%d\" [label=%s%s];", cfg.ID, block.Idx, strconv.Quote(label), attrs)
		}
		for _, edge := range cfg.Edges() {
			p.writeLine("\"%d_%d\" -> \"%d_%d\";", cfg.ID, edge.Src, cfg.ID, edge.Dst)
		}

		p.indent--
		p.writeLine("}")
	}

	p.indent--
	p.writeLine("}")
	return nil
}

// PrintCallGraph writes the call graph as a listing of nodes with their
// effects and callees.
func (p *Printer) PrintCallGraph(g *CallGraph) {
	for _, node := range g.Nodes() {
		p.writeLine("%s [%s]", node.Name, node.Effects)
		p.indent++
		for _, c := range node.Callees {
			callee, _ := g.Node(c)
			p.writeLine("-> %s", callee.Name)
		}
		p.indent--
	}
}

// PrintCallGraphDot writes the call graph as a DOT digraph.
func (p *Printer) PrintCallGraphDot(g *CallGraph) {
	p.writeLine("digraph \"CallGraph\" {")
	p.indent++
	p.writeLine("node [shape=box, style=rounded];")
	for _, node := range g.Nodes() {
		label := node.Name
		if node.Effects != 0 {
			label += "\n" + node.Effects.String()
		}
		p.writeLine("\"%d\" [label=%s];", node.Idx, strconv.Quote(label))
	}
	for _, edge := range g.Edges() {
		p.writeLine("\"%d\" -> \"%d\";", edge.Src, edge.Dst)
	}
	p.indent--
	p.writeLine("}")
}
