// Package transfer defines how an analysis describes the effect of a single
// statement on its abstract state.
package transfer

import (
	"tactscan/internal/ast"
	"tactscan/internal/ir"
)

// Transfer maps the abstract state before a statement to the state after it.
// Implementations must not modify in.
type Transfer[S any] interface {
	Transfer(in S, block *ir.BasicBlock, stmt ast.Stmt) S
}

// Func adapts an ordinary function to the Transfer interface.
type Func[S any] func(in S, block *ir.BasicBlock, stmt ast.Stmt) S

func (f Func[S]) Transfer(in S, block *ir.BasicBlock, stmt ast.Stmt) S {
	return f(in, block, stmt)
}

// Identity is the transfer function of an analysis no statement affects.
func Identity[S any]() Func[S] {
	return func(in S, _ *ir.BasicBlock, _ ast.Stmt) S { return in }
}
