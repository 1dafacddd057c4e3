package ir

import (
	"slices"

	"tactscan/internal/ast"
	"tactscan/internal/stdlib"
)

// entry stands for the function entry in predecessor lists.
const entry = -1

// cfgBuilder lowers a function body into a Cfg.
type cfgBuilder struct {
	cfg   *Cfg
	stmts map[ast.NodeID]ast.Stmt
	exits []int
}

// BuildCfg builds the control-flow graph of fn. The statement of every block
// is recorded in stmts by ID when stmts is not nil.
func BuildCfg(id CfgID, owner *ast.Contract, fn *ast.Function, origin ast.Origin, stmts map[ast.NodeID]ast.Stmt) *Cfg {
	if stmts == nil {
		stmts = make(map[ast.NodeID]ast.Stmt)
	}
	b := &cfgBuilder{
		cfg: &Cfg{
			ID:     id,
			Name:   FunctionName(owner, fn),
			Kind:   kindOf(owner, fn),
			Origin: origin,
			FuncID: fn.ID,
			Entry:  entry,
		},
		stmts: stmts,
	}
	if owner != nil {
		b.cfg.Contract = owner.Name.Value
	}

	var exits []int
	for _, idx := range b.lower(fn.Body, []int{entry}) {
		if idx != entry {
			exits = append(exits, idx)
		}
	}
	exits = append(exits, b.exits...)
	slices.Sort(exits)
	b.cfg.Exits = slices.Compact(exits)
	return b.cfg
}

func kindOf(owner *ast.Contract, fn *ast.Function) Kind {
	switch {
	case fn.Kind.IsReceiver():
		return KindReceiver
	case fn.Kind == ast.FunctionGetter:
		return KindGetter
	case fn.Kind == ast.FunctionInit:
		return KindInit
	case owner != nil:
		return KindMethod
	}
	return KindFunction
}

// lower appends blocks for stmts, connecting preds to the first of them, and
// returns the blocks whose control falls through past the last statement.
func (b *cfgBuilder) lower(stmts []ast.Stmt, preds []int) []int {
	for _, stmt := range stmts {
		preds = b.lowerStmt(stmt, preds)
	}
	return preds
}

func (b *cfgBuilder) newBlock(stmt ast.Stmt, preds []int) int {
	idx := b.cfg.addBlock(stmt)
	b.stmts[stmt.NodeID()] = stmt
	for _, p := range preds {
		if p == entry {
			if b.cfg.Entry == entry {
				b.cfg.Entry = idx
			}
			continue
		}
		b.cfg.addEdge(p, idx)
	}
	return idx
}

func (b *cfgBuilder) exit(idx int) []int {
	b.cfg.Blocks[idx].Exit = true
	b.exits = append(b.exits, idx)
	return nil
}

func (b *cfgBuilder) lowerStmt(stmt ast.Stmt, preds []int) []int {
	if s, ok := stmt.(*ast.UntilStmt); ok && len(s.Body) > 0 {
		// The header block stands for the condition, which is evaluated
		// after each run of the body.
		idx := b.newBlock(stmt, nil)
		bodyStart := len(b.cfg.Blocks)
		for _, out := range b.lower(s.Body, preds) {
			b.cfg.addEdge(out, idx)
		}
		b.cfg.addEdge(idx, bodyStart)
		return []int{idx}
	}

	idx := b.newBlock(stmt, preds)

	switch s := stmt.(type) {
	case *ast.ReturnStmt:
		return b.exit(idx)

	case *ast.ExprStmt:
		if call, ok := s.Expr.(*ast.CallExpr); ok && stdlib.IsThrowFunction(call.Callee.Value) {
			return b.exit(idx)
		}

	case *ast.IfStmt:
		outs := b.lower(s.Then, []int{idx})
		if s.Else == nil {
			return append(outs, idx)
		}
		return append(outs, b.lower(s.Else, []int{idx})...)

	case *ast.WhileStmt:
		return b.loop(idx, s.Body)
	case *ast.RepeatStmt:
		return b.loop(idx, s.Body)
	case *ast.ForEachStmt:
		return b.loop(idx, s.Body)

	case *ast.TryStmt:
		bodyStart := len(b.cfg.Blocks)
		outs := b.lower(s.Body, []int{idx})
		if !s.HasCatch {
			// An uncaught throw inside try only ends the try block.
			return append(outs, b.thrownFrom(idx, bodyStart)...)
		}
		return append(outs, b.lower(s.Catch, b.thrownFrom(idx, bodyStart))...)

	case *ast.BlockStmt:
		return b.lower(s.Body, []int{idx})
	}

	return []int{idx}
}

// loop wires a loop header: the body runs zero or more times and control
// leaves through the header.
func (b *cfgBuilder) loop(header int, body []ast.Stmt) []int {
	for _, out := range b.lower(body, []int{header}) {
		b.cfg.addEdge(out, header)
	}
	return []int{header}
}

// thrownFrom returns the blocks from which an exception can reach the catch
// handler of a try statement: the header and every block of its body.
// Throwing blocks inside the body no longer leave the function.
func (b *cfgBuilder) thrownFrom(header, bodyStart int) []int {
	from := []int{header}
	for idx := bodyStart; idx < len(b.cfg.Blocks); idx++ {
		from = append(from, idx)
		if b.cfg.Blocks[idx].Exit && b.isThrow(idx) {
			b.cfg.Blocks[idx].Exit = false
			b.exits = slices.DeleteFunc(b.exits, func(e int) bool { return e == idx })
		}
	}
	return from
}

func (b *cfgBuilder) isThrow(idx int) bool {
	stmt, ok := b.stmts[b.cfg.Blocks[idx].StmtID]
	if !ok {
		return false
	}
	_, isReturn := stmt.(*ast.ReturnStmt)
	return !isReturn
}
