// Package solver computes fixpoints of dataflow analyses over control-flow
// graphs.
package solver

import (
	"context"
	"fmt"
	"slices"

	"github.com/tliron/commonlog"

	"tactscan/internal/ast"
	"tactscan/internal/errors"
	"tactscan/internal/ir"
	"tactscan/internal/lattice"
	"tactscan/internal/transfer"
)

var log = commonlog.GetLogger("tactscan.solver")

// Direction selects whether states flow along or against CFG edges.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// StatementSource resolves the statement of a basic block. A failed lookup
// is expected to be an internal error.
type StatementSource interface {
	Statement(id ast.NodeID) (ast.Stmt, error)
}

// WideningWorklistSolver runs a dataflow analysis to a fixpoint.
//
// Blocks are processed first in, first out. The state entering a block is
// the join of the states leaving its predecessors (successors when running
// backward). When a revisited block produces a state that is not below the
// stored one, the stored state is widened with it, so the computation ends
// for every lattice whose widening has no infinite ascending chains.
// Lattices implementing lattice.SiteWidening are widened with the block
// index as site.
type WideningWorklistSolver[S any] struct {
	stmts     StatementSource
	cfg       *ir.Cfg
	lattice   lattice.WideningLattice[S]
	sites     lattice.SiteWidening[S]
	transfer  transfer.Transfer[S]
	direction Direction

	seed    S
	hasSeed bool
}

// NewWideningWorklistSolver creates a solver for one run of an analysis.
func NewWideningWorklistSolver[S any](
	stmts StatementSource,
	cfg *ir.Cfg,
	lat lattice.WideningLattice[S],
	tr transfer.Transfer[S],
	direction Direction,
) *WideningWorklistSolver[S] {
	s := &WideningWorklistSolver[S]{
		stmts:     stmts,
		cfg:       cfg,
		lattice:   lat,
		transfer:  tr,
		direction: direction,
	}
	s.sites, _ = lat.(lattice.SiteWidening[S])
	return s
}

func (s *WideningWorklistSolver[S]) widen(idx int, old, new S) S {
	if s.sites != nil {
		return s.sites.WidenAt(idx, old, new)
	}
	return s.lattice.Widen(old, new)
}

// WithSeed sets the state entering the start blocks: the entry block when
// running forward, the exit blocks when running backward. Without a seed
// the start blocks begin at bottom.
func (s *WideningWorklistSolver[S]) WithSeed(seed S) *WideningWorklistSolver[S] {
	s.seed = seed
	s.hasSeed = true
	return s
}

func (s *WideningWorklistSolver[S]) flowPreds(idx int) []int {
	if s.direction == Backward {
		return s.cfg.Successors(idx)
	}
	return s.cfg.Predecessors(idx)
}

func (s *WideningWorklistSolver[S]) flowSuccs(idx int) []int {
	if s.direction == Backward {
		return s.cfg.Predecessors(idx)
	}
	return s.cfg.Successors(idx)
}

func (s *WideningWorklistSolver[S]) starts() []int {
	if s.direction == Forward {
		if s.cfg.Entry < 0 {
			return nil
		}
		return []int{s.cfg.Entry}
	}
	if len(s.cfg.Exits) > 0 {
		return slices.Clone(s.cfg.Exits)
	}
	// a function that never returns, e.g. a single infinite loop
	starts := make([]int, len(s.cfg.Blocks))
	for i := range starts {
		starts[i] = i
	}
	return starts
}

// Solve runs the analysis. It fails only when ctx is cancelled or a block
// refers to a statement the source does not know, which is an internal error.
func (s *WideningWorklistSolver[S]) Solve(ctx context.Context) (*Results[S], error) {
	n := len(s.cfg.Blocks)
	res := &Results[S]{
		cfg:     s.cfg,
		in:      make([]S, n),
		out:     make([]S, n),
		visited: make([]bool, n),
	}

	isStart := make([]bool, n)
	pending := make([]bool, n)
	var worklist []int
	for _, idx := range s.starts() {
		isStart[idx] = true
		pending[idx] = true
		worklist = append(worklist, idx)
	}

	for len(worklist) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		idx := worklist[0]
		worklist = worklist[1:]
		pending[idx] = false
		res.Iterations++

		block := s.cfg.Blocks[idx]
		stmt, err := s.stmts.Statement(block.StmtID)
		if err != nil {
			return nil, fmt.Errorf("%s, bb%d: %w", s.cfg.Name, idx, err)
		}

		in := s.lattice.Bottom()
		if res.visited[idx] {
			in = res.in[idx]
		}
		if isStart[idx] && s.hasSeed {
			in = s.lattice.Join(in, s.seed)
		}
		for _, p := range s.flowPreds(idx) {
			if res.visited[p] {
				in = s.lattice.Join(in, res.out[p])
			}
		}

		out := s.transfer.Transfer(in, block, stmt)
		res.in[idx] = in
		if res.visited[idx] {
			if s.lattice.Leq(out, res.out[idx]) {
				continue
			}
			out = s.widen(idx, res.out[idx], out)
		}
		res.out[idx] = out
		res.visited[idx] = true

		succs := slices.Sorted(slices.Values(s.flowSuccs(idx)))
		for _, succ := range succs {
			if !pending[succ] {
				pending[succ] = true
				worklist = append(worklist, succ)
			}
		}
	}

	log.Debugf("%s: %s fixpoint after %d iterations over %d blocks",
		s.cfg.Name, s.direction, res.Iterations, n)
	return res, nil
}

// Results holds the stable states of every block, indexed by block index.
type Results[S any] struct {
	cfg     *ir.Cfg
	in      []S
	out     []S
	visited []bool

	// Iterations counts processed worklist entries.
	Iterations int
}

func (r *Results[S]) check(idx int) error {
	if idx < 0 || idx >= len(r.visited) {
		return errors.Internalf("%s: no basic block %d", r.cfg.Name, idx)
	}
	return nil
}

// State returns the state after the block's statement. The flag is false
// for blocks the analysis never reached.
func (r *Results[S]) State(idx int) (S, bool, error) {
	var zero S
	if err := r.check(idx); err != nil {
		return zero, false, err
	}
	if !r.visited[idx] {
		return zero, false, nil
	}
	return r.out[idx], true, nil
}

// InState returns the state before the block's statement.
func (r *Results[S]) InState(idx int) (S, bool, error) {
	var zero S
	if err := r.check(idx); err != nil {
		return zero, false, err
	}
	if !r.visited[idx] {
		return zero, false, nil
	}
	return r.in[idx], true, nil
}

// Reached reports whether the analysis reached the block.
func (r *Results[S]) Reached(idx int) bool {
	return idx >= 0 && idx < len(r.visited) && r.visited[idx]
}
