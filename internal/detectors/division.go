package detectors

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"tactscan/internal/ast"
	"tactscan/internal/consteval"
	"tactscan/internal/intervals"
	"tactscan/internal/ir"
	"tactscan/internal/numbers"
	"tactscan/internal/solver"
	"tactscan/internal/warnings"
)

// DivisionByZero finds divisions and modulo operations whose divisor may be
// zero. It runs the interval analysis on every function and checks each
// divisor against the state before its statement.
//
//	fun f(a: Int, b: Int): Int {
//	    let c = b;
//	    return a / c; // c is in [-∞, +∞]
//	}
//
// Guarding the divisor with require(c > 0, "...") or require(c != 0, "...")
// on a non-negative c removes the warning.
type DivisionByZero struct {
	base
}

func NewDivisionByZero(opts Options) *DivisionByZero {
	return &DivisionByZero{base{
		id:       "DivisionByZero",
		severity: warnings.High,
		category: warnings.Security,
		opts:     opts,
	}}
}

// Check analyzes functions in parallel. Warnings are reported in function
// order, then block order, regardless of scheduling.
func (d *DivisionByZero) Check(ctx context.Context, cu *ir.CompilationUnit) ([]warnings.Warning, error) {
	cfgs := d.opts.cfgs(cu)
	results := make([][]warnings.Warning, len(cfgs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.opts.workers())
	for i, cfg := range cfgs {
		g.Go(func() error {
			ws, err := d.checkCfg(ctx, cu, cfg)
			if err != nil {
				return fmt.Errorf("%s: %w", d.id, err)
			}
			results[i] = ws
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return slices.Concat(results...), nil
}

func (d *DivisionByZero) checkCfg(ctx context.Context, cu *ir.CompilationUnit, cfg *ir.Cfg) ([]warnings.Warning, error) {
	ref, err := cu.Function(cfg.ID)
	if err != nil {
		return nil, err
	}

	tr := intervals.NewTransfer(cu.Constants(), d.opts.Narrowing)
	res, err := solver.NewWideningWorklistSolver[intervals.State](
		cu, cfg, intervals.NewLattice(d.opts.WideningThreshold), tr, solver.Forward,
	).WithSeed(intervals.Seed(ref.Decl)).Solve(ctx)
	if err != nil {
		return nil, err
	}

	c := checker{
		DivisionByZero: d,
		eval:           consteval.NewEvaluator(cu.Constants()),
	}
	for _, block := range cfg.Blocks {
		state, ok, err := res.InState(block.Idx)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		stmt, err := cu.Statement(block.StmtID)
		if err != nil {
			return nil, err
		}
		c.checkStatement(stmt, state)
	}

	log.Debugf("%s: %d blocks, %d division warnings", cfg.Name, len(cfg.Blocks), len(c.found))
	return c.found, nil
}

type checker struct {
	*DivisionByZero
	eval  *consteval.Evaluator
	found []warnings.Warning
}

func (c *checker) checkStatement(stmt ast.Stmt, state intervals.State) {
	for _, e := range ast.FindInExpressions(stmt, isDivision) {
		div := e.(*ast.BinaryExpr)
		c.checkDivisor(div.Right, div.Pos, state)
	}
	if s, ok := stmt.(*ast.AugmentedAssignStmt); ok && (s.Op == "/" || s.Op == "%") {
		c.checkDivisor(s.Value, s.Pos, state)
	}
}

func isDivision(e ast.Expr) bool {
	b, ok := e.(*ast.BinaryExpr)
	return ok && (b.Op == "/" || b.Op == "%")
}

func (c *checker) checkDivisor(divisor ast.Expr, pos ast.Position, state intervals.State) {
	if id, ok := divisor.(*ast.IdentExpr); ok {
		if v, ok := state.Get(id.Name); ok {
			c.checkVariable(id.Name, v, pos)
			return
		}
	}

	// Literals and constant expressions.
	if n, ok := c.eval.Number(divisor); ok && n.Sign() == 0 {
		c.found = append(c.found, c.makeWarning(warnings.Warning{
			Message:          "Division by zero",
			Position:         pos,
			ExtraDescription: "This will cause a runtime error",
			Suggestion:       "Check that the divisor is not zero before dividing",
		}))
	}
}

func (c *checker) checkVariable(name string, v numbers.Interval, pos ast.Position) {
	if !v.ContainsZero() {
		return
	}
	c.found = append(c.found, c.makeWarning(warnings.Warning{
		Message:          fmt.Sprintf(`Potential division by zero: variable "%s" could be zero`, name),
		Position:         pos,
		ExtraDescription: "Variable value range: " + v.String(),
		Suggestion:       "Add a check to ensure the divisor is not zero",
	}))
}
