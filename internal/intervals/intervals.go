// Package intervals is the interval analysis: it tracks, for every local
// variable, a range of integers that contains all of its possible values.
package intervals

import (
	"math/big"

	"tactscan/internal/ast"
	"tactscan/internal/builtins"
	"tactscan/internal/consteval"
	"tactscan/internal/ir"
	"tactscan/internal/lattice"
	"tactscan/internal/numbers"
	"tactscan/internal/stdlib"
	"tactscan/internal/transfer"
)

// State maps variable names to their ranges. A variable that is absent has
// not been assigned on any path reaching the program point.
type State = lattice.Map[string, numbers.Interval]

// Lattice is the lattice of States.
type Lattice = lattice.MapLattice[string, numbers.Interval]

// NewLattice creates the lattice for one analysis run. A negative threshold
// selects lattice.DefaultWideningThreshold.
func NewLattice(threshold int) *Lattice {
	return lattice.NewMapLattice[string, numbers.Interval](lattice.Interval{}, threshold)
}

// Seed returns the state on entry of fn: integer parameters may hold any
// value. Optional parameters are left out.
func Seed(fn *ast.Function) State {
	state := lattice.EmptyMap[string, numbers.Interval]()
	for _, p := range fn.Params {
		if p.Type != nil && !p.Type.Optional && builtins.IsIntegerType(p.Type.Name) {
			state = state.Set(p.Name.Value, numbers.Top())
		}
	}
	return state
}

// Transfer evaluates assignments over intervals and, when narrowing is
// enabled, restricts variables by the conditions of require-like calls.
type Transfer struct {
	eval      *consteval.Evaluator
	narrowing bool
}

var _ transfer.Transfer[State] = (*Transfer)(nil)

// NewTransfer creates the transfer function. Identifiers that are not local
// variables are resolved through constants.
func NewTransfer(constants map[string]ast.Expr, narrowing bool) *Transfer {
	return &Transfer{
		eval:      consteval.NewEvaluator(constants),
		narrowing: narrowing,
	}
}

func (t *Transfer) Transfer(in State, _ *ir.BasicBlock, stmt ast.Stmt) State {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		return in.Set(s.Name.Value, t.Evaluate(s.Value, in))

	case *ast.AssignStmt:
		if id, ok := s.Target.(*ast.IdentExpr); ok {
			return in.Set(id.Name, t.Evaluate(s.Value, in))
		}

	case *ast.AugmentedAssignStmt:
		if id, ok := s.Target.(*ast.IdentExpr); ok {
			return in.Set(id.Name, apply(s.Op, t.Evaluate(id, in), t.Evaluate(s.Value, in)))
		}

	case *ast.ForEachStmt:
		return in.Set(s.Key.Value, numbers.Top()).Set(s.Value.Value, numbers.Top())

	case *ast.TryStmt:
		if s.CatchName != nil {
			return in.Set(s.CatchName.Value, numbers.Top())
		}

	case *ast.ExprStmt:
		if t.narrowing {
			return t.narrowCall(s.Expr, in)
		}
	}
	return in
}

// Evaluate computes the range of e in state in. Anything that is not
// integer arithmetic over literals, variables and constants is Top.
func (t *Transfer) Evaluate(e ast.Expr, in State) numbers.Interval {
	switch e := e.(type) {
	case *ast.NumberExpr:
		return numbers.FromBig(e.Value)

	case *ast.IdentExpr:
		if v, ok := in.Get(e.Name); ok {
			return v
		}
		if n, ok := t.eval.Number(e); ok {
			return numbers.FromBig(n)
		}
		return numbers.Top()

	case *ast.UnaryExpr:
		switch e.Op {
		case "-":
			return t.Evaluate(e.Operand, in).Neg()
		case "+", "!!":
			return t.Evaluate(e.Operand, in)
		}

	case *ast.BinaryExpr:
		return apply(e.Op, t.Evaluate(e.Left, in), t.Evaluate(e.Right, in))
	}
	return numbers.Top()
}

func apply(op string, l, r numbers.Interval) numbers.Interval {
	switch op {
	case "+":
		return l.Plus(r)
	case "-":
		return l.Minus(r)
	case "*":
		return l.Times(r)
	case "/":
		return l.Div(r)
	case "%":
		return l.Mod(r)
	}
	return numbers.Top()
}

// narrowCall handles require(cond, ...), throwUnless(code, cond) and
// throwIf(code, cond): after the call the condition is known to hold, or
// to fail for throwIf.
func (t *Transfer) narrowCall(e ast.Expr, in State) State {
	call, ok := e.(*ast.CallExpr)
	if !ok || !stdlib.IsAssertFunction(call.Callee.Value) {
		return in
	}

	switch call.Callee.Value {
	case "require":
		if len(call.Args) > 0 {
			return t.narrow(call.Args[0], true, in)
		}
	case "throwUnless", "nativeThrowUnless":
		if len(call.Args) > 1 {
			return t.narrow(call.Args[1], true, in)
		}
	case "throwIf", "nativeThrowIf":
		if len(call.Args) > 1 {
			return t.narrow(call.Args[1], false, in)
		}
	}
	return in
}

var negated = map[string]string{
	"==": "!=", "!=": "==",
	"<": ">=", ">=": "<",
	">": "<=", "<=": ">",
}

var mirrored = map[string]string{
	"==": "==", "!=": "!=",
	"<": ">", ">": "<",
	"<=": ">=", ">=": "<=",
}

// narrow restricts in to the states where cond evaluates to holds.
// Conditions other than comparisons of a variable with a constant are
// ignored, which over-approximates.
func (t *Transfer) narrow(cond ast.Expr, holds bool, in State) State {
	switch c := cond.(type) {
	case *ast.UnaryExpr:
		if c.Op == "!" {
			return t.narrow(c.Operand, !holds, in)
		}

	case *ast.BinaryExpr:
		if (c.Op == "&&" && holds) || (c.Op == "||" && !holds) {
			return t.narrow(c.Right, holds, t.narrow(c.Left, holds, in))
		}

		op, ok := negated[c.Op]
		if !ok {
			return in
		}
		if holds {
			op = c.Op
		}

		if id, ok := c.Left.(*ast.IdentExpr); ok {
			if n, ok := t.eval.Number(c.Right); ok {
				return t.restrict(in, id, op, n)
			}
		}
		if id, ok := c.Right.(*ast.IdentExpr); ok {
			if n, ok := t.eval.Number(c.Left); ok {
				return t.restrict(in, id, mirrored[op], n)
			}
		}
	}
	return in
}

// restrict meets the range of id with the values satisfying `id op n`.
// A condition no value satisfies leaves the state unchanged.
func (t *Transfer) restrict(in State, id *ast.IdentExpr, op string, n *big.Int) State {
	if _, local := in.Get(id.Name); !local {
		if _, constant := t.eval.Number(id); constant {
			return in
		}
	}

	current := t.Evaluate(id, in)
	c := numbers.Int(n)
	minus1 := numbers.Int(new(big.Int).Sub(n, big.NewInt(1)))
	plus1 := numbers.Int(new(big.Int).Add(n, big.NewInt(1)))

	var allowed numbers.Interval
	switch op {
	case "==":
		allowed = numbers.NewInterval(c, c)
	case "<":
		allowed = numbers.NewInterval(numbers.NegInf(), minus1)
	case "<=":
		allowed = numbers.NewInterval(numbers.NegInf(), c)
	case ">":
		allowed = numbers.NewInterval(plus1, numbers.PosInf())
	case ">=":
		allowed = numbers.NewInterval(c, numbers.PosInf())
	case "!=":
		switch {
		case numbers.Compare(current.Low(), c) == 0:
			allowed = numbers.NewInterval(plus1, numbers.PosInf())
		case numbers.Compare(current.High(), c) == 0:
			allowed = numbers.NewInterval(numbers.NegInf(), minus1)
		default:
			return in
		}
	default:
		return in
	}

	narrowed := current.Meet(allowed)
	if narrowed.IsBottom() {
		return in
	}
	return in.Set(id.Name, narrowed)
}
