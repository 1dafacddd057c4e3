// Package consteval folds constant expressions with the semantics of the TVM:
// 257-bit signed integers, floor division and floor modulo.
package consteval

import (
	"math/big"

	"tactscan/internal/ast"
	"tactscan/internal/numbers"
)

var (
	minInt = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 256))
	maxInt = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
)

// maxDepth bounds the expansion of constants referring to other constants.
const maxDepth = 32

// Evaluator folds expressions, resolving identifiers through a table of
// constant declarations.
type Evaluator struct {
	constants map[string]ast.Expr
}

// NewEvaluator creates an evaluator that resolves the given constants.
// The map may be nil.
func NewEvaluator(constants map[string]ast.Expr) *Evaluator {
	return &Evaluator{constants: constants}
}

// EvalToNumber folds expr without any constant table.
func EvalToNumber(expr ast.Expr) (*big.Int, bool) {
	return NewEvaluator(nil).Number(expr)
}

// Number folds expr to an integer. It reports false when expr is not
// statically reducible, including when evaluation would fail at runtime
// (division by zero, overflow of the 257-bit range).
func (ev *Evaluator) Number(expr ast.Expr) (*big.Int, bool) {
	return ev.number(expr, 0)
}

func (ev *Evaluator) number(expr ast.Expr, depth int) (*big.Int, bool) {
	if depth > maxDepth {
		return nil, false
	}

	switch e := expr.(type) {
	case *ast.NumberExpr:
		return checked(new(big.Int).Set(e.Value))

	case *ast.IdentExpr:
		value, ok := ev.constants[e.Name]
		if !ok {
			return nil, false
		}
		return ev.number(value, depth+1)

	case *ast.UnaryExpr:
		operand, ok := ev.number(e.Operand, depth+1)
		if !ok {
			return nil, false
		}
		switch e.Op {
		case "-":
			return checked(operand.Neg(operand))
		case "+":
			return operand, true
		case "~":
			return operand.Not(operand), true
		case "!!":
			return operand, true
		}
		return nil, false

	case *ast.BinaryExpr:
		left, ok := ev.number(e.Left, depth+1)
		if !ok {
			return nil, false
		}
		right, ok := ev.number(e.Right, depth+1)
		if !ok {
			return nil, false
		}
		return binary(e.Op, left, right)

	case *ast.ConditionalExpr:
		cond, ok := ev.bool(e.Cond, depth+1)
		if !ok {
			return nil, false
		}
		if cond {
			return ev.number(e.Then, depth+1)
		}
		return ev.number(e.Else, depth+1)
	}

	return nil, false
}

// Bool folds a boolean expression.
func (ev *Evaluator) Bool(expr ast.Expr) (bool, bool) {
	return ev.bool(expr, 0)
}

func (ev *Evaluator) bool(expr ast.Expr, depth int) (bool, bool) {
	if depth > maxDepth {
		return false, false
	}

	switch e := expr.(type) {
	case *ast.BoolExpr:
		return e.Value, true

	case *ast.IdentExpr:
		value, ok := ev.constants[e.Name]
		if !ok {
			return false, false
		}
		return ev.bool(value, depth+1)

	case *ast.UnaryExpr:
		if e.Op != "!" {
			return false, false
		}
		v, ok := ev.bool(e.Operand, depth+1)
		return !v, ok

	case *ast.BinaryExpr:
		switch e.Op {
		case "&&", "||":
			left, ok := ev.bool(e.Left, depth+1)
			if !ok {
				return false, false
			}
			if e.Op == "&&" && !left {
				return false, true
			}
			if e.Op == "||" && left {
				return true, true
			}
			return ev.bool(e.Right, depth+1)
		case "==", "!=", "<", "<=", ">", ">=":
			left, ok := ev.number(e.Left, depth+1)
			if !ok {
				return false, false
			}
			right, ok := ev.number(e.Right, depth+1)
			if !ok {
				return false, false
			}
			return compare(e.Op, left.Cmp(right)), true
		}
	}

	return false, false
}

func binary(op string, left, right *big.Int) (*big.Int, bool) {
	result := new(big.Int)
	switch op {
	case "+":
		result.Add(left, right)
	case "-":
		result.Sub(left, right)
	case "*":
		result.Mul(left, right)
	case "/":
		if right.Sign() == 0 {
			return nil, false
		}
		result = numbers.FloorDiv(left, right)
	case "%":
		if right.Sign() == 0 {
			return nil, false
		}
		result = numbers.FloorMod(left, right)
	case "<<", ">>":
		if right.Sign() < 0 || right.Cmp(big.NewInt(256)) > 0 {
			return nil, false
		}
		shift := uint(right.Uint64())
		if op == "<<" {
			result.Lsh(left, shift)
		} else {
			// Rsh on negative values rounds toward -∞, as the TVM does.
			result.Rsh(left, shift)
		}
	case "&":
		result.And(left, right)
	case "|":
		result.Or(left, right)
	case "^":
		result.Xor(left, right)
	default:
		return nil, false
	}
	return checked(result)
}

func compare(op string, c int) bool {
	switch op {
	case "==":
		return c == 0
	case "!=":
		return c != 0
	case "<":
		return c < 0
	case "<=":
		return c <= 0
	case ">":
		return c > 0
	}
	return c >= 0
}

func checked(n *big.Int) (*big.Int, bool) {
	if n.Cmp(minInt) < 0 || n.Cmp(maxInt) > 0 {
		return nil, false
	}
	return n, true
}
