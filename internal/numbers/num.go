// Package numbers implements the extended integers and the interval domain
// used by the abstract interpreter.
package numbers

import (
	"math/big"
)

type numKind int8

const (
	negInf numKind = iota - 1
	finite
	posInf
)

// Num is an arbitrary-precision integer extended with -∞ and +∞.
// The zero value is the finite integer 0.
//
// A Num never shares its underlying big.Int with callers: constructors copy
// their argument and Big returns a copy.
type Num struct {
	kind numKind
	v    *big.Int
}

// Int creates a finite Num from a big integer.
func Int(n *big.Int) Num {
	return Num{kind: finite, v: new(big.Int).Set(n)}
}

// Int64 creates a finite Num from a machine integer.
func Int64(n int64) Num {
	return Num{kind: finite, v: big.NewInt(n)}
}

// PosInf returns +∞.
func PosInf() Num { return Num{kind: posInf} }

// NegInf returns -∞.
func NegInf() Num { return Num{kind: negInf} }

func (n Num) IsFinite() bool { return n.kind == finite }
func (n Num) IsPosInf() bool { return n.kind == posInf }
func (n Num) IsNegInf() bool { return n.kind == negInf }

// Big returns a copy of the finite value, or nil for an infinite bound.
func (n Num) Big() *big.Int {
	if n.kind != finite {
		return nil
	}
	return new(big.Int).Set(n.value())
}

func (n Num) value() *big.Int {
	if n.v == nil {
		return new(big.Int)
	}
	return n.v
}

// Sign returns -1, 0 or 1. Infinities have the sign of their direction.
func (n Num) Sign() int {
	switch n.kind {
	case negInf:
		return -1
	case posInf:
		return 1
	}
	return n.value().Sign()
}

// IsZero reports whether n is the finite integer 0.
func (n Num) IsZero() bool {
	return n.kind == finite && n.value().Sign() == 0
}

// Compare orders extended integers: -∞ < every integer < +∞.
func Compare(a, b Num) int {
	if a.kind != b.kind {
		if a.kind < b.kind {
			return -1
		}
		return 1
	}
	if a.kind != finite {
		return 0
	}
	return a.value().Cmp(b.value())
}

// Min returns the smaller of two bounds.
func Min(a, b Num) Num {
	if Compare(a, b) <= 0 {
		return a
	}
	return b
}

// Max returns the larger of two bounds.
func Max(a, b Num) Num {
	if Compare(a, b) >= 0 {
		return a
	}
	return b
}

func (n Num) String() string {
	switch n.kind {
	case negInf:
		return "-∞"
	case posInf:
		return "+∞"
	}
	return n.value().String()
}

func infinityWithSign(sign int) Num {
	if sign < 0 {
		return NegInf()
	}
	return PosInf()
}

// add computes a + b. The result is indeterminate (ok == false) for ∞ + -∞.
func add(a, b Num) (Num, bool) {
	switch {
	case a.kind == finite && b.kind == finite:
		return Num{kind: finite, v: new(big.Int).Add(a.value(), b.value())}, true
	case a.kind != finite && b.kind != finite && a.kind != b.kind:
		return Num{}, false
	case a.kind != finite:
		return a, true
	default:
		return b, true
	}
}

func negate(n Num) Num {
	switch n.kind {
	case negInf:
		return PosInf()
	case posInf:
		return NegInf()
	}
	return Num{kind: finite, v: new(big.Int).Neg(n.value())}
}

// mul computes a * b where 0 * ±∞ = 0: bounds describe finite run-time
// values, so a zero factor always yields zero.
func mul(a, b Num) Num {
	if a.IsZero() || b.IsZero() {
		return Int64(0)
	}
	if a.kind == finite && b.kind == finite {
		return Num{kind: finite, v: new(big.Int).Mul(a.value(), b.value())}
	}
	return infinityWithSign(a.Sign() * b.Sign())
}

// FloorDiv divides rounding toward -∞, matching Tact's `/`.
// The divisor must be non-zero.
func FloorDiv(a, b *big.Int) *big.Int {
	q, r := new(big.Int).QuoRem(a, b, new(big.Int))
	if r.Sign() != 0 && (r.Sign() < 0) != (b.Sign() < 0) {
		q.Sub(q, big.NewInt(1))
	}
	return q
}

// FloorMod is the remainder matching FloorDiv: its sign follows the divisor.
// The divisor must be non-zero.
func FloorMod(a, b *big.Int) *big.Int {
	q := FloorDiv(a, b)
	return new(big.Int).Sub(a, q.Mul(q, b))
}

// divCorners returns the candidate bounds of a / b for one pair of interval
// corners. b must be non-zero. Quotients of two unbounded magnitudes can be
// anything between zero and the signed infinity, so both are returned.
func divCorners(a, b Num) []Num {
	sign := a.Sign() * b.Sign()
	switch {
	case a.kind == finite && b.kind == finite:
		return []Num{{kind: finite, v: FloorDiv(a.value(), b.value())}}
	case a.kind == finite:
		// A finite dividend over an unbounded divisor tends to zero; with
		// floor rounding a negative quotient lands on -1.
		if sign < 0 {
			return []Num{Int64(-1)}
		}
		return []Num{Int64(0)}
	case b.kind == finite:
		return []Num{infinityWithSign(sign)}
	default:
		if sign < 0 {
			return []Num{NegInf(), Int64(-1)}
		}
		return []Num{Int64(0), PosInf()}
	}
}
