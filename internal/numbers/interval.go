package numbers

import (
	"math/big"
)

// Interval is a possibly unbounded range of integers [low, high].
//
// The empty interval (⊥) is represented as [+∞, -∞], so that it is the only
// interval whose lower bound exceeds its upper bound. Intervals are values;
// every operation returns a new interval.
type Interval struct {
	low  Num
	high Num
}

// NewInterval creates [low, high]. If low > high the result is ⊥.
func NewInterval(low, high Num) Interval {
	if Compare(low, high) > 0 {
		return Bottom()
	}
	return Interval{low: low, high: high}
}

// FromInt64 creates the degenerate interval [n, n].
func FromInt64(n int64) Interval {
	v := Int64(n)
	return Interval{low: v, high: v}
}

// FromBig creates the degenerate interval [n, n].
func FromBig(n *big.Int) Interval {
	v := Int(n)
	return Interval{low: v, high: v}
}

// Top returns (-∞, +∞).
func Top() Interval {
	return Interval{low: NegInf(), high: PosInf()}
}

// Bottom returns the empty interval.
func Bottom() Interval {
	return Interval{low: PosInf(), high: NegInf()}
}

func (i Interval) Low() Num  { return i.low }
func (i Interval) High() Num { return i.high }

// IsBottom checks that the interval is the empty interval ⊥.
func (i Interval) IsBottom() bool {
	return Compare(i.low, i.high) > 0
}

// IsTop checks that the interval is (-∞, +∞).
func (i Interval) IsTop() bool {
	return i.low.IsNegInf() && i.high.IsPosInf()
}

// Eq compares two intervals for equality. All empty intervals are equal.
func (i Interval) Eq(o Interval) bool {
	if i.IsBottom() || o.IsBottom() {
		return i.IsBottom() && o.IsBottom()
	}
	return Compare(i.low, o.low) == 0 && Compare(i.high, o.high) == 0
}

// Contains reports whether n lies within the interval.
func (i Interval) Contains(n Num) bool {
	return Compare(i.low, n) <= 0 && Compare(n, i.high) <= 0
}

// ContainsZero reports whether 0 lies within the interval.
func (i Interval) ContainsZero() bool {
	return i.Contains(Int64(0))
}

// Leq computes i ⊑ o: ⊥ is below everything, otherwise o must enclose i.
func (i Interval) Leq(o Interval) bool {
	if i.IsBottom() {
		return true
	}
	if o.IsBottom() {
		return false
	}
	return Compare(o.low, i.low) <= 0 && Compare(i.high, o.high) <= 0
}

// Join computes i ⊔ o, the smallest interval enclosing both.
func (i Interval) Join(o Interval) Interval {
	if i.IsBottom() {
		return o
	}
	if o.IsBottom() {
		return i
	}
	return Interval{low: Min(i.low, o.low), high: Max(i.high, o.high)}
}

// Meet computes i ⊓ o, the intersection.
func (i Interval) Meet(o Interval) Interval {
	if i.IsBottom() || o.IsBottom() {
		return Bottom()
	}
	return NewInterval(Max(i.low, o.low), Min(i.high, o.high))
}

// Plus computes the interval of a + b for a ∈ i and b ∈ o.
func (i Interval) Plus(o Interval) Interval {
	if i.IsBottom() || o.IsBottom() {
		return Bottom()
	}
	low, okLow := add(i.low, o.low)
	high, okHigh := add(i.high, o.high)
	if !okLow || !okHigh {
		return Top()
	}
	return NewInterval(low, high)
}

// Neg computes the interval of -a for a ∈ i.
func (i Interval) Neg() Interval {
	if i.IsBottom() {
		return i
	}
	return Interval{low: negate(i.high), high: negate(i.low)}
}

// Minus computes the interval of a - b for a ∈ i and b ∈ o.
func (i Interval) Minus(o Interval) Interval {
	return i.Plus(o.Neg())
}

// Times computes the interval of a * b from the four corner products.
func (i Interval) Times(o Interval) Interval {
	if i.IsBottom() || o.IsBottom() {
		return Bottom()
	}
	return hull(
		mul(i.low, o.low),
		mul(i.low, o.high),
		mul(i.high, o.low),
		mul(i.high, o.high),
	)
}

// Div computes the interval of a / b with floor rounding.
//
// When the divisor may be zero the quotient is unbounded and the result is
// Top; reporting the zero divisor itself is left to the detectors.
func (i Interval) Div(o Interval) Interval {
	if i.IsBottom() || o.IsBottom() {
		return Bottom()
	}
	if o.ContainsZero() {
		return Top()
	}
	var corners []Num
	for _, a := range []Num{i.low, i.high} {
		for _, b := range []Num{o.low, o.high} {
			corners = append(corners, divCorners(a, b)...)
		}
	}
	return hull(corners...)
}

// Mod computes the interval of a % b, where the remainder takes the sign of
// the divisor.
func (i Interval) Mod(o Interval) Interval {
	if i.IsBottom() || o.IsBottom() {
		return Bottom()
	}
	if o.ContainsZero() {
		return Top()
	}
	if i.isSingleton() && o.isSingleton() {
		return FromBig(FloorMod(i.low.value(), o.low.value()))
	}
	if o.low.Sign() > 0 {
		high, _ := add(o.high, Int64(-1))
		return NewInterval(Int64(0), high)
	}
	low, _ := add(o.low, Int64(1))
	return NewInterval(low, Int64(0))
}

func (i Interval) isSingleton() bool {
	return i.low.IsFinite() && Compare(i.low, i.high) == 0
}

func (i Interval) String() string {
	if i.IsBottom() {
		return "⊥"
	}
	return "[" + i.low.String() + ", " + i.high.String() + "]"
}

func hull(bounds ...Num) Interval {
	low, high := bounds[0], bounds[0]
	for _, b := range bounds[1:] {
		low = Min(low, b)
		high = Max(high, b)
	}
	return Interval{low: low, high: high}
}
