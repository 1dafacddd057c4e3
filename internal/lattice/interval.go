package lattice

import "tactscan/internal/numbers"

// Interval is the lattice of integer intervals ordered by inclusion.
type Interval struct{}

var _ WideningLattice[numbers.Interval] = Interval{}

func (Interval) Bottom() numbers.Interval { return numbers.Bottom() }
func (Interval) Top() numbers.Interval    { return numbers.Top() }

func (Interval) Join(a, b numbers.Interval) numbers.Interval { return a.Join(b) }
func (Interval) Leq(a, b numbers.Interval) bool              { return a.Leq(b) }

// Widen jumps every unstable bound to infinity:
//
//	widen([l1, h1], [l2, h2]) = [l2 < l1 ? -∞ : l1, h2 > h1 ? +∞ : h1]
//
// A bound can move at most once, so widening chains have length two.
func (Interval) Widen(old, new numbers.Interval) numbers.Interval {
	if old.IsBottom() {
		return new
	}
	if new.IsBottom() {
		return old
	}

	low := old.Low()
	if numbers.Compare(new.Low(), low) < 0 {
		low = numbers.NegInf()
	}
	high := old.High()
	if numbers.Compare(new.High(), high) > 0 {
		high = numbers.PosInf()
	}
	return numbers.NewInterval(low, high)
}
