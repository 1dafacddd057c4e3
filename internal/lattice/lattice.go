// Package lattice defines the lattices abstract interpretation runs over.
//
// A lattice value is a plain Go value of type S; lattices are the objects that
// know how to order and combine them. The solver only depends on the
// interfaces below, so it is written once for every abstract domain.
package lattice

// JoinSemilattice orders abstract values and combines them at merge points.
//
// Leq(a, b) must hold exactly when Join(a, b) equals b.
type JoinSemilattice[S any] interface {
	Bottom() S
	Join(a, b S) S
	Leq(a, b S) bool
}

// WideningLattice extends a join-semilattice with a widening operator.
//
// Widen(old, new) is above both arguments, and every ascending chain built by
// repeated widening is finite.
type WideningLattice[S any] interface {
	JoinSemilattice[S]
	Widen(old, new S) S
}

// SiteWidening is implemented by lattices whose widening keeps state per
// program point. The solver passes the index of the block being widened as
// site and calls WidenAt instead of Widen.
type SiteWidening[S any] interface {
	WidenAt(site int, old, new S) S
}

// Bounded is a lattice with a greatest element.
type Bounded[S any] interface {
	Top() S
}

// Equal reports whether a and b denote the same lattice element.
func Equal[S any](l JoinSemilattice[S], a, b S) bool {
	return l.Leq(a, b) && l.Leq(b, a)
}
