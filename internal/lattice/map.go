package lattice

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/benbjohnson/immutable"
)

// DefaultWideningThreshold is the number of times a key may grow through
// widening at one site before its value there is forced to top.
const DefaultWideningThreshold = 3

// Map is a persistent map from keys to lattice values. A key that is absent
// stands for the bottom value. The zero Map is empty and ready to use; Set
// returns a new map and leaves the receiver unchanged.
type Map[K cmp.Ordered, V any] struct {
	m *immutable.SortedMap[K, V]
}

type orderedComparer[K cmp.Ordered] struct{}

func (orderedComparer[K]) Compare(a, b K) int { return cmp.Compare(a, b) }

// EmptyMap returns a map without keys.
func EmptyMap[K cmp.Ordered, V any]() Map[K, V] {
	return Map[K, V]{m: immutable.NewSortedMap[K, V](orderedComparer[K]{})}
}

func (m Map[K, V]) Get(key K) (V, bool) {
	if m.m == nil {
		var zero V
		return zero, false
	}
	return m.m.Get(key)
}

func (m Map[K, V]) Set(key K, value V) Map[K, V] {
	if m.m == nil {
		m = EmptyMap[K, V]()
	}
	return Map[K, V]{m: m.m.Set(key, value)}
}

func (m Map[K, V]) Len() int {
	if m.m == nil {
		return 0
	}
	return m.m.Len()
}

// Range calls fn for every entry in ascending key order until fn returns false.
func (m Map[K, V]) Range(fn func(key K, value V) bool) {
	if m.m == nil {
		return
	}
	itr := m.m.Iterator()
	for !itr.Done() {
		k, v, _ := itr.Next()
		if !fn(k, v) {
			return
		}
	}
}

// Keys returns the keys in ascending order.
func (m Map[K, V]) Keys() []K {
	keys := make([]K, 0, m.Len())
	m.Range(func(k K, _ V) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

func (m Map[K, V]) String() string {
	var b strings.Builder
	b.WriteString("{")
	first := true
	m.Range(func(k K, v V) bool {
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&b, "%v: %v", k, v)
		return true
	})
	b.WriteString("}")
	return b.String()
}

// ValueLattice is the lattice of the values stored in a Map.
type ValueLattice[V any] interface {
	WideningLattice[V]
	Bounded[V]
}

// MapLattice lifts a value lattice pointwise to maps.
//
// Widening is counted per site and key: every time a key's value grows when
// widened at a site its counter is incremented, and once the counter exceeds
// the threshold the key is set to top at that site. Widen counts at site 0.
// The counters belong to the lattice instance, so one instance must serve
// exactly one analysis run.
type MapLattice[K cmp.Ordered, V any] struct {
	values    ValueLattice[V]
	threshold int
	counters  map[widenSite[K]]int
}

type widenSite[K cmp.Ordered] struct {
	site int
	key  K
}

// NewMapLattice creates a map lattice. A threshold below zero selects
// DefaultWideningThreshold.
func NewMapLattice[K cmp.Ordered, V any](values ValueLattice[V], threshold int) *MapLattice[K, V] {
	if threshold < 0 {
		threshold = DefaultWideningThreshold
	}
	return &MapLattice[K, V]{
		values:    values,
		threshold: threshold,
		counters:  make(map[widenSite[K]]int),
	}
}

var (
	_ WideningLattice[Map[string, int]] = (*MapLattice[string, int])(nil)
	_ SiteWidening[Map[string, int]]    = (*MapLattice[string, int])(nil)
)

func (l *MapLattice[K, V]) Bottom() Map[K, V] {
	return EmptyMap[K, V]()
}

// Values returns the lattice of the map's values.
func (l *MapLattice[K, V]) Values() ValueLattice[V] {
	return l.values
}

// Lookup returns the value of key, or bottom when the key is absent.
func (l *MapLattice[K, V]) Lookup(m Map[K, V], key K) V {
	if v, ok := m.Get(key); ok {
		return v
	}
	return l.values.Bottom()
}

// Join computes the pointwise join over the union of both key sets.
func (l *MapLattice[K, V]) Join(a, b Map[K, V]) Map[K, V] {
	if a.Len() < b.Len() {
		a, b = b, a
	}
	result := a
	b.Range(func(k K, bv V) bool {
		if av, ok := a.Get(k); ok {
			result = result.Set(k, l.values.Join(av, bv))
		} else {
			result = result.Set(k, bv)
		}
		return true
	})
	if result.m == nil {
		return l.Bottom()
	}
	return result
}

// Leq holds when every value of a is below the value of the same key in b.
func (l *MapLattice[K, V]) Leq(a, b Map[K, V]) bool {
	leq := true
	a.Range(func(k K, av V) bool {
		leq = l.values.Leq(av, l.Lookup(b, k))
		return leq
	})
	return leq
}

// Widen widens at site 0.
func (l *MapLattice[K, V]) Widen(old, new Map[K, V]) Map[K, V] {
	return l.WidenAt(0, old, new)
}

// WidenAt widens every key whose value grew from old to new. Keys appearing
// for the first time take their new value. Keys that did not grow keep their
// old value and their counter.
func (l *MapLattice[K, V]) WidenAt(site int, old, new Map[K, V]) Map[K, V] {
	result := old
	new.Range(func(k K, nv V) bool {
		ov, ok := old.Get(k)
		switch {
		case !ok:
			result = result.Set(k, nv)
		case l.values.Leq(nv, ov):
		default:
			c := widenSite[K]{site, k}
			l.counters[c]++
			if l.counters[c] > l.threshold {
				result = result.Set(k, l.values.Top())
			} else {
				result = result.Set(k, l.values.Widen(ov, nv))
			}
		}
		return true
	})
	if result.m == nil {
		return l.Bottom()
	}
	return result
}

// Widenings returns how often key has grown under widening, over all sites.
func (l *MapLattice[K, V]) Widenings(key K) int {
	n := 0
	for c, count := range l.counters {
		if c.key == key {
			n += count
		}
	}
	return n
}

// WideningsAt returns how often key has grown when widened at site.
func (l *MapLattice[K, V]) WideningsAt(site int, key K) int {
	return l.counters[widenSite[K]{site, key}]
}

// Threshold returns the per-key widening threshold.
func (l *MapLattice[K, V]) Threshold() int {
	return l.threshold
}
