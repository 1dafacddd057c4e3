package lattice

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tactscan/internal/numbers"
)

func iv(low, high int64) numbers.Interval {
	return numbers.NewInterval(numbers.Int64(low), numbers.Int64(high))
}

func samples() []numbers.Interval {
	return []numbers.Interval{
		numbers.Bottom(),
		numbers.Top(),
		iv(0, 0),
		iv(1, 10),
		iv(-5, 5),
		iv(-3, -1),
		numbers.NewInterval(numbers.Int64(1), numbers.PosInf()),
		numbers.NewInterval(numbers.NegInf(), numbers.Int64(0)),
	}
}

func TestIntervalLatticeLaws(t *testing.T) {
	l := Interval{}
	for _, a := range samples() {
		assert.True(t, l.Join(a, l.Bottom()).Eq(a), "join(%v, ⊥)", a)
		assert.True(t, l.Leq(l.Bottom(), a))
		assert.True(t, l.Leq(a, l.Top()))

		for _, b := range samples() {
			ab := l.Join(a, b)
			assert.True(t, ab.Eq(l.Join(b, a)), "join(%v, %v) commutes", a, b)
			assert.True(t, l.Leq(a, ab), "%v ⊑ %v", a, ab)
			assert.Equal(t, l.Leq(a, b), l.Join(a, b).Eq(b), "leq(%v, %v) agrees with join", a, b)

			for _, c := range samples() {
				assert.True(t, l.Join(l.Join(a, b), c).Eq(l.Join(a, l.Join(b, c))))
			}
		}
	}
}

func TestIntervalWiden(t *testing.T) {
	l := Interval{}
	tests := []struct {
		old, new numbers.Interval
		want     string
	}{
		{numbers.Bottom(), iv(0, 0), "[0, 0]"},
		{iv(0, 0), numbers.Bottom(), "[0, 0]"},
		{iv(0, 0), iv(0, 0), "[0, 0]"},
		{iv(0, 0), iv(0, 1), "[0, +∞]"},
		{iv(0, 5), iv(-1, 5), "[-∞, 5]"},
		{iv(0, 5), iv(-1, 6), "[-∞, +∞]"},
		{iv(0, 5), iv(1, 4), "[0, 5]"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v∇%v", tt.old, tt.new), func(t *testing.T) {
			got := l.Widen(tt.old, tt.new)
			assert.Equal(t, tt.want, got.String())
			assert.True(t, l.Leq(tt.old, got))
			assert.True(t, l.Leq(tt.new, got))
		})
	}
}

func state(kv ...any) Map[string, numbers.Interval] {
	m := EmptyMap[string, numbers.Interval]()
	for i := 0; i < len(kv); i += 2 {
		m = m.Set(kv[i].(string), kv[i+1].(numbers.Interval))
	}
	return m
}

func TestMapIsPersistent(t *testing.T) {
	var zero Map[string, numbers.Interval]
	assert.Equal(t, 0, zero.Len())
	_, ok := zero.Get("x")
	assert.False(t, ok)

	a := zero.Set("x", iv(1, 1))
	b := a.Set("y", iv(2, 2))
	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, []string{"x", "y"}, b.Keys())
	assert.Equal(t, "{x: [1, 1], y: [2, 2]}", b.String())
}

func TestMapLatticeLaws(t *testing.T) {
	l := NewMapLattice[string, numbers.Interval](Interval{}, -1)
	states := []Map[string, numbers.Interval]{
		l.Bottom(),
		state("x", iv(0, 0)),
		state("x", iv(1, 10), "y", numbers.Top()),
		state("y", iv(-5, 5)),
		state("x", numbers.Bottom()),
	}

	for _, a := range states {
		assert.True(t, Equal[Map[string, numbers.Interval]](l, l.Join(a, l.Bottom()), a))
		for _, b := range states {
			ab := l.Join(a, b)
			assert.True(t, Equal[Map[string, numbers.Interval]](l, ab, l.Join(b, a)), "join(%v, %v) commutes", a, b)
			assert.True(t, l.Leq(a, ab), "%v ⊑ %v", a, ab)
			assert.True(t, l.Leq(b, ab))
		}
	}

	joined := l.Join(state("x", iv(0, 0)), state("x", iv(5, 5), "y", iv(1, 1)))
	assert.Equal(t, "{x: [0, 5], y: [1, 1]}", joined.String())

	// A missing key is bottom.
	assert.True(t, l.Leq(state("x", numbers.Bottom()), l.Bottom()))
	assert.False(t, l.Leq(state("x", iv(0, 0)), l.Bottom()))
}

// joinOnly never accelerates, so only the per-key counter can stop a chain.
type joinOnly struct{ Interval }

func (joinOnly) Widen(old, new numbers.Interval) numbers.Interval { return old.Join(new) }

func TestMapWideningForcesTopAfterThreshold(t *testing.T) {
	l := NewMapLattice[string, numbers.Interval](joinOnly{}, 3)
	require.Equal(t, 3, l.Threshold())

	current := state("x", iv(0, 0), "y", iv(7, 7))
	var history []numbers.Interval
	for n := int64(1); n <= 8; n++ {
		next := l.Widen(current, state("x", iv(0, n), "y", iv(7, 7)))
		require.True(t, l.Leq(current, next), "widening never shrinks")
		current = next
		history = append(history, l.Lookup(current, "x"))
	}

	assert.Equal(t, "[0, 3]", history[2].String())
	assert.True(t, history[3].IsTop(), "fourth growth exceeds the threshold")
	assert.True(t, history[len(history)-1].IsTop())
	assert.Equal(t, 4, l.Widenings("x"))
	assert.Equal(t, 0, l.Widenings("y"), "stable keys are not counted")
	assert.Equal(t, "[7, 7]", l.Lookup(current, "y").String())
}

func TestMapWidenKeepsNewKeys(t *testing.T) {
	l := NewMapLattice[string, numbers.Interval](Interval{}, -1)
	assert.Equal(t, DefaultWideningThreshold, l.Threshold())

	got := l.Widen(state("x", iv(0, 0)), state("x", iv(0, 1), "z", iv(4, 4)))
	assert.Equal(t, "{x: [0, +∞], z: [4, 4]}", got.String())
	assert.Equal(t, 1, l.Widenings("x"))
	assert.Equal(t, 0, l.Widenings("z"))
}

func TestMapWideningCountsPerSite(t *testing.T) {
	l := NewMapLattice[string, numbers.Interval](joinOnly{}, 2)

	// Growth at one site does not use up the budget of another.
	a := state("x", iv(0, 0))
	for n := int64(1); n <= 3; n++ {
		a = l.WidenAt(1, a, state("x", iv(0, n)))
	}
	assert.True(t, l.Lookup(a, "x").IsTop(), "third growth at site 1 exceeds the threshold")

	b := state("x", iv(0, 0))
	for n := int64(1); n <= 2; n++ {
		b = l.WidenAt(2, b, state("x", iv(0, n)))
	}
	assert.Equal(t, "[0, 2]", l.Lookup(b, "x").String())

	assert.Equal(t, 3, l.WideningsAt(1, "x"))
	assert.Equal(t, 2, l.WideningsAt(2, "x"))
	assert.Equal(t, 5, l.Widenings("x"))

	// Widen is site 0.
	l.Widen(state("x", iv(0, 0)), state("x", iv(0, 1)))
	assert.Equal(t, 1, l.WideningsAt(0, "x"))
}

func TestMapWideningSkipsKeysThatDidNotGrow(t *testing.T) {
	l := NewMapLattice[string, numbers.Interval](Interval{}, 0)

	// y takes part in every widening step without growing; only a growth
	// is counted, so y is never forced to top.
	current := state("x", iv(0, 0), "y", iv(5, 5))
	for n := int64(1); n <= 4; n++ {
		current = l.WidenAt(3, current, state("x", iv(0, n), "y", iv(5, 5)))
	}
	assert.True(t, l.Lookup(current, "x").IsTop())
	assert.Equal(t, "[5, 5]", l.Lookup(current, "y").String())
	assert.Equal(t, 0, l.WideningsAt(3, "y"))
}
