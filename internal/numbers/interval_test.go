package numbers

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func iv(low, high int64) Interval {
	return NewInterval(Int64(low), Int64(high))
}

func TestCompareOrdersInfinities(t *testing.T) {
	assert.Equal(t, -1, Compare(NegInf(), Int64(-1000)))
	assert.Equal(t, 1, Compare(PosInf(), Int64(1000)))
	assert.Equal(t, 0, Compare(PosInf(), PosInf()))
	assert.Equal(t, -1, Compare(NegInf(), PosInf()))
	assert.Equal(t, 0, Compare(Int64(7), Int(big.NewInt(7))))
	assert.Equal(t, -1, Compare(Int64(3), Int64(4)))
}

func TestIntCopiesArgument(t *testing.T) {
	v := big.NewInt(5)
	n := Int(v)
	v.SetInt64(9)
	assert.Equal(t, "5", n.String())

	b := n.Big()
	b.SetInt64(11)
	assert.Equal(t, "5", n.String())
	assert.Nil(t, PosInf().Big())
}

func TestFloorDivision(t *testing.T) {
	tests := []struct {
		a, b, q, r int64
	}{
		{7, 2, 3, 1},
		{-7, 2, -4, 1},
		{7, -2, -4, -1},
		{-7, -2, 3, -1},
		{6, 3, 2, 0},
		{-6, 3, -2, 0},
	}

	for _, test := range tests {
		q := FloorDiv(big.NewInt(test.a), big.NewInt(test.b))
		r := FloorMod(big.NewInt(test.a), big.NewInt(test.b))
		assert.Equal(t, test.q, q.Int64(), "%d / %d", test.a, test.b)
		assert.Equal(t, test.r, r.Int64(), "%d %% %d", test.a, test.b)
	}
}

func TestIntervalBasics(t *testing.T) {
	assert.True(t, Bottom().IsBottom())
	assert.True(t, Top().IsTop())
	assert.True(t, NewInterval(Int64(3), Int64(1)).IsBottom())
	assert.Equal(t, "[8, 8]", FromInt64(8).String())
	assert.Equal(t, "[-∞, +∞]", Top().String())
	assert.Equal(t, "⊥", Bottom().String())
	assert.Equal(t, "[1, +∞]", NewInterval(Int64(1), PosInf()).String())
}

func TestIntervalArithmetic(t *testing.T) {
	P := PosInf()
	M := NegInf()

	tests := []struct {
		name     string
		got      Interval
		expected Interval
	}{
		{"plus", iv(1, 2).Plus(iv(3, 4)), iv(4, 6)},
		{"plus absorbs infinity", NewInterval(Int64(1), P).Plus(iv(1, 1)), NewInterval(Int64(2), P)},
		{"minus", iv(5, 10).Minus(iv(1, 2)), iv(3, 9)},
		{"infinity minus infinity", NewInterval(Int64(5), P).Minus(NewInterval(Int64(3), P)), Top()},
		{"plus bottom", iv(1, 2).Plus(Bottom()), Bottom()},
		{"times", iv(-2, 3).Times(iv(4, 5)), iv(-10, 15)},
		{"times negative", iv(-3, -2).Times(iv(-5, -4)), iv(8, 15)},
		{"times infinite", iv(2, 3).Times(NewInterval(Int64(1), P)), NewInterval(Int64(2), P)},
		{"times negative infinite", iv(-3, -2).Times(NewInterval(Int64(1), P)), NewInterval(M, Int64(-2))},
		{"times spanning zero", iv(-1, 1).Times(NewInterval(Int64(5), P)), Top()},
		{"times zero", iv(0, 0).Times(Top()), iv(0, 0)},
		{"div", iv(10, 20).Div(iv(2, 5)), iv(2, 10)},
		{"div floor", iv(-7, -7).Div(iv(2, 2)), iv(-4, -4)},
		{"div negative divisor", iv(10, 20).Div(iv(-5, -2)), iv(-10, -2)},
		{"div by interval with zero", iv(10, 20).Div(iv(-1, 1)), Top()},
		{"div by zero", iv(10, 20).Div(iv(0, 0)), Top()},
		{"div by unbounded", iv(10, 20).Div(NewInterval(Int64(1), P)), iv(0, 20)},
		{"div unbounded", NewInterval(Int64(1), P).Div(NewInterval(Int64(1), P)), NewInterval(Int64(0), P)},
		{"mod constants", iv(-7, -7).Mod(iv(3, 3)), iv(2, 2)},
		{"mod positive divisor", iv(0, 100).Mod(iv(1, 10)), iv(0, 9)},
		{"mod negative divisor", iv(0, 100).Mod(iv(-10, -3)), iv(-9, 0)},
		{"mod by zero", iv(0, 100).Mod(iv(0, 10)), Top()},
		{"neg", NewInterval(Int64(1), P).Neg(), NewInterval(M, Int64(-1))},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.True(t, test.got.Eq(test.expected), "got %s, expected %s", test.got, test.expected)
		})
	}
}

func TestIntervalOrder(t *testing.T) {
	assert.True(t, Bottom().Leq(iv(1, 1)))
	assert.False(t, iv(1, 1).Leq(Bottom()))
	assert.True(t, iv(2, 3).Leq(iv(1, 4)))
	assert.False(t, iv(0, 3).Leq(iv(1, 4)))
	assert.True(t, iv(2, 3).Leq(Top()))
	assert.True(t, iv(1, 5).Meet(iv(3, 10)).Eq(iv(3, 5)))
	assert.True(t, iv(1, 2).Meet(iv(3, 10)).IsBottom())
}

func TestContainsZero(t *testing.T) {
	assert.True(t, iv(0, 0).ContainsZero())
	assert.False(t, iv(1, 10).ContainsZero())
	assert.True(t, iv(-5, 5).ContainsZero())
	assert.False(t, NewInterval(Int64(1), PosInf()).ContainsZero())
	assert.True(t, Top().ContainsZero())
	assert.False(t, Bottom().ContainsZero())
}
