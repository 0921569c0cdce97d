package hllpp

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Merge_PrecisionMismatch(t *testing.T) {
	a, err := New(10)
	require.NoError(t, err)
	b, err := New(12)
	require.NoError(t, err)

	_, err = Merge(a, b)
	require.ErrorIs(t, err, ErrPrecisionMismatch)
}

func newFilledSketch(t *testing.T, p uint8, lo, hi int) *Sketch {
	t.Helper()
	s, err := New(p)
	require.NoError(t, err)
	for i := lo; i <= hi; i++ {
		Add(s, fmt.Sprintf("v%d", i), StringHasher)
	}
	return s
}

func Test_Merge_CommutativeAndAssociative(t *testing.T) {
	const p = 12

	build := func() (a, b, c *Sketch) {
		return newFilledSketch(t, p, 0, 299),
			newFilledSketch(t, p, 150, 449),
			newFilledSketch(t, p, 400, 699)
	}

	a1, b1, c1 := build()
	ab := mustMerge(t, a1, b1)
	abc := mustMerge(t, ab, c1)

	a2, b2, c2 := build()
	bc := mustMerge(t, b2, c2)
	abc2 := mustMerge(t, a2, bc)

	// Force both to dense and compare register arrays exactly.
	if abc.IsSparse() {
		abc.promoteDense()
	}
	if abc2.IsSparse() {
		abc2.promoteDense()
	}
	require.Equal(t, abc.dense, abc2.dense)

	require.InDelta(t, Estimate(abc), Estimate(abc2), 1e-9)

	// Commutativity: merge(a, b) and merge(b, a) yield the same registers.
	a3, b3, _ := build()
	a4, b4, _ := build()
	ab3 := mustMerge(t, a3, b3)
	ba4 := mustMerge(t, b4, a4)
	if ab3.IsSparse() {
		ab3.promoteDense()
	}
	if ba4.IsSparse() {
		ba4.promoteDense()
	}
	require.Equal(t, ab3.dense, ba4.dense)
}

func mustMerge(t *testing.T, a, b *Sketch) *Sketch {
	t.Helper()
	m, err := Merge(a, b)
	require.NoError(t, err)
	return m
}

func Test_Merge_TwoWorkers_UnionCardinality(t *testing.T) {
	const p = 14
	a := newFilledSketch(t, p, 0, 499)
	b := newFilledSketch(t, p, 250, 749)

	merged := mustMerge(t, a, b)
	estimate := Estimate(merged)

	require.InEpsilon(t, 750, estimate, 0.10)
}
