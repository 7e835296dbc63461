package boltgroup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestReactionsColumn(t *testing.T) {
	g, rl := resolved(t, column)
	sol, err := SolveIC(g, rl, DefaultOptions())
	require.NoError(t, err)

	got := sol.Reactions(10)
	want := []r2.Vec{
		{X: 9.31996, Y: 3.07791},
		{X: 0, Y: 7.92836},
		{X: -9.31996, Y: 3.07791},
	}
	require.Len(t, got, len(want))
	for i := range want {
		assertVec(t, want[i], got[i], 1e-4)
		assert.InDelta(t, 10*sol.Bolts[i].Fraction, r2.Norm(got[i]), 1e-9)
		// same sense as the reactions at the applied load
		assert.Greater(t, r2.Dot(got[i], sol.Bolts[i].Force), 0.0)
	}
}

func TestReactionsSenseFollowsMoment(t *testing.T) {
	bolts, l := column()
	l.Force.Y = 1
	g, rl := mustResolve(t, bolts, l)
	sol, err := SolveIC(g, rl, DefaultOptions())
	require.NoError(t, err)
	require.Greater(t, sol.AppliedMoment, 0.0)

	for i, r := range sol.Reactions(10) {
		assert.Greater(t, r2.Dot(r, sol.Bolts[i].Force), 0.0)
	}
	assertVec(t, r2.Vec{X: 0, Y: -7.92836}, sol.Reactions(10)[1], 1e-4)
}

func TestGroupCapacity(t *testing.T) {
	g, rl := resolved(t, column)
	sol, err := SolveIC(g, rl, DefaultOptions())
	require.NoError(t, err)

	c, ok := sol.GroupCapacity(10, rl)
	require.True(t, ok)
	assert.InDelta(t, 14.00063, c, 1e-4)

	_, ok = Solution{}.GroupCapacity(10, rl)
	assert.False(t, ok)
}
