package boltgroup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func pattern(pts ...[2]float64) []Bolt {
	out := make([]Bolt, len(pts))
	for i, p := range pts {
		out[i] = Bolt{Position: r2.Vec{X: p[0], Y: p[1]}}
	}
	return out
}

// column is three bolts at 3 spacing loaded 4 to the side.
func column() ([]Bolt, Load) {
	return pattern([2]float64{0, 0}, [2]float64{0, 3}, [2]float64{0, 6}),
		Load{Point: r3.Vec{X: 4}, Force: r3.Vec{Y: -1}}
}

// twoColumns is a 2x3 pattern under an inclined load far to the right.
func twoColumns() ([]Bolt, Load) {
	return pattern(
			[2]float64{0, 0}, [2]float64{0, 3}, [2]float64{0, 6},
			[2]float64{6, 0}, [2]float64{6, 3}, [2]float64{6, 6}),
		Load{Point: r3.Vec{X: 23, Y: 8}, Force: r3.Vec{X: 0.6, Y: -0.8}}
}

// grid returns a 10x10 pattern at unit spacing ordered by x, then y.
func grid() []Bolt {
	var pts [][2]float64
	for x := 0; x < 10; x++ {
		for y := 0; y < 10; y++ {
			pts = append(pts, [2]float64{float64(x), float64(y)})
		}
	}
	return pattern(pts...)
}

func mustResolve(t *testing.T, bolts []Bolt, l Load) (Group, ResolvedLoad) {
	t.Helper()
	g, err := NewGroup(bolts)
	require.NoError(t, err)
	rl, err := Resolve(g, l)
	require.NoError(t, err)
	return g, rl
}

func resolved(t *testing.T, setup func() ([]Bolt, Load)) (Group, ResolvedLoad) {
	t.Helper()
	bolts, l := setup()
	return mustResolve(t, bolts, l)
}

func assertVec(t *testing.T, want, got r2.Vec, delta float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta, "x")
	assert.InDelta(t, want.Y, got.Y, delta, "y")
}
