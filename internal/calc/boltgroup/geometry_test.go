package boltgroup

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestNewGroupGrid(t *testing.T) {
	g, err := NewGroup(grid())
	require.NoError(t, err)

	assert.Equal(t, 100, g.Len())
	assert.InDelta(t, 4.5, g.Centroid.X, 1e-12)
	assert.InDelta(t, 4.5, g.Centroid.Y, 1e-12)
	assert.InDelta(t, 825, g.Properties.Ixx, 1e-9)
	assert.InDelta(t, 825, g.Properties.Iyy, 1e-9)
	assert.InDelta(t, 1650, g.Properties.J, 1e-9)

	var sum r2.Vec
	for _, c := range g.Local {
		sum = r2.Add(sum, c)
	}
	assert.InDelta(t, 0, sum.X, 1e-9)
	assert.InDelta(t, 0, sum.Y, 1e-9)
}

func TestNewGroupColumn(t *testing.T) {
	bolts, _ := column()
	g, err := NewGroup(bolts)
	require.NoError(t, err)

	assertVec(t, r2.Vec{X: 0, Y: 3}, g.Centroid, 1e-12)
	for i, want := range []r2.Vec{{X: 0, Y: -3}, {X: 0, Y: 0}, {X: 0, Y: 3}} {
		assertVec(t, want, g.Local[i], 1e-12)
	}
	assert.InDelta(t, 18, g.Properties.Ixx, 1e-9)
	assert.InDelta(t, 0, g.Properties.Iyy, 1e-9)
	assert.InDelta(t, 18, g.Properties.J, 1e-9)
}

func TestNewGroupSingleBolt(t *testing.T) {
	g, err := NewGroup(pattern([2]float64{2, -7}))
	require.NoError(t, err)
	assert.Equal(t, r2.Vec{X: 2, Y: -7}, g.Centroid)
	assert.Equal(t, Properties{}, g.Properties)
}

func TestNewGroupCopiesBolts(t *testing.T) {
	bolts, _ := column()
	g, err := NewGroup(bolts)
	require.NoError(t, err)

	bolts[0].Position.X = 100
	assert.Equal(t, 0.0, g.Bolts[0].Position.X)
}

func TestNewGroupErrors(t *testing.T) {
	tests := []struct {
		name  string
		bolts []Bolt
		want  error
	}{
		{"empty", nil, ErrEmptyGroup},
		{"nan", pattern([2]float64{0, 0}, [2]float64{math.NaN(), 1}), ErrNonFinite},
		{"inf", pattern([2]float64{math.Inf(1), 0}), ErrNonFinite},
		{"diameter", []Bolt{{ID: "A1", Diameter: math.NaN()}}, ErrNonFinite},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGroup(tt.bolts)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, ErrInvalidInput)

			var ie *InputError
			assert.ErrorAs(t, err, &ie)
		})
	}
}

func TestNewGroupErrorNamesBolt(t *testing.T) {
	_, err := NewGroup([]Bolt{{ID: "B7", Position: r2.Vec{X: math.NaN()}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bolt B7")

	_, err = NewGroup(pattern([2]float64{0, 0}, [2]float64{0, math.Inf(-1)}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bolt #2")
}
