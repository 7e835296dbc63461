package capacity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	res, err := Calculate(Input{BoltDiameterMM: 20, FubMPa: 400})
	require.NoError(t, err)
	assert.InDelta(t, 100*math.Pi, res.AreaMM2, 1e-9)
	assert.InDelta(t, 0.6*400*100*math.Pi/1.25/1000, res.ShearCapacityKN, 1e-9)

	double, err := Calculate(Input{BoltDiameterMM: 20, FubMPa: 400, GammaM: 1.25, ShearPlanes: 2})
	require.NoError(t, err)
	assert.InDelta(t, 2*res.ShearCapacityKN, double.ShearCapacityKN, 1e-9)
}

func TestCalculateInvalid(t *testing.T) {
	for _, in := range []Input{
		{},
		{BoltDiameterMM: 20},
		{BoltDiameterMM: -1, FubMPa: 400},
		{BoltDiameterMM: math.NaN(), FubMPa: 400},
		{BoltDiameterMM: 20, FubMPa: math.Inf(1)},
	} {
		_, err := Calculate(in)
		assert.Error(t, err, "%+v", in)
	}
}
