package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance_KnownPoints(t *testing.T) {
	// Client site in Bangalore vs a check-in a few hundred meters away.
	d, err := Distance(12.9716, 77.5946, 12.9720, 77.5950)
	require.NoError(t, err)
	assert.InDelta(t, 0.06, d, 0.01)

	// Bangalore to Chennai, roughly 290 km.
	d, err = Distance(12.9716, 77.5946, 13.0827, 80.2707)
	require.NoError(t, err)
	assert.InDelta(t, 290, d, 10)
}

func TestDistance_Symmetry(t *testing.T) {
	pairs := [][4]float64{
		{12.9716, 77.5946, 13.0827, 80.2707},
		{-33.8688, 151.2093, 51.5074, -0.1278},
		{0, 0, 0, 180},
		{89.9, 179.9, -89.9, -179.9},
	}
	for _, p := range pairs {
		ab, err := Distance(p[0], p[1], p[2], p[3])
		require.NoError(t, err)
		ba, err := Distance(p[2], p[3], p[0], p[1])
		require.NoError(t, err)
		assert.InDelta(t, ab, ba, 1e-9)
	}
}

func TestDistance_IdenticalPoints(t *testing.T) {
	d, err := Distance(12.9716, 77.5946, 12.9716, 77.5946)
	require.NoError(t, err)
	assert.Equal(t, 0.0, d)
}

func TestDistance_InvalidCoordinates(t *testing.T) {
	cases := [][4]float64{
		{91, 0, 0, 0},
		{-91, 0, 0, 0},
		{0, 181, 0, 0},
		{0, -181, 0, 0},
		{0, 0, 90.0001, 0},
		{0, 0, 0, 180.0001},
		{math.NaN(), 0, 0, 0},
		{0, math.Inf(1), 0, 0},
		{0, 0, math.Inf(-1), 0},
	}
	for _, c := range cases {
		_, err := Distance(c[0], c[1], c[2], c[3])
		assert.ErrorIs(t, err, ErrInvalidCoordinate)
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 0.06, Round2(0.0564))
	assert.Equal(t, 290.18, Round2(290.1751))
	assert.Equal(t, 0.0, Round2(0.0))
}
