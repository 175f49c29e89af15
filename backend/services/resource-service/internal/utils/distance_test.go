package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	detroitLat = 42.3314
	detroitLng = -83.0458
)

func TestDistanceMiles_Symmetric(t *testing.T) {
	points := [][2]float64{
		{42.3690, -83.0877},
		{42.3185, -83.1201},
		{40.7128, -74.0060},
		{-33.8688, 151.2093},
	}
	for _, p := range points {
		ab := DistanceMiles(detroitLat, detroitLng, p[0], p[1])
		ba := DistanceMiles(p[0], p[1], detroitLat, detroitLng)
		assert.Equal(t, ab, ba)
	}
}

func TestDistanceMiles_ZeroForSamePoint(t *testing.T) {
	require.Equal(t, 0.0, DistanceMiles(detroitLat, detroitLng, detroitLat, detroitLng))
}

func TestDistanceMiles_KnownValues(t *testing.T) {
	// One degree of latitude along a meridian is R*pi/180.
	oneDegree := EarthRadiusMiles * math.Pi / 180
	assert.InDelta(t, oneDegree, DistanceMiles(0, 0, 1, 0), 1e-9)

	// Detroit to New York is roughly 481 miles.
	assert.InDelta(t, 481, DistanceMiles(detroitLat, detroitLng, 40.7128, -74.0060), 2)

	// Antipodes stay finite.
	d := DistanceMiles(0, 0, 0, 180)
	assert.InDelta(t, EarthRadiusMiles*math.Pi, d, 1e-6)
}

func TestFormatMiles(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "< 0.1 mi"},
		{0.05, "< 0.1 mi"},
		{0.0999, "< 0.1 mi"},
		{0.1, "0.1 mi"},
		{0.4, "0.4 mi"},
		{0.40077, "0.4 mi"},
		{1.25, "1.3 mi"},
		{2.05, "2.1 mi"},
		{2.04, "2.0 mi"},
		{12.96, "13.0 mi"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatMiles(tc.in), "FormatMiles(%v)", tc.in)
	}
}

func TestFormatMiles_NonFinite(t *testing.T) {
	assert.Equal(t, "", FormatMiles(math.NaN()))
	assert.Equal(t, "", FormatMiles(math.Inf(1)))
	assert.Equal(t, "", FormatMiles(-1))
}
