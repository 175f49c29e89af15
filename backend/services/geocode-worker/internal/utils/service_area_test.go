package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServiceAreaContains(t *testing.T) {
	detroit := ServiceArea{CenterLat: 42.3314, CenterLng: -83.0458, RadiusMiles: 35}

	in, mi := detroit.Contains(42.4734, -83.2219) // Southfield
	assert.True(t, in)
	assert.InDelta(t, 13.5, mi, 1.5)

	in, mi = detroit.Contains(42.9634, -85.6681) // Grand Rapids
	assert.False(t, in)
	assert.Greater(t, mi, 100.0)

	in, mi = detroit.Contains(42.3314, -83.0458)
	assert.True(t, in)
	assert.Zero(t, mi)
}
