package utils

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	// EarthRadiusMiles is the mean radius used for every displayed distance.
	EarthRadiusMiles = 3959.0

	// NearThresholdMiles is the smallest distance shown as a number.
	NearThresholdMiles = 0.1

	nearLabel = "< 0.1 mi"
)

// DistanceMiles returns the great-circle distance between two points given in
// decimal degrees. It is symmetric and zero for identical points.
func DistanceMiles(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	a := sinLat*sinLat + math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*sinLon*sinLon
	// Float error can push a a hair past 1 for antipodal points.
	a = math.Min(1, math.Max(0, a))

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusMiles * c
}

// FormatMiles renders a distance for display: "< 0.1 mi" below the
// threshold, otherwise one decimal rounded half away from zero ("2.05" -> "2.1 mi").
// Non-finite and negative input yields "".
func FormatMiles(miles float64) string {
	if math.IsNaN(miles) || math.IsInf(miles, 0) || miles < 0 {
		return ""
	}
	if miles < NearThresholdMiles {
		return nearLabel
	}
	return decimal.NewFromFloat(miles).StringFixed(1) + " mi"
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
