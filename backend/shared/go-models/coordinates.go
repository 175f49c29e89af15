package models

import (
	"math"
	"strconv"
	"strings"
)

// ParseCoordinate parses a decimal-degree coordinate stored as text.
// Blank, unparseable, NaN and ±Inf values report ok=false.
func ParseCoordinate(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// FormatCoordinate renders a coordinate with the shortest text that
// round-trips, which is what the text columns store.
func FormatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func validLatitude(v float64) bool  { return v >= -90 && v <= 90 }
func validLongitude(v float64) bool { return v >= -180 && v <= 180 }
