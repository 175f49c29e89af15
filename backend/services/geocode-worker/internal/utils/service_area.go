package utils

import (
	"github.com/umahmood/haversine"
)

// ServiceArea is a circle around the city a deployment serves.
type ServiceArea struct {
	CenterLat   float64
	CenterLng   float64
	RadiusMiles float64
}

// Contains reports whether (lat, lng) lies within the radius, along with the
// great-circle distance from the center in miles.
func (a ServiceArea) Contains(lat, lng float64) (bool, float64) {
	center := haversine.Coord{Lat: a.CenterLat, Lon: a.CenterLng}
	point := haversine.Coord{Lat: lat, Lon: lng}
	mi, _ := haversine.Distance(center, point)
	return mi <= a.RadiusMiles, mi
}
