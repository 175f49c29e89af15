package models

import (
	"fmt"

	"github.com/leetaniau/foodmap/backend/shared/go-utils"
)

// ResourceUpdate is one of the enumerated partial updates a store accepts.
// Arbitrary field merges are intentionally not representable.
type ResourceUpdate interface {
	Validate() error
	Apply(r *Resource)
	Kind() string
}

// FavoriteUpdate toggles the user favorite flag.
type FavoriteUpdate struct {
	IsFavorite bool
}

func (u FavoriteUpdate) Validate() error   { return nil }
func (u FavoriteUpdate) Apply(r *Resource) { r.IsFavorite = u.IsFavorite }
func (u FavoriteUpdate) Kind() string      { return "favorite" }

// OpenStatusUpdate sets the curated open flag.
type OpenStatusUpdate struct {
	IsOpen bool
}

func (u OpenStatusUpdate) Validate() error   { return nil }
func (u OpenStatusUpdate) Apply(r *Resource) { r.IsOpen = u.IsOpen }
func (u OpenStatusUpdate) Kind() string      { return "open_status" }

// CoordinatesUpdate writes geocoded coordinates.
type CoordinatesUpdate struct {
	Latitude  float64
	Longitude float64
}

func (u CoordinatesUpdate) Validate() error {
	if !validLatitude(u.Latitude) || !validLongitude(u.Longitude) {
		return fmt.Errorf("%w: coordinates (%v, %v) out of range", utils.ErrValidationFailed, u.Latitude, u.Longitude)
	}
	return nil
}

func (u CoordinatesUpdate) Apply(r *Resource) {
	r.Latitude = FormatCoordinate(u.Latitude)
	r.Longitude = FormatCoordinate(u.Longitude)
}

func (u CoordinatesUpdate) Kind() string { return "coordinates" }

// ContactUpdate sets phone and appointment requirements (schema v2 columns).
type ContactUpdate struct {
	Phone               *string
	AppointmentRequired bool
}

func (u ContactUpdate) Validate() error { return nil }

func (u ContactUpdate) Apply(r *Resource) {
	r.Phone = utils.TrimPtr(u.Phone)
	r.AppointmentRequired = u.AppointmentRequired
}

func (u ContactUpdate) Kind() string { return "contact" }
