package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/leetaniau/foodmap/backend/shared/go-utils"
)

// Resource is a single food-assistance site.
//
// Latitude/Longitude are kept as text so imported values round-trip exactly;
// both are blank while a resource waits for geocoding. Distance is the last
// display distance persisted by import tooling, not a computed value.
type Resource struct {
	Versioned
	ID                  string       `json:"id"`
	Name                string       `json:"name"`
	Type                ResourceType `json:"type"`
	Address             string       `json:"address"`
	Latitude            string       `json:"latitude"`
	Longitude           string       `json:"longitude"`
	Hours               *string      `json:"hours"`
	IsOpen              bool         `json:"isOpen"`
	Distance            *string      `json:"distance"`
	IsFavorite          bool         `json:"isFavorite"`
	Phone               *string      `json:"phone"`
	AppointmentRequired bool         `json:"appointmentRequired"`
	CreatedAt           time.Time    `json:"-"`
}

func (r *Resource) GetID() string { return r.ID }

// Clone returns a deep copy so callers never share pointer fields with the store.
func (r *Resource) Clone() *Resource {
	if r == nil {
		return nil
	}
	c := *r
	c.Hours = clonePtr(r.Hours)
	c.Distance = clonePtr(r.Distance)
	c.Phone = clonePtr(r.Phone)
	return &c
}

// Coordinates returns the parsed position. ok is false when either value is
// blank or not a finite number.
func (r *Resource) Coordinates() (lat, lng float64, ok bool) {
	lat, latOK := ParseCoordinate(r.Latitude)
	lng, lngOK := ParseCoordinate(r.Longitude)
	if !latOK || !lngOK {
		return 0, 0, false
	}
	return lat, lng, true
}

// HasCoordinates reports whether both coordinate columns are populated.
func (r *Resource) HasCoordinates() bool {
	return strings.TrimSpace(r.Latitude) != "" && strings.TrimSpace(r.Longitude) != ""
}

// Normalize trims free-text fields and collapses blank optionals to nil.
func (r *Resource) Normalize() {
	r.ID = strings.TrimSpace(r.ID)
	r.Name = strings.TrimSpace(r.Name)
	r.Address = strings.TrimSpace(r.Address)
	r.Latitude = strings.TrimSpace(r.Latitude)
	r.Longitude = strings.TrimSpace(r.Longitude)
	if t, ok := ParseResourceType(string(r.Type)); ok {
		r.Type = t
	}
	r.Hours = utils.TrimPtr(r.Hours)
	r.Distance = utils.TrimPtr(r.Distance)
	r.Phone = utils.TrimPtr(r.Phone)
}

// Validate enforces the fields a store accepts on create.
func (r *Resource) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("%w: name is required", utils.ErrValidationFailed)
	}
	if !r.Type.IsValid() {
		return fmt.Errorf("%w: type %q is not a known resource type", utils.ErrValidationFailed, r.Type)
	}
	if r.Address == "" {
		return fmt.Errorf("%w: address is required", utils.ErrValidationFailed)
	}
	return validateCoordinatePair(r.Latitude, r.Longitude)
}

// validateCoordinatePair accepts two blanks or two in-range finite decimals.
func validateCoordinatePair(latStr, lngStr string) error {
	latBlank := strings.TrimSpace(latStr) == ""
	lngBlank := strings.TrimSpace(lngStr) == ""
	if latBlank && lngBlank {
		return nil
	}
	if latBlank != lngBlank {
		return fmt.Errorf("%w: latitude and longitude must be set together", utils.ErrValidationFailed)
	}
	lat, ok := ParseCoordinate(latStr)
	if !ok || !validLatitude(lat) {
		return fmt.Errorf("%w: latitude %q is malformed", utils.ErrValidationFailed, latStr)
	}
	lng, ok := ParseCoordinate(lngStr)
	if !ok || !validLongitude(lng) {
		return fmt.Errorf("%w: longitude %q is malformed", utils.ErrValidationFailed, lngStr)
	}
	return nil
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
