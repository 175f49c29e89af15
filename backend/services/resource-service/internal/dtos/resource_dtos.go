package dtos

import (
	"github.com/leetaniau/foodmap/backend/shared/go-models"
)

// CreateResourceRequest is the body of POST /api/v1/resources. The persisted
// display distance is owned by import tooling and is not accepted here.
type CreateResourceRequest struct {
	ID                  string  `json:"id" validate:"omitempty,max=64"`
	Name                string  `json:"name" validate:"required,max=200"`
	Type                string  `json:"type" validate:"required,resource_type"`
	Address             string  `json:"address" validate:"required,max=500"`
	Latitude            string  `json:"latitude" validate:"required_with=Longitude,omitempty,coordinate"`
	Longitude           string  `json:"longitude" validate:"required_with=Latitude,omitempty,coordinate"`
	Hours               *string `json:"hours" validate:"omitempty,max=200"`
	IsOpen              bool    `json:"isOpen"`
	IsFavorite          bool    `json:"isFavorite"`
	Phone               *string `json:"phone" validate:"omitempty,max=40"`
	AppointmentRequired bool    `json:"appointmentRequired"`
}

func (r CreateResourceRequest) ToModel() *models.Resource {
	return &models.Resource{
		ID:                  r.ID,
		Name:                r.Name,
		Type:                models.ResourceType(r.Type),
		Address:             r.Address,
		Latitude:            r.Latitude,
		Longitude:           r.Longitude,
		Hours:               r.Hours,
		IsOpen:              r.IsOpen,
		IsFavorite:          r.IsFavorite,
		Phone:               r.Phone,
		AppointmentRequired: r.AppointmentRequired,
	}
}

// SetFavoriteRequest is the body of PATCH /api/v1/resources/{id}/favorite.
type SetFavoriteRequest struct {
	IsFavorite *bool `json:"isFavorite" validate:"required"`
}
