package dtos

import (
	"github.com/go-playground/validator/v10"

	"github.com/leetaniau/foodmap/backend/shared/go-models"
)

// Validate is the shared validator for every request DTO. It knows the
// custom "resource_type" tag.
var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("resource_type", func(fl validator.FieldLevel) bool {
		_, ok := models.ParseResourceType(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("coordinate", func(fl validator.FieldLevel) bool {
		_, ok := models.ParseCoordinate(fl.Field().String())
		return ok
	})
	return v
}
