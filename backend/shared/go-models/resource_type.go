package models

import "strings"

// ResourceType is the closed set of food-assistance categories.
type ResourceType string

const (
	ResourceTypeFoodPantry      ResourceType = "Food Pantry"
	ResourceTypeCommunityFridge ResourceType = "Community Fridge"
	ResourceTypeHotMeal         ResourceType = "Hot Meal"
	ResourceTypeSoupKitchen     ResourceType = "Soup Kitchen"
)

// AllResourceTypes lists every accepted category in display order.
var AllResourceTypes = []ResourceType{
	ResourceTypeFoodPantry,
	ResourceTypeCommunityFridge,
	ResourceTypeHotMeal,
	ResourceTypeSoupKitchen,
}

func (t ResourceType) IsValid() bool {
	for _, v := range AllResourceTypes {
		if t == v {
			return true
		}
	}
	return false
}

func (t ResourceType) String() string { return string(t) }

// ParseResourceType matches s case-insensitively against the closed set and
// returns the canonical spelling.
func ParseResourceType(s string) (ResourceType, bool) {
	s = strings.TrimSpace(s)
	for _, v := range AllResourceTypes {
		if strings.EqualFold(s, string(v)) {
			return v, true
		}
	}
	return "", false
}
