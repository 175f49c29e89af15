package utils

const (
	OrganizationName                      = "FoodMap"
	CORSLowSecurityAllowedOriginLocalhost = "http://localhost:*"

	// Service area used by the geocoding tooling for sanity checks (Detroit, MI).
	DefaultServiceAreaCenterLat   = 42.3314
	DefaultServiceAreaCenterLng   = -83.0458
	DefaultServiceAreaRadiusMiles = 35.0
)
