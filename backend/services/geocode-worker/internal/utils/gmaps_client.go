package utils

import (
	"context"
	"errors"
	"fmt"

	"googlemaps.github.io/maps"
)

// ErrNoGeocodeResults means the provider answered but matched nothing.
var ErrNoGeocodeResults = errors.New("no geocoding results")

// GeocodeResult is the first match the provider returned for an address.
type GeocodeResult struct {
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
	FormattedAddress string  `json:"formattedAddress,omitempty"`
	LocationType     string  `json:"locationType,omitempty"`
	PartialMatch     bool    `json:"partialMatch,omitempty"`
}

// Geocoder turns a free-text address into coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*GeocodeResult, error)
}

/*──────────── Google Geocoding API ────────────*/

type GoogleGeocoder struct {
	client *maps.Client
}

func NewGoogleGeocoder(apiKey string) (*GoogleGeocoder, error) {
	if apiKey == "" {
		return nil, errors.New("google maps api key is empty")
	}
	c, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("init google maps client: %w", err)
	}
	return &GoogleGeocoder{client: c}, nil
}

func (g *GoogleGeocoder) Geocode(ctx context.Context, address string) (*GeocodeResult, error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		return nil, fmt.Errorf("geocode %q: %w", address, err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("geocode %q: %w", address, ErrNoGeocodeResults)
	}
	top := results[0]
	return &GeocodeResult{
		Lat:              top.Geometry.Location.Lat,
		Lng:              top.Geometry.Location.Lng,
		FormattedAddress: top.FormattedAddress,
		LocationType:     top.Geometry.LocationType,
		PartialMatch:     top.PartialMatch,
	}, nil
}
