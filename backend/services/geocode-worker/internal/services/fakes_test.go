package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/leetaniau/foodmap/backend/shared/go-models"
	"github.com/leetaniau/foodmap/backend/shared/go-repositories"
	"github.com/leetaniau/foodmap/backend/shared/go-utils"

	gutils "github.com/leetaniau/foodmap/backend/services/geocode-worker/internal/utils"
)

var errProviderDown = errors.New("provider down")

// scriptedGeocoder answers per address; each call pops the next scripted
// response and repeats the last one once the script runs out.
type scriptedGeocoder struct {
	mu      sync.Mutex
	scripts map[string][]geoAnswer
	calls   map[string]int
}

type geoAnswer struct {
	res *gutils.GeocodeResult
	err error
}

func newScriptedGeocoder() *scriptedGeocoder {
	return &scriptedGeocoder{scripts: map[string][]geoAnswer{}, calls: map[string]int{}}
}

func (g *scriptedGeocoder) on(address string, answers ...geoAnswer) *scriptedGeocoder {
	g.scripts[address] = answers
	return g
}

func (g *scriptedGeocoder) Geocode(ctx context.Context, address string) (*gutils.GeocodeResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := g.calls[address]
	g.calls[address] = n + 1

	script := g.scripts[address]
	if len(script) == 0 {
		return nil, gutils.ErrNoGeocodeResults
	}
	if n >= len(script) {
		n = len(script) - 1
	}
	return script[n].res, script[n].err
}

func (g *scriptedGeocoder) callCount(address string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[address]
}

func at(lat, lng float64) geoAnswer {
	return geoAnswer{res: &gutils.GeocodeResult{Lat: lat, Lng: lng, LocationType: "ROOFTOP"}}
}

func fail(err error) geoAnswer { return geoAnswer{err: err} }

var detroitArea = gutils.ServiceArea{CenterLat: 42.3314, CenterLng: -83.0458, RadiusMiles: 35}

func fastOptions() GeocodeOptions {
	return GeocodeOptions{MaxAttempts: 3, ServiceArea: detroitArea}
}

// failingRepo simulates an unreachable store.
type failingRepo struct {
	repositories.ResourceRepository
}

func (failingRepo) ListResources(ctx context.Context) ([]*models.Resource, error) {
	return nil, fmt.Errorf("list: %w", utils.ErrUpstreamUnavailable)
}
