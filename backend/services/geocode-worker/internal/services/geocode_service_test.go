package services

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leetaniau/foodmap/backend/shared/go-models"
	"github.com/leetaniau/foodmap/backend/shared/go-repositories"
	"github.com/leetaniau/foodmap/backend/shared/go-utils"
)

func seed(t *testing.T, repo repositories.ResourceRepository, id, address, lat, lng string) {
	t.Helper()
	_, err := repo.CreateResource(context.Background(), &models.Resource{
		ID: id, Name: "Pantry " + id, Type: models.ResourceTypeFoodPantry,
		Address: address, Latitude: lat, Longitude: lng,
	})
	require.NoError(t, err)
}

func TestGeocodeAddressRetries(t *testing.T) {
	g := newScriptedGeocoder().on("1 Main St", fail(errProviderDown), fail(errProviderDown), at(42.33, -83.04))
	svc := NewGeocodeService(repositories.NewMemoryResourceRepository(), g, fastOptions())

	res, err := svc.GeocodeAddress(context.Background(), "1 Main St")
	require.NoError(t, err)
	assert.Equal(t, 42.33, res.Lat)
	assert.Equal(t, 3, g.callCount("1 Main St"))
}

func TestGeocodeAddressGivesUpAfterMaxAttempts(t *testing.T) {
	g := newScriptedGeocoder().on("nowhere", fail(errProviderDown))
	svc := NewGeocodeService(repositories.NewMemoryResourceRepository(), g, fastOptions())

	_, err := svc.GeocodeAddress(context.Background(), "nowhere")
	require.ErrorIs(t, err, errProviderDown)
	assert.Equal(t, 3, g.callCount("nowhere"))
}

func TestGeocodeAddressHonorsCancellation(t *testing.T) {
	g := newScriptedGeocoder().on("slow", fail(errProviderDown))
	opts := fastOptions()
	opts.RetryDelay = time.Hour
	svc := NewGeocodeService(repositories.NewMemoryResourceRepository(), g, opts)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := svc.GeocodeAddress(ctx, "slow")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, g.callCount("slow"))
}

func TestGeocodeMissing(t *testing.T) {
	repo := repositories.NewMemoryResourceRepository()
	seed(t, repo, "located", "10 Done Rd", "42.1", "-83.1")
	seed(t, repo, "pending", "1 Main St", "", "")
	seed(t, repo, "far", "Grand Rapids", "", "")
	seed(t, repo, "lost", "Unknown Ln", "", "")

	g := newScriptedGeocoder().
		on("1 Main St", at(42.3347, -83.0499)).
		on("Grand Rapids", at(42.9634, -85.6681))
	svc := NewGeocodeService(repo, g, fastOptions())

	report, err := svc.GeocodeMissing(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Succeeded)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 0, g.callCount("10 Done Rd"), "resources with coordinates are not re-geocoded")
	assert.Equal(t, 3, g.callCount("Unknown Ln"))

	byID := map[string]GeocodeOutcome{}
	for _, o := range report.Outcomes {
		byID[o.ID] = o
	}
	assert.False(t, byID["pending"].OutsideServiceArea)
	assert.True(t, byID["far"].Success, "out-of-area results are kept")
	assert.True(t, byID["far"].OutsideServiceArea)
	assert.Equal(t, "Geocoding failed after retries", byID["lost"].Error)

	stored, err := repo.GetResource(context.Background(), "pending")
	require.NoError(t, err)
	assert.Equal(t, "42.3347", stored.Latitude)
	assert.Equal(t, "-83.0499", stored.Longitude)

	lost, err := repo.GetResource(context.Background(), "lost")
	require.NoError(t, err)
	assert.False(t, lost.HasCoordinates())
}

func TestGeocodeMissingPropagatesStoreErrors(t *testing.T) {
	svc := NewGeocodeService(failingRepo{}, newScriptedGeocoder(), fastOptions())
	_, err := svc.GeocodeMissing(context.Background())
	assert.ErrorIs(t, err, utils.ErrUpstreamUnavailable)
}

func TestWriteReports(t *testing.T) {
	dir := t.TempDir()
	results := filepath.Join(dir, "geocoding-results.json")
	failed := filepath.Join(dir, "geocoding-failed.json")

	report := &GeocodeReport{}
	report.add(GeocodeOutcome{ID: "a", Success: true, Lat: utils.Ptr(1.5), Lng: utils.Ptr(2.5)})
	report.add(GeocodeOutcome{ID: "b", Error: "Empty address"})
	require.NoError(t, report.WriteReports(results, failed))
	assert.InDelta(t, 50.0, report.SuccessRate(), 0.001)

	var all []GeocodeOutcome
	b, err := os.ReadFile(results)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, &all))
	assert.Len(t, all, 2)

	var onlyFailed []GeocodeOutcome
	b, err = os.ReadFile(failed)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, &onlyFailed))
	require.Len(t, onlyFailed, 1)
	assert.Equal(t, "b", onlyFailed[0].ID)
}

func TestWriteReportsSkipsFailedFileWhenClean(t *testing.T) {
	dir := t.TempDir()
	failed := filepath.Join(dir, "geocoding-failed.json")

	report := &GeocodeReport{}
	report.add(GeocodeOutcome{ID: "a", Success: true})
	require.NoError(t, report.WriteReports("", failed))

	_, err := os.Stat(failed)
	assert.True(t, os.IsNotExist(err))
}
