package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leetaniau/foodmap/backend/shared/go-models"
	"github.com/leetaniau/foodmap/backend/shared/go-repositories"
)

const sampleCSV = "\ufeffid,name,type,address,phone,latitude,longitude,hours,distance,appointment_required\n" +
	"r1,Eastside Pantry,Food Pantry,\"100 Gratiot Ave, Detroit, MI\",313-555-0100,42.3400,-83.0300,Mon 9-5,1.2 mi,Yes\n" +
	"r2,Corner Fridge,,200 Vernor Hwy,,,,,,no\n" +
	"\n" +
	"r3,Hot Plate,hot meal,300 Woodward Ave,,42.3500,-83.0500,,,TRUE\n"

func TestParseCSV(t *testing.T) {
	rows, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "r1", rows[0].ID, "BOM must not leak into the first header")
	assert.Equal(t, "100 Gratiot Ave, Detroit, MI", rows[0].Address)
	assert.Equal(t, "Yes", rows[0].AppointmentRequired)
	assert.Empty(t, rows[1].Latitude)
}

func TestParseCSVRequiresNameAndAddress(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("id,title\n1,x\n"))
	assert.Error(t, err)

	_, err = ParseCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestCSVRowToResource(t *testing.T) {
	rows, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	r1 := rows[0].ToResource()
	assert.True(t, r1.AppointmentRequired)
	require.NotNil(t, r1.Phone)
	assert.Equal(t, "313-555-0100", *r1.Phone)
	require.NotNil(t, r1.Distance)
	assert.Equal(t, "1.2 mi", *r1.Distance)

	r2 := rows[1].ToResource()
	assert.Equal(t, models.ResourceTypeFoodPantry, r2.Type, "empty type defaults to Food Pantry")
	assert.False(t, r2.AppointmentRequired)
	assert.Nil(t, r2.Phone)

	r3 := rows[2].ToResource()
	assert.Equal(t, models.ResourceTypeHotMeal, r3.Type)
	assert.True(t, r3.AppointmentRequired)
}

func TestImport(t *testing.T) {
	repo := repositories.NewMemoryResourceRepository()
	g := newScriptedGeocoder().on("200 Vernor Hwy", at(42.3290, -83.0700))
	svc := NewImportService(repo, NewGeocodeService(repo, g, fastOptions()))

	rows, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	sum, err := svc.Import(context.Background(), rows)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Total)
	assert.Equal(t, 3, sum.Imported)
	assert.Equal(t, 1, sum.Geocoded)
	assert.Zero(t, sum.Failed)

	fridge, err := repo.GetResource(context.Background(), "r2")
	require.NoError(t, err)
	assert.Equal(t, "42.329", fridge.Latitude)
	assert.Equal(t, "-83.07", fridge.Longitude)

	eastside, err := repo.GetResource(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, "42.3400", eastside.Latitude, "imported coordinates keep their text")

	// A second run skips every id that already exists.
	sum, err = svc.Import(context.Background(), rows)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Skipped)
	assert.Zero(t, sum.Imported)
}

func TestImportUpdatesContactsForExistingRows(t *testing.T) {
	repo := repositories.NewMemoryResourceRepository()
	seed(t, repo, "r1", "100 Gratiot Ave", "42.34", "-83.03")

	svc := NewImportService(repo, nil)
	svc.UpdateContacts = true

	rows := []CSVRow{{
		ID: "r1", Name: "Eastside Pantry", Address: "100 Gratiot Ave",
		Latitude: "42.34", Longitude: "-83.03", Phone: "313-555-0199", AppointmentRequired: "yes",
	}}
	sum, err := svc.Import(context.Background(), rows)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Updated)

	got, err := repo.GetResource(context.Background(), "r1")
	require.NoError(t, err)
	require.NotNil(t, got.Phone)
	assert.Equal(t, "313-555-0199", *got.Phone)
	assert.True(t, got.AppointmentRequired)
}

func TestImportCountsFailures(t *testing.T) {
	repo := repositories.NewMemoryResourceRepository()
	svc := NewImportService(repo, nil)

	rows := []CSVRow{
		{ID: "a", Name: "No Coords", Address: "1 Main St"},
		{ID: "b", Name: "Bad Type", Type: "Restaurant", Address: "2 Main St", Latitude: "42.3", Longitude: "-83.0"},
		{ID: "c", Name: "", Address: "3 Main St", Latitude: "42.3", Longitude: "-83.0"},
	}
	sum, err := svc.Import(context.Background(), rows)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Failed)

	all, err := repo.ListResources(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}
