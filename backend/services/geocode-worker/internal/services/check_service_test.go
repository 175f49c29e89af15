package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leetaniau/foodmap/backend/shared/go-models"
	"github.com/leetaniau/foodmap/backend/shared/go-repositories"
	"github.com/leetaniau/foodmap/backend/shared/go-utils"
)

func TestCheckInventory(t *testing.T) {
	repo := repositories.NewMemoryResourceRepository()
	seed(t, repo, "a", "1 Main St", "42.3", "-83.0")
	seed(t, repo, "b", "2 Main St", "", "")
	seed(t, repo, "c", "3 Main St", "", "")
	_, err := repo.UpdateResource(context.Background(), "a", models.ContactUpdate{Phone: utils.Ptr("313-555-0100"), AppointmentRequired: true})
	require.NoError(t, err)

	inv, err := CheckInventory(context.Background(), repo, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, inv.Total)
	assert.Equal(t, 1, inv.WithCoordinates)
	assert.Equal(t, 2, inv.MissingCoordinates)
	assert.Equal(t, 1, inv.WithPhone)
	assert.Equal(t, 1, inv.AppointmentRequired)
	assert.Len(t, inv.MissingSample, 1)
	assert.Equal(t, []string{"Pantry a: 42.3, -83.0"}, inv.LocatedSample)
}
