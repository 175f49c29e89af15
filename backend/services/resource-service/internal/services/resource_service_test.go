package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leetaniau/foodmap/backend/shared/go-models"
	"github.com/leetaniau/foodmap/backend/shared/go-repositories"
	"github.com/leetaniau/foodmap/backend/shared/go-utils"

	"github.com/leetaniau/foodmap/backend/services/resource-service/internal/dtos"
)

func TestResourceService_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	svc := NewResourceService(repositories.NewMemoryResourceRepository())

	created, err := svc.CreateResource(ctx, dtos.CreateResourceRequest{
		Name:      "Midtown Community Fridge",
		Type:      "community fridge",
		Address:   "4160 Cass Ave, Detroit, MI 48201",
		Latitude:  "42.3504",
		Longitude: "-83.0642",
		Hours:     utils.Ptr("24/7"),
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, models.ResourceTypeCommunityFridge, created.Type)

	got, err := svc.GetResource(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.Name, got.Name)
	require.Equal(t, "24/7", *got.Hours)
}

func TestResourceService_CreateMissingNameLeavesStoreUnchanged(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryResourceRepository()
	svc := NewResourceService(repo)

	_, err := svc.CreateResource(ctx, dtos.CreateResourceRequest{
		Name:    "   ",
		Type:    "Food Pantry",
		Address: "1 Main St",
	})
	require.ErrorIs(t, err, utils.ErrValidationFailed)

	list, err := repo.ListResources(ctx)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestResourceService_GetUnknown(t *testing.T) {
	_, err := NewResourceService(repositories.NewMemoryResourceRepository()).GetResource(context.Background(), "nope")
	require.ErrorIs(t, err, utils.ErrNotFound)
}

func TestResourceService_SetFavorite(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryResourceRepository()
	svc := NewResourceService(repo)

	created, err := svc.CreateResource(ctx, dtos.CreateResourceRequest{
		Name: "Pantry", Type: "Food Pantry", Address: "1 Main St",
	})
	require.NoError(t, err)
	require.False(t, created.IsFavorite)

	updated, err := svc.SetFavorite(ctx, created.ID, true)
	require.NoError(t, err)
	require.True(t, updated.IsFavorite)

	_, err = svc.SetFavorite(ctx, "missing", true)
	require.ErrorIs(t, err, utils.ErrNotFound)
}
