package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/leetaniau/foodmap/backend/shared/go-models"
	"github.com/leetaniau/foodmap/backend/shared/go-utils"
)

func TestMemorySubmissionRepo_CreateAndList(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySubmissionRepository()

	s, err := repo.CreateSubmission(ctx, &models.Submission{
		Name:        "Corner Fridge",
		Type:        models.ResourceTypeCommunityFridge,
		Address:     "4 Vernor Hwy",
		SubmittedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	require.NotEmpty(t, s.ID)

	list, err := repo.ListSubmissions(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, s.ID, list[0].ID)
}

func TestMemorySubmissionRepo_RejectsInvalid(t *testing.T) {
	_, err := NewMemorySubmissionRepository().CreateSubmission(context.Background(), &models.Submission{
		Name:    "No type",
		Address: "1 Main",
	})
	require.ErrorIs(t, err, utils.ErrValidationFailed)
}
