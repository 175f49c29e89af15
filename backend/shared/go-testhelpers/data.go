package testhelpers

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/leetaniau/foodmap/backend/shared/go-models"
	"github.com/leetaniau/foodmap/backend/shared/go-utils"
)

// UniqueName generates a resource name that won't collide across runs.
func UniqueName(prefix string) string {
	return fmt.Sprintf("%s %d", prefix, time.Now().UnixNano())
}

// CreateTestResource persists a pantry at the given coordinates. Pass empty
// strings to create one that still needs geocoding.
func (h *TestHelper) CreateTestResource(ctx context.Context, namePrefix, lat, lng string) *models.Resource {
	res := &models.Resource{
		ID:        uuid.NewString(),
		Name:      UniqueName(namePrefix),
		Type:      models.ResourceTypeFoodPantry,
		Address:   "1 Test Ave, Detroit, MI 48201",
		Latitude:  lat,
		Longitude: lng,
		Hours:     utils.Ptr("Mon-Fri 9AM-5PM"),
		IsOpen:    true,
	}
	created, err := h.ResourceRepo.CreateResource(ctx, res)
	require.NoError(h.T, err, "Failed to create test resource")
	require.NotNil(h.T, created)
	return created
}

// DeleteTestResource removes a row created by a test.
func (h *TestHelper) DeleteTestResource(ctx context.Context, id string) {
	_, err := h.DB.Exec(ctx, `DELETE FROM food_resources WHERE id=$1`, id)
	require.NoError(h.T, err)
}
