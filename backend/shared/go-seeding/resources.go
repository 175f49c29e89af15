package seeding

import (
	"context"
	"errors"
	"fmt"

	"github.com/leetaniau/foodmap/backend/shared/go-models"
	"github.com/leetaniau/foodmap/backend/shared/go-repositories"
	"github.com/leetaniau/foodmap/backend/shared/go-utils"
)

// DefaultResources returns the Detroit sample set used for local and dev
// environments. IDs are fixed so repeated seeding is a no-op.
func DefaultResources() []*models.Resource {
	return []*models.Resource{
		{
			ID:        "6f1b9a1e-0c4d-4c1a-9c53-1a1f0e5d0001",
			Name:      "Cass Community Social Services",
			Type:      models.ResourceTypeFoodPantry,
			Address:   "11850 Woodrow Wilson St, Detroit, MI 48206",
			Latitude:  "42.3690",
			Longitude: "-83.0877",
			Hours:     utils.Ptr("Mon-Fri 10AM-2PM"),
			IsOpen:    true,
			Distance:  utils.Ptr("0.4 mi"),
		},
		{
			ID:        "6f1b9a1e-0c4d-4c1a-9c53-1a1f0e5d0002",
			Name:      "Southwest Community Fridge",
			Type:      models.ResourceTypeCommunityFridge,
			Address:   "7310 W Vernor Hwy, Detroit, MI 48209",
			Latitude:  "42.3185",
			Longitude: "-83.1201",
			Hours:     utils.Ptr("24/7"),
			IsOpen:    true,
			Distance:  utils.Ptr("1.2 mi"),
		},
		{
			ID:        "6f1b9a1e-0c4d-4c1a-9c53-1a1f0e5d0003",
			Name:      "Capuchin Soup Kitchen",
			Type:      models.ResourceTypeHotMeal,
			Address:   "4390 Conner St, Detroit, MI 48215",
			Latitude:  "42.3827",
			Longitude: "-82.9898",
			Hours:     utils.Ptr("Mon-Sat 11:30AM-1PM"),
			IsOpen:    false,
			Distance:  utils.Ptr("2.1 mi"),
		},
		{
			ID:        "6f1b9a1e-0c4d-4c1a-9c53-1a1f0e5d0004",
			Name:      "Gleaners Community Food Bank",
			Type:      models.ResourceTypeFoodPantry,
			Address:   "2131 Beaufait St, Detroit, MI 48207",
			Latitude:  "42.3505",
			Longitude: "-83.0245",
			Hours:     utils.Ptr("Tue-Thu 9AM-4PM"),
			IsOpen:    true,
			Distance:  utils.Ptr("1.8 mi"),
		},
		{
			ID:        "6f1b9a1e-0c4d-4c1a-9c53-1a1f0e5d0005",
			Name:      "Midtown Community Fridge",
			Type:      models.ResourceTypeCommunityFridge,
			Address:   "4160 Cass Ave, Detroit, MI 48201",
			Latitude:  "42.3504",
			Longitude: "-83.0642",
			Hours:     utils.Ptr("24/7"),
			IsOpen:    true,
			Distance:  utils.Ptr("0.7 mi"),
		},
	}
}

// SeedDefaultResources inserts DefaultResources, skipping rows that already
// exist. It returns how many rows were inserted.
func SeedDefaultResources(ctx context.Context, repo repositories.ResourceRepository) (int, error) {
	inserted := 0
	for _, res := range DefaultResources() {
		existing, err := repo.GetResource(ctx, res.ID)
		if err != nil && !errors.Is(err, utils.ErrNotFound) {
			return inserted, fmt.Errorf("error checking for existing resource %s: %w", res.ID, err)
		}
		if existing != nil {
			utils.Logger.Debugf("Resource %q already seeded; skipping.", res.Name)
			continue
		}

		if _, err := repo.CreateResource(ctx, res); err != nil {
			if errors.Is(err, utils.ErrConflict) {
				continue
			}
			return inserted, fmt.Errorf("failed to seed resource %q: %w", res.Name, err)
		}
		inserted++
	}
	utils.Logger.Infof("Seeded %d default resources.", inserted)
	return inserted, nil
}
