package app

import (
	"context"
	"fmt"

	"github.com/leetaniau/foodmap/backend/shared/go-repositories"
	"github.com/leetaniau/foodmap/backend/shared/go-seeding"
	"github.com/leetaniau/foodmap/backend/shared/go-utils"
)

// SeedTestData loads the demo resource set. Already-seeded rows are skipped.
func SeedTestData(ctx context.Context, repo repositories.ResourceRepository) error {
	n, err := seeding.SeedDefaultResources(ctx, repo)
	if err != nil {
		return fmt.Errorf("seed default resources: %w", err)
	}
	if n == 0 {
		utils.Logger.Info("resource-service: seed data already present; skipping seeding")
	}
	return nil
}
