package repositories

import (
	"context"
	"fmt"

	"github.com/leetaniau/foodmap/backend/shared/go-utils"
)

type migration struct {
	Version     int
	Description string
	SQL         string
}

// migrations are additive; columns are only ever added, never dropped, so a
// newer binary can read rows written by an older one.
var migrations = []migration{
	{
		Version:     1,
		Description: "create food_resources and submissions",
		SQL: `
        CREATE TABLE IF NOT EXISTS food_resources (
            id          VARCHAR PRIMARY KEY,
            name        TEXT NOT NULL,
            type        VARCHAR(50) NOT NULL,
            address     TEXT NOT NULL,
            latitude    TEXT,
            longitude   TEXT,
            hours       TEXT,
            is_open     BOOLEAN DEFAULT FALSE,
            distance    TEXT,
            is_favorite BOOLEAN DEFAULT FALSE
        );

        CREATE TABLE IF NOT EXISTS submissions (
            id            VARCHAR PRIMARY KEY,
            resource_name TEXT NOT NULL,
            resource_type VARCHAR(50) NOT NULL,
            address       TEXT NOT NULL,
            hours         TEXT,
            photo_url     TEXT,
            submitted_at  TIMESTAMPTZ DEFAULT NOW()
        );`,
	},
	{
		Version:     2,
		Description: "add phone and appointment_required",
		SQL: `
        ALTER TABLE food_resources ADD COLUMN IF NOT EXISTS phone TEXT;
        ALTER TABLE food_resources ADD COLUMN IF NOT EXISTS appointment_required BOOLEAN DEFAULT FALSE;`,
	},
	{
		Version:     3,
		Description: "add created_at ordering key and row_version",
		SQL: `
        ALTER TABLE food_resources ADD COLUMN IF NOT EXISTS created_at TIMESTAMPTZ NOT NULL DEFAULT NOW();
        ALTER TABLE food_resources ADD COLUMN IF NOT EXISTS row_version BIGINT NOT NULL DEFAULT 1;
        CREATE INDEX IF NOT EXISTS idx_food_resources_created_at ON food_resources (created_at, id);`,
	},
}

// SchemaVersion is the version EnsureSchema migrates to.
func SchemaVersion() int {
	return migrations[len(migrations)-1].Version
}

// EnsureSchema applies every migration newer than the recorded version.
// Each statement is idempotent, so concurrent start-ups are harmless.
func EnsureSchema(ctx context.Context, db DB) error {
	if _, err := db.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS schema_migrations (
            version    INT PRIMARY KEY,
            applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`); err != nil {
		return upstream("create schema_migrations", err)
	}

	var current int
	if err := db.QueryRow(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return upstream("read schema version", err)
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		if _, err := db.Exec(ctx, m.SQL); err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Description, err)
		}
		if _, err := db.Exec(ctx,
			`INSERT INTO schema_migrations (version) VALUES ($1) ON CONFLICT (version) DO NOTHING`,
			m.Version,
		); err != nil {
			return upstream("record schema version", err)
		}
		utils.Logger.Infof("Applied schema migration %d: %s", m.Version, m.Description)
	}
	return nil
}
