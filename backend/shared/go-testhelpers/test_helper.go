package testhelpers

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/leetaniau/foodmap/backend/shared/go-repositories"
	"github.com/leetaniau/foodmap/backend/shared/go-utils"
)

// TestHelper encapsulates the components integration suites share: the
// running service's base URL, a DB pool and repositories over it.
type TestHelper struct {
	T       *testing.T
	Ctx     context.Context
	BaseURL string
	DB      *pgxpool.Pool

	AppName string

	// Repositories
	ResourceRepo   repositories.ResourceRepository
	SubmissionRepo repositories.SubmissionRepository
}

// NewTestHelper loads the environment, connects to the DB and initializes
// repositories. It's designed to be called once from a TestMain function.
func NewTestHelper(t *testing.T, appName string) *TestHelper {
	utils.LoadDotEnv()

	// 1. Load environment
	baseURL := os.Getenv("APP_URL_FROM_ANYWHERE")
	if baseURL == "" {
		log.Fatal("APP_URL_FROM_ANYWHERE env var is missing")
	}
	env := utils.GetEnv("ENV", "dev")

	// 2. DB URL from env, else from the app's Bitwarden project
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" && utils.BWSEnabled() {
		client, err := utils.NewBWSSecretsClient()
		require.NoError(t, err, "Failed to init BWSSecretsClient")
		defer client.Close()

		secrets, err := client.GetBWSSecrets(fmt.Sprintf("%s-%s", appName, env))
		require.NoError(t, err, "Failed to fetch app secrets")
		dbURL = secrets["DATABASE_URL"]
	}
	require.NotEmpty(t, dbURL, "DATABASE_URL not found in env or secrets")

	// 3. Connect and make sure the schema is current
	ctx := context.Background()
	dbPool, err := repositories.ConnectPool(ctx, dbURL)
	require.NoError(t, err)
	t.Cleanup(func() { dbPool.Close() })
	require.NoError(t, repositories.EnsureSchema(ctx, dbPool))

	return &TestHelper{
		T:              t,
		Ctx:            ctx,
		BaseURL:        baseURL,
		DB:             dbPool,
		AppName:        appName,
		ResourceRepo:   repositories.NewResourceRepository(dbPool),
		SubmissionRepo: repositories.NewSubmissionRepository(dbPool),
	}
}
