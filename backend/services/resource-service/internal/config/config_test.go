package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"APP_PORT", "APP_URL_FROM_ANYWHERE", "ENV", "STORE_BACKEND", "DATABASE_URL",
		"REDIS_ADDRESS", "SUBMISSION_RATE_LIMIT", "SUBMISSION_RATE_WINDOW",
		"SENDGRID_API_KEY", "SENDGRID_FROM_EMAIL", "REVIEW_TEAM_EMAIL", "AMQP_URL",
		"MINIO_ENDPOINT", "MINIO_ACCESS_KEY", "MINIO_SECRET_KEY", "LD_SDK_KEY",
		"CORS_HIGH_SECURITY", "SEED_DB_WITH_TEST_DATA", "SUBMISSION_NOTIFICATIONS_ENABLED",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := loadFromEnv("resource-service")
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.AppPort)
	require.Equal(t, "http://localhost:8080", cfg.AppUrl)
	require.Equal(t, StoreBackendMemory, cfg.StoreBackend)
	require.Equal(t, 10, cfg.SubmissionRateLimit)
	require.Equal(t, time.Hour, cfg.SubmissionRateWindow)
	require.True(t, cfg.LDFlag_SubmissionNotificationsEnabled)
	require.False(t, cfg.RateLimitEnabled())
	require.False(t, cfg.PhotoStorageEnabled())
	require.False(t, cfg.EmailNotificationsEnabled())
	require.NoError(t, cfg.validate())
}

func TestLoadFromEnv_DatabaseURLSelectsPostgres(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://foodmap@localhost:5432/foodmap")

	cfg, err := loadFromEnv("resource-service")
	require.NoError(t, err)
	require.Equal(t, StoreBackendPostgres, cfg.StoreBackend)
	require.NoError(t, cfg.validate())

	t.Setenv("STORE_BACKEND", "Memory")
	cfg, err = loadFromEnv("resource-service")
	require.NoError(t, err)
	require.Equal(t, StoreBackendMemory, cfg.StoreBackend)
}

func TestValidate_Rejects(t *testing.T) {
	clearEnv(t)

	cfg, err := loadFromEnv("resource-service")
	require.NoError(t, err)
	cfg.StoreBackend = StoreBackendPostgres
	require.Error(t, cfg.validate())

	cfg.StoreBackend = "sqlite"
	require.Error(t, cfg.validate())

	cfg.StoreBackend = StoreBackendMemory
	cfg.MinioEndpoint = "minio:9000"
	require.Error(t, cfg.validate())
}

func TestLoadFromEnv_BadWindow(t *testing.T) {
	clearEnv(t)
	t.Setenv("SUBMISSION_RATE_WINDOW", "soon")
	_, err := loadFromEnv("resource-service")
	require.Error(t, err)
}

func TestApplySecrets(t *testing.T) {
	clearEnv(t)

	cfg, err := loadFromEnv("resource-service")
	require.NoError(t, err)
	cfg.applySecrets(map[string]string{
		"DATABASE_URL":     "postgres://secret@db/foodmap",
		"SENDGRID_API_KEY": "SG.key",
		"LD_SDK_KEY":       "  ",
	})
	require.Equal(t, "postgres://secret@db/foodmap", cfg.DatabaseURL)
	require.Equal(t, StoreBackendPostgres, cfg.StoreBackend)
	require.Equal(t, "SG.key", cfg.SendgridAPIKey)
	require.Empty(t, cfg.LDSDKKey, "blank secrets are ignored")
}
