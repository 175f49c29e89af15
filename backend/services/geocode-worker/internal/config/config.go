package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/leetaniau/foodmap/backend/shared/go-utils"
)

type Config struct {
	AppName string
	Env     string

	DatabaseURL      string
	GoogleMapsAPIKey string

	// Geocoding cadence
	RequestInterval time.Duration
	MaxAttempts     int
	RetryDelay      time.Duration

	// Service area used to flag suspicious geocodes. Results outside the
	// radius are logged, never rejected.
	ServiceAreaLat         float64
	ServiceAreaLng         float64
	ServiceAreaRadiusMiles float64
}

const defaultAppName = "geocode-worker"

// build-time override, set with -ldflags
var AppName string

// LoadConfig reads .env and the environment and overlays Bitwarden secrets
// when BWS_ACCESS_TOKEN is set.
func LoadConfig() (*Config, error) {
	utils.LoadDotEnv()

	appName := AppName
	if appName == "" {
		appName = defaultAppName
	}

	cfg, err := loadFromEnv(appName)
	if err != nil {
		return nil, err
	}

	if utils.BWSEnabled() {
		client, err := utils.NewBWSSecretsClient()
		if err != nil {
			return nil, fmt.Errorf("init BWS client: %w", err)
		}
		secrets, err := client.GetBWSSecrets(fmt.Sprintf("%s-%s", appName, cfg.Env))
		client.Close()
		if err != nil {
			return nil, fmt.Errorf("fetch BWS secrets: %w", err)
		}
		cfg.applySecrets(secrets)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFromEnv(appName string) (*Config, error) {
	interval, err := time.ParseDuration(utils.GetEnv("GEOCODE_REQUEST_INTERVAL", "250ms"))
	if err != nil {
		return nil, fmt.Errorf("GEOCODE_REQUEST_INTERVAL: %w", err)
	}
	retryDelay, err := time.ParseDuration(utils.GetEnv("GEOCODE_RETRY_DELAY", "1s"))
	if err != nil {
		return nil, fmt.Errorf("GEOCODE_RETRY_DELAY: %w", err)
	}

	return &Config{
		AppName: appName,
		Env:     utils.GetEnv("ENV", "dev"),

		DatabaseURL:      utils.GetEnv("DATABASE_URL", ""),
		GoogleMapsAPIKey: utils.GetEnv("GOOGLE_MAPS_API_KEY", ""),

		RequestInterval: interval,
		MaxAttempts:     utils.GetEnvInt("GEOCODE_MAX_ATTEMPTS", 3),
		RetryDelay:      retryDelay,

		ServiceAreaLat:         utils.GetEnvFloat("SERVICE_AREA_LAT", utils.DefaultServiceAreaCenterLat),
		ServiceAreaLng:         utils.GetEnvFloat("SERVICE_AREA_LNG", utils.DefaultServiceAreaCenterLng),
		ServiceAreaRadiusMiles: utils.GetEnvFloat("SERVICE_AREA_RADIUS_MILES", utils.DefaultServiceAreaRadiusMiles),
	}, nil
}

func (c *Config) applySecrets(secrets map[string]string) {
	if v := strings.TrimSpace(secrets["DATABASE_URL"]); v != "" {
		c.DatabaseURL = v
	}
	if v := strings.TrimSpace(secrets["GOOGLE_MAPS_API_KEY"]); v != "" {
		c.GoogleMapsAPIKey = v
	}
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.MaxAttempts <= 0 {
		return fmt.Errorf("GEOCODE_MAX_ATTEMPTS must be positive, got %d", c.MaxAttempts)
	}
	if c.RequestInterval < 0 || c.RetryDelay < 0 {
		return fmt.Errorf("geocode intervals must not be negative")
	}
	if c.ServiceAreaRadiusMiles <= 0 {
		return fmt.Errorf("SERVICE_AREA_RADIUS_MILES must be positive, got %g", c.ServiceAreaRadiusMiles)
	}
	return nil
}

// GeocodingEnabled reports whether a provider key is configured. The check
// command works without one.
func (c *Config) GeocodingEnabled() bool { return c.GoogleMapsAPIKey != "" }
