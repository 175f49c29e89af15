package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/launchdarkly/go-sdk-common/v3/ldcontext"
	ld "github.com/launchdarkly/go-server-sdk/v7"

	"github.com/leetaniau/foodmap/backend/shared/go-utils"
)

const (
	StoreBackendMemory   = "memory"
	StoreBackendPostgres = "postgres"
)

type Config struct {
	OrganizationName string
	AppName          string
	Env              string
	AppPort          string
	AppUrl           string

	// Store
	StoreBackend string
	DatabaseURL  string

	// Submission rate limiting (disabled when RedisAddress is empty)
	RedisAddress         string
	RedisPassword        string
	RedisDB              int
	SubmissionRateLimit  int
	SubmissionRateWindow time.Duration

	// Submission notifications
	SendgridAPIKey    string
	SendgridFromEmail string
	ReviewTeamEmail   string
	AMQPURL           string
	AMQPExchange      string

	// Photo storage (disabled when MinioEndpoint is empty)
	MinioEndpoint       string
	MinioPublicEndpoint string
	MinioAccessKey      string
	MinioSecretKey      string
	MinioBucket         string
	MinioUseSSL         bool

	LDSDKKey string

	// Feature-flag snapshots
	LDFlag_CORSHighSecurity               bool
	LDFlag_SeedDbWithTestData             bool
	LDFlag_SubmissionNotificationsEnabled bool
}

const (
	OrganizationName    = utils.OrganizationName
	LDConnectionTimeout = 5 * time.Second

	defaultAppName = "resource-service"
)

// build-time overrides, set with -ldflags
var (
	AppName             string
	LDServerContextKey  string
	LDServerContextKind string
)

// LoadConfig reads .env and the environment, overlays Bitwarden secrets when
// BWS_ACCESS_TOKEN is set and snapshots LaunchDarkly flags when LD_SDK_KEY is
// set. Any unusable combination is fatal.
func LoadConfig() *Config {
	utils.LoadDotEnv()

	appName := AppName
	if appName == "" {
		utils.Logger.Warnf("AppName was not provided via ldflags, using %q", defaultAppName)
		appName = defaultAppName
	}
	utils.Logger.Info("Loading config for app: ", appName)

	cfg, err := loadFromEnv(appName)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Invalid environment")
	}

	if utils.BWSEnabled() {
		client, err := utils.NewBWSSecretsClient()
		if err != nil {
			utils.Logger.WithError(err).Fatal("Init BWS client")
		}
		bwsProjectName := fmt.Sprintf("%s-%s", appName, cfg.Env)
		secrets, err := client.GetBWSSecrets(bwsProjectName)
		client.Close()
		if err != nil {
			utils.Logger.WithError(err).Fatal("Fetch BWS secrets")
		}
		cfg.applySecrets(secrets)
	}

	if err := cfg.validate(); err != nil {
		utils.Logger.WithError(err).Fatal("Invalid configuration")
	}

	if cfg.LDSDKKey != "" {
		cfg.loadFlags()
	} else {
		utils.Logger.Debug("LD_SDK_KEY not set; using env flag defaults")
	}

	utils.Logger.Infof("Loaded config for %s (%s, store=%s)", appName, cfg.Env, cfg.StoreBackend)
	return cfg
}

func loadFromEnv(appName string) (*Config, error) {
	port := utils.GetEnv("APP_PORT", "8080")

	window, err := time.ParseDuration(utils.GetEnv("SUBMISSION_RATE_WINDOW", "1h"))
	if err != nil {
		return nil, fmt.Errorf("SUBMISSION_RATE_WINDOW: %w", err)
	}

	databaseURL := utils.GetEnv("DATABASE_URL", "")
	defaultBackend := StoreBackendMemory
	if databaseURL != "" {
		defaultBackend = StoreBackendPostgres
	}

	return &Config{
		OrganizationName: OrganizationName,
		AppName:          appName,
		Env:              utils.GetEnv("ENV", "dev"),
		AppPort:          port,
		AppUrl:           utils.GetEnv("APP_URL_FROM_ANYWHERE", "http://localhost:"+port),

		StoreBackend: strings.ToLower(utils.GetEnv("STORE_BACKEND", defaultBackend)),
		DatabaseURL:  databaseURL,

		RedisAddress:         utils.GetEnv("REDIS_ADDRESS", ""),
		RedisPassword:        utils.GetEnv("REDIS_PASSWORD", ""),
		RedisDB:              utils.GetEnvInt("REDIS_DB", 0),
		SubmissionRateLimit:  utils.GetEnvInt("SUBMISSION_RATE_LIMIT", 10),
		SubmissionRateWindow: window,

		SendgridAPIKey:    utils.GetEnv("SENDGRID_API_KEY", ""),
		SendgridFromEmail: utils.GetEnv("SENDGRID_FROM_EMAIL", ""),
		ReviewTeamEmail:   utils.GetEnv("REVIEW_TEAM_EMAIL", ""),
		AMQPURL:           utils.GetEnv("AMQP_URL", ""),
		AMQPExchange:      utils.GetEnv("AMQP_EXCHANGE", "foodmap.events"),

		MinioEndpoint:       utils.GetEnv("MINIO_ENDPOINT", ""),
		MinioPublicEndpoint: utils.GetEnv("MINIO_PUBLIC_ENDPOINT", ""),
		MinioAccessKey:      utils.GetEnv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey:      utils.GetEnv("MINIO_SECRET_KEY", ""),
		MinioBucket:         utils.GetEnv("MINIO_BUCKET", "submission-photos"),
		MinioUseSSL:         utils.GetEnvBool("MINIO_USE_SSL", false),

		LDSDKKey: utils.GetEnv("LD_SDK_KEY", ""),

		LDFlag_CORSHighSecurity:               utils.GetEnvBool("CORS_HIGH_SECURITY", false),
		LDFlag_SeedDbWithTestData:             utils.GetEnvBool("SEED_DB_WITH_TEST_DATA", false),
		LDFlag_SubmissionNotificationsEnabled: utils.GetEnvBool("SUBMISSION_NOTIFICATIONS_ENABLED", true),
	}, nil
}

// applySecrets overrides connection strings and keys with values from the
// secrets manager. Absent keys leave the env value in place.
func (c *Config) applySecrets(secrets map[string]string) {
	overlay := map[string]*string{
		"DATABASE_URL":     &c.DatabaseURL,
		"REDIS_PASSWORD":   &c.RedisPassword,
		"SENDGRID_API_KEY": &c.SendgridAPIKey,
		"AMQP_URL":         &c.AMQPURL,
		"MINIO_ACCESS_KEY": &c.MinioAccessKey,
		"MINIO_SECRET_KEY": &c.MinioSecretKey,
		"LD_SDK_KEY":       &c.LDSDKKey,
	}
	for key, dst := range overlay {
		if v := strings.TrimSpace(secrets[key]); v != "" {
			*dst = v
		}
	}
	// A secret DB URL implies Postgres unless the env chose explicitly.
	if c.DatabaseURL != "" && utils.GetEnv("STORE_BACKEND", "") == "" {
		c.StoreBackend = StoreBackendPostgres
	}
}

func (c *Config) validate() error {
	switch c.StoreBackend {
	case StoreBackendMemory:
	case StoreBackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("STORE_BACKEND=postgres requires DATABASE_URL")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if c.SubmissionRateLimit <= 0 {
		return fmt.Errorf("SUBMISSION_RATE_LIMIT must be positive, got %d", c.SubmissionRateLimit)
	}
	if c.SubmissionRateWindow <= 0 {
		return fmt.Errorf("SUBMISSION_RATE_WINDOW must be positive, got %s", c.SubmissionRateWindow)
	}
	if c.MinioEndpoint != "" && (c.MinioAccessKey == "" || c.MinioSecretKey == "") {
		return fmt.Errorf("MINIO_ENDPOINT set without MINIO_ACCESS_KEY/MINIO_SECRET_KEY")
	}
	return nil
}

func (c *Config) loadFlags() {
	ldClient, err := ld.MakeClient(c.LDSDKKey, LDConnectionTimeout)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to create LaunchDarkly client")
	}
	if !ldClient.Initialized() {
		ldClient.Close()
		utils.Logger.Fatal("LaunchDarkly client failed to initialize")
	}
	defer ldClient.Close()

	ctx := ldcontext.New(c.AppName)
	if LDServerContextKey != "" && LDServerContextKind != "" {
		ctx = ldcontext.NewWithKind(ldcontext.Kind(LDServerContextKind), LDServerContextKey)
	}

	flags := []struct {
		key string
		dst *bool
	}{
		{"cors_high_security", &c.LDFlag_CORSHighSecurity},
		{"seed_db_with_test_data", &c.LDFlag_SeedDbWithTestData},
		{"submission_notifications_enabled", &c.LDFlag_SubmissionNotificationsEnabled},
	}
	for _, f := range flags {
		v, err := ldClient.BoolVariation(f.key, ctx, *f.dst)
		if err != nil {
			utils.Logger.WithError(err).Fatalf("Error retrieving %s flag", f.key)
		}
		utils.Logger.Debugf("%s flag: %t", f.key, v)
		*f.dst = v
	}
}

func (c *Config) RateLimitEnabled() bool { return c.RedisAddress != "" }

func (c *Config) PhotoStorageEnabled() bool { return c.MinioEndpoint != "" }

func (c *Config) EmailNotificationsEnabled() bool {
	return c.SendgridAPIKey != "" && c.SendgridFromEmail != "" && c.ReviewTeamEmail != ""
}

func (c *Config) EventPublishingEnabled() bool { return c.AMQPURL != "" }

func (c *Config) Close() {}
