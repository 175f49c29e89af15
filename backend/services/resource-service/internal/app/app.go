package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/leetaniau/foodmap/backend/shared/go-middleware"
	"github.com/leetaniau/foodmap/backend/shared/go-repositories"
	"github.com/leetaniau/foodmap/backend/shared/go-utils"

	"github.com/leetaniau/foodmap/backend/services/resource-service/internal/config"
	"github.com/leetaniau/foodmap/backend/services/resource-service/internal/services"
	"github.com/leetaniau/foodmap/backend/services/resource-service/internal/storage"
)

const submissionRateLimitPrefix = "ratelimit:submissions"

// App holds references to config, connections and services.
type App struct {
	Config *config.Config

	DB    *pgxpool.Pool // nil for the memory store
	Redis *redis.Client // nil when rate limiting is off

	ResourceRepo   repositories.ResourceRepository
	SubmissionRepo repositories.SubmissionRepository

	ListingService    services.ListingService
	ResourceService   services.ResourceService
	SubmissionService services.SubmissionService
	PhotoService      services.PhotoService // nil when photo storage is off

	RateLimiter *middleware.RateLimiter // nil when rate limiting is off

	closers []func()
}

// NewApp selects the store backend, opens optional integrations and builds
// the services. Optional integrations that fail to connect are logged and
// left disabled; only the store is required.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	utils.Logger.Info("Initializing resource-service App")
	a := &App{Config: cfg}

	switch cfg.StoreBackend {
	case config.StoreBackendPostgres:
		pool, err := repositories.ConnectPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		a.DB = pool
		a.closers = append(a.closers, func() {
			pool.Close()
			utils.Logger.Info("resource-service DB connection closed.")
		})
		if err := repositories.EnsureSchema(ctx, pool); err != nil {
			a.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		a.ResourceRepo = repositories.NewResourceRepository(pool)
		a.SubmissionRepo = repositories.NewSubmissionRepository(pool)
	case config.StoreBackendMemory:
		utils.Logger.Warn("Using in-memory store; data is lost on restart")
		a.ResourceRepo = repositories.NewMemoryResourceRepository()
		a.SubmissionRepo = repositories.NewMemorySubmissionRepository()
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}

	if cfg.RateLimitEnabled() {
		a.Redis = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := a.Redis.Ping(ctx).Err(); err != nil {
			utils.Logger.WithError(err).Warn("Redis unreachable at start-up; limiter fails open until it recovers")
		}
		rdb := a.Redis
		a.closers = append(a.closers, func() { _ = rdb.Close() })
		a.RateLimiter = middleware.NewRateLimiter(a.Redis, submissionRateLimitPrefix, cfg.SubmissionRateLimit, cfg.SubmissionRateWindow)
	}

	if cfg.PhotoStorageEnabled() {
		store, err := storage.NewMinIOStorage(ctx,
			cfg.MinioEndpoint, cfg.MinioPublicEndpoint,
			cfg.MinioAccessKey, cfg.MinioSecretKey,
			cfg.MinioBucket, cfg.MinioUseSSL,
		)
		if err != nil {
			utils.Logger.WithError(err).Error("Photo storage disabled")
		} else {
			a.PhotoService = services.NewPhotoService(store)
		}
	}

	a.ListingService = services.NewListingService(a.ResourceRepo)
	a.ResourceService = services.NewResourceService(a.ResourceRepo)
	a.SubmissionService = services.NewSubmissionService(a.SubmissionRepo, a.buildNotifier())

	if cfg.LDFlag_SeedDbWithTestData {
		if err := SeedTestData(ctx, a.ResourceRepo); err != nil {
			a.Close()
			return nil, err
		}
	}
	return a, nil
}

func (a *App) buildNotifier() services.SubmissionNotifier {
	cfg := a.Config
	if !cfg.LDFlag_SubmissionNotificationsEnabled {
		return services.NoopNotifier{}
	}

	var notifiers services.MultiNotifier
	if cfg.EmailNotificationsEnabled() {
		notifiers = append(notifiers, services.NewEmailNotifier(
			cfg.SendgridAPIKey, cfg.OrganizationName, cfg.SendgridFromEmail, cfg.ReviewTeamEmail,
		))
	}
	if cfg.EventPublishingEnabled() {
		pub, err := services.NewEventPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			utils.Logger.WithError(err).Error("Submission events disabled")
		} else {
			notifiers = append(notifiers, pub)
			a.closers = append(a.closers, func() { _ = pub.Close() })
		}
	}
	if len(notifiers) == 0 {
		return services.NoopNotifier{}
	}
	return notifiers
}

// Close releases connections in reverse order of opening.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
	utils.Logger.Info("resource-service app shutting down.")
}
