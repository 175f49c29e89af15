package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/leetaniau/foodmap/backend/shared/go-utils"
)

// DB is the subset of *pgxpool.Pool the repositories need.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

const (
	maxConnectRetries     = 5
	connectTimeout        = 5 * time.Second
	initialConnectBackoff = 500 * time.Millisecond

	pgUniqueViolation = "23505"
)

// ConnectPool opens a pgx pool, retrying with exponential backoff while the
// database comes up.
func ConnectPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid DB URL: %w", err)
	}
	cfg.MaxConnIdleTime = 2 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second

	backoff := initialConnectBackoff
	for i := 1; i <= maxConnectRetries; i++ {
		attemptCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		pool, connErr := pgxpool.ConnectConfig(attemptCtx, cfg)
		if connErr == nil {
			connErr = pool.Ping(attemptCtx)
			if connErr != nil {
				pool.Close()
			}
		}
		cancel()
		if connErr == nil {
			utils.Logger.Infof("Connected to DB on attempt %d", i)
			return pool, nil
		}

		utils.Logger.WithError(connErr).Warnf(
			"Failed DB connect on attempt %d/%d. Retrying in %v...",
			i, maxConnectRetries, backoff,
		)
		if i == maxConnectRetries {
			return nil, fmt.Errorf("unable to connect after %d attempts: %w", maxConnectRetries, connErr)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return nil, errors.New("unreachable")
}

// upstream tags a persistence failure as ErrUpstreamUnavailable while keeping
// the driver error in the chain.
func upstream(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, utils.ErrUpstreamUnavailable, err)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
