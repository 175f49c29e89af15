package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/leetaniau/foodmap/backend/shared/go-utils"
)

// RateLimiter counts requests per client in fixed Redis windows.
type RateLimiter struct {
	rdb    redis.Cmdable
	prefix string
	limit  int64
	window time.Duration
}

func NewRateLimiter(rdb redis.Cmdable, prefix string, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{rdb: rdb, prefix: prefix, limit: int64(limit), window: window}
}

// Allow increments the client's counter and reports whether it is still
// within the limit, plus the time left in the current window.
func (l *RateLimiter) Allow(ctx context.Context, clientKey string) (bool, time.Duration, error) {
	key := fmt.Sprintf("%s:%s", l.prefix, clientKey)

	count, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, fmt.Errorf("%w: redis incr: %w", utils.ErrUpstreamUnavailable, err)
	}
	// TTL only on the first hit, so the window is fixed from that request.
	if count == 1 {
		if err := l.rdb.Expire(ctx, key, l.window).Err(); err != nil {
			return false, 0, fmt.Errorf("%w: redis expire: %w", utils.ErrUpstreamUnavailable, err)
		}
	}
	if count <= l.limit {
		return true, 0, nil
	}

	retryAfter, err := l.rdb.TTL(ctx, key).Result()
	if err != nil || retryAfter < 0 {
		retryAfter = l.window
	}
	return false, retryAfter, nil
}

// RateLimitMiddleware rejects over-limit clients with 429. Redis outages fail
// open: the request is served and the error is logged.
func RateLimitMiddleware(l *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			platform := utils.GetClientPlatform(r)
			clientID := utils.GetClientIdentifier(r, platform)

			allowed, retryAfter, err := l.Allow(r.Context(), clientID.Key())
			if err != nil {
				utils.Logger.WithError(err).Warn("Rate limiter unavailable, allowing request")
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Round(time.Second).Seconds())))
				utils.RespondErrorWithCode(
					w, http.StatusTooManyRequests, utils.ErrCodeRateLimitExceeded,
					"Too many requests, please try again later", nil, utils.ErrRateLimitExceeded,
				)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
