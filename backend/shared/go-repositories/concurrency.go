package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgconn"

	"github.com/leetaniau/foodmap/backend/shared/go-utils"
)

// EntityWithVersion is a pointer-shaped row carrying a row_version counter.
// comparable lets WithRetry detect a missing row as the zero value.
type EntityWithVersion interface {
	comparable
	GetID() string
	GetRowVersion() int64
	SetRowVersion(int64)
}

type UpdateIfVersionFunc[T EntityWithVersion] func(
	ctx context.Context,
	entity T,
	expectedVersion int64,
) (pgconn.CommandTag, error)

type GetByIDFunc[T EntityWithVersion] func(
	ctx context.Context,
	id string,
) (T, error)

/*
WithRetry runs a read-mutate-update loop with optimistic locking and returns
the entity as written. A nil read means the row does not exist.
*/
func WithRetry[T EntityWithVersion](
	ctx context.Context,
	maxRetries int,
	id string,
	getByID GetByIDFunc[T],
	updateIfVersion UpdateIfVersionFunc[T],
	mutate func(T) error,
) (T, error) {
	var zero T
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, upstream("update "+id, err)
		}
		current, err := getByID(ctx, id)
		if err != nil {
			return zero, err
		}
		if current == zero {
			return zero, fmt.Errorf("%q: %w", id, utils.ErrNotFound)
		}

		oldVersion := current.GetRowVersion()

		if err := mutate(current); err != nil {
			return zero, err
		}

		tag, err := updateIfVersion(ctx, current, oldVersion)
		if err != nil {
			return zero, err
		}
		if tag.RowsAffected() == 1 {
			current.SetRowVersion(oldVersion + 1)
			return current, nil
		}
		utils.Logger.WithField("id", id).Debugf("row_version %d moved underneath us (attempt %d/%d)", oldVersion, attempt, maxRetries)
	}
	return zero, fmt.Errorf("too much contention updating %q: %w", id, utils.ErrRowVersionConflict)
}
