package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/leetaniau/foodmap/backend/shared/go-models"
	"github.com/leetaniau/foodmap/backend/shared/go-utils"
)

// memoryResourceRepo keeps resources in process. Enumeration follows
// insertion order, which plays the role of created_at in Postgres.
type memoryResourceRepo struct {
	mu    sync.RWMutex
	byID  map[string]*models.Resource
	order []string
	now   func() time.Time
}

func NewMemoryResourceRepository() ResourceRepository {
	return &memoryResourceRepo{
		byID: make(map[string]*models.Resource),
		now:  time.Now,
	}
}

func (r *memoryResourceRepo) ListResources(ctx context.Context) ([]*models.Resource, error) {
	if err := ctx.Err(); err != nil {
		return nil, upstream("list resources", err)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Resource, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id].Clone())
	}
	return out, nil
}

func (r *memoryResourceRepo) GetResource(ctx context.Context, id string) (*models.Resource, error) {
	if err := ctx.Err(); err != nil {
		return nil, upstream("get resource", err)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	res, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("resource %q: %w", id, utils.ErrNotFound)
	}
	return res.Clone(), nil
}

func (r *memoryResourceRepo) CreateResource(ctx context.Context, in *models.Resource) (*models.Resource, error) {
	if err := ctx.Err(); err != nil {
		return nil, upstream("create resource", err)
	}
	res := in.Clone()
	res.Normalize()
	if err := res.Validate(); err != nil {
		return nil, err
	}
	if res.ID == "" {
		res.ID = uuid.NewString()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[res.ID]; exists {
		return nil, fmt.Errorf("resource %q: %w", res.ID, utils.ErrConflict)
	}
	res.CreatedAt = r.now().UTC()
	res.RowVersion = 1
	r.byID[res.ID] = res
	r.order = append(r.order, res.ID)
	return res.Clone(), nil
}

func (r *memoryResourceRepo) UpdateResource(ctx context.Context, id string, upd models.ResourceUpdate) (*models.Resource, error) {
	if err := ctx.Err(); err != nil {
		return nil, upstream("update resource", err)
	}
	if err := upd.Validate(); err != nil {
		return nil, err
	}

	// The write lock makes read-apply-store a single step, so there is no
	// version race to retry here.
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("resource %q: %w", id, utils.ErrNotFound)
	}
	next := current.Clone()
	upd.Apply(next)
	next.RowVersion = current.RowVersion + 1
	r.byID[id] = next
	return next.Clone(), nil
}

func (r *memoryResourceRepo) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return upstream("ping", err)
	}
	return nil
}
