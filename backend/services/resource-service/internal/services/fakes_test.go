package services

import (
	"context"
	"sync"

	"github.com/leetaniau/foodmap/backend/shared/go-models"
	"github.com/leetaniau/foodmap/backend/shared/go-utils"
)

// staticResourceRepo serves a fixed list, including rows the real stores
// would refuse to create (legacy half-geocoded data).
type staticResourceRepo struct {
	rows []*models.Resource
	err  error
}

func (r *staticResourceRepo) ListResources(ctx context.Context) ([]*models.Resource, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]*models.Resource, 0, len(r.rows))
	for _, row := range r.rows {
		out = append(out, row.Clone())
	}
	return out, nil
}

func (r *staticResourceRepo) GetResource(ctx context.Context, id string) (*models.Resource, error) {
	for _, row := range r.rows {
		if row.ID == id {
			return row.Clone(), nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r *staticResourceRepo) CreateResource(ctx context.Context, res *models.Resource) (*models.Resource, error) {
	panic("not used")
}

func (r *staticResourceRepo) UpdateResource(ctx context.Context, id string, upd models.ResourceUpdate) (*models.Resource, error) {
	panic("not used")
}

func (r *staticResourceRepo) Ping(ctx context.Context) error { return r.err }

type recordingNotifier struct {
	mu   sync.Mutex
	got  []*models.Submission
	fail error
}

func (n *recordingNotifier) NotifySubmission(ctx context.Context, s *models.Submission) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.got = append(n.got, s)
	return n.fail
}
