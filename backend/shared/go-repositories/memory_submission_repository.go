package repositories

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/leetaniau/foodmap/backend/shared/go-models"
	"github.com/leetaniau/foodmap/backend/shared/go-utils"
)

type memorySubmissionRepo struct {
	mu    sync.Mutex
	items []*models.Submission
	ids   map[string]struct{}
}

func NewMemorySubmissionRepository() SubmissionRepository {
	return &memorySubmissionRepo{ids: make(map[string]struct{})}
}

func (r *memorySubmissionRepo) CreateSubmission(ctx context.Context, in *models.Submission) (*models.Submission, error) {
	if err := ctx.Err(); err != nil {
		return nil, upstream("create submission", err)
	}
	s := in.Clone()
	s.Normalize()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.ids[s.ID]; dup {
		return nil, fmt.Errorf("submission %q: %w", s.ID, utils.ErrConflict)
	}
	r.ids[s.ID] = struct{}{}
	r.items = append(r.items, s)
	return s.Clone(), nil
}

func (r *memorySubmissionRepo) ListSubmissions(ctx context.Context) ([]*models.Submission, error) {
	if err := ctx.Err(); err != nil {
		return nil, upstream("list submissions", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Submission, 0, len(r.items))
	for _, s := range r.items {
		out = append(out, s.Clone())
	}
	return out, nil
}
