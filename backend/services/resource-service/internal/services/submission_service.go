package services

import (
	"context"
	"time"

	"github.com/leetaniau/foodmap/backend/shared/go-models"
	"github.com/leetaniau/foodmap/backend/shared/go-repositories"
	"github.com/leetaniau/foodmap/backend/shared/go-utils"

	"github.com/leetaniau/foodmap/backend/services/resource-service/internal/dtos"
)

const notifyTimeout = 5 * time.Second

type SubmissionService interface {
	Submit(ctx context.Context, req dtos.SubmissionRequest) (*models.Submission, error)
}

type submissionService struct {
	repo     repositories.SubmissionRepository
	notifier SubmissionNotifier
	now      func() time.Time
}

// NewSubmissionService wires intake. A nil notifier disables notifications.
func NewSubmissionService(repo repositories.SubmissionRepository, notifier SubmissionNotifier) SubmissionService {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	return &submissionService{repo: repo, notifier: notifier, now: time.Now}
}

// Submit records a proposal for manual review. Resources are never touched.
// Notifications run after the append and cannot fail the request.
func (s *submissionService) Submit(ctx context.Context, req dtos.SubmissionRequest) (*models.Submission, error) {
	sub := &models.Submission{
		Name:        req.Name,
		Type:        models.ResourceType(req.Type),
		Address:     req.Address,
		Hours:       req.Hours,
		PhotoURL:    req.PhotoURL,
		SubmittedAt: s.now().UTC(),
	}

	stored, err := s.repo.CreateSubmission(ctx, sub)
	if err != nil {
		return nil, err
	}
	utils.Logger.WithField("submission_id", stored.ID).Infof("Received submission %q", stored.Name)

	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()
	if err := s.notifier.NotifySubmission(notifyCtx, stored.Clone()); err != nil {
		utils.Logger.WithError(err).WithField("submission_id", stored.ID).Warn("Submission notification failed")
	}
	return stored, nil
}
