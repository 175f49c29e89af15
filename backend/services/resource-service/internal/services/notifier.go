package services

import (
	"context"
	"errors"

	"github.com/leetaniau/foodmap/backend/shared/go-models"
)

// SubmissionNotifier tells someone a new submission is waiting for review.
type SubmissionNotifier interface {
	NotifySubmission(ctx context.Context, s *models.Submission) error
}

type NoopNotifier struct{}

func (NoopNotifier) NotifySubmission(context.Context, *models.Submission) error { return nil }

// MultiNotifier fans out to every notifier and joins their errors. One
// failing channel does not stop the others.
type MultiNotifier []SubmissionNotifier

func (m MultiNotifier) NotifySubmission(ctx context.Context, s *models.Submission) error {
	var errs []error
	for _, n := range m {
		if err := n.NotifySubmission(ctx, s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
