package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/leetaniau/foodmap/backend/shared/go-models"
	"github.com/leetaniau/foodmap/backend/shared/go-utils"
)

// SubmissionRepository stores user proposals. Submissions are append-only.
type SubmissionRepository interface {
	CreateSubmission(ctx context.Context, s *models.Submission) (*models.Submission, error)
	ListSubmissions(ctx context.Context) ([]*models.Submission, error)
}

type submissionRepo struct {
	db DB
}

func NewSubmissionRepository(db DB) SubmissionRepository {
	return &submissionRepo{db: db}
}

func (r *submissionRepo) CreateSubmission(ctx context.Context, in *models.Submission) (*models.Submission, error) {
	s := in.Clone()
	s.Normalize()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}

	_, err := r.db.Exec(ctx, `
        INSERT INTO submissions (
            id, resource_name, resource_type, address, hours, photo_url, submitted_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7)
    `,
		s.ID,
		s.Name,
		string(s.Type),
		s.Address,
		s.Hours,
		s.PhotoURL,
		s.SubmittedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("submission %q: %w", s.ID, utils.ErrConflict)
		}
		return nil, upstream("create submission", err)
	}
	return s, nil
}

func (r *submissionRepo) ListSubmissions(ctx context.Context) ([]*models.Submission, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, resource_name, resource_type, address, hours, photo_url, submitted_at
        FROM submissions
        ORDER BY submitted_at, id
    `)
	if err != nil {
		return nil, upstream("list submissions", err)
	}
	defer rows.Close()

	out := []*models.Submission{}
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, upstream("list submissions", err)
	}
	return out, nil
}

func scanSubmission(row pgx.Row) (*models.Submission, error) {
	var (
		s       models.Submission
		subType string
	)
	if err := row.Scan(
		&s.ID,
		&s.Name,
		&subType,
		&s.Address,
		&s.Hours,
		&s.PhotoURL,
		&s.SubmittedAt,
	); err != nil {
		return nil, upstream("scan submission", err)
	}
	s.Type = models.ResourceType(subType)
	return &s, nil
}
