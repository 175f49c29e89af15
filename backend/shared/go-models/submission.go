package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/leetaniau/foodmap/backend/shared/go-utils"
)

// Submission is a user-proposed resource awaiting manual review. It lives in
// its own table and is never promoted automatically.
type Submission struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Type        ResourceType `json:"type"`
	Address     string       `json:"address"`
	Hours       *string      `json:"hours"`
	PhotoURL    *string      `json:"photoUrl"`
	SubmittedAt time.Time    `json:"submittedAt"`
}

func (s *Submission) GetID() string { return s.ID }

func (s *Submission) Clone() *Submission {
	if s == nil {
		return nil
	}
	c := *s
	c.Hours = clonePtr(s.Hours)
	c.PhotoURL = clonePtr(s.PhotoURL)
	return &c
}

func (s *Submission) Normalize() {
	s.Name = strings.TrimSpace(s.Name)
	s.Address = strings.TrimSpace(s.Address)
	if t, ok := ParseResourceType(string(s.Type)); ok {
		s.Type = t
	}
	s.Hours = utils.TrimPtr(s.Hours)
	s.PhotoURL = utils.TrimPtr(s.PhotoURL)
}

// Validate checks the same required set as resource creation.
func (s *Submission) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: name is required", utils.ErrValidationFailed)
	}
	if !s.Type.IsValid() {
		return fmt.Errorf("%w: type %q is not a known resource type", utils.ErrValidationFailed, s.Type)
	}
	if s.Address == "" {
		return fmt.Errorf("%w: address is required", utils.ErrValidationFailed)
	}
	if s.SubmittedAt.IsZero() {
		return fmt.Errorf("%w: submitted_at must be assigned", utils.ErrValidationFailed)
	}
	return nil
}
