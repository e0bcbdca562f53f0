package feedback

import (
	"errors"
	"strings"
	"time"
)

// MaxBodyLength caps a single feedback submission.
const MaxBodyLength = 4000

// Domain errors
var (
	ErrEmptyBody   = errors.New("feedback is required")
	ErrBodyTooLong = errors.New("feedback cannot exceed 4000 characters")
)

// Feedback is one free-text submission from a climber. Append-only.
type Feedback struct {
	ID        string
	UserID    string
	Body      string
	CreatedAt time.Time
}

// Validate checks that the submission is non-empty and within the cap.
// PRE: Body has already been trimmed by the caller
// POST: Returns nil if valid, error otherwise
func (f *Feedback) Validate() error {
	if f.UserID == "" {
		return errors.New("feedback must belong to a user")
	}
	if strings.TrimSpace(f.Body) == "" {
		return ErrEmptyBody
	}
	if len(f.Body) > MaxBodyLength {
		return ErrBodyTooLong
	}
	return nil
}
