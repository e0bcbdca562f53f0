package feedback

import (
	"context"

	domain "climbge/internal/domain/feedback"
)

// Store persists feedback submissions. The log is append-only.
type Store interface {
	Save(ctx context.Context, f domain.Feedback) error
	ListByUserID(ctx context.Context, userID string) ([]domain.Feedback, error)
}
