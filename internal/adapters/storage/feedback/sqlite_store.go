package feedback

import (
	"context"
	"fmt"
	"time"

	"climbge/internal/adapters/storage"
	domain "climbge/internal/domain/feedback"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new feedback store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save appends a feedback submission.
// PRE: entity has been validated
// POST: Entity is persisted
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Feedback) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO feedback (id, user_id, body, created_at) VALUES (?, ?, ?, ?)",
		entity.ID, entity.UserID, entity.Body, entity.CreatedAt.Format(time.RFC3339Nano))
	return err
}

// ListByUserID retrieves a user's submissions, oldest first.
func (s *SQLiteStore) ListByUserID(ctx context.Context, userID string) ([]domain.Feedback, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, body, created_at FROM feedback WHERE user_id = ? ORDER BY rowid", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Feedback
	for rows.Next() {
		var entity domain.Feedback
		var createdStr string
		if err := rows.Scan(&entity.ID, &entity.UserID, &entity.Body, &createdStr); err != nil {
			return nil, err
		}
		parsed, parseErr := time.Parse(time.RFC3339Nano, createdStr)
		if parseErr != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", parseErr)
		}
		entity.CreatedAt = parsed
		results = append(results, entity)
	}
	return results, rows.Err()
}

var _ Store = (*SQLiteStore)(nil)
