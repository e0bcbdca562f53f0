package grade

import (
	"context"
	"fmt"
	"strings"
	"time"

	"climbge/internal/adapters/storage"
	domain "climbge/internal/domain/grade"
)

// gradeSeparator joins grade tokens into a single column. Tokens never
// contain commas.
const gradeSeparator = ","

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new grade catalog store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// ListSystems retrieves the grade catalog ordered by id.
func (s *SQLiteStore) ListSystems(ctx context.Context) ([]domain.System, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, label, grades FROM grade_system ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var systems []domain.System
	for rows.Next() {
		var entity domain.System
		var grades string
		if err := rows.Scan(&entity.ID, &entity.Label, &grades); err != nil {
			return nil, err
		}
		if grades != "" {
			entity.Grades = strings.Split(grades, gradeSeparator)
		}
		systems = append(systems, entity)
	}
	return systems, rows.Err()
}

// SaveSystem inserts a catalog entry. Existing ids are left untouched so
// the startup seed stays idempotent.
// PRE: entity has a positive id and at least one grade token
// POST: Entry exists with the given id
func (s *SQLiteStore) SaveSystem(ctx context.Context, entity domain.System) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO grade_system (id, label, grades) VALUES (?, ?, ?)",
		entity.ID, entity.Label, strings.Join(entity.Grades, gradeSeparator))
	return err
}

// ListUnknown retrieves the unknown-grade log, oldest first.
func (s *SQLiteStore) ListUnknown(ctx context.Context) ([]domain.UnknownRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, grade_system, system_label, grade_label, logged_at FROM unknown_grade_log ORDER BY rowid")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.UnknownRecord
	for rows.Next() {
		var entity domain.UnknownRecord
		var loggedStr string
		if err := rows.Scan(&entity.ID, &entity.SystemID, &entity.SystemLabel, &entity.GradeLabel, &loggedStr); err != nil {
			return nil, err
		}
		parsed, parseErr := time.Parse(time.RFC3339Nano, loggedStr)
		if parseErr != nil {
			return nil, fmt.Errorf("failed to parse logged_at: %w", parseErr)
		}
		entity.LoggedAt = parsed
		records = append(records, entity)
	}
	return records, rows.Err()
}

var _ Store = (*SQLiteStore)(nil)
