package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"climbge/internal/adapters/storage"
	"climbge/internal/domain/grade"
	domain "climbge/internal/domain/session"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new session store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// CommitSession persists a session, its routes, and the unknown-grade log
// entries in a single transaction.
// PRE: s and routes have been validated and normalized
// POST: All rows are committed, or none on any failure
func (s *SQLiteStore) CommitSession(ctx context.Context, entity domain.Session, routes []domain.RouteAttempt) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var notesVal, locationVal any
	if entity.Notes != "" {
		notesVal = entity.Notes
	}
	if entity.Location != "" {
		locationVal = entity.Location
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO climb_session (id, user_id, started_at, ended_at, notes, location, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entity.ID,
		entity.UserID,
		entity.StartedAt.Format(time.RFC3339Nano),
		entity.EndedAt.Format(time.RFC3339Nano),
		notesVal,
		locationVal,
		entity.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return err
	}

	for _, r := range routes {
		var sentAtVal any
		if !r.SentAt.IsZero() {
			sentAtVal = r.SentAt.Format(time.RFC3339Nano)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO session_route (id, session_id, grade_system, grade_label, attempts, sent, sent_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.ID,
			entity.ID,
			r.System.ID,
			r.GradeLabel,
			r.Attempts,
			boolToInt(r.Sent),
			sentAtVal,
		)
		if err != nil {
			return err
		}

		if r.System.IsUnknown() {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO unknown_grade_log (id, grade_system, system_label, grade_label, logged_at)
				 VALUES (?, ?, ?, ?, ?)`,
				uuid.New().String(),
				r.System.ID,
				r.System.Label,
				r.GradeLabel,
				time.Now().UTC().Format(time.RFC3339Nano),
			)
			if err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// GetByID retrieves a session and its routes.
// PRE: id is non-empty
// POST: Returns the entry or ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, started_at, ended_at, notes, location, created_at
		 FROM climb_session WHERE id = ?`, id)

	entry, err := scanSession(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Entry{}, ErrNotFound
	}
	if err != nil {
		return domain.Entry{}, err
	}

	routes, err := s.listRoutes(ctx, "WHERE session_id = ?", id)
	if err != nil {
		return domain.Entry{}, err
	}
	entry.Routes = routes
	return entry, nil
}

// ListByUserID retrieves all of a user's sessions with their routes,
// most recent first.
// PRE: userID is non-empty
// POST: Returns entries ordered by started_at desc, rowid desc
func (s *SQLiteStore) ListByUserID(ctx context.Context, userID string) ([]domain.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, started_at, ended_at, notes, location, created_at
		 FROM climb_session WHERE user_id = ?
		 ORDER BY started_at DESC, rowid DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.Entry
	index := make(map[string]int)
	for rows.Next() {
		entry, err := scanSession(rows.Scan)
		if err != nil {
			return nil, err
		}
		index[entry.Session.ID] = len(entries)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return entries, nil
	}

	routes, err := s.listRoutes(ctx,
		"WHERE session_id IN (SELECT id FROM climb_session WHERE user_id = ?)", userID)
	if err != nil {
		return nil, err
	}
	for _, r := range routes {
		if i, ok := index[r.SessionID]; ok {
			entries[i].Routes = append(entries[i].Routes, r)
		}
	}
	return entries, nil
}

// listRoutes fetches route rows for the given filter in insert order.
func (s *SQLiteStore) listRoutes(ctx context.Context, where string, args ...any) ([]domain.RouteAttempt, error) {
	query := fmt.Sprintf(
		`SELECT id, session_id, grade_system, grade_label, attempts, sent, sent_at
		 FROM session_route %s ORDER BY rowid`, where)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routes []domain.RouteAttempt
	for rows.Next() {
		var r domain.RouteAttempt
		var systemID, sentInt int
		var sentAt sql.NullString
		if err := rows.Scan(&r.ID, &r.SessionID, &systemID, &r.GradeLabel, &r.Attempts, &sentInt, &sentAt); err != nil {
			return nil, err
		}
		r.System = grade.SystemRef{ID: systemID}
		r.Sent = sentInt != 0
		if sentAt.Valid {
			parsed, parseErr := parseStoredTime(sentAt.String)
			if parseErr != nil {
				return nil, fmt.Errorf("failed to parse sent_at: %w", parseErr)
			}
			r.SentAt = parsed
		}
		routes = append(routes, r)
	}
	return routes, rows.Err()
}

// scanSession reads one climb_session row via the given scan function.
func scanSession(scan func(dest ...any) error) (domain.Entry, error) {
	var entity domain.Session
	var startedStr, endedStr, createdStr string
	var notes, location sql.NullString
	err := scan(&entity.ID, &entity.UserID, &startedStr, &endedStr, &notes, &location, &createdStr)
	if err != nil {
		return domain.Entry{}, err
	}
	if notes.Valid {
		entity.Notes = notes.String
	}
	if location.Valid {
		entity.Location = location.String
	}
	if entity.StartedAt, err = parseStoredTime(startedStr); err != nil {
		return domain.Entry{}, fmt.Errorf("failed to parse started_at: %w", err)
	}
	if entity.EndedAt, err = parseStoredTime(endedStr); err != nil {
		return domain.Entry{}, fmt.Errorf("failed to parse ended_at: %w", err)
	}
	if entity.CreatedAt, err = parseStoredTime(createdStr); err != nil {
		return domain.Entry{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return domain.Entry{Session: entity}, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func parseStoredTime(value string) (time.Time, error) {
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported time format: %q", value)
}

var _ Store = (*SQLiteStore)(nil)
