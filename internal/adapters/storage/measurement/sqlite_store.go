package measurement

import (
	"context"
	"database/sql"

	"climbge/internal/adapters/storage"
	domain "climbge/internal/domain/measurement"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new measurement store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByUserID retrieves a user's measurement profile.
// PRE: userID is non-empty
// POST: Returns the profile or ErrNotFound
func (s *SQLiteStore) GetByUserID(ctx context.Context, userID string) (domain.Profile, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT user_id, height, weight, ape_index, grip_strength, unit FROM user_measurement WHERE user_id = ?",
		userID)
	return scanProfile(row)
}

// Save upserts the profile, merging the patch over the stored row so that
// omitted (nil) fields are preserved. The read and write happen inside one
// transaction to keep the merge consistent under concurrent saves.
// PRE: patch has been validated
// POST: Returns the merged row as stored
func (s *SQLiteStore) Save(ctx context.Context, patch domain.Profile) (domain.Profile, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Profile{}, err
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		"SELECT user_id, height, weight, ape_index, grip_strength, unit FROM user_measurement WHERE user_id = ?",
		patch.UserID)
	existing, err := scanProfile(row)
	if err == ErrNotFound {
		existing = domain.Profile{UserID: patch.UserID}
	} else if err != nil {
		return domain.Profile{}, err
	}

	merged := domain.Merge(existing, patch)
	if merged.Unit == "" {
		merged.Unit = domain.UnitMetric
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO user_measurement (user_id, height, weight, ape_index, grip_strength, unit)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
			height=excluded.height,
			weight=excluded.weight,
			ape_index=excluded.ape_index,
			grip_strength=excluded.grip_strength,
			unit=excluded.unit`,
		merged.UserID,
		nullFloat(merged.Height),
		nullFloat(merged.Weight),
		nullFloat(merged.ApeIndex),
		nullFloat(merged.GripStrength),
		merged.Unit,
	)
	if err != nil {
		return domain.Profile{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Profile{}, err
	}
	return merged, nil
}

// rowScanner covers *sql.Row for single-row scans.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (domain.Profile, error) {
	var entity domain.Profile
	var height, weight, apeIndex, gripStrength sql.NullFloat64
	err := row.Scan(&entity.UserID, &height, &weight, &apeIndex, &gripStrength, &entity.Unit)
	if err == sql.ErrNoRows {
		return domain.Profile{}, ErrNotFound
	}
	if err != nil {
		return domain.Profile{}, err
	}
	entity.Height = floatPtr(height)
	entity.Weight = floatPtr(weight)
	entity.ApeIndex = floatPtr(apeIndex)
	entity.GripStrength = floatPtr(gripStrength)
	return entity, nil
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

var _ Store = (*SQLiteStore)(nil)
