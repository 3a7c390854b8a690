package plan

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/myrjola/ironplan/internal/sqlite"
)

const timestampFormat = "2006-01-02T15:04:05.000Z"
const dateFormat = time.DateOnly

// sqliteRepository handles database operations for training plans.
type sqliteRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

// newSQLiteRepository creates a new SQLite-backed plan repository.
func newSQLiteRepository(db *sqlite.Database, logger *slog.Logger) *sqliteRepository {
	return &sqliteRepository{
		db:     db,
		logger: logger,
	}
}

// rollback logs a failed rollback unless the transaction already finished.
func (r *sqliteRepository) rollback(ctx context.Context, tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		r.logger.LogAttrs(ctx, slog.LevelError, "rollback transaction", slog.Any("error", err))
	}
}

// getExercises lists all known exercises ordered by ID.
func (r *sqliteRepository) getExercises(ctx context.Context) ([]Exercise, error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `SELECT id, name FROM exercises ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query exercises: %w", err)
	}
	defer rows.Close()

	var exercises []Exercise
	for rows.Next() {
		var ex Exercise
		if err = rows.Scan(&ex.ID, &ex.Name); err != nil {
			return nil, fmt.Errorf("scan exercise row: %w", err)
		}
		exercises = append(exercises, ex)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exercise rows: %w", err)
	}
	return exercises, nil
}

// getExerciseByName looks an exercise up by its exact name.
func (r *sqliteRepository) getExerciseByName(ctx context.Context, name string) (Exercise, error) {
	var ex Exercise
	err := r.db.ReadOnly.QueryRowContext(ctx,
		`SELECT id, name FROM exercises WHERE name = ?`, name).Scan(&ex.ID, &ex.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return Exercise{}, fmt.Errorf("exercise %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return Exercise{}, fmt.Errorf("query exercise by name: %w", err)
	}
	return ex, nil
}

// upsertExercise inserts an exercise by name and returns its ID, reusing the
// existing row when the name is already known.
func (r *sqliteRepository) upsertExercise(ctx context.Context, name string) (int, error) {
	_, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO exercises (name) VALUES (?)
		ON CONFLICT (name) DO NOTHING`, name)
	if err != nil {
		return 0, fmt.Errorf("insert exercise: %w", err)
	}
	ex, err := r.getExerciseByName(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("read back exercise: %w", err)
	}
	return ex.ID, nil
}

// parseTimestamp parses a timestamp from a nullable database string.
func parseTimestamp(timestampStr sql.NullString) (time.Time, error) {
	if !timestampStr.Valid {
		return time.Time{}, nil
	}
	parsedTime, err := time.Parse(timestampFormat, timestampStr.String)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp format: %w", err)
	}
	return parsedTime, nil
}
