package plan

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// insertSessions persists generated sessions with their sets, minting a
// session ID for each. The generator's output stays ID-free so the IDs only
// exist once a plan is stored.
func (r *sqliteRepository) insertSessions(ctx context.Context, sessions []PlannedSession) error {
	tx, err := r.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer r.rollback(ctx, tx)

	for _, sess := range sessions {
		id := sess.ID
		if id == "" {
			id = uuid.NewString()
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO planned_sessions (
				id, plan_id, week, day_index, exercise_id,
				scheduled_date, planned_weight, planned_sets, planned_reps, completed
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0)`,
			id, sess.PlanID, sess.Week, sess.DayIndex, sess.ExerciseID,
			sess.ScheduledDate.Format(dateFormat), sess.PlannedWeight, sess.PlannedSets, sess.PlannedReps)
		if err != nil {
			return fmt.Errorf("insert planned session: %w", err)
		}
		for _, set := range sess.Sets {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO set_records (session_id, set_index, target_reps, target_weight, completed)
				VALUES (?, ?, ?, ?, 0)`,
				id, set.SetIndex, set.TargetReps, set.TargetWeight)
			if err != nil {
				return fmt.Errorf("insert set record: %w", err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// getSession loads a single session with its sets.
func (r *sqliteRepository) getSession(ctx context.Context, sessionID string) (PlannedSession, error) {
	var (
		sess           PlannedSession
		scheduledStr   string
		completedAtStr sql.NullString
	)
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id, plan_id, week, day_index, exercise_id,
		       scheduled_date, planned_weight, planned_sets, planned_reps, completed, completed_at
		FROM planned_sessions
		WHERE id = ?`, sessionID).Scan(
		&sess.ID, &sess.PlanID, &sess.Week, &sess.DayIndex, &sess.ExerciseID,
		&scheduledStr, &sess.PlannedWeight, &sess.PlannedSets, &sess.PlannedReps,
		&sess.Completed, &completedAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return PlannedSession{}, fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}
	if err != nil {
		return PlannedSession{}, fmt.Errorf("query planned session: %w", err)
	}
	if sess.ScheduledDate, err = parseDate(scheduledStr); err != nil {
		return PlannedSession{}, fmt.Errorf("parse scheduled date: %w", err)
	}
	if sess.CompletedAt, err = parseTimestamp(completedAtStr); err != nil {
		return PlannedSession{}, fmt.Errorf("parse completed_at: %w", err)
	}
	if sess.Sets, err = r.getSetRecords(ctx, sessionID); err != nil {
		return PlannedSession{}, err
	}
	return sess, nil
}

func (r *sqliteRepository) getSetRecords(ctx context.Context, sessionID string) ([]SetRecord, error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT set_index, target_reps, target_weight, actual_reps, actual_weight, rpe, completed
		FROM set_records
		WHERE session_id = ?
		ORDER BY set_index`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query set records: %w", err)
	}
	defer rows.Close()

	var sets []SetRecord
	for rows.Next() {
		var set SetRecord
		if err = rows.Scan(&set.SetIndex, &set.TargetReps, &set.TargetWeight,
			&set.ActualReps, &set.ActualWeight, &set.RPE, &set.Completed); err != nil {
			return nil, fmt.Errorf("scan set record: %w", err)
		}
		sets = append(sets, set)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate set record rows: %w", err)
	}
	return sets, nil
}

// getSessionsForPlan loads every session of a plan with its sets, ordered by
// week, day, and exercise.
func (r *sqliteRepository) getSessionsForPlan(ctx context.Context, planID string) ([]PlannedSession, error) {
	return r.querySessions(ctx, `
		SELECT id, plan_id, week, day_index, exercise_id,
		       scheduled_date, planned_weight, planned_sets, planned_reps, completed, completed_at
		FROM planned_sessions
		WHERE plan_id = ?
		ORDER BY week, day_index, exercise_id`, planID)
}

// getWeekSessions loads the sessions of a single week.
func (r *sqliteRepository) getWeekSessions(ctx context.Context, planID string, week int) ([]PlannedSession, error) {
	return r.querySessions(ctx, `
		SELECT id, plan_id, week, day_index, exercise_id,
		       scheduled_date, planned_weight, planned_sets, planned_reps, completed, completed_at
		FROM planned_sessions
		WHERE plan_id = ? AND week = ?
		ORDER BY day_index, exercise_id`, planID, week)
}

func (r *sqliteRepository) querySessions(
	ctx context.Context, query string, args ...any,
) ([]PlannedSession, error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query planned sessions: %w", err)
	}
	defer rows.Close()

	var sessions []PlannedSession
	for rows.Next() {
		var (
			sess           PlannedSession
			scheduledStr   string
			completedAtStr sql.NullString
		)
		err = rows.Scan(&sess.ID, &sess.PlanID, &sess.Week, &sess.DayIndex, &sess.ExerciseID,
			&scheduledStr, &sess.PlannedWeight, &sess.PlannedSets, &sess.PlannedReps,
			&sess.Completed, &completedAtStr)
		if err != nil {
			return nil, fmt.Errorf("scan planned session row: %w", err)
		}
		if sess.ScheduledDate, err = parseDate(scheduledStr); err != nil {
			return nil, fmt.Errorf("parse scheduled date: %w", err)
		}
		if sess.CompletedAt, err = parseTimestamp(completedAtStr); err != nil {
			return nil, fmt.Errorf("parse completed_at: %w", err)
		}
		sessions = append(sessions, sess)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate planned session rows: %w", err)
	}

	for i := range sessions {
		if sessions[i].Sets, err = r.getSetRecords(ctx, sessions[i].ID); err != nil {
			return nil, err
		}
	}
	return sessions, nil
}

// recordSet writes the actual performance of one set.
func (r *sqliteRepository) recordSet(
	ctx context.Context,
	sessionID string,
	setIndex int,
	actualReps int,
	actualWeight float64,
	rpe *float64,
) error {
	result, err := r.db.ReadWrite.ExecContext(ctx, `
		UPDATE set_records
		SET actual_reps = ?, actual_weight = ?, rpe = ?, completed = 1
		WHERE session_id = ? AND set_index = ?`,
		actualReps, actualWeight, rpe, sessionID, setIndex)
	if err != nil {
		return fmt.Errorf("record set: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("set %d of session %s: %w", setIndex, sessionID, ErrNotFound)
	}
	return nil
}

// markSessionCompleted stamps a session as done. Completing a session twice
// keeps the original timestamp.
func (r *sqliteRepository) markSessionCompleted(ctx context.Context, sessionID string, completedAt time.Time) error {
	result, err := r.db.ReadWrite.ExecContext(ctx, `
		UPDATE planned_sessions
		SET completed = 1,
		    completed_at = COALESCE(completed_at, ?)
		WHERE id = ?`,
		completedAt.UTC().Format(timestampFormat), sessionID)
	if err != nil {
		return fmt.Errorf("complete planned session: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}
	return nil
}

// updateSessionTargets writes a session's planned weight and every set's
// target weight in one transaction.
func (r *sqliteRepository) updateSessionTargets(ctx context.Context, sess PlannedSession) error {
	tx, err := r.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer r.rollback(ctx, tx)

	_, err = tx.ExecContext(ctx, `
		UPDATE planned_sessions SET planned_weight = ? WHERE id = ?`,
		sess.PlannedWeight, sess.ID)
	if err != nil {
		return fmt.Errorf("update session weight: %w", err)
	}
	for _, set := range sess.Sets {
		_, err = tx.ExecContext(ctx, `
			UPDATE set_records SET target_weight = ? WHERE session_id = ? AND set_index = ?`,
			set.TargetWeight, sess.ID, set.SetIndex)
		if err != nil {
			return fmt.Errorf("update set target: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
