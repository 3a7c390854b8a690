package plan

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// createPlan persists a plan with its day templates and exercise slots in a
// single transaction.
func (r *sqliteRepository) createPlan(ctx context.Context, p TrainingPlan) error {
	tx, err := r.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer r.rollback(ctx, tx)

	_, err = tx.ExecContext(ctx, `
		INSERT INTO training_plans (
			id, name, methodology, total_weeks, current_week, status, start_date, rounding_increment
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, string(p.Methodology), p.TotalWeeks, p.CurrentWeek,
		string(p.Status), p.StartDate.Format(dateFormat), p.RoundingIncrement)
	if err != nil {
		return fmt.Errorf("insert training plan: %w", err)
	}

	for dayIndex, day := range p.Days {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO training_days (plan_id, day_index, role)
			VALUES (?, ?, ?)`,
			p.ID, dayIndex, string(day.Role))
		if err != nil {
			return fmt.Errorf("insert training day: %w", err)
		}
		for slotIndex, slot := range day.Slots {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO exercise_slots (
					plan_id, day_index, slot_index, exercise_id,
					starting_weight, increment, target_sets, target_reps, anchor
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				p.ID, dayIndex, slotIndex, slot.ExerciseID,
				slot.StartingWeight, slot.Increment, slot.TargetSets, slot.TargetReps, slot.Anchor)
			if err != nil {
				return fmt.Errorf("insert exercise slot: %w", err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// getPlan loads a plan with its day templates and exercise slots.
func (r *sqliteRepository) getPlan(ctx context.Context, planID string) (TrainingPlan, error) {
	var (
		p            TrainingPlan
		methodology  string
		status       string
		startDateStr string
	)
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id, name, methodology, total_weeks, current_week, status, start_date, rounding_increment
		FROM training_plans
		WHERE id = ?`, planID).Scan(
		&p.ID, &p.Name, &methodology, &p.TotalWeeks, &p.CurrentWeek,
		&status, &startDateStr, &p.RoundingIncrement)
	if errors.Is(err, sql.ErrNoRows) {
		return TrainingPlan{}, fmt.Errorf("plan %s: %w", planID, ErrNotFound)
	}
	if err != nil {
		return TrainingPlan{}, fmt.Errorf("query training plan: %w", err)
	}
	p.Methodology = Methodology(methodology)
	p.Status = Status(status)
	if p.StartDate, err = parseDate(startDateStr); err != nil {
		return TrainingPlan{}, fmt.Errorf("parse start date: %w", err)
	}

	if p.Days, err = r.getTrainingDays(ctx, planID); err != nil {
		return TrainingPlan{}, err
	}
	return p, nil
}

func (r *sqliteRepository) getTrainingDays(ctx context.Context, planID string) ([]TrainingDay, error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT td.day_index, td.role,
		       es.exercise_id, es.starting_weight, es.increment,
		       es.target_sets, es.target_reps, es.anchor
		FROM training_days td
		JOIN exercise_slots es ON es.plan_id = td.plan_id AND es.day_index = td.day_index
		WHERE td.plan_id = ?
		ORDER BY td.day_index, es.slot_index`, planID)
	if err != nil {
		return nil, fmt.Errorf("query training days: %w", err)
	}
	defer rows.Close()

	var days []TrainingDay
	lastIndex := -1
	for rows.Next() {
		var (
			dayIndex int
			role     string
			slot     ExerciseSlot
		)
		err = rows.Scan(&dayIndex, &role,
			&slot.ExerciseID, &slot.StartingWeight, &slot.Increment,
			&slot.TargetSets, &slot.TargetReps, &slot.Anchor)
		if err != nil {
			return nil, fmt.Errorf("scan training day row: %w", err)
		}
		if dayIndex != lastIndex {
			days = append(days, TrainingDay{Role: DayRole(role)})
			lastIndex = dayIndex
		}
		days[len(days)-1].Slots = append(days[len(days)-1].Slots, slot)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate training day rows: %w", err)
	}
	return days, nil
}

// listPlans returns all plans without their day templates, newest first.
func (r *sqliteRepository) listPlans(ctx context.Context) ([]TrainingPlan, error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT id, name, methodology, total_weeks, current_week, status, start_date, rounding_increment
		FROM training_plans
		ORDER BY start_date DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("query training plans: %w", err)
	}
	defer rows.Close()

	var plans []TrainingPlan
	for rows.Next() {
		var (
			p            TrainingPlan
			methodology  string
			status       string
			startDateStr string
		)
		err = rows.Scan(&p.ID, &p.Name, &methodology, &p.TotalWeeks, &p.CurrentWeek,
			&status, &startDateStr, &p.RoundingIncrement)
		if err != nil {
			return nil, fmt.Errorf("scan training plan row: %w", err)
		}
		p.Methodology = Methodology(methodology)
		p.Status = Status(status)
		if p.StartDate, err = parseDate(startDateStr); err != nil {
			return nil, fmt.Errorf("parse start date: %w", err)
		}
		plans = append(plans, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate training plan rows: %w", err)
	}
	return plans, nil
}

// updateCurrentWeek moves the plan pointer to the given week.
func (r *sqliteRepository) updateCurrentWeek(ctx context.Context, planID string, week int) error {
	result, err := r.db.ReadWrite.ExecContext(ctx, `
		UPDATE training_plans SET current_week = ? WHERE id = ?`, week, planID)
	if err != nil {
		return fmt.Errorf("update current week: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("plan %s: %w", planID, ErrNotFound)
	}
	return nil
}

// updateStatus transitions the plan's lifecycle state.
func (r *sqliteRepository) updateStatus(ctx context.Context, planID string, status Status) error {
	result, err := r.db.ReadWrite.ExecContext(ctx, `
		UPDATE training_plans SET status = ? WHERE id = ?`, string(status), planID)
	if err != nil {
		return fmt.Errorf("update plan status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("plan %s: %w", planID, ErrNotFound)
	}
	return nil
}

func parseDate(dateStr string) (time.Time, error) {
	return time.Parse(dateFormat, dateStr)
}
