package plan

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// getPolicy reads the single adjustment policy row, falling back to the
// defaults when the row is missing.
func (r *sqliteRepository) getPolicy(ctx context.Context) (AdjustmentPolicy, error) {
	var (
		policy AdjustmentPolicy
		mode   string
	)
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT excellent_threshold, good_threshold, adjustment_threshold,
		       reduction_percent, deload_percent, rounding_increment, mode
		FROM adjustment_policy
		WHERE id = 1`).Scan(
		&policy.ExcellentThreshold, &policy.GoodThreshold, &policy.AdjustmentThreshold,
		&policy.ReductionPercent, &policy.DeloadPercent, &policy.RoundingIncrement, &mode)
	if errors.Is(err, sql.ErrNoRows) {
		return DefaultPolicy(), nil
	}
	if err != nil {
		return AdjustmentPolicy{}, fmt.Errorf("query adjustment policy: %w", err)
	}
	policy.Mode = AdjustmentMode(mode)
	return policy, nil
}

// savePolicy replaces the adjustment policy.
func (r *sqliteRepository) savePolicy(ctx context.Context, policy AdjustmentPolicy) error {
	if err := policy.Validate(); err != nil {
		return fmt.Errorf("validate policy: %w", err)
	}
	_, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO adjustment_policy (
			id, excellent_threshold, good_threshold, adjustment_threshold,
			reduction_percent, deload_percent, rounding_increment, mode
		) VALUES (1, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			excellent_threshold = excluded.excellent_threshold,
			good_threshold = excluded.good_threshold,
			adjustment_threshold = excluded.adjustment_threshold,
			reduction_percent = excluded.reduction_percent,
			deload_percent = excluded.deload_percent,
			rounding_increment = excluded.rounding_increment,
			mode = excluded.mode`,
		policy.ExcellentThreshold, policy.GoodThreshold, policy.AdjustmentThreshold,
		policy.ReductionPercent, policy.DeloadPercent, policy.RoundingIncrement, string(policy.Mode))
	if err != nil {
		return fmt.Errorf("save adjustment policy: %w", err)
	}
	return nil
}
