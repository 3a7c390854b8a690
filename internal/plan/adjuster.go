package plan

import "github.com/myrjola/ironplan/internal/errors"

// Decision is the outcome of evaluating a completed session: the tier it
// landed in and whether the policy lets it take effect without confirmation.
type Decision struct {
	Tier                   PerformanceTier
	WillApplyAutomatically bool
}

// Evaluate classifies a completed session under the policy. In prompt mode
// the decision is surfaced for confirmation, in never mode it is purely
// informational.
func Evaluate(sess PlannedSession, policy AdjustmentPolicy) Decision {
	planned, completed := sessionRepTotals(sess)
	tier := EvaluatePerformance(planned, completed, policy)
	return Decision{
		Tier:                   tier,
		WillApplyAutomatically: policy.Mode == ModeAutoAdjust && tier != TierContinueAsPlanned,
	}
}

// WeightMutation is one pending change to a future session's planned weight.
type WeightMutation struct {
	SessionID string
	NewWeight float64
}

// Apply computes the weight mutations a tier implies for the plan's future
// sessions of the same exercise. It never modifies its inputs; persisting the
// mutations is the caller's job. A tier with no future sessions to touch
// yields an empty result.
func Apply(
	p TrainingPlan,
	sessions []PlannedSession,
	completed PlannedSession,
	tier PerformanceTier,
	policy AdjustmentPolicy,
) ([]WeightMutation, error) {
	if completed.Week < 1 || completed.Week > p.TotalWeeks {
		return nil, errors.Wrap(ErrWeekOutOfRange, "completed session week outside plan")
	}

	inc := policy.RoundingIncrement
	var mutations []WeightMutation
	for _, sess := range sessions {
		if sess.PlanID != p.ID || sess.ExerciseID != completed.ExerciseID {
			continue
		}
		switch tier {
		case TierRepeatWeight:
			if sess.Week == completed.Week+1 {
				mutations = append(mutations, WeightMutation{
					SessionID: sess.ID,
					NewWeight: roundToIncrement(completed.PlannedWeight, inc),
				})
			}
		case TierReduceWeight:
			if sess.Week > completed.Week {
				mutations = append(mutations, WeightMutation{
					SessionID: sess.ID,
					NewWeight: roundToIncrement(sess.PlannedWeight*(1-policy.ReductionPercent/100), inc),
				})
			}
		case TierDeload:
			if sess.Week == completed.Week+1 {
				mutations = append(mutations, WeightMutation{
					SessionID: sess.ID,
					NewWeight: roundToIncrement(sess.PlannedWeight*(1-policy.DeloadPercent/100), inc),
				})
			}
		case TierContinueAsPlanned:
		}
	}
	return mutations, nil
}

// RescaleSetTargets moves a session to a new planned weight and scales its
// set targets by the same factor, so ramp ladders keep their shape. Sessions
// whose old weight is zero get every set target replaced outright.
func RescaleSetTargets(sess *PlannedSession, newWeight, roundingIncrement float64) {
	old := sess.PlannedWeight
	sess.PlannedWeight = newWeight
	for i := range sess.Sets {
		if old <= 0 {
			sess.Sets[i].TargetWeight = newWeight
			continue
		}
		factor := newWeight / old
		sess.Sets[i].TargetWeight = roundToIncrement(sess.Sets[i].TargetWeight*factor, roundingIncrement)
	}
}

// AdvanceWeek reports whether every session of the plan's current week is
// complete, and if so, the week the plan should move to. The week never
// advances past the plan's last week.
func AdvanceWeek(p TrainingPlan, sessions []PlannedSession) (int, bool) {
	total, completed := 0, 0
	for _, sess := range sessions {
		if sess.PlanID != p.ID || sess.Week != p.CurrentWeek {
			continue
		}
		total++
		if sess.Completed {
			completed++
		}
	}
	if total == 0 || completed < total {
		return p.CurrentWeek, false
	}
	if p.CurrentWeek >= p.TotalWeeks {
		return p.CurrentWeek, false
	}
	return p.CurrentWeek + 1, true
}
