package plan

// PerformanceTier classifies a completed session by how much of its planned
// rep total was achieved.
type PerformanceTier int

const (
	// TierContinueAsPlanned keeps the upcoming weights untouched.
	TierContinueAsPlanned PerformanceTier = iota
	// TierRepeatWeight holds next week's weight at this session's weight.
	TierRepeatWeight
	// TierReduceWeight lowers every remaining week's weight.
	TierReduceWeight
	// TierDeload lowers only next week's weight before resuming the plan.
	TierDeload
)

func (t PerformanceTier) String() string {
	switch t {
	case TierContinueAsPlanned:
		return "continue as planned"
	case TierRepeatWeight:
		return "repeat weight"
	case TierReduceWeight:
		return "reduce weight"
	case TierDeload:
		return "deload"
	default:
		return "unknown"
	}
}

// EvaluatePerformance maps a session's rep completion percentage onto a
// tier using the policy's thresholds. A session with nothing planned counts
// as fully completed.
func EvaluatePerformance(plannedReps, completedReps int, policy AdjustmentPolicy) PerformanceTier {
	if plannedReps <= 0 {
		return TierContinueAsPlanned
	}
	percentage := float64(completedReps) / float64(plannedReps) * 100
	switch {
	case percentage >= policy.ExcellentThreshold:
		return TierContinueAsPlanned
	case percentage >= policy.GoodThreshold:
		return TierRepeatWeight
	case percentage >= policy.AdjustmentThreshold:
		return TierReduceWeight
	default:
		return TierDeload
	}
}

// sessionRepTotals sums the planned and actually completed reps over a
// session's sets. Sets without a logged result contribute zero completed reps.
func sessionRepTotals(sess PlannedSession) (planned, completed int) {
	for _, set := range sess.Sets {
		planned += set.TargetReps
		if set.ActualReps != nil {
			completed += *set.ActualReps
		}
	}
	return planned, completed
}
