package plan

import "testing"

func TestEvaluatePerformance(t *testing.T) {
	policy := DefaultPolicy()

	testCases := []struct {
		name          string
		plannedReps   int
		completedReps int
		want          PerformanceTier
	}{
		{name: "all reps completed", plannedReps: 15, completedReps: 15, want: TierContinueAsPlanned},
		{name: "90 percent is still excellent", plannedReps: 20, completedReps: 18, want: TierContinueAsPlanned},
		{name: "80 percent repeats the weight", plannedReps: 15, completedReps: 12, want: TierRepeatWeight},
		{name: "exactly at good threshold", plannedReps: 20, completedReps: 15, want: TierRepeatWeight},
		{name: "60 percent reduces the weight", plannedReps: 15, completedReps: 9, want: TierReduceWeight},
		{name: "exactly at adjustment threshold", plannedReps: 20, completedReps: 10, want: TierReduceWeight},
		{name: "collapse triggers deload", plannedReps: 15, completedReps: 5, want: TierDeload},
		{name: "nothing completed", plannedReps: 15, completedReps: 0, want: TierDeload},
		{name: "zero planned reps continues", plannedReps: 0, completedReps: 7, want: TierContinueAsPlanned},
		{name: "overachieving continues", plannedReps: 15, completedReps: 20, want: TierContinueAsPlanned},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := EvaluatePerformance(tc.plannedReps, tc.completedReps, policy)
			if got != tc.want {
				t.Errorf("EvaluatePerformance(%d, %d) = %v, want %v",
					tc.plannedReps, tc.completedReps, got, tc.want)
			}
		})
	}
}

// TestEvaluatePerformanceMonotonic checks that completing more reps never
// maps to a harsher tier.
func TestEvaluatePerformanceMonotonic(t *testing.T) {
	policy := DefaultPolicy()
	const plannedReps = 20

	previous := TierDeload
	for completed := 0; completed <= plannedReps; completed++ {
		tier := EvaluatePerformance(plannedReps, completed, policy)
		// Tiers are declared from best to worst, so a larger value is worse.
		if tier > previous {
			t.Fatalf("tier worsened from %v to %v at %d completed reps", previous, tier, completed)
		}
		previous = tier
	}
}

func TestEvaluateDecision(t *testing.T) {
	reps := func(n int) *int { return &n }
	sess := PlannedSession{
		Sets: []SetRecord{
			{SetIndex: 0, TargetReps: 5, ActualReps: reps(5)},
			{SetIndex: 1, TargetReps: 5, ActualReps: reps(4)},
			{SetIndex: 2, TargetReps: 5, ActualReps: reps(3)},
		},
	}

	testCases := []struct {
		name     string
		mode     AdjustmentMode
		wantAuto bool
	}{
		{name: "prompt surfaces but does not apply", mode: ModePrompt, wantAuto: false},
		{name: "auto adjust applies", mode: ModeAutoAdjust, wantAuto: true},
		{name: "never only informs", mode: ModeNever, wantAuto: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			policy := DefaultPolicy()
			policy.Mode = tc.mode
			decision := Evaluate(sess, policy)
			// 12 of 15 reps is 80 percent.
			if decision.Tier != TierRepeatWeight {
				t.Errorf("tier %v, want %v", decision.Tier, TierRepeatWeight)
			}
			if decision.WillApplyAutomatically != tc.wantAuto {
				t.Errorf("WillApplyAutomatically = %v, want %v",
					decision.WillApplyAutomatically, tc.wantAuto)
			}
		})
	}

	t.Run("perfect session never auto-applies", func(t *testing.T) {
		policy := DefaultPolicy()
		policy.Mode = ModeAutoAdjust
		perfect := PlannedSession{
			Sets: []SetRecord{{TargetReps: 5, ActualReps: reps(5)}},
		}
		decision := Evaluate(perfect, policy)
		if decision.Tier != TierContinueAsPlanned || decision.WillApplyAutomatically {
			t.Errorf("got %+v, want ContinueAsPlanned without application", decision)
		}
	})

	t.Run("unlogged sets count as zero reps", func(t *testing.T) {
		unlogged := PlannedSession{
			Sets: []SetRecord{
				{TargetReps: 5, ActualReps: reps(5)},
				{TargetReps: 5},
				{TargetReps: 5},
			},
		}
		decision := Evaluate(unlogged, DefaultPolicy())
		// 5 of 15 reps is 33 percent.
		if decision.Tier != TierDeload {
			t.Errorf("tier %v, want %v", decision.Tier, TierDeload)
		}
	})
}
