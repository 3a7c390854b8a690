package plan

import (
	"errors"
	"testing"
)

// adjusterFixture builds a three-week plan with one squat session per week.
func adjusterFixture() (TrainingPlan, []PlannedSession) {
	p := TrainingPlan{
		ID:          "plan-1",
		Methodology: MethodologyLinearAB,
		TotalWeeks:  3,
		CurrentWeek: 1,
		Status:      StatusActive,
	}
	sessions := []PlannedSession{
		{ID: "w1", PlanID: "plan-1", Week: 1, ExerciseID: squatID, PlannedWeight: 200},
		{ID: "w2", PlanID: "plan-1", Week: 2, ExerciseID: squatID, PlannedWeight: 205},
		{ID: "w3", PlanID: "plan-1", Week: 3, ExerciseID: squatID, PlannedWeight: 210},
		// A different exercise must never be touched.
		{ID: "b2", PlanID: "plan-1", Week: 2, ExerciseID: benchID, PlannedWeight: 100},
	}
	return p, sessions
}

func mutationByID(mutations []WeightMutation, id string) (WeightMutation, bool) {
	for _, m := range mutations {
		if m.SessionID == id {
			return m, true
		}
	}
	return WeightMutation{}, false
}

func TestApply(t *testing.T) {
	policy := DefaultPolicy()

	t.Run("continue as planned is a no-op", func(t *testing.T) {
		p, sessions := adjusterFixture()
		mutations, err := Apply(p, sessions, sessions[0], TierContinueAsPlanned, policy)
		if err != nil {
			t.Fatalf("Apply returned unexpected error: %v", err)
		}
		if len(mutations) != 0 {
			t.Errorf("expected no mutations, got %v", mutations)
		}
	})

	t.Run("repeat weight holds next week only", func(t *testing.T) {
		p, sessions := adjusterFixture()
		mutations, err := Apply(p, sessions, sessions[0], TierRepeatWeight, policy)
		if err != nil {
			t.Fatalf("Apply returned unexpected error: %v", err)
		}
		if len(mutations) != 1 {
			t.Fatalf("expected 1 mutation, got %v", mutations)
		}
		if m, _ := mutationByID(mutations, "w2"); m.NewWeight != 200 {
			t.Errorf("week 2 weight %v, want 200", m.NewWeight)
		}
	})

	t.Run("reduce weight touches all later weeks", func(t *testing.T) {
		p, sessions := adjusterFixture()
		mutations, err := Apply(p, sessions, sessions[0], TierReduceWeight, policy)
		if err != nil {
			t.Fatalf("Apply returned unexpected error: %v", err)
		}
		if len(mutations) != 2 {
			t.Fatalf("expected 2 mutations, got %v", mutations)
		}
		// 205 and 210 reduced by 10 percent, rounded to 5.
		if m, _ := mutationByID(mutations, "w2"); m.NewWeight != 185 {
			t.Errorf("week 2 weight %v, want 185", m.NewWeight)
		}
		if m, _ := mutationByID(mutations, "w3"); m.NewWeight != 190 {
			t.Errorf("week 3 weight %v, want 190", m.NewWeight)
		}
	})

	t.Run("deload reduces next week only", func(t *testing.T) {
		p, sessions := adjusterFixture()
		mutations, err := Apply(p, sessions, sessions[0], TierDeload, policy)
		if err != nil {
			t.Fatalf("Apply returned unexpected error: %v", err)
		}
		if len(mutations) != 1 {
			t.Fatalf("expected 1 mutation, got %v", mutations)
		}
		// The week 2 session planned at 205 comes down 10 percent to 184.5,
		// rounded to 185. Week 3 stays untouched.
		if m, _ := mutationByID(mutations, "w2"); m.NewWeight != 185 {
			t.Errorf("week 2 weight %v, want 185", m.NewWeight)
		}
		if _, ok := mutationByID(mutations, "w3"); ok {
			t.Error("deload must not touch weeks beyond the next one")
		}
	})

	t.Run("deload of a 200 session yields 180 next week", func(t *testing.T) {
		p, sessions := adjusterFixture()
		sessions[1].PlannedWeight = 200
		mutations, err := Apply(p, sessions, sessions[0], TierDeload, policy)
		if err != nil {
			t.Fatalf("Apply returned unexpected error: %v", err)
		}
		if m, _ := mutationByID(mutations, "w2"); m.NewWeight != 180 {
			t.Errorf("week 2 weight %v, want 180", m.NewWeight)
		}
	})

	t.Run("other exercises stay untouched", func(t *testing.T) {
		p, sessions := adjusterFixture()
		mutations, err := Apply(p, sessions, sessions[0], TierReduceWeight, policy)
		if err != nil {
			t.Fatalf("Apply returned unexpected error: %v", err)
		}
		if _, ok := mutationByID(mutations, "b2"); ok {
			t.Error("mutation leaked to a different exercise")
		}
	})

	t.Run("final week has nothing to adjust", func(t *testing.T) {
		p, sessions := adjusterFixture()
		mutations, err := Apply(p, sessions, sessions[2], TierRepeatWeight, policy)
		if err != nil {
			t.Fatalf("Apply returned unexpected error: %v", err)
		}
		if len(mutations) != 0 {
			t.Errorf("expected no mutations, got %v", mutations)
		}
	})

	t.Run("week outside the plan is rejected", func(t *testing.T) {
		p, sessions := adjusterFixture()
		ghost := PlannedSession{ID: "w9", PlanID: "plan-1", Week: 9, ExerciseID: squatID}
		if _, err := Apply(p, sessions, ghost, TierRepeatWeight, policy); !errors.Is(err, ErrWeekOutOfRange) {
			t.Errorf("expected ErrWeekOutOfRange, got %v", err)
		}
	})
}

func TestRescaleSetTargets(t *testing.T) {
	sess := PlannedSession{
		PlannedWeight: 100,
		Sets: []SetRecord{
			{SetIndex: 0, TargetWeight: 60},
			{SetIndex: 1, TargetWeight: 80},
			{SetIndex: 2, TargetWeight: 100},
		},
	}
	RescaleSetTargets(&sess, 90, 5)

	if sess.PlannedWeight != 90 {
		t.Errorf("planned weight %v, want 90", sess.PlannedWeight)
	}
	// The ladder keeps its shape: each target scales by 0.9 and rounds.
	want := []float64{55, 70, 90}
	for i, set := range sess.Sets {
		if set.TargetWeight != want[i] {
			t.Errorf("set %d target %v, want %v", i, set.TargetWeight, want[i])
		}
	}
}

func TestAdvanceWeek(t *testing.T) {
	sessionsForWeek := func(week int, completed ...bool) []PlannedSession {
		sessions := make([]PlannedSession, len(completed))
		for i, done := range completed {
			sessions[i] = PlannedSession{
				ID: "s", PlanID: "plan-1", Week: week, Completed: done,
			}
		}
		return sessions
	}

	t.Run("incomplete week stays put", func(t *testing.T) {
		p := TrainingPlan{ID: "plan-1", TotalWeeks: 3, CurrentWeek: 1}
		week, advanced := AdvanceWeek(p, sessionsForWeek(1, true, true, false))
		if advanced || week != 1 {
			t.Errorf("got week %d advanced=%v, want week 1 without advancement", week, advanced)
		}
	})

	t.Run("last completed session advances by exactly one", func(t *testing.T) {
		p := TrainingPlan{ID: "plan-1", TotalWeeks: 3, CurrentWeek: 1}
		week, advanced := AdvanceWeek(p, sessionsForWeek(1, true, true, true))
		if !advanced || week != 2 {
			t.Errorf("got week %d advanced=%v, want week 2", week, advanced)
		}
	})

	t.Run("never advances past the final week", func(t *testing.T) {
		p := TrainingPlan{ID: "plan-1", TotalWeeks: 3, CurrentWeek: 3}
		week, advanced := AdvanceWeek(p, sessionsForWeek(3, true, true, true))
		if advanced || week != 3 {
			t.Errorf("got week %d advanced=%v, want week 3 without advancement", week, advanced)
		}
	})

	t.Run("no sessions means no advancement", func(t *testing.T) {
		p := TrainingPlan{ID: "plan-1", TotalWeeks: 3, CurrentWeek: 2}
		week, advanced := AdvanceWeek(p, nil)
		if advanced || week != 2 {
			t.Errorf("got week %d advanced=%v, want week 2 without advancement", week, advanced)
		}
	})
}
