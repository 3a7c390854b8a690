package plan

import "testing"

func TestRoundToIncrement(t *testing.T) {
	testCases := []struct {
		name   string
		weight float64
		inc    float64
		want   float64
	}{
		{name: "already on increment", weight: 135, inc: 5, want: 135},
		{name: "rounds down", weight: 136, inc: 5, want: 135},
		{name: "rounds up", weight: 138, inc: 5, want: 140},
		{name: "midpoint rounds up", weight: 137.5, inc: 5, want: 140},
		{name: "metric increment", weight: 61.3, inc: 2.5, want: 62.5},
		{name: "zero increment leaves weight", weight: 137.3, inc: 0, want: 137.3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := roundToIncrement(tc.weight, tc.inc); got != tc.want {
				t.Errorf("roundToIncrement(%v, %v) = %v, want %v", tc.weight, tc.inc, got, tc.want)
			}
		})
	}
}

func TestLinearWeight(t *testing.T) {
	prog := Progression{StartingWeight: 45, Increment: 5}

	testCases := []struct {
		appearance int
		want       float64
	}{
		{appearance: 1, want: 45},
		{appearance: 2, want: 50},
		{appearance: 10, want: 90},
	}
	for _, tc := range testCases {
		if got := linearWeight(prog, tc.appearance); got != tc.want {
			t.Errorf("linearWeight(appearance=%d) = %v, want %v", tc.appearance, got, tc.want)
		}
	}
}

func TestIntensityDerivedWeights(t *testing.T) {
	params := DefaultParameters()
	prog := Progression{StartingWeight: 100, Increment: 5}

	if got := intensityWeight(prog, 1); got != 100 {
		t.Errorf("intensityWeight(week=1) = %v, want 100", got)
	}
	if got := intensityWeight(prog, 3); got != 110 {
		t.Errorf("intensityWeight(week=3) = %v, want 110", got)
	}
	if got := params.volumeWeight(prog, 1); got != 90 {
		t.Errorf("volumeWeight(week=1) = %v, want 90", got)
	}
	// Recovery backs the anchor lift off from the volume weight.
	if got := params.recoveryWeight(prog, 1, true); got != 72 {
		t.Errorf("recoveryWeight(week=1, anchor) = %v, want 72", got)
	}
	// Non-anchor lifts keep progressing like intensity.
	if got := params.recoveryWeight(prog, 2, false); got != 105 {
		t.Errorf("recoveryWeight(week=2, non-anchor) = %v, want 105", got)
	}
}

func TestLightTopSetWeight(t *testing.T) {
	params := DefaultParameters()
	prog := Progression{StartingWeight: 200, Increment: 10}

	if got := params.lightTopSetWeight(prog, 1, true); got != 150 {
		t.Errorf("lightTopSetWeight(week=1, anchor) = %v, want 150", got)
	}
	if got := params.lightTopSetWeight(prog, 2, false); got != 210 {
		t.Errorf("lightTopSetWeight(week=2, non-anchor) = %v, want 210", got)
	}
}
