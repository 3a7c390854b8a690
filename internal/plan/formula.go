package plan

import "math"

// Parameters tunes the schedule generator. The zero value is not usable;
// start from DefaultParameters.
type Parameters struct {
	// DayOffsets places each weekly session relative to the start of its
	// week, e.g. {0, 2, 4} for Monday, Wednesday, Friday.
	DayOffsets []int
	// VolumeOfIntensity scales the week's intensity weight down for the
	// volume session.
	VolumeOfIntensity float64
	// RecoveryOfVolume scales the week's volume weight down for the anchor
	// lift on recovery days.
	RecoveryOfVolume float64
	// LightOfTop scales the week's top set down for the anchor lift on
	// light days.
	LightOfTop float64
	// RampLadder lists the ascending fractions of the top set that make up
	// a ramp session. The last entry should be 1.
	RampLadder []float64
	// HeavyPercent and HeavyReps describe the single heavy set appended on
	// intensity days, BackoffPercent and BackoffReps the back-off set after it.
	HeavyPercent   float64
	HeavyReps      int
	BackoffPercent float64
	BackoffReps    int
	// RoundingIncrement snaps every generated weight to a loadable value.
	RoundingIncrement float64
}

// DefaultParameters returns the generator tuning used when none is supplied.
func DefaultParameters() Parameters {
	return Parameters{
		DayOffsets:        []int{0, 2, 4},
		VolumeOfIntensity: 0.90,
		RecoveryOfVolume:  0.80,
		LightOfTop:        0.75,
		RampLadder:        []float64{0.60, 0.69, 0.82, 0.91, 1.00},
		HeavyPercent:      1.05,
		HeavyReps:         3,
		BackoffPercent:    0.80,
		BackoffReps:       8,
		RoundingIncrement: 5,
	}
}

// Progression is the per-exercise input to the weight formulas.
type Progression struct {
	StartingWeight float64
	Increment      float64
}

// roundToIncrement snaps a weight to the nearest multiple of inc, ties away
// from zero. A non-positive increment leaves the weight untouched.
func roundToIncrement(weight, inc float64) float64 {
	if inc <= 0 {
		return weight
	}
	return math.Round(weight/inc) * inc
}

// linearWeight is the weight at the k-th appearance of an exercise under
// linear progression. The first appearance uses the starting weight as is.
func linearWeight(prog Progression, appearance int) float64 {
	return prog.StartingWeight + prog.Increment*float64(appearance-1)
}

// intensityWeight is week w's intensity target: the starting weight plus one
// increment per completed week.
func intensityWeight(prog Progression, week int) float64 {
	return prog.StartingWeight + prog.Increment*float64(week-1)
}

// volumeWeight derives the volume session's weight from the same week's
// intensity target.
func (p Parameters) volumeWeight(prog Progression, week int) float64 {
	return p.VolumeOfIntensity * intensityWeight(prog, week)
}

// recoveryWeight backs the anchor lift off from the week's volume weight.
// Non-anchor lifts keep progressing at the intensity target.
func (p Parameters) recoveryWeight(prog Progression, week int, anchor bool) float64 {
	if !anchor {
		return intensityWeight(prog, week)
	}
	return p.RecoveryOfVolume * p.volumeWeight(prog, week)
}

// topSetWeight is week w's top ramp set before any role scaling.
func topSetWeight(prog Progression, week int) float64 {
	return prog.StartingWeight + prog.Increment*float64(week-1)
}

// lightTopSetWeight scales the anchor lift's top set down on light days.
func (p Parameters) lightTopSetWeight(prog Progression, week int, anchor bool) float64 {
	top := topSetWeight(prog, week)
	if !anchor {
		return top
	}
	return p.LightOfTop * top
}
