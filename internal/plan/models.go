package plan

import (
	"time"

	"github.com/myrjola/ironplan/internal/errors"
)

// Methodology selects the progression scheme a plan is generated with.
type Methodology string

const (
	// MethodologyLinearAB alternates two session templates and adds a fixed
	// increment on every appearance of an exercise.
	MethodologyLinearAB Methodology = "linear_ab"
	// MethodologyVolumeRecoveryIntensity runs three weekly sessions whose
	// weights derive from a weekly intensity target.
	MethodologyVolumeRecoveryIntensity Methodology = "volume_recovery_intensity"
	// MethodologyVolumeLightIntensity runs three weekly sessions built from
	// ascending ramp sets toward a weekly top set.
	MethodologyVolumeLightIntensity Methodology = "volume_light_intensity"
)

// DayRole identifies what a training day within a week is for.
type DayRole string

const (
	RoleA         DayRole = "a"
	RoleB         DayRole = "b"
	RoleVolume    DayRole = "volume"
	RoleRecovery  DayRole = "recovery"
	RoleLight     DayRole = "light"
	RoleIntensity DayRole = "intensity"
)

// Status tracks the lifecycle of a training plan.
type Status string

const (
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
)

// Exercise represents a single barbell lift, e.g. Squat, Bench Press, etc.
type Exercise struct {
	ID   int
	Name string
}

// ExerciseSlot binds an exercise into a training day with its progression
// inputs. Anchor marks the lift whose recovery and light sessions are scaled
// down instead of following the week's target.
type ExerciseSlot struct {
	ExerciseID     int
	StartingWeight float64
	Increment      float64
	TargetSets     int
	TargetReps     int
	Anchor         bool
}

// TrainingDay is one session template within a plan's weekly cycle.
type TrainingDay struct {
	Role  DayRole
	Slots []ExerciseSlot
}

// TrainingPlan is the root aggregate: a named multi-week program over a set
// of day templates.
type TrainingPlan struct {
	ID                string
	Name              string
	Methodology       Methodology
	TotalWeeks        int
	CurrentWeek       int
	Status            Status
	StartDate         time.Time
	RoundingIncrement float64
	Days              []TrainingDay
}

// SetRecord is one set within a planned session, with its target and, once
// logged, the actual performance.
type SetRecord struct {
	SetIndex     int
	TargetReps   int
	TargetWeight float64
	ActualReps   *int
	ActualWeight *float64
	RPE          *float64
	Completed    bool
}

// PlannedSession is one exercise's work on one training day of one week.
// ID is assigned when the session is persisted; the generator leaves it empty.
type PlannedSession struct {
	ID            string
	PlanID        string
	Week          int
	DayIndex      int
	ExerciseID    int
	ScheduledDate time.Time
	PlannedWeight float64
	PlannedSets   int
	PlannedReps   int
	Completed     bool
	CompletedAt   time.Time
	Sets          []SetRecord
}

// AdjustmentMode controls whether performance-based weight changes are
// applied without confirmation.
type AdjustmentMode string

const (
	ModePrompt     AdjustmentMode = "prompt"
	ModeAutoAdjust AdjustmentMode = "auto_adjust"
	ModeNever      AdjustmentMode = "never"
)

// AdjustmentPolicy holds the completion-percentage thresholds and reduction
// factors used to react to a finished session.
type AdjustmentPolicy struct {
	ExcellentThreshold  float64
	GoodThreshold       float64
	AdjustmentThreshold float64
	ReductionPercent    float64
	DeloadPercent       float64
	RoundingIncrement   float64
	Mode                AdjustmentMode
}

// DefaultPolicy returns the policy used when none has been configured.
func DefaultPolicy() AdjustmentPolicy {
	return AdjustmentPolicy{
		ExcellentThreshold:  90,
		GoodThreshold:       75,
		AdjustmentThreshold: 50,
		ReductionPercent:    10,
		DeloadPercent:       10,
		RoundingIncrement:   5,
		Mode:                ModePrompt,
	}
}

// Validate checks that the thresholds are ordered and the factors sane.
func (p AdjustmentPolicy) Validate() error {
	if p.ExcellentThreshold < p.GoodThreshold || p.GoodThreshold < p.AdjustmentThreshold {
		return errors.Wrap(ErrInvalidInput, "thresholds must be non-increasing from excellent to adjustment")
	}
	if p.AdjustmentThreshold < 0 {
		return errors.Wrap(ErrInvalidInput, "adjustment threshold must not be negative")
	}
	if p.ReductionPercent < 0 || p.ReductionPercent >= 100 {
		return errors.Wrap(ErrInvalidInput, "reduction percent must be in [0, 100)")
	}
	if p.DeloadPercent < 0 || p.DeloadPercent >= 100 {
		return errors.Wrap(ErrInvalidInput, "deload percent must be in [0, 100)")
	}
	if p.RoundingIncrement <= 0 {
		return errors.Wrap(ErrInvalidInput, "rounding increment must be positive")
	}
	switch p.Mode {
	case ModePrompt, ModeAutoAdjust, ModeNever:
	default:
		return errors.Wrap(ErrInvalidInput, "unknown adjustment mode")
	}
	return nil
}
