package plan

import (
	"sort"

	"github.com/myrjola/ironplan/internal/errors"
)

// Generator turns a training plan definition into the full list of planned
// sessions for every week. Generation is deterministic: the same plan and
// parameters always produce the same sessions, and no IDs are minted here.
type Generator struct {
	params Parameters
}

// NewGenerator returns a generator tuned with the given parameters.
func NewGenerator(params Parameters) *Generator {
	return &Generator{params: params}
}

// Generate expands the plan into planned sessions ordered by week, day, and
// slot. Sessions carry the plan ID but no session IDs of their own. A plan
// with its own rounding increment overrides the generator's default, so a
// metric plan rounds to 2.5 no matter how the generator was tuned.
func (g *Generator) Generate(p TrainingPlan) ([]PlannedSession, error) {
	if err := g.validate(p); err != nil {
		return nil, err
	}

	gen := g
	if p.RoundingIncrement > 0 && p.RoundingIncrement != g.params.RoundingIncrement {
		params := g.params
		params.RoundingIncrement = p.RoundingIncrement
		gen = &Generator{params: params}
	}

	switch p.Methodology {
	case MethodologyLinearAB:
		return gen.generateLinear(p), nil
	case MethodologyVolumeRecoveryIntensity:
		return gen.generateVRI(p), nil
	case MethodologyVolumeLightIntensity:
		return gen.generateRamping(p), nil
	default:
		return nil, errors.Wrap(ErrInvalidInput, "unknown methodology")
	}
}

func (g *Generator) validate(p TrainingPlan) error {
	if p.TotalWeeks < 1 {
		return errors.Wrap(ErrInvalidInput, "plan must span at least one week")
	}
	if len(p.Days) == 0 {
		return errors.Wrap(ErrInvalidInput, "plan has no training days")
	}
	if len(g.params.DayOffsets) == 0 {
		return errors.Wrap(ErrInvalidInput, "no day offsets configured")
	}
	for _, day := range p.Days {
		if len(day.Slots) == 0 {
			return errors.Wrap(ErrInvalidInput, "training day has no exercises")
		}
		for _, slot := range day.Slots {
			if slot.StartingWeight <= 0 {
				return errors.Wrap(ErrInvalidInput, "starting weight must be positive")
			}
			if slot.Increment < 0 {
				return errors.Wrap(ErrInvalidInput, "increment must not be negative")
			}
			if slot.TargetSets < 1 || slot.TargetReps < 1 {
				return errors.Wrap(ErrInvalidInput, "target sets and reps must be positive")
			}
		}
	}

	switch p.Methodology {
	case MethodologyLinearAB:
		for _, day := range p.Days {
			if day.Role != RoleA && day.Role != RoleB {
				return errors.Wrap(ErrInvalidInput, "linear plans use day roles a and b")
			}
		}
	case MethodologyVolumeRecoveryIntensity, MethodologyVolumeLightIntensity:
		if len(p.Days) != len(g.params.DayOffsets) {
			return errors.Wrap(ErrInvalidInput, "weekly plans need one day per day offset")
		}
		for _, day := range p.Days {
			if err := validateWeeklyRole(p.Methodology, day.Role); err != nil {
				return err
			}
		}
		if p.Methodology == MethodologyVolumeLightIntensity {
			if len(g.params.RampLadder) == 0 {
				return errors.Wrap(ErrInvalidInput, "ramp ladder is empty")
			}
			if !sort.Float64sAreSorted(g.params.RampLadder) {
				return errors.Wrap(ErrInvalidInput, "ramp ladder must ascend")
			}
		}
	}
	return nil
}

func validateWeeklyRole(m Methodology, role DayRole) error {
	switch role {
	case RoleVolume, RoleIntensity:
		return nil
	case RoleRecovery:
		if m == MethodologyVolumeRecoveryIntensity {
			return nil
		}
	case RoleLight:
		if m == MethodologyVolumeLightIntensity {
			return nil
		}
	}
	return errors.Wrap(ErrInvalidInput, "day role does not fit methodology")
}

// generateLinear alternates the plan's day templates across the whole session
// sequence, carrying the alternation over week boundaries. Each exercise's
// weight grows by its increment on every appearance, not per week.
func (g *Generator) generateLinear(p TrainingPlan) []PlannedSession {
	var sessions []PlannedSession
	appearances := make(map[int]int)
	seq := 0
	for week := 1; week <= p.TotalWeeks; week++ {
		for dayIndex, offset := range g.params.DayOffsets {
			template := p.Days[seq%len(p.Days)]
			for _, slot := range template.Slots {
				appearances[slot.ExerciseID]++
				prog := Progression{StartingWeight: slot.StartingWeight, Increment: slot.Increment}
				weight := roundToIncrement(linearWeight(prog, appearances[slot.ExerciseID]), g.params.RoundingIncrement)
				sessions = append(sessions, g.session(p, week, dayIndex, offset, slot, weight,
					uniformSets(slot.TargetSets, slot.TargetReps, weight)))
			}
			seq++
		}
	}
	return sessions
}

// generateVRI derives each role's weight from the week's intensity target:
// the volume session works at a fraction of it, and the anchor lift's
// recovery session at a fraction of the volume weight.
func (g *Generator) generateVRI(p TrainingPlan) []PlannedSession {
	var sessions []PlannedSession
	for week := 1; week <= p.TotalWeeks; week++ {
		for dayIndex, day := range p.Days {
			offset := g.params.DayOffsets[dayIndex]
			for _, slot := range day.Slots {
				prog := Progression{StartingWeight: slot.StartingWeight, Increment: slot.Increment}
				var raw float64
				switch day.Role {
				case RoleVolume:
					raw = g.params.volumeWeight(prog, week)
				case RoleRecovery:
					raw = g.params.recoveryWeight(prog, week, slot.Anchor)
				default:
					raw = intensityWeight(prog, week)
				}
				weight := roundToIncrement(raw, g.params.RoundingIncrement)
				sessions = append(sessions, g.session(p, week, dayIndex, offset, slot, weight,
					uniformSets(slot.TargetSets, slot.TargetReps, weight)))
			}
		}
	}
	return sessions
}

// generateRamping builds each session from ascending ramp sets toward a
// weekly top set. Intensity days append a heavy single-digit set and a
// back-off set after the ladder.
func (g *Generator) generateRamping(p TrainingPlan) []PlannedSession {
	var sessions []PlannedSession
	for week := 1; week <= p.TotalWeeks; week++ {
		for dayIndex, day := range p.Days {
			offset := g.params.DayOffsets[dayIndex]
			for _, slot := range day.Slots {
				prog := Progression{StartingWeight: slot.StartingWeight, Increment: slot.Increment}
				var top float64
				if day.Role == RoleLight {
					top = g.params.lightTopSetWeight(prog, week, slot.Anchor)
				} else {
					top = topSetWeight(prog, week)
				}
				weight := roundToIncrement(top, g.params.RoundingIncrement)
				sets := g.rampSets(top, slot.TargetReps, day.Role == RoleIntensity)
				sessions = append(sessions, g.session(p, week, dayIndex, offset, slot, weight, sets))
			}
		}
	}
	return sessions
}

func (g *Generator) session(
	p TrainingPlan, week, dayIndex, offset int, slot ExerciseSlot, weight float64, sets []SetRecord,
) PlannedSession {
	return PlannedSession{
		PlanID:        p.ID,
		Week:          week,
		DayIndex:      dayIndex,
		ExerciseID:    slot.ExerciseID,
		ScheduledDate: p.StartDate.AddDate(0, 0, 7*(week-1)+offset),
		PlannedWeight: weight,
		PlannedSets:   len(sets),
		PlannedReps:   slot.TargetReps,
		Sets:          sets,
	}
}

func uniformSets(count, reps int, weight float64) []SetRecord {
	sets := make([]SetRecord, count)
	for i := range sets {
		sets[i] = SetRecord{SetIndex: i, TargetReps: reps, TargetWeight: weight}
	}
	return sets
}

func (g *Generator) rampSets(top float64, reps int, intensity bool) []SetRecord {
	sets := make([]SetRecord, 0, len(g.params.RampLadder)+2)
	for i, fraction := range g.params.RampLadder {
		sets = append(sets, SetRecord{
			SetIndex:     i,
			TargetReps:   reps,
			TargetWeight: roundToIncrement(fraction*top, g.params.RoundingIncrement),
		})
	}
	if intensity {
		sets = append(sets, SetRecord{
			SetIndex:     len(sets),
			TargetReps:   g.params.HeavyReps,
			TargetWeight: roundToIncrement(g.params.HeavyPercent*top, g.params.RoundingIncrement),
		})
		sets = append(sets, SetRecord{
			SetIndex:     len(sets),
			TargetReps:   g.params.BackoffReps,
			TargetWeight: roundToIncrement(g.params.BackoffPercent*top, g.params.RoundingIncrement),
		})
	}
	return sets
}
