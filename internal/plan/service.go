package plan

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/myrjola/ironplan/internal/errors"
	"github.com/myrjola/ironplan/internal/logging"
	"github.com/myrjola/ironplan/internal/sqlite"
)

// Service exposes the training plan engine backed by persistent storage.
type Service struct {
	repo      *sqliteRepository
	generator *Generator
	logger    *slog.Logger
	now       func() time.Time
}

// NewService creates a plan service on top of the given database.
func NewService(db *sqlite.Database, logger *slog.Logger, params Parameters) *Service {
	return &Service{
		repo:      newSQLiteRepository(db, logger),
		generator: NewGenerator(params),
		logger:    logger,
		now:       time.Now,
	}
}

// SlotDefinition describes one exercise of a day template by name.
type SlotDefinition struct {
	Exercise       string
	StartingWeight float64
	Increment      float64
	Sets           int
	Reps           int
	Anchor         bool
}

// DayDefinition describes one day template of a plan.
type DayDefinition struct {
	Role  DayRole
	Slots []SlotDefinition
}

// PlanDefinition is the input for creating a plan. Exercises are referenced
// by name and created on first use.
type PlanDefinition struct {
	Name              string
	Methodology       Methodology
	Weeks             int
	StartDate         time.Time
	RoundingIncrement float64
	Days              []DayDefinition
}

// CreatePlan resolves the definition's exercises, generates the full session
// schedule, and persists both. The returned plan carries its new ID.
func (s *Service) CreatePlan(ctx context.Context, def PlanDefinition) (TrainingPlan, error) {
	roundingIncrement := def.RoundingIncrement
	if roundingIncrement <= 0 {
		roundingIncrement = DefaultParameters().RoundingIncrement
	}

	p := TrainingPlan{
		ID:                uuid.NewString(),
		Name:              def.Name,
		Methodology:       def.Methodology,
		TotalWeeks:        def.Weeks,
		CurrentWeek:       1,
		Status:            StatusActive,
		StartDate:         def.StartDate,
		RoundingIncrement: roundingIncrement,
	}
	for _, dayDef := range def.Days {
		day := TrainingDay{Role: dayDef.Role}
		for _, slotDef := range dayDef.Slots {
			exerciseID, err := s.repo.upsertExercise(ctx, slotDef.Exercise)
			if err != nil {
				return TrainingPlan{}, errors.Wrap(err, "resolve exercise",
					slog.String("exercise", slotDef.Exercise))
			}
			day.Slots = append(day.Slots, ExerciseSlot{
				ExerciseID:     exerciseID,
				StartingWeight: slotDef.StartingWeight,
				Increment:      slotDef.Increment,
				TargetSets:     slotDef.Sets,
				TargetReps:     slotDef.Reps,
				Anchor:         slotDef.Anchor,
			})
		}
		p.Days = append(p.Days, day)
	}

	sessions, err := s.generator.Generate(p)
	if err != nil {
		return TrainingPlan{}, errors.Wrap(err, "generate schedule")
	}
	if err = s.repo.createPlan(ctx, p); err != nil {
		return TrainingPlan{}, errors.Wrap(err, "persist plan")
	}
	if err = s.repo.insertSessions(ctx, sessions); err != nil {
		return TrainingPlan{}, errors.Wrap(err, "persist sessions")
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "plan created",
		slog.String("plan_id", p.ID),
		slog.String("methodology", string(p.Methodology)),
		slog.Int("sessions", len(sessions)))
	return p, nil
}

// Plan loads a plan with its day templates.
func (s *Service) Plan(ctx context.Context, planID string) (TrainingPlan, error) {
	return s.repo.getPlan(ctx, planID)
}

// Plans lists all plans without their day templates.
func (s *Service) Plans(ctx context.Context) ([]TrainingPlan, error) {
	return s.repo.listPlans(ctx)
}

// Exercises lists all known exercises.
func (s *Service) Exercises(ctx context.Context) ([]Exercise, error) {
	return s.repo.getExercises(ctx)
}

// WeekSchedule returns a week's sessions. Week 0 means the plan's current
// week; anything outside the plan's span is rejected.
func (s *Service) WeekSchedule(ctx context.Context, planID string, week int) ([]PlannedSession, error) {
	p, err := s.repo.getPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	if week == 0 {
		week = p.CurrentWeek
	}
	if week < 1 || week > p.TotalWeeks {
		return nil, errors.Wrap(ErrWeekOutOfRange, "week outside plan",
			slog.Int("week", week), slog.Int("total_weeks", p.TotalWeeks))
	}
	return s.repo.getWeekSessions(ctx, planID, week)
}

// LogSet records the actual reps and weight of one set.
func (s *Service) LogSet(
	ctx context.Context,
	sessionID string,
	setIndex int,
	actualReps int,
	actualWeight float64,
	rpe *float64,
) error {
	if actualReps < 0 || actualWeight < 0 {
		return errors.Wrap(ErrInvalidInput, "reps and weight must not be negative")
	}
	return s.repo.recordSet(ctx, sessionID, setIndex, actualReps, actualWeight, rpe)
}

// CompleteSession marks a session done, evaluates its performance under the
// configured policy, applies the resulting adjustment when the policy runs
// automatically, and advances the plan's week once every session in it is
// complete. The decision is returned so a prompting caller can confirm it
// via ApplyDecision.
func (s *Service) CompleteSession(ctx context.Context, sessionID string) (Decision, error) {
	ctx = logging.WithAttrs(ctx, slog.String("session_id", sessionID))
	if err := s.repo.markSessionCompleted(ctx, sessionID, s.now()); err != nil {
		return Decision{}, err
	}
	sess, err := s.repo.getSession(ctx, sessionID)
	if err != nil {
		return Decision{}, err
	}
	policy, err := s.repo.getPolicy(ctx)
	if err != nil {
		return Decision{}, err
	}

	decision := Evaluate(sess, policy)
	s.logger.LogAttrs(ctx, slog.LevelInfo, "session completed",
		slog.String("tier", decision.Tier.String()),
		slog.Bool("auto_apply", decision.WillApplyAutomatically))

	if decision.WillApplyAutomatically {
		if err = s.applyTier(ctx, sess, decision.Tier, policy); err != nil {
			return Decision{}, err
		}
	}
	if err = s.advanceIfWeekComplete(ctx, sess.PlanID); err != nil {
		return Decision{}, err
	}
	return decision, nil
}

// EvaluateSession recomputes the decision for a session without applying
// anything, so a prompting caller can re-surface it.
func (s *Service) EvaluateSession(ctx context.Context, sessionID string) (Decision, error) {
	sess, err := s.repo.getSession(ctx, sessionID)
	if err != nil {
		return Decision{}, err
	}
	policy, err := s.repo.getPolicy(ctx)
	if err != nil {
		return Decision{}, err
	}
	return Evaluate(sess, policy), nil
}

// ApplyDecision applies a confirmed (or overridden) tier to a completed
// session's plan. It is the second half of prompt mode; policies in never
// mode refuse it.
func (s *Service) ApplyDecision(ctx context.Context, sessionID string, tier PerformanceTier) error {
	policy, err := s.repo.getPolicy(ctx)
	if err != nil {
		return err
	}
	if policy.Mode == ModeNever {
		return errors.Wrap(ErrInvalidInput, "adjustments are disabled by policy")
	}
	sess, err := s.repo.getSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if !sess.Completed {
		return errors.Wrap(ErrInvalidInput, "session is not completed")
	}
	return s.applyTier(ctx, sess, tier, policy)
}

func (s *Service) applyTier(
	ctx context.Context, completed PlannedSession, tier PerformanceTier, policy AdjustmentPolicy,
) error {
	p, err := s.repo.getPlan(ctx, completed.PlanID)
	if err != nil {
		return err
	}
	// Adjusted weights round to the same increment the plan was generated
	// with, not the policy-wide one.
	if p.RoundingIncrement > 0 {
		policy.RoundingIncrement = p.RoundingIncrement
	}
	sessions, err := s.repo.getSessionsForPlan(ctx, completed.PlanID)
	if err != nil {
		return err
	}
	mutations, err := Apply(p, sessions, completed, tier, policy)
	if err != nil {
		return errors.Wrap(err, "compute weight mutations")
	}

	byID := make(map[string]*PlannedSession, len(sessions))
	for i := range sessions {
		byID[sessions[i].ID] = &sessions[i]
	}
	for _, mutation := range mutations {
		target, ok := byID[mutation.SessionID]
		if !ok {
			continue
		}
		RescaleSetTargets(target, mutation.NewWeight, policy.RoundingIncrement)
		if err = s.repo.updateSessionTargets(ctx, *target); err != nil {
			return errors.Wrap(err, "persist weight mutation",
				slog.String("session_id", mutation.SessionID))
		}
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "adjustment applied",
		slog.String("plan_id", completed.PlanID),
		slog.String("tier", tier.String()),
		slog.Int("sessions_touched", len(mutations)))
	return nil
}

// advanceIfWeekComplete moves the plan to the next week once the current
// week's sessions are all complete, and marks the plan completed when the
// last week finishes.
func (s *Service) advanceIfWeekComplete(ctx context.Context, planID string) error {
	p, err := s.repo.getPlan(ctx, planID)
	if err != nil {
		return err
	}
	weekSessions, err := s.repo.getWeekSessions(ctx, planID, p.CurrentWeek)
	if err != nil {
		return err
	}

	next, advanced := AdvanceWeek(p, weekSessions)
	if advanced {
		if err = s.repo.updateCurrentWeek(ctx, planID, next); err != nil {
			return err
		}
		s.logger.LogAttrs(ctx, slog.LevelInfo, "week advanced",
			slog.String("plan_id", planID), slog.Int("week", next))
		return nil
	}

	if p.CurrentWeek == p.TotalWeeks && p.Status == StatusActive && allComplete(weekSessions) {
		if err = s.repo.updateStatus(ctx, planID, StatusCompleted); err != nil {
			return err
		}
		s.logger.LogAttrs(ctx, slog.LevelInfo, "plan completed", slog.String("plan_id", planID))
	}
	return nil
}

func allComplete(sessions []PlannedSession) bool {
	if len(sessions) == 0 {
		return false
	}
	for _, sess := range sessions {
		if !sess.Completed {
			return false
		}
	}
	return true
}

// Policy reads the configured adjustment policy.
func (s *Service) Policy(ctx context.Context) (AdjustmentPolicy, error) {
	return s.repo.getPolicy(ctx)
}

// SetPolicy replaces the adjustment policy after validating it.
func (s *Service) SetPolicy(ctx context.Context, policy AdjustmentPolicy) error {
	return s.repo.savePolicy(ctx, policy)
}

// PausePlan and ResumePlan flip the plan between active and paused.
func (s *Service) PausePlan(ctx context.Context, planID string) error {
	return s.repo.updateStatus(ctx, planID, StatusPaused)
}

func (s *Service) ResumePlan(ctx context.Context, planID string) error {
	return s.repo.updateStatus(ctx, planID, StatusActive)
}
