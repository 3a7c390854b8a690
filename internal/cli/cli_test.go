package cli_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/myrjola/ironplan/internal/cli"
	"github.com/myrjola/ironplan/internal/plan"
	"github.com/myrjola/ironplan/internal/plates"
	"github.com/myrjola/ironplan/internal/sqlite"
)

func newTestApp(t *testing.T) (context.Context, *cli.App) {
	t.Helper()
	ctx := t.Context()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	db, err := sqlite.NewDatabase(ctx, ":memory:", logger)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return ctx, &cli.App{
		Logger: logger,
		Plans:  plan.NewService(db, logger, plan.DefaultParameters()),
		Plates: plates.NewRepository(db, logger),
	}
}

// runCommand executes one command line against a fresh root and returns its
// combined output.
func runCommand(ctx context.Context, t *testing.T, app *cli.App, args ...string) string {
	t.Helper()
	root := cli.New(app)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return out.String()
}

func createTestPlan(ctx context.Context, t *testing.T, app *cli.App) plan.TrainingPlan {
	t.Helper()
	created, err := app.Plans.CreatePlan(ctx, plan.PlanDefinition{
		Name:        "Linear squats",
		Methodology: plan.MethodologyLinearAB,
		Weeks:       2,
		StartDate:   time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		Days: []plan.DayDefinition{{
			Role: plan.RoleA,
			Slots: []plan.SlotDefinition{
				{Exercise: "Squat", StartingWeight: 100, Increment: 5, Sets: 3, Reps: 5},
			},
		}},
	})
	if err != nil {
		t.Fatalf("CreatePlan failed: %v", err)
	}
	return created
}

func logReps(ctx context.Context, t *testing.T, app *cli.App, sess plan.PlannedSession, reps int) {
	t.Helper()
	for _, set := range sess.Sets {
		if err := app.Plans.LogSet(ctx, sess.ID, set.SetIndex, reps, set.TargetWeight, nil); err != nil {
			t.Fatalf("LogSet failed: %v", err)
		}
	}
}

func TestInventoryCommands(t *testing.T) {
	ctx, app := newTestApp(t)

	runCommand(ctx, t, app, "inventory", "set", "55", "2")
	out := runCommand(ctx, t, app, "inventory")
	if !strings.Contains(out, "55 x 2") {
		t.Errorf("inventory output %q missing new denomination", out)
	}

	// A zero count removes the denomination again.
	runCommand(ctx, t, app, "inventory", "set", "55", "0")
	out = runCommand(ctx, t, app, "inventory")
	if strings.Contains(out, "55 x") {
		t.Errorf("inventory output %q still lists removed denomination", out)
	}
}

func TestGymCommands(t *testing.T) {
	ctx, app := newTestApp(t)

	runCommand(ctx, t, app, "gym", "set", "--bar", "20", "--collar", "2.5")
	out := runCommand(ctx, t, app, "gym")
	for _, want := range []string{"bar: 20", "collars: 2.5", "large plates: false"} {
		if !strings.Contains(out, want) {
			t.Errorf("gym output %q missing %q", out, want)
		}
	}
}

func TestPauseResumeCommands(t *testing.T) {
	ctx, app := newTestApp(t)
	created := createTestPlan(ctx, t, app)

	runCommand(ctx, t, app, "pause", created.ID)
	p, err := app.Plans.Plan(ctx, created.ID)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if p.Status != plan.StatusPaused {
		t.Errorf("plan status %s, want %s", p.Status, plan.StatusPaused)
	}

	runCommand(ctx, t, app, "resume", created.ID)
	p, err = app.Plans.Plan(ctx, created.ID)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if p.Status != plan.StatusActive {
		t.Errorf("plan status %s, want %s", p.Status, plan.StatusActive)
	}
}

func TestCompleteAdjustmentHint(t *testing.T) {
	ctx, app := newTestApp(t)
	created := createTestPlan(ctx, t, app)

	week1, err := app.Plans.WeekSchedule(ctx, created.ID, 1)
	if err != nil {
		t.Fatalf("WeekSchedule failed: %v", err)
	}

	// The default prompt mode invites the caller to confirm the deferred
	// adjustment.
	logReps(ctx, t, app, week1[0], 4)
	out := runCommand(ctx, t, app, "complete", week1[0].ID)
	if !strings.Contains(out, "repeat weight") {
		t.Errorf("complete output %q missing the tier", out)
	}
	if !strings.Contains(out, "ironplan apply") {
		t.Errorf("prompt mode output %q missing the apply hint", out)
	}

	// Never mode still reports the tier but apply would be refused, so the
	// hint stays out.
	policy, err := app.Plans.Policy(ctx)
	if err != nil {
		t.Fatalf("Policy failed: %v", err)
	}
	policy.Mode = plan.ModeNever
	if err = app.Plans.SetPolicy(ctx, policy); err != nil {
		t.Fatalf("SetPolicy failed: %v", err)
	}

	logReps(ctx, t, app, week1[1], 4)
	out = runCommand(ctx, t, app, "complete", week1[1].ID)
	if !strings.Contains(out, "repeat weight") {
		t.Errorf("complete output %q missing the tier", out)
	}
	if strings.Contains(out, "ironplan apply") {
		t.Errorf("never mode output %q must not hint at apply", out)
	}
}
