package cli

import (
	"time"

	"github.com/myrjola/ironplan/internal/program"
	"github.com/spf13/cobra"
)

func newCreateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "create <program.yaml>",
		Short: "Create a plan from a YAML program file.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := program.Load(args[0])
			if err != nil {
				return err
			}
			p, err := app.Plans.CreatePlan(cmd.Context(), def)
			if err != nil {
				return err
			}
			cmd.Printf("created plan %s (%s, %d weeks, starting %s)\n",
				p.ID, p.Methodology, p.TotalWeeks, p.StartDate.Format(time.DateOnly))
			return nil
		},
	}
}

func newPlansCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "plans",
		Short: "List all plans.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			plans, err := app.Plans.Plans(cmd.Context())
			if err != nil {
				return err
			}
			if len(plans) == 0 {
				cmd.Println("no plans yet")
				return nil
			}
			for _, p := range plans {
				cmd.Printf("%s  %-30s %-25s week %d/%d  %s\n",
					p.ID, p.Name, p.Methodology, p.CurrentWeek, p.TotalWeeks, p.Status)
			}
			return nil
		},
	}
}

func newPauseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "pause <plan-id>",
		Short: "Pause a plan.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Plans.PausePlan(cmd.Context(), args[0]); err != nil {
				return err
			}
			cmd.Println("plan paused")
			return nil
		},
	}
}

func newResumeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "resume <plan-id>",
		Short: "Resume a paused plan.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Plans.ResumePlan(cmd.Context(), args[0]); err != nil {
				return err
			}
			cmd.Println("plan resumed")
			return nil
		},
	}
}

func newScheduleCmd(app *App) *cobra.Command {
	var week int
	cmd := &cobra.Command{
		Use:   "schedule <plan-id>",
		Short: "Show a week's sessions with their set targets.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := app.Plans.WeekSchedule(cmd.Context(), args[0], week)
			if err != nil {
				return err
			}
			exercises, err := app.Plans.Exercises(cmd.Context())
			if err != nil {
				return err
			}
			names := make(map[int]string, len(exercises))
			for _, ex := range exercises {
				names[ex.ID] = ex.Name
			}

			lastDay := -1
			for _, sess := range sessions {
				if sess.DayIndex != lastDay {
					cmd.Printf("%s (day %d)\n", sess.ScheduledDate.Format(time.DateOnly), sess.DayIndex+1)
					lastDay = sess.DayIndex
				}
				status := " "
				if sess.Completed {
					status = "x"
				}
				cmd.Printf("  [%s] %s  %s  %g\n", status, sess.ID, names[sess.ExerciseID], sess.PlannedWeight)
				for _, set := range sess.Sets {
					cmd.Printf("        set %d: %d x %g\n", set.SetIndex+1, set.TargetReps, set.TargetWeight)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&week, "week", 0, "week to show (default: the plan's current week)")
	return cmd
}
