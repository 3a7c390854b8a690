package cli

import (
	"fmt"
	"strconv"

	"github.com/myrjola/ironplan/internal/plan"
	"github.com/myrjola/ironplan/internal/ptr"
	"github.com/spf13/cobra"
)

func newLogCmd(app *App) *cobra.Command {
	var rpe float64
	cmd := &cobra.Command{
		Use:   "log <session-id> <set-number> <reps> <weight>",
		Short: "Record the actual reps and weight of one set.",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			setNumber, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("set number must be an integer: %w", err)
			}
			reps, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("reps must be an integer: %w", err)
			}
			weight, err := strconv.ParseFloat(args[3], 64)
			if err != nil {
				return fmt.Errorf("weight must be a number: %w", err)
			}

			var rpePtr *float64
			if cmd.Flags().Changed("rpe") {
				rpePtr = ptr.Ref(rpe)
			}
			if err = app.Plans.LogSet(cmd.Context(), args[0], setNumber-1, reps, weight, rpePtr); err != nil {
				return err
			}
			cmd.Printf("logged set %d: %d x %g\n", setNumber, reps, weight)
			return nil
		},
	}
	cmd.Flags().Float64Var(&rpe, "rpe", 0, "rate of perceived exertion for the set")
	return cmd
}

func newCompleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <session-id>",
		Short: "Finish a session and evaluate its performance.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			decision, err := app.Plans.CompleteSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			switch {
			case decision.WillApplyAutomatically:
				cmd.Printf("session complete: %s (applied)\n", decision.Tier)
			case decision.Tier == plan.TierContinueAsPlanned:
				cmd.Println("session complete: continue as planned")
			default:
				cmd.Printf("session complete: %s\n", decision.Tier)
				policy, err := app.Plans.Policy(cmd.Context())
				if err != nil {
					return err
				}
				// No point suggesting apply when the policy would refuse it.
				if policy.Mode != plan.ModeNever {
					cmd.Printf("run 'ironplan apply %s' to accept the adjustment\n", args[0])
				}
			}
			return nil
		},
	}
}

func newApplyCmd(app *App) *cobra.Command {
	var tierName string
	cmd := &cobra.Command{
		Use:   "apply <session-id>",
		Short: "Confirm a deferred adjustment, optionally overriding the tier.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tier, err := parseTier(tierName)
			if err != nil {
				return err
			}
			if tier == nil {
				decision, evalErr := app.Plans.EvaluateSession(cmd.Context(), args[0])
				if evalErr != nil {
					return evalErr
				}
				tier = &decision.Tier
			}
			if err = app.Plans.ApplyDecision(cmd.Context(), args[0], *tier); err != nil {
				return err
			}
			cmd.Printf("applied: %s\n", *tier)
			return nil
		},
	}
	cmd.Flags().StringVar(&tierName, "tier", "", "adjustment to apply: repeat, reduce, or deload")
	return cmd
}

func parseTier(name string) (*plan.PerformanceTier, error) {
	switch name {
	case "":
		return nil, nil //nolint:nilnil // absence of a tier is not an error here.
	case "repeat":
		return ptr.Ref(plan.TierRepeatWeight), nil
	case "reduce":
		return ptr.Ref(plan.TierReduceWeight), nil
	case "deload":
		return ptr.Ref(plan.TierDeload), nil
	default:
		return nil, fmt.Errorf("unknown tier %q", name)
	}
}
