package cli

import (
	"github.com/myrjola/ironplan/internal/plan"
	"github.com/spf13/cobra"
)

func newPolicyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Show the adjustment policy.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			policy, err := app.Plans.Policy(cmd.Context())
			if err != nil {
				return err
			}
			cmd.Printf("mode: %s\n", policy.Mode)
			cmd.Printf("thresholds: excellent >= %g%%, good >= %g%%, adjustment >= %g%%\n",
				policy.ExcellentThreshold, policy.GoodThreshold, policy.AdjustmentThreshold)
			cmd.Printf("reduction: %g%%, deload: %g%%\n", policy.ReductionPercent, policy.DeloadPercent)
			cmd.Printf("rounding increment: %g\n", policy.RoundingIncrement)
			return nil
		},
	}
	cmd.AddCommand(newPolicySetCmd(app))
	return cmd
}

func newPolicySetCmd(app *App) *cobra.Command {
	var (
		mode              string
		excellent         float64
		good              float64
		adjustment        float64
		reduction         float64
		deload            float64
		roundingIncrement float64
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change adjustment policy settings.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			policy, err := app.Plans.Policy(cmd.Context())
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("mode") {
				policy.Mode = plan.AdjustmentMode(mode)
			}
			if cmd.Flags().Changed("excellent") {
				policy.ExcellentThreshold = excellent
			}
			if cmd.Flags().Changed("good") {
				policy.GoodThreshold = good
			}
			if cmd.Flags().Changed("adjustment") {
				policy.AdjustmentThreshold = adjustment
			}
			if cmd.Flags().Changed("reduction") {
				policy.ReductionPercent = reduction
			}
			if cmd.Flags().Changed("deload") {
				policy.DeloadPercent = deload
			}
			if cmd.Flags().Changed("rounding-increment") {
				policy.RoundingIncrement = roundingIncrement
			}
			if err = app.Plans.SetPolicy(cmd.Context(), policy); err != nil {
				return err
			}
			cmd.Println("policy updated")
			return nil
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "", "prompt, auto_adjust, or never")
	cmd.Flags().Float64Var(&excellent, "excellent", 0, "threshold for continuing as planned")
	cmd.Flags().Float64Var(&good, "good", 0, "threshold for repeating the weight")
	cmd.Flags().Float64Var(&adjustment, "adjustment", 0, "threshold for reducing the weight")
	cmd.Flags().Float64Var(&reduction, "reduction", 0, "percent to reduce by")
	cmd.Flags().Float64Var(&deload, "deload", 0, "percent to deload by")
	cmd.Flags().Float64Var(&roundingIncrement, "rounding-increment", 0, "weight rounding increment")
	return cmd
}
