package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newSuggestCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <target-weight>",
		Short: "Decompose a target weight into plates from your inventory.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("target weight must be a number: %w", err)
			}
			load, err := app.Plates.SuggestLoad(cmd.Context(), target)
			if err != nil {
				return err
			}

			cmd.Printf("bar %g", load.BarWeight)
			for _, plate := range load.Plates {
				cmd.Printf(" + %dx%g/side", plate.QuantityPerSide, plate.Weight)
			}
			if load.CollarWeight > 0 {
				cmd.Printf(" + collars %g", load.CollarWeight)
			}
			cmd.Printf(" = %g", load.AchievedWeight)
			if !load.ExactMatch {
				cmd.Printf(" (closest under %g)", load.TargetWeight)
			}
			cmd.Println()
			return nil
		},
	}
}
