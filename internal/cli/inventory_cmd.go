package cli

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
)

func newInventoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Show the plate inventory.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			inv, err := app.Plates.Inventory(cmd.Context())
			if err != nil {
				return err
			}
			if len(inv) == 0 {
				cmd.Println("no plates in inventory")
				return nil
			}
			weights := make([]float64, 0, len(inv))
			for weight := range inv {
				weights = append(weights, weight)
			}
			sort.Sort(sort.Reverse(sort.Float64Slice(weights)))
			for _, weight := range weights {
				cmd.Printf("%g x %d\n", weight, inv[weight])
			}
			return nil
		},
	}
	cmd.AddCommand(newInventorySetCmd(app))
	return cmd
}

func newInventorySetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <plate-weight> <count>",
		Short: "Set how many plates of a denomination the gym has. Zero removes it.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			weight, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("plate weight must be a number: %w", err)
			}
			count, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("count must be an integer: %w", err)
			}
			if err = app.Plates.SetPlateCount(cmd.Context(), weight, count); err != nil {
				return err
			}
			cmd.Printf("inventory updated: %g x %d\n", weight, count)
			return nil
		},
	}
}

func newGymCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gym",
		Short: "Show the bar and collar configuration.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.Plates.Config(cmd.Context())
			if err != nil {
				return err
			}
			cmd.Printf("bar: %g\n", cfg.BarWeight)
			cmd.Printf("collars: %g\n", cfg.CollarWeight)
			cmd.Printf("large plates: %t\n", cfg.UseLargePlates)
			return nil
		},
	}
	cmd.AddCommand(newGymSetCmd(app))
	return cmd
}

func newGymSetCmd(app *App) *cobra.Command {
	var (
		bar         float64
		collar      float64
		largePlates bool
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change bar weight, collar weight, or large plate use.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.Plates.Config(cmd.Context())
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("bar") {
				cfg.BarWeight = bar
			}
			if cmd.Flags().Changed("collar") {
				cfg.CollarWeight = collar
			}
			if cmd.Flags().Changed("large-plates") {
				cfg.UseLargePlates = largePlates
			}
			if err = app.Plates.SaveConfig(cmd.Context(), cfg); err != nil {
				return err
			}
			cmd.Println("gym config updated")
			return nil
		},
	}
	cmd.Flags().Float64Var(&bar, "bar", 0, "bar weight")
	cmd.Flags().Float64Var(&collar, "collar", 0, "combined collar weight, zero for none")
	cmd.Flags().BoolVar(&largePlates, "large-plates", false, "allow plates heavier than 45")
	return cmd
}
