// Package cli builds the ironplan command tree.
package cli

import (
	"log/slog"

	"github.com/myrjola/ironplan/internal/plan"
	"github.com/myrjola/ironplan/internal/plates"
	"github.com/spf13/cobra"
)

// App bundles the services the commands operate on.
type App struct {
	Logger *slog.Logger
	Plans  *plan.Service
	Plates *plates.Repository
}

// New assembles the root command.
func New(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "ironplan",
		Short: "Barbell training plans with adaptive progression.",
		Long: `Generate multi-week barbell training schedules, log your sessions,
and let completed performance adjust upcoming weights.

  ironplan create <program.yaml>   create a plan from a program file
  ironplan plans                   list plans
  ironplan schedule <plan-id>      show a week's sessions
  ironplan pause <plan-id>         pause a plan
  ironplan resume <plan-id>        resume a paused plan
  ironplan log <session-id> ...    record a set
  ironplan complete <session-id>   finish a session and evaluate it
  ironplan apply <session-id>      confirm a deferred adjustment
  ironplan suggest <weight>        decompose a weight into plates
  ironplan inventory [set]         show or change the plate inventory
  ironplan gym [set]               show or change the bar and collars
  ironplan policy [set]            show or change the adjustment policy`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newCreateCmd(app),
		newPlansCmd(app),
		newScheduleCmd(app),
		newPauseCmd(app),
		newResumeCmd(app),
		newLogCmd(app),
		newCompleteCmd(app),
		newApplyCmd(app),
		newSuggestCmd(app),
		newInventoryCmd(app),
		newGymCmd(app),
		newPolicyCmd(app),
	)
	return root
}
