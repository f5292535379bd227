package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/teammate/internal/smoke"
	"github.com/okian/teammate/pkg/logger"
)

func newSmokeCommand(s *settings) *cobra.Command {
	cfg := smoke.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Register generated participants on a running server and check the formed teams",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("team-size") {
				cfg.TeamSize = &s.teamSize
			}
			if cmd.Flags().Changed("activity-cap") {
				cfg.ActivityCap = &s.activityCap
			}
			if cfg.Seed == 0 {
				cfg.Seed = s.seed
			}

			stats, err := smoke.Run(cmd.Context(), cfg, logger.Named("smoke"))
			if err != nil {
				return err
			}
			renderSmoke(cmd.OutOrStdout(), stats)
			if !stats.OK() {
				return fmt.Errorf("%w: %d invariant violations", ErrSmokeFailed, len(stats.Violations))
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.BaseURL, "url", cfg.BaseURL, "base URL of the teammate server")
	flags.IntVar(&cfg.Participants, "count", cfg.Participants, "number of surveys to submit")
	flags.IntVar(&cfg.Workers, "workers", cfg.Workers, "concurrent submitters")
	flags.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "per-request timeout")
	flags.Int64Var(&cfg.Seed, "roster-seed", 0, "generator seed for the submitted roster (0 = --seed)")
	return cmd
}

func renderSmoke(w io.Writer, stats *smoke.Stats) {
	fmt.Fprintln(w, titleStyle.Render("Smoke Run"))
	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("run %s in %s", stats.RunID, stats.Duration.Round(time.Millisecond))))
	fmt.Fprintf(w, "Submitted: %d  Registered: %d  Conflicts: %d  Failed: %d\n",
		stats.Submitted, stats.Registered, stats.Conflicts, stats.Failed)
	fmt.Fprintf(w, "Teams: %d  Placed: %d  Unplaced: %d  Swaps: %d\n",
		stats.Teams, stats.Placed, stats.Unplaced, stats.Swaps)
	if stats.OK() {
		fmt.Fprintln(w, okStyle.Render("All invariants hold."))
		return
	}
	for _, v := range stats.Violations {
		fmt.Fprintln(w, errorStyle.Render("  "+v))
	}
}
