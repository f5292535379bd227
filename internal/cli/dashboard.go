package cli

import (
	"github.com/spf13/cobra"
)

func newDashboardCommand(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard <roster.csv|->",
		Short: "Summarize a roster by game and personality",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := s.newService(ctx)
			if err != nil {
				return err
			}
			defer svc.Stop()

			imp, err := loadRoster(ctx, cmd, svc, args[0])
			if err != nil {
				return err
			}
			printImport(cmd, imp)

			stats := svc.GetStats()
			total, _ := stats["participants"].(int)
			byActivity, _ := stats["byActivity"].(map[string]int)
			byCategory, _ := stats["byCategory"].(map[string]int)
			renderDashboard(cmd.OutOrStdout(), total, byActivity, byCategory)
			return nil
		},
	}
}
