package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/teammate/internal/adapters/roster"
	"github.com/okian/teammate/internal/domain/validation"
	"github.com/okian/teammate/pkg/logger"
)

// newValidateCommand checks the parsed roster as it is on disk, before any
// store-level rejection, so duplicates and bad emails are all reported.
func newValidateCommand(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <roster.csv|->",
		Short: "Check a roster for missing, duplicate or out-of-range values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open roster: %w", err)
				}
				defer f.Close()
				r = f
			}

			im := roster.NewImporter(
				roster.WithWorkers(s.cfg.ImportWorkers),
				roster.WithLogger(logger.Named("roster")),
			)
			res, err := im.Import(cmd.Context(), r)
			if err != nil {
				return err
			}
			for _, le := range res.Errors {
				fmt.Fprintln(cmd.ErrOrStderr(), warnStyle.Render("Skipping "+le.Error()))
			}

			report := validation.Check(res.Participants)
			renderValidation(cmd.OutOrStdout(), report)
			if !report.OK() {
				return fmt.Errorf("%w: %d issues", ErrValidationFailed, len(report.Issues))
			}
			return nil
		},
	}
}
