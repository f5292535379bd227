package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	service "github.com/okian/teammate/internal/app"
)

func newFormCommand(s *settings) *cobra.Command {
	var (
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "form <roster.csv|->",
		Short: "Form teams from a CSV roster",
		Long: `Import a roster, form teams and print them. With --output the
teams are also written to a file as CSV, JSON or YAML; the format
follows the file extension unless --format is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := s.newService(ctx)
			if err != nil {
				return err
			}
			defer svc.Stop()

			report, err := loadRoster(ctx, cmd, svc, args[0])
			if err != nil {
				return err
			}
			printImport(cmd, report)

			f, err := svc.FormTeams(ctx, service.FormRequest{})
			if err != nil {
				return err
			}
			renderFormation(cmd.OutOrStdout(), f)

			if output == "" {
				return nil
			}
			if format == "" {
				format = strings.TrimPrefix(filepath.Ext(output), ".")
			}
			out, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			if err := svc.ExportTeams(ctx, out, format); err != nil {
				_ = out.Close()
				return err
			}
			if err := out.Close(); err != nil {
				return fmt.Errorf("close output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write teams to this file")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: csv, json or yaml")
	return cmd
}

// printImport reports skipped lines and rejected rows on stderr.
func printImport(cmd *cobra.Command, r service.ImportReport) {
	errOut := cmd.ErrOrStderr()
	for _, le := range r.LineErrors {
		fmt.Fprintln(errOut, warnStyle.Render("Skipping "+le.Error()))
	}
	for _, rej := range r.Rejected {
		fmt.Fprintln(errOut, warnStyle.Render(fmt.Sprintf("Skipping duplicate: %s (%s)", rej.ID, rej.Reason)))
	}
	fmt.Fprintln(errOut, dimStyle.Render(fmt.Sprintf("Loaded %d of %d lines.", r.Added, r.Lines)))
}
