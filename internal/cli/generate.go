package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/teammate/internal/adapters/roster"
	"github.com/okian/teammate/internal/rostergen"
)

func newGenerateCommand() *cobra.Command {
	var (
		count  int
		seed   int64
		output string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic roster as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 1 {
				return fmt.Errorf("%w: %d", ErrInvalidCount, count)
			}
			opts := []rostergen.Option{}
			if seed != 0 {
				opts = append(opts, rostergen.WithSeed(seed))
			}
			ps := rostergen.Generate(count, opts...)

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer f.Close()
				w = f
			}
			return roster.WriteParticipantsCSV(w, ps)
		},
	}

	cmd.Flags().IntVar(&count, "count", 20, "number of participants")
	cmd.Flags().Int64Var(&seed, "seed", 0, "generator seed (0 = random)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	return cmd
}
