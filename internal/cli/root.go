// Package cli implements the teammate command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	service "github.com/okian/teammate/internal/app"
	"github.com/okian/teammate/internal/config"
	"github.com/okian/teammate/pkg/logger"
)

// settings holds the effective configuration after flags are applied.
type settings struct {
	cfg *config.Config

	teamSize    int
	activityCap int
	seed        int64
	logLevel    string
}

// NewRootCommand builds the teammate command tree.
func NewRootCommand() *cobra.Command {
	s := &settings{}

	root := &cobra.Command{
		Use:   "teammate",
		Short: "Form balanced teams from a participant roster",
		Long: `teammate reads participant rosters, classifies survey answers and
forms teams that respect a per-team activity cap while mixing
personality styles and roles.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return s.load(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.IntVarP(&s.teamSize, "team-size", "n", 0, "team size (default from config)")
	flags.IntVarP(&s.activityCap, "activity-cap", "c", 0, "max members sharing an activity per team (default from config)")
	flags.Int64Var(&s.seed, "seed", 0, "shuffle seed for reproducible runs (default from config)")
	flags.StringVar(&s.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		newFormCommand(s),
		newValidateCommand(s),
		newClassifyCommand(),
		newGenerateCommand(),
		newDashboardCommand(s),
		newSmokeCommand(s),
	)
	return root
}

// Execute runs the command tree against os.Args.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// load reads configuration and lets explicitly set flags win over it.
// Logs go to stderr so stdout stays clean for rendered output.
func (s *settings) load(cmd *cobra.Command) error {
	if err := logger.InitWithWriter(cmd.ErrOrStderr()); err != nil {
		return err
	}

	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return err
	}
	s.cfg = cfg

	level := cfg.LogLevel
	if cmd.Flags().Changed("log-level") {
		level = s.logLevel
	}
	if err := logger.SetLevelString(level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	if !cmd.Flags().Changed("team-size") {
		s.teamSize = cfg.TeamSize
	}
	if !cmd.Flags().Changed("activity-cap") {
		s.activityCap = cfg.ActivityCap
	}
	if !cmd.Flags().Changed("seed") {
		s.seed = cfg.Seed
	}
	return nil
}

// newService starts a service configured from s.
func (s *settings) newService(ctx context.Context) (*service.Service, error) {
	svc := service.New(
		service.WithLogger(logger.Named("teammate")),
		service.WithTeamSize(s.teamSize),
		service.WithActivityCap(s.activityCap),
		service.WithSeed(s.seed),
		service.WithImportWorkers(s.cfg.ImportWorkers),
		service.WithFormationTimeout(s.cfg.FormationTimeout()),
	)
	if err := svc.Start(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}

// loadRoster imports path ("-" for stdin) into svc.
func loadRoster(ctx context.Context, cmd *cobra.Command, svc *service.Service, path string) (service.ImportReport, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return service.ImportReport{}, fmt.Errorf("open roster: %w", err)
		}
		defer f.Close()
		r = f
	}
	return svc.Import(ctx, r)
}
