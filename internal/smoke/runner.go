package smoke

import (
	"context"
	"fmt"
	"net/http"
	"time"

	service "github.com/okian/teammate/internal/app"
	"github.com/okian/teammate/internal/domain/classifier"
	"github.com/okian/teammate/internal/domain/types"
	"github.com/okian/teammate/internal/rostergen"
	"github.com/okian/teammate/pkg/logger"
)

// Defaults applied to zero Config fields.
const (
	DefaultBaseURL      = "http://localhost:9080"
	DefaultParticipants = 100
	DefaultWorkers      = 8
	DefaultTimeout      = 10 * time.Second
)

// DefaultConfig returns a config targeting a local server.
func DefaultConfig() Config {
	return Config{
		BaseURL:      DefaultBaseURL,
		Participants: DefaultParticipants,
		Workers:      DefaultWorkers,
		Timeout:      DefaultTimeout,
	}
}

func (c *Config) normalize() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Participants <= 0 {
		c.Participants = DefaultParticipants
	}
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
}

// Run executes a full smoke pass against cfg.BaseURL. The returned error
// covers transport and protocol failures; invariant violations are reported
// in Stats.Violations.
func Run(ctx context.Context, cfg Config, log logger.Logger) (*Stats, error) {
	const op = "smoke.Run"
	cfg.normalize()
	stats := &Stats{StartTime: time.Now()}

	log.Info(ctx, "starting smoke run",
		logger.String("url", cfg.BaseURL),
		logger.Int("participants", cfg.Participants),
		logger.Int("workers", cfg.Workers))

	client := newHTTPClient(cfg.Timeout)

	if err := checkHealth(ctx, client, cfg.BaseURL); err != nil {
		return stats, fmt.Errorf("%s: %w", op, err)
	}

	surveys := generateSurveys(cfg.Participants, cfg.Seed)
	submitSurveys(ctx, &cfg, log, surveys, stats)
	if err := ctx.Err(); err != nil {
		return stats, fmt.Errorf("%s: %w", op, err)
	}
	if stats.Registered == 0 {
		return stats, fmt.Errorf("%s: %w", op, ErrNoneStored)
	}

	pool, err := fetchParticipants(ctx, client, cfg.BaseURL)
	if err != nil {
		return stats, fmt.Errorf("%s: %w", op, err)
	}

	f, err := formTeams(ctx, client, cfg)
	if err != nil {
		return stats, fmt.Errorf("%s: %w", op, err)
	}

	last, err := lastFormation(ctx, client, cfg.BaseURL)
	if err != nil {
		return stats, fmt.Errorf("%s: %w", op, err)
	}

	stats.RunID = f.RunID
	stats.Teams = len(f.Teams)
	stats.Placed = f.Placed
	stats.Unplaced = len(f.Unplaced)
	stats.Swaps = f.Swaps
	stats.Violations = verifyFormation(f, len(pool))
	if last.RunID != f.RunID {
		stats.Violations = append(stats.Violations,
			fmt.Sprintf("last formation %q does not match %q", last.RunID, f.RunID))
	}
	stats.Duration = time.Since(stats.StartTime)

	logFinalStats(ctx, log, stats)
	return stats, nil
}

func checkHealth(ctx context.Context, client *HTTPClient, baseURL string) error {
	resp, err := client.Get(ctx, baseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	if err := decode(resp, http.StatusOK, nil); err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	return nil
}

// generateSurveys turns synthetic participants into survey submissions
// whose answers reproduce each participant's score.
func generateSurveys(n int, seed int64) []service.SurveyInput {
	var opts []rostergen.Option
	if seed != 0 {
		opts = append(opts, rostergen.WithSeed(seed))
	}
	pool := rostergen.Generate(n, opts...)
	out := make([]service.SurveyInput, len(pool))
	for i, p := range pool {
		out[i] = service.SurveyInput{
			ID:       p.ID,
			Name:     p.Name,
			Email:    p.Email,
			Activity: p.Activity,
			Role:     p.Role,
			Skill:    p.Skill,
			Answers:  answersFor(p.Score),
		}
	}
	return out
}

// answersFor spreads score/4 across the questions as evenly as possible.
func answersFor(score int) [classifier.QuestionCount]int {
	sum := score / 4
	sum = max(sum, classifier.MinAnswer*classifier.QuestionCount)
	sum = min(sum, classifier.MaxAnswer*classifier.QuestionCount)

	var a [classifier.QuestionCount]int
	base, rem := sum/classifier.QuestionCount, sum%classifier.QuestionCount
	for i := range a {
		a[i] = base
		if i < rem {
			a[i]++
		}
	}
	return a
}

func fetchParticipants(ctx context.Context, client *HTTPClient, baseURL string) ([]types.Participant, error) {
	resp, err := client.Get(ctx, baseURL+"/participants")
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	var out []types.Participant
	if err := decode(resp, http.StatusOK, &out); err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	return out, nil
}

func formTeams(ctx context.Context, client *HTTPClient, cfg Config) (types.Formation, error) {
	req := service.FormRequest{TeamSize: cfg.TeamSize, ActivityCap: cfg.ActivityCap, Seed: cfg.Seed}
	resp, err := client.Post(ctx, cfg.BaseURL+"/teams", req)
	if err != nil {
		return types.Formation{}, fmt.Errorf("form teams: %w", err)
	}
	var f types.Formation
	if err := decode(resp, http.StatusCreated, &f); err != nil {
		return types.Formation{}, fmt.Errorf("form teams: %w", err)
	}
	return f, nil
}

func lastFormation(ctx context.Context, client *HTTPClient, baseURL string) (types.Formation, error) {
	resp, err := client.Get(ctx, baseURL+"/teams")
	if err != nil {
		return types.Formation{}, fmt.Errorf("get teams: %w", err)
	}
	var f types.Formation
	if err := decode(resp, http.StatusOK, &f); err != nil {
		return types.Formation{}, fmt.Errorf("get teams: %w", err)
	}
	return f, nil
}

func logFinalStats(ctx context.Context, log logger.Logger, stats *Stats) {
	fields := []logger.Field{
		logger.String("run_id", stats.RunID),
		logger.Int("submitted", stats.Submitted),
		logger.Int("registered", stats.Registered),
		logger.Int("conflicts", stats.Conflicts),
		logger.Int("failed", stats.Failed),
		logger.Int("teams", stats.Teams),
		logger.Int("placed", stats.Placed),
		logger.Int("unplaced", stats.Unplaced),
		logger.Int("swaps", stats.Swaps),
		logger.Duration("duration", stats.Duration),
	}
	if !stats.OK() {
		for _, v := range stats.Violations {
			log.Warn(ctx, "invariant violated", logger.String("detail", v))
		}
		log.Error(ctx, "smoke run failed", append(fields, logger.Int("violations", len(stats.Violations)))...)
		return
	}
	log.Info(ctx, "smoke run completed", fields...)
}
