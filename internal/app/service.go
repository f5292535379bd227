// Package service provides the core business service behind the HTTP API
// and the CLI: participant registration, roster import, validation and
// team formation.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/teammate/internal/adapters/repository"
	"github.com/okian/teammate/internal/adapters/roster"
	"github.com/okian/teammate/internal/domain/classifier"
	"github.com/okian/teammate/internal/domain/formation"
	"github.com/okian/teammate/internal/domain/model"
	"github.com/okian/teammate/internal/domain/types"
	"github.com/okian/teammate/internal/domain/validation"
	"github.com/okian/teammate/pkg/logger"
	"github.com/okian/teammate/pkg/metrics"
)

const defaultFormationTimeout = 5 * time.Second

// Service implements the API dependencies for the team-formation system.
type Service struct {
	mu sync.RWMutex

	// Core components
	participants repository.Store
	formations   repository.FormationStore
	importer     *roster.Importer

	// Configuration
	teamSize         int
	activityCap      int
	seed             int64
	importWorkers    int
	formationTimeout time.Duration

	// State
	started bool
	stopCh  chan struct{}

	logger logger.Logger
}

// SurveyInput is one participant's registration with raw survey answers.
type SurveyInput struct {
	ID       string                        `json:"id"`
	Name     string                        `json:"name"`
	Email    string                        `json:"email"`
	Activity string                        `json:"activity"`
	Role     string                        `json:"role"`
	Skill    int                           `json:"skill"`
	Answers  [classifier.QuestionCount]int `json:"answers"`
}

// FormRequest parameterizes a formation run. Nil sizes fall back to the
// service defaults; given values go to the engine as-is and are clamped
// there. A zero seed falls back to the service seed.
type FormRequest struct {
	TeamSize    *int  `json:"team_size,omitempty"`
	ActivityCap *int  `json:"activity_cap,omitempty"`
	Seed        int64 `json:"seed,omitempty"`
}

// Rejection records an imported participant the store refused.
type Rejection struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// ImportReport summarizes one roster import.
type ImportReport struct {
	Lines      int                `json:"lines"`
	Added      int                `json:"added"`
	LineErrors []roster.LineError `json:"lineErrors"`
	Rejected   []Rejection        `json:"rejected"`
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		teamSize:         formation.DefaultTeamSize,
		activityCap:      formation.DefaultActivityCap,
		importWorkers:    4,
		formationTimeout: defaultFormationTimeout,
		stopCh:           make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting team formation service...")

	s.participants = repository.NewMemoryStore()
	s.formations = repository.NewMemoryFormationStore()
	s.importer = roster.NewImporter(
		roster.WithWorkers(s.importWorkers),
		roster.WithLogger(s.logger.Named("roster")),
	)
	s.stopCh = make(chan struct{})

	s.started = true
	s.logger.Info(ctx, "team formation service started",
		logger.Int("teamSize", s.teamSize),
		logger.Int("activityCap", s.activityCap),
		logger.Int("importWorkers", s.importWorkers),
		logger.Duration("formationTimeout", s.formationTimeout),
	)
	return nil
}

// Stop shuts the service down. In-flight formations are abandoned.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping team formation service...")

	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}

	s.started = false
	s.logger.Info(context.Background(), "team formation service stopped")
}

// components returns the live stores, or ErrNotStarted.
func (s *Service) components() (repository.Store, repository.FormationStore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, nil, ErrNotStarted
	}
	return s.participants, s.formations, nil
}

// RegisterSurvey classifies the answers and stores the participant.
func (s *Service) RegisterSurvey(ctx context.Context, in SurveyInput) (model.Participant, error) {
	store, _, err := s.components()
	if err != nil {
		return model.Participant{}, err
	}

	for i, a := range in.Answers {
		if !validation.IsValidAnswer(a) {
			return model.Participant{}, fmt.Errorf("%w: answer %d is %d, want %d..%d",
				ErrInvalidSurvey, i+1, a, classifier.MinAnswer, classifier.MaxAnswer)
		}
	}
	if !validation.IsValidSkill(in.Skill) {
		return model.Participant{}, fmt.Errorf("%w: skill %d", ErrInvalidSurvey, in.Skill)
	}

	score, category := classifier.FromAnswers(in.Answers)
	p := model.Participant{
		ID:       strings.TrimSpace(in.ID),
		Name:     strings.TrimSpace(in.Name),
		Email:    strings.TrimSpace(in.Email),
		Activity: roster.NormalizeActivity(in.Activity),
		Role:     roster.NormalizeRole(in.Role),
		Skill:    in.Skill,
		Score:    score,
		Category: category,
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	if err := store.Add(ctx, p); err != nil {
		return model.Participant{}, err
	}

	metrics.RecordParticipantRegistered("survey")
	metrics.UpdateParticipantsTotal(store.Count(ctx))
	s.logger.Debug(ctx, "participant registered",
		logger.String("id", p.ID),
		logger.String("category", string(p.Category)),
		logger.Int("score", p.Score),
	)
	return p, nil
}

// Import parses a roster and adds every parsed participant to the store.
// Rows that collide with already registered IDs or emails are rejected, not
// fatal.
func (s *Service) Import(ctx context.Context, r io.Reader) (ImportReport, error) {
	store, _, err := s.components()
	if err != nil {
		return ImportReport{}, err
	}

	s.mu.RLock()
	importer := s.importer
	s.mu.RUnlock()

	res, err := importer.Import(ctx, r)
	if err != nil {
		metrics.RecordErrorByComponent("service", "import")
		return ImportReport{}, err
	}

	report := ImportReport{
		Lines:      res.Lines,
		LineErrors: res.Errors,
		Rejected:   []Rejection{},
	}
	duplicates := 0
	for _, p := range res.Participants {
		if err := store.Add(ctx, p); err != nil {
			if errors.Is(err, repository.ErrDuplicateID) || errors.Is(err, repository.ErrDuplicateEmail) {
				duplicates++
			}
			report.Rejected = append(report.Rejected, Rejection{ID: p.ID, Reason: err.Error()})
			continue
		}
		report.Added++
		metrics.RecordParticipantRegistered("import")
	}

	metrics.RecordImportLines("duplicate", duplicates)
	metrics.UpdateParticipantsTotal(store.Count(ctx))
	s.logger.Info(ctx, "roster imported",
		logger.Int("lines", report.Lines),
		logger.Int("added", report.Added),
		logger.Int("lineErrors", len(report.LineErrors)),
		logger.Int("rejected", len(report.Rejected)),
	)
	return report, nil
}

// Participant looks up one participant by ID or email.
func (s *Service) Participant(ctx context.Context, key string) (model.Participant, error) {
	store, _, err := s.components()
	if err != nil {
		return model.Participant{}, err
	}
	return store.Get(ctx, key)
}

// Participants returns all registered participants in registration order.
func (s *Service) Participants(ctx context.Context) ([]model.Participant, error) {
	store, _, err := s.components()
	if err != nil {
		return nil, err
	}
	return store.Snapshot(ctx), nil
}

// Edit applies a partial update. Activity and role are normalized.
func (s *Service) Edit(ctx context.Context, id string, patch repository.Patch) (model.Participant, error) {
	store, _, err := s.components()
	if err != nil {
		return model.Participant{}, err
	}
	if patch.Activity != nil {
		a := roster.NormalizeActivity(*patch.Activity)
		patch.Activity = &a
	}
	if patch.Role != nil {
		r := roster.NormalizeRole(*patch.Role)
		patch.Role = &r
	}

	p, err := store.Update(ctx, id, patch)
	if err != nil {
		return p, err
	}
	s.logger.Debug(ctx, "participant updated", logger.String("id", p.ID))
	return p, nil
}

// UpdatePreferences changes a participant's activity and role.
func (s *Service) UpdatePreferences(ctx context.Context, id, activity, role string) (model.Participant, error) {
	return s.Edit(ctx, id, repository.Patch{Activity: &activity, Role: &role})
}

// Validate checks the whole roster.
func (s *Service) Validate(ctx context.Context) (validation.Report, error) {
	store, _, err := s.components()
	if err != nil {
		return validation.Report{}, err
	}
	report := validation.Check(store.Snapshot(ctx))
	metrics.UpdateValidationIssues(len(report.Issues))
	return report, nil
}

// FormTeams snapshots the roster and runs the formation engine on it. The
// engine runs on its own goroutine; if the deadline passes first the result
// is discarded and ErrFormationTimeout is returned.
func (s *Service) FormTeams(ctx context.Context, req FormRequest) (types.Formation, error) {
	store, formations, err := s.components()
	if err != nil {
		return types.Formation{}, err
	}
	s.mu.RLock()
	stopCh := s.stopCh
	s.mu.RUnlock()

	pool := store.Snapshot(ctx)
	if len(pool) == 0 {
		metrics.RecordFormationOutcome(metrics.OutcomeEmpty)
		return types.Formation{}, ErrNoParticipants
	}

	teamSize, activityCap := s.teamSize, s.activityCap
	if req.TeamSize != nil {
		teamSize = *req.TeamSize
	}
	if req.ActivityCap != nil {
		activityCap = *req.ActivityCap
	}
	opts := []formation.Option{
		formation.WithTeamSize(teamSize),
		formation.WithActivityCap(activityCap),
	}
	if seed := firstNonZero(req.Seed, s.seed); seed != 0 {
		opts = append(opts, formation.WithSeed(seed))
	}
	engine := formation.New(opts...)

	ctx, cancel := context.WithTimeout(ctx, s.formationTimeout)
	defer cancel()

	start := time.Now()
	done := make(chan formation.Result, 1)
	go func() {
		done <- engine.Form(pool)
	}()

	var res formation.Result
	select {
	case res = <-done:
	case <-stopCh:
		return types.Formation{}, ErrStopped
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			metrics.RecordFormationOutcome(metrics.OutcomeTimeout)
			s.logger.Warn(ctx, "team formation timed out", logger.Int("pool", len(pool)))
			return types.Formation{}, fmt.Errorf("%w after %s", ErrFormationTimeout, s.formationTimeout)
		}
		return types.Formation{}, ctx.Err()
	}
	elapsed := time.Since(start)

	rec := &repository.Formation{
		RunID:       uuid.NewString(),
		CreatedAt:   start.UTC(),
		Duration:    elapsed,
		TeamSize:    engine.TeamSize(),
		ActivityCap: engine.ActivityCap(),
		Pool:        len(pool),
		Result:      res,
	}
	formations.Save(ctx, rec)

	metrics.RecordFormation(float64(elapsed.Microseconds())/1000.0, len(res.Teams), len(res.Unplaced), res.Swaps)
	fields := []logger.Field{
		logger.String("runId", rec.RunID),
		logger.Int("pool", rec.Pool),
		logger.Int("teams", len(res.Teams)),
		logger.Int("unplaced", len(res.Unplaced)),
		logger.Int("swaps", res.Swaps),
		logger.Duration("took", elapsed),
	}
	if len(res.Unplaced) > 0 {
		s.logger.Warn(ctx, "some participants could not be placed under the activity cap", fields...)
	} else {
		s.logger.Info(ctx, "teams formed", fields...)
	}

	return View(rec), nil
}

// LastFormation returns the most recent formation.
func (s *Service) LastFormation(ctx context.Context) (types.Formation, error) {
	_, formations, err := s.components()
	if err != nil {
		return types.Formation{}, err
	}
	rec, err := formations.Last(ctx)
	if err != nil {
		return types.Formation{}, err
	}
	return View(rec), nil
}

// ExportTeams writes the most recent formation to w as csv, json or yaml.
func (s *Service) ExportTeams(ctx context.Context, w io.Writer, format string) error {
	f, err := s.LastFormation(ctx)
	if err != nil {
		return err
	}
	return roster.WriteTeams(w, format, f)
}

// View converts a stored formation to its wire shape.
func View(rec *repository.Formation) types.Formation {
	return types.Formation{
		RunID:       rec.RunID,
		CreatedAt:   rec.CreatedAt,
		DurationMs:  float64(rec.Duration.Microseconds()) / 1000.0,
		TeamSize:    rec.TeamSize,
		ActivityCap: rec.ActivityCap,
		Pool:        rec.Pool,
		Placed:      rec.Result.Placed(),
		Swaps:       rec.Result.Swaps,
		Teams:       types.FromTeams(rec.Result.Teams),
		Unplaced:    types.FromParticipants(rec.Result.Unplaced),
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	started := s.started
	store, formations := s.participants, s.formations
	stats := map[string]interface{}{
		"started":     started,
		"teamSize":    s.teamSize,
		"activityCap": s.activityCap,
	}
	s.mu.RUnlock()

	if !started {
		return stats
	}

	ctx := context.Background()
	pool := store.Snapshot(ctx)
	byActivity := map[string]int{}
	byCategory := map[string]int{}
	for _, p := range pool {
		byActivity[p.Activity]++
		byCategory[string(p.Category)]++
	}
	stats["participants"] = len(pool)
	stats["byActivity"] = byActivity
	stats["byCategory"] = byCategory
	metrics.UpdateParticipantsTotal(len(pool))

	if rec, err := formations.Last(ctx); err == nil {
		stats["lastFormation"] = map[string]interface{}{
			"runId":    rec.RunID,
			"teams":    len(rec.Result.Teams),
			"placed":   rec.Result.Placed(),
			"unplaced": len(rec.Result.Unplaced),
			"swaps":    rec.Result.Swaps,
		}
	}
	return stats
}

func firstNonZero(vals ...int64) int64 {
	for _, v := range vals {
		if v != 0 {
			return v
		}
	}
	return 0
}
