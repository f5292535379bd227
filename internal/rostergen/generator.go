// Package rostergen produces synthetic participant pools for demos, load
// checks and tests.
package rostergen

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/okian/teammate/internal/domain/classifier"
	"github.com/okian/teammate/internal/domain/model"
)

// Skill tiers; the spread mimics a typical sign-up list where most people
// rate themselves mid-range.
const (
	tierAverage = iota
	tierHigh
	tierLow
	tierElite
	tierCount
)

const (
	averageSkillMin   = 4
	averageSkillRange = 3
	highSkillMin      = 7
	highSkillRange    = 2
	lowSkillMin       = 1
	lowSkillRange     = 3
	eliteSkill        = 10
	emailDomain       = "example.com"
)

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithSeed makes IDs and attributes reproducible.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // synthetic data
	}
}

// WithActivities restricts the activity pool.
func WithActivities(activities ...string) Option {
	return func(g *Generator) {
		if len(activities) > 0 {
			g.activities = activities
		}
	}
}

// WithRoles restricts the role pool.
func WithRoles(roles ...string) Option {
	return func(g *Generator) {
		if len(roles) > 0 {
			g.roles = roles
		}
	}
}

// Generator creates participants with random but valid attributes.
type Generator struct {
	rng        *rand.Rand
	activities []string
	roles      []string
}

// New creates a generator using the canonical activity and role lists.
func New(opts ...Option) *Generator {
	g := &Generator{
		activities: model.Activities,
		roles:      model.Roles,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // synthetic data
	}
	return g
}

// Generate returns n participants.
func Generate(n int, opts ...Option) []model.Participant {
	return New(opts...).Generate(n)
}

// Generate returns n participants with unique IDs and emails.
func (g *Generator) Generate(n int) []model.Participant {
	if n <= 0 {
		return []model.Participant{}
	}
	out := make([]model.Participant, n)
	for i := range out {
		out[i] = g.participant(i)
	}
	return out
}

func (g *Generator) participant(index int) model.Participant {
	// Drawing the UUID from the generator's source keeps seeded runs stable.
	id, err := uuid.NewRandomFromReader(g.rng)
	if err != nil {
		id = uuid.New()
	}
	short := id.String()[:8]

	var answers [classifier.QuestionCount]int
	for i := range answers {
		answers[i] = classifier.MinAnswer + g.rng.Intn(classifier.MaxAnswer)
	}
	score, category := classifier.FromAnswers(answers)

	return model.Participant{
		ID:       id.String(),
		Name:     fmt.Sprintf("Participant %03d", index+1),
		Email:    fmt.Sprintf("p%03d.%s@%s", index+1, short, emailDomain),
		Activity: g.activities[g.rng.Intn(len(g.activities))],
		Role:     g.roles[g.rng.Intn(len(g.roles))],
		Skill:    g.skill(),
		Score:    score,
		Category: category,
	}
}

func (g *Generator) skill() int {
	switch g.rng.Intn(tierCount) {
	case tierHigh:
		return highSkillMin + g.rng.Intn(highSkillRange+1)
	case tierLow:
		return lowSkillMin + g.rng.Intn(lowSkillRange)
	case tierElite:
		return eliteSkill
	default:
		return averageSkillMin + g.rng.Intn(averageSkillRange)
	}
}
