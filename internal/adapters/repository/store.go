// Package repository holds the participant roster and formation history.
package repository

import (
	"context"
	"time"

	"github.com/okian/teammate/internal/domain/formation"
	"github.com/okian/teammate/internal/domain/model"
)

// Patch describes a partial participant update. Nil fields are untouched.
type Patch struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Activity *string `json:"activity,omitempty"`
	Role     *string `json:"role,omitempty"`
	Skill    *int    `json:"skill,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Activity == nil && p.Role == nil && p.Skill == nil
}

// Store provides read/write access to registered participants.
type Store interface {
	// Add registers p. IDs and emails are unique case-insensitively.
	Add(ctx context.Context, p model.Participant) error

	// Get looks a participant up by ID or email.
	// Returns ErrNotFound if neither matches.
	Get(ctx context.Context, key string) (model.Participant, error)

	// Update applies patch to the participant with the given ID.
	Update(ctx context.Context, id string, patch Patch) (model.Participant, error)

	// Snapshot returns a copy of all participants in registration order.
	Snapshot(ctx context.Context) []model.Participant

	// Count returns the number of registered participants.
	Count(ctx context.Context) int
}

// Formation is one stored team-formation run.
type Formation struct {
	RunID       string
	CreatedAt   time.Time
	Duration    time.Duration
	TeamSize    int
	ActivityCap int
	Pool        int
	Result      formation.Result
}

// FormationStore keeps the most recent formation.
type FormationStore interface {
	Save(ctx context.Context, f *Formation)
	// Last returns ErrNoFormation until the first Save.
	Last(ctx context.Context) (*Formation, error)
}
