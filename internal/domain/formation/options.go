package formation

import "math/rand"

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithTeamSize sets the target team size. Values below MinTeamSize are clamped.
func WithTeamSize(size int) Option {
	return func(e *Engine) {
		e.teamSize = size
	}
}

// WithActivityCap sets how many members of one team may share an activity.
// Values below MinActivityCap are clamped.
func WithActivityCap(limit int) Option {
	return func(e *Engine) {
		e.activityCap = limit
	}
}

// WithSeed pins the random source so runs are reproducible.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // shuffling, not security
	}
}

// WithRand injects a random source. A nil source is ignored.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		if r != nil {
			e.rng = r
		}
	}
}
