package repository

import "github.com/okian/teammate/internal/domain/dedupe"

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithIDIndex replaces the uniqueness index used for participant IDs.
func WithIDIndex(d dedupe.Deduper) Option {
	return func(s *MemoryStore) {
		if d != nil {
			s.ids = d
		}
	}
}

// WithEmailIndex replaces the uniqueness index used for emails.
func WithEmailIndex(d dedupe.Deduper) Option {
	return func(s *MemoryStore) {
		if d != nil {
			s.emails = d
		}
	}
}
