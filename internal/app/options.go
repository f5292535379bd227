package service

import (
	"time"

	"github.com/okian/teammate/internal/domain/formation"
	"github.com/okian/teammate/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTeamSize sets the default team size used when a request omits it.
// Values below formation.MinTeamSize are clamped.
func WithTeamSize(n int) Option {
	return func(s *Service) {
		s.teamSize = max(n, formation.MinTeamSize)
	}
}

// WithActivityCap sets the default activity cap used when a request omits it.
// Values below formation.MinActivityCap are clamped.
func WithActivityCap(c int) Option {
	return func(s *Service) {
		s.activityCap = max(c, formation.MinActivityCap)
	}
}

// WithSeed fixes the engine seed. Zero keeps time-seeded shuffling.
func WithSeed(seed int64) Option {
	return func(s *Service) {
		s.seed = seed
	}
}

// WithImportWorkers sets the roster parsing concurrency.
func WithImportWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.importWorkers = n
		}
	}
}

// WithFormationTimeout bounds each formation run.
func WithFormationTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.formationTimeout = d
		}
	}
}
