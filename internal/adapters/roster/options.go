package roster

import "github.com/okian/teammate/pkg/logger"

// Option applies a configuration option to the Importer.
type Option func(*Importer)

// WithWorkers sets how many lines are parsed concurrently.
func WithWorkers(n int) Option {
	return func(i *Importer) {
		if n > 0 {
			i.workers = n
		}
	}
}

// WithLogger sets the logger used to report rejected lines.
func WithLogger(l logger.Logger) Option {
	return func(i *Importer) {
		if l != nil {
			i.log = l
		}
	}
}
