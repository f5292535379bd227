package dedupe

// Option applies a configuration option to the in-memory deduper.
type Option func(*inMemoryDeduper)

// WithCaseSensitive controls whether keys differing only in case are
// distinct. The default folds case.
func WithCaseSensitive(enabled bool) Option {
	return func(d *inMemoryDeduper) {
		d.caseSensitive = enabled
	}
}
