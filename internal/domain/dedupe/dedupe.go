// Package dedupe tracks unique keys such as participant IDs and emails.
package dedupe

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
)

// Deduper records seen keys so a key is accepted at most once.
type Deduper interface {
	// SeenAndRecord atomically checks if key was seen and records it if not.
	// Returns true if key was already seen, false if it was newly recorded.
	SeenAndRecord(ctx context.Context, key string) bool

	// Unrecord removes a key so it may be recorded again. Used to roll back
	// a partial registration.
	Unrecord(ctx context.Context, key string)

	// Contains reports whether key is recorded without recording it.
	Contains(ctx context.Context, key string) bool

	Size() int64
}

// inMemoryDeduper implements Deduper with a map guarded by a mutex.
type inMemoryDeduper struct {
	mu            sync.RWMutex
	seen          map[string]struct{}
	caseSensitive bool
	size          atomic.Int64
}

// NewInMemoryDeduper creates a new in-memory deduper. Keys are compared
// case-insensitively unless WithCaseSensitive(true) is given.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]struct{})
	return d
}

func (d *inMemoryDeduper) key(k string) string {
	k = strings.TrimSpace(k)
	if d.caseSensitive {
		return k
	}
	return strings.ToLower(k)
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, key string) bool {
	k := d.key(key)

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.seen[k]; exists {
		return true
	}
	d.seen[k] = struct{}{}
	d.size.Add(1)
	return false
}

func (d *inMemoryDeduper) Unrecord(_ context.Context, key string) {
	k := d.key(key)

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.seen[k]; exists {
		delete(d.seen, k)
		d.size.Add(-1)
	}
}

func (d *inMemoryDeduper) Contains(_ context.Context, key string) bool {
	k := d.key(key)

	d.mu.RLock()
	defer d.mu.RUnlock()

	_, exists := d.seen[k]
	return exists
}

// Size returns the current number of entries in the deduper.
func (d *inMemoryDeduper) Size() int64 {
	return d.size.Load()
}
