package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/okian/teammate/internal/domain/dedupe"
	"github.com/okian/teammate/internal/domain/model"
	"github.com/okian/teammate/internal/domain/validation"
	"github.com/okian/teammate/pkg/metrics"
)

// MemoryStore is an in-memory Store. Participants keep registration order.
type MemoryStore struct {
	mu      sync.RWMutex
	order   []string // lower-cased ids in registration order
	byID    map[string]model.Participant
	byEmail map[string]string // lower-cased email -> lower-cased id

	ids    dedupe.Deduper
	emails dedupe.Deduper
}

// NewMemoryStore creates an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		byID:    make(map[string]model.Participant),
		byEmail: make(map[string]string),
		ids:     dedupe.NewInMemoryDeduper(),
		emails:  dedupe.NewInMemoryDeduper(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func observe(op string, start time.Time) {
	metrics.RecordRepositoryLatency(op, float64(time.Since(start).Microseconds())/1000.0)
}

func (s *MemoryStore) Add(ctx context.Context, p model.Participant) error {
	defer observe("add", time.Now())

	if err := validation.Participant(p); err != nil {
		metrics.RecordErrorByComponent("repository", "invalid")
		return fmt.Errorf("%w: %w", ErrInvalidParticipant, err)
	}

	if s.ids.SeenAndRecord(ctx, p.ID) {
		metrics.RecordErrorByComponent("repository", "duplicate_id")
		return fmt.Errorf("%w: %s", ErrDuplicateID, p.ID)
	}
	if s.emails.SeenAndRecord(ctx, p.Email) {
		s.ids.Unrecord(ctx, p.ID)
		metrics.RecordErrorByComponent("repository", "duplicate_email")
		return fmt.Errorf("%w: %s", ErrDuplicateEmail, p.Email)
	}

	id := fold(p.ID)
	s.mu.Lock()
	s.byID[id] = p
	s.byEmail[fold(p.Email)] = id
	s.order = append(s.order, id)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, key string) (model.Participant, error) {
	defer observe("get", time.Now())

	k := fold(key)
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.byID[k]; ok {
		return p, nil
	}
	if id, ok := s.byEmail[k]; ok {
		return s.byID[id], nil
	}
	return model.Participant{}, fmt.Errorf("%w: %s", ErrNotFound, key)
}

func (s *MemoryStore) Update(ctx context.Context, id string, patch Patch) (model.Participant, error) {
	defer observe("update", time.Now())

	k := fold(id)
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.byID[k]
	if !ok {
		return model.Participant{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	next := cur
	if patch.Name != nil {
		next.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Email != nil {
		next.Email = strings.TrimSpace(*patch.Email)
	}
	if patch.Activity != nil {
		next.Activity = strings.TrimSpace(*patch.Activity)
	}
	if patch.Role != nil {
		next.Role = strings.TrimSpace(*patch.Role)
	}
	if patch.Skill != nil {
		next.Skill = *patch.Skill
	}
	if err := validation.Participant(next); err != nil {
		return cur, fmt.Errorf("%w: %w", ErrInvalidParticipant, err)
	}

	oldEmail, newEmail := fold(cur.Email), fold(next.Email)
	if oldEmail != newEmail {
		if s.emails.SeenAndRecord(ctx, newEmail) {
			return cur, fmt.Errorf("%w: %s", ErrDuplicateEmail, next.Email)
		}
		s.emails.Unrecord(ctx, oldEmail)
		delete(s.byEmail, oldEmail)
		s.byEmail[newEmail] = k
	}

	s.byID[k] = next
	return next, nil
}

func (s *MemoryStore) Snapshot(_ context.Context) []model.Participant {
	defer observe("snapshot", time.Now())

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Participant, len(s.order))
	for i, id := range s.order {
		out[i] = s.byID[id]
	}
	return out
}

func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// MemoryFormationStore is an in-memory FormationStore.
type MemoryFormationStore struct {
	mu   sync.RWMutex
	last *Formation
}

// NewMemoryFormationStore creates an empty formation store.
func NewMemoryFormationStore() *MemoryFormationStore {
	return &MemoryFormationStore{}
}

func (s *MemoryFormationStore) Save(_ context.Context, f *Formation) {
	s.mu.Lock()
	s.last = f
	s.mu.Unlock()
}

func (s *MemoryFormationStore) Last(_ context.Context) (*Formation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return nil, ErrNoFormation
	}
	return s.last, nil
}
