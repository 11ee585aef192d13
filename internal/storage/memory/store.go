package memory

import (
	"sync"
	"time"

	"sentiment_intel/internal/adapters/observability"
	"sentiment_intel/internal/domain"
)

// Store holds the current analysis snapshot in memory. State is process
// lifetime only; there is no durable layer behind it. Single writer at
// replacement time, many readers otherwise.
type Store struct {
	mu      sync.RWMutex
	snap    domain.Snapshot
	present bool
	version uint64
}

func New() *Store { return &Store{} }

// Current returns the installed snapshot, or false before the first Replace.
func (s *Store) Current() (domain.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap, s.present
}

// Replace installs a new snapshot wholesale. The pair is already fully
// constructed when it lands here, so readers never see a partial state.
func (s *Store) Replace(sum domain.Summary, reviews []domain.Review) domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.version++
	s.snap = domain.Snapshot{
		Version:  s.version,
		LoadedAt: time.Now().UTC(),
		Summary:  sum,
		Reviews:  reviews,
	}
	s.present = true
	observability.ObserveSnapshot(s.version, len(reviews))
	return s.snap
}
