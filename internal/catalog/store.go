package catalog

import (
	"sync"
	"time"

	"github.com/santiago/autovidriera/internal/model"
)

// Snapshot is one published catalog state: the mapped vehicles, their
// derived filter domain, and bookkeeping about the load that produced
// them. Snapshots are immutable once published.
type Snapshot struct {
	Vehicles   []model.Vehicle
	Domain     model.FilterDomain
	LoadedAt   time.Time
	Generation uint64
}

// Store holds the current catalog snapshot. Loads may race (a manual
// refresh against a periodic one, or a slow fetch against a fast
// retry); generations guarantee that a slower, earlier load can never
// overwrite the result of a newer one.
type Store struct {
	mu      sync.RWMutex
	snap    Snapshot
	nextGen uint64
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{}
}

// BeginLoad reserves and returns the generation for a load that is
// about to start.
func (s *Store) BeginLoad() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextGen++
	return s.nextGen
}

// Publish installs a snapshot for the given generation. It reports
// false, and installs nothing, when a newer generation has already
// published. This is the stale-response guard.
func (s *Store) Publish(generation uint64, vehicles []model.Vehicle, domain model.FilterDomain) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if generation <= s.snap.Generation {
		return false
	}

	s.snap = Snapshot{
		Vehicles:   vehicles,
		Domain:     domain,
		LoadedAt:   time.Now(),
		Generation: generation,
	}
	return true
}

// Current returns the latest published snapshot. The zero Snapshot
// (no vehicles, baseline domain computed by the caller) is returned
// before any load completes.
func (s *Store) Current() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}
