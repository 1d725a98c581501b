package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/lruconsole/internal/application/port"
	"github.com/bnema/lruconsole/internal/domain/entity"
	"github.com/bnema/lruconsole/internal/logging"
)

// ViolationDuplicateKey is reported when a fetched snapshot repeats a key.
const ViolationDuplicateKey = "duplicate_key"

// SnapshotListener is called after every accepted snapshot replacement.
type SnapshotListener func(*entity.Snapshot)

// SnapshotStore is the single owner of the most recently accepted snapshot.
//
// Every fetch is tagged with a sequence number when it is issued. A response
// that completes after a newer one has been accepted is discarded, so an older
// view never overwrites a newer one.
type SnapshotStore struct {
	service port.CacheService
	metrics port.SyncMetrics
	now     func() time.Time

	mu           sync.Mutex
	current      *entity.Snapshot
	issued       uint64
	lastAccepted uint64
	generation   uint64
	fingerprint  uint64
	listeners    map[int]SnapshotListener
	nextListener int
}

// NewSnapshotStore creates a store holding the empty "no snapshot yet" placeholder.
func NewSnapshotStore(service port.CacheService, metrics port.SyncMetrics) *SnapshotStore {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	empty := entity.EmptySnapshot()
	return &SnapshotStore{
		service:     service,
		metrics:     metrics,
		now:         time.Now,
		current:     empty,
		fingerprint: empty.Fingerprint(),
		listeners:   make(map[int]SnapshotListener),
	}
}

// Current returns the last accepted snapshot. It is never nil.
func (s *SnapshotStore) Current() *entity.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Subscribe registers fn for accepted replacements and returns its removal func.
func (s *SnapshotStore) Subscribe(fn SnapshotListener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Refresh fetches the full entry list and replaces the stored snapshot.
//
// On failure the previous snapshot stays in place and the error is returned.
// A response overtaken by a newer accepted one is dropped and the newer
// snapshot is returned without error.
func (s *SnapshotStore) Refresh(ctx context.Context) (*entity.Snapshot, error) {
	log := logging.FromContext(ctx)

	s.mu.Lock()
	s.issued++
	seq := s.issued
	s.mu.Unlock()

	started := s.now()
	entries, err := s.service.GetAll(ctx)
	took := s.now().Sub(started)
	if err != nil {
		s.metrics.RefreshFailed()
		log.Warn().Err(err).Uint64("seq", seq).Msg("snapshot refresh failed")
		return s.Current(), fmt.Errorf("fetch snapshot: %w", err)
	}

	s.mu.Lock()
	if seq < s.lastAccepted {
		current := s.current
		s.mu.Unlock()

		s.metrics.StaleResponseDiscarded()
		log.Debug().
			Uint64("seq", seq).
			Uint64("current_generation", current.Generation).
			Msg("discarding out-of-order snapshot response")
		return current, nil
	}

	s.generation++
	snap := entity.NewSnapshot(entries, s.generation, s.now())
	fp := snap.Fingerprint()
	changed := fp != s.fingerprint
	s.current = snap
	s.fingerprint = fp
	s.lastAccepted = seq
	listeners := make([]SnapshotListener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	if dups := snap.DuplicateKeys(); len(dups) > 0 {
		s.metrics.ContractViolation(ViolationDuplicateKey)
		log.Warn().Strs("keys", dups).Uint64("generation", snap.Generation).
			Msg("cache service returned duplicate keys")
	}

	s.metrics.RefreshSucceeded(snap.Len(), took)
	if changed {
		s.metrics.SnapshotContentChanged()
	}
	log.Debug().
		Uint64("generation", snap.Generation).
		Int("entries", snap.Len()).
		Bool("content_changed", changed).
		Dur("took", took).
		Msg("snapshot replaced")

	for _, fn := range listeners {
		fn(snap)
	}
	return snap, nil
}

type noopMetrics struct{}

func (noopMetrics) RefreshSucceeded(int, time.Duration) {}
func (noopMetrics) RefreshFailed()                      {}
func (noopMetrics) StaleResponseDiscarded()             {}
func (noopMetrics) SnapshotContentChanged()             {}
func (noopMetrics) ContractViolation(string)            {}
func (noopMetrics) CommandCompleted(string, string)     {}
