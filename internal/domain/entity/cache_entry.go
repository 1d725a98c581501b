package entity

import (
	"encoding/binary"
	"time"

	"github.com/cespare/xxhash/v2"
)

// CacheEntry is one remote cache record as of the last accepted fetch.
// Entries are never modified once placed in a snapshot.
type CacheEntry struct {
	Key        string    `json:"key"`
	Value      string    `json:"value"`
	Expiration time.Time `json:"expiration"`
}

// Snapshot is a full point-in-time copy of the remote entry list.
// The pointer is the identity: every accepted fetch produces a new Snapshot
// with a higher Generation, even when the content did not change.
type Snapshot struct {
	Entries    []CacheEntry
	Generation uint64 // 0 = nothing fetched yet
	FetchedAt  time.Time
}

// EmptySnapshot returns the "no snapshot yet" placeholder.
func EmptySnapshot() *Snapshot {
	return &Snapshot{Entries: []CacheEntry{}}
}

// NewSnapshot wraps entries returned by the service, preserving their order.
func NewSnapshot(entries []CacheEntry, generation uint64, fetchedAt time.Time) *Snapshot {
	if entries == nil {
		entries = []CacheEntry{}
	}
	return &Snapshot{
		Entries:    entries,
		Generation: generation,
		FetchedAt:  fetchedAt,
	}
}

// Len returns the number of entries.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Entries)
}

// IsEmpty reports whether the snapshot holds no entries.
func (s *Snapshot) IsEmpty() bool {
	return s.Len() == 0
}

// Contains reports whether key is present in the snapshot.
func (s *Snapshot) Contains(key string) bool {
	if s == nil {
		return false
	}
	for _, e := range s.Entries {
		if e.Key == key {
			return true
		}
	}
	return false
}

// DuplicateKeys returns keys that appear more than once.
// The service guarantees uniqueness; a non-empty result is a contract violation.
func (s *Snapshot) DuplicateKeys() []string {
	if s == nil {
		return nil
	}
	seen := make(map[string]int, len(s.Entries))
	var dups []string
	for _, e := range s.Entries {
		seen[e.Key]++
		if seen[e.Key] == 2 {
			dups = append(dups, e.Key)
		}
	}
	return dups
}

// Fingerprint hashes the ordered content of the snapshot.
// Two snapshots with equal fingerprints hold the same entries in the same order.
func (s *Snapshot) Fingerprint() uint64 {
	d := xxhash.New()
	if s == nil {
		return d.Sum64()
	}
	var ts [8]byte
	for _, e := range s.Entries {
		_, _ = d.WriteString(e.Key)
		_, _ = d.Write([]byte{0})
		_, _ = d.WriteString(e.Value)
		_, _ = d.Write([]byte{0})
		binary.LittleEndian.PutUint64(ts[:], uint64(e.Expiration.UnixNano()))
		_, _ = d.Write(ts[:])
	}
	return d.Sum64()
}

// LookupResult holds the outcome of an on-demand single-key query.
// It lives outside the snapshot: a lookup never inserts into it.
type LookupResult struct {
	Key   string
	Value string
	Found bool
}
