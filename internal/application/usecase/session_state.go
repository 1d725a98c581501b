package usecase

import (
	"sync"

	"github.com/bnema/lruconsole/internal/domain/entity"
)

// SessionState holds the per-session state that lives outside the snapshot:
// the last lookup result, the pending draft and the pagination position.
type SessionState struct {
	mu         sync.RWMutex
	lookup     *entity.LookupResult
	draft      entity.EntryDraft
	pagination entity.PaginationState
}

// NewSessionState starts on page 1 with the given page size.
func NewSessionState(pageSize int) *SessionState {
	return &SessionState{pagination: entity.NewPaginationState(pageSize)}
}

// Lookup returns the stored lookup result, if any.
func (s *SessionState) Lookup() (entity.LookupResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lookup == nil {
		return entity.LookupResult{}, false
	}
	return *s.lookup, true
}

func (s *SessionState) setLookup(r entity.LookupResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lookup = &r
}

func (s *SessionState) clearLookup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lookup = nil
}

// Draft returns the pending entry draft.
func (s *SessionState) Draft() entity.EntryDraft {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.draft
}

// SetDraft replaces the pending draft.
func (s *SessionState) SetDraft(d entity.EntryDraft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = d
}

func (s *SessionState) clearDraft() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = entity.EntryDraft{}
}

// Pagination returns the current pagination state.
func (s *SessionState) Pagination() entity.PaginationState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pagination
}

// GoToPage selects a page. The page is not clamped to the snapshot size.
func (s *SessionState) GoToPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pagination.GoTo(page)
}
