package timesheet

import (
	"sync"
	"time"
)

// DraftStore keeps one draft per session id.
type DraftStore interface {
	Get(sessionId string) (Draft, bool)
	// Update applies fn to the draft of sessionId while holding the store lock.
	// found is false when the session has no draft yet.
	Update(sessionId string, fn func(current Draft, found bool) (Draft, error)) (Draft, error)
	// Take removes the draft of sessionId and returns it.
	Take(sessionId string) (Draft, bool)
	Delete(sessionId string)
	// DeleteIdle removes drafts not updated since before and returns how many were removed.
	DeleteIdle(before time.Time) int
}

type MemoryStore struct {
	mu     sync.Mutex
	drafts map[string]Draft
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{drafts: make(map[string]Draft)}
}

func (s *MemoryStore) Get(sessionId string) (Draft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[sessionId]
	return d, ok
}

func (s *MemoryStore) Update(sessionId string, fn func(current Draft, found bool) (Draft, error)) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, found := s.drafts[sessionId]
	updated, err := fn(current, found)
	if err != nil {
		return current, err
	}
	s.drafts[sessionId] = updated
	return updated, nil
}

func (s *MemoryStore) Take(sessionId string) (Draft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[sessionId]
	delete(s.drafts, sessionId)
	return d, ok
}

func (s *MemoryStore) Delete(sessionId string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, sessionId)
}

func (s *MemoryStore) DeleteIdle(before time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, d := range s.drafts {
		if d.UpdatedAt.Before(before) {
			delete(s.drafts, id)
			removed++
		}
	}
	return removed
}

func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.drafts)
}
