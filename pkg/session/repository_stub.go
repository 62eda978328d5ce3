package session

import (
	"context"
	"sync"
	"time"
)

type RepositoryStub struct {
	mu       sync.RWMutex
	sessions map[string]Session
	// session ids whose stored profile no longer decodes
	malformed map[string]bool
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		sessions:  make(map[string]Session),
		malformed: make(map[string]bool),
	}
}

func (r *RepositoryStub) Create(_ context.Context, s Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.Id] = s
	delete(r.malformed, s.Id)
	return nil
}

func (r *RepositoryStub) Get(_ context.Context, id string) (Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.malformed[id] {
		return Session{}, ErrMalformedSession
	}
	s, ok := r.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return s, nil
}

func (r *RepositoryStub) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, found := r.sessions[id]
	if !found && !r.malformed[id] {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	delete(r.malformed, id)
	return nil
}

func (r *RepositoryStub) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for id, s := range r.sessions {
		if s.Expired(now) {
			delete(r.sessions, id)
			count++
		}
	}
	return count, nil
}

// Corrupt marks a stored session as undecodable.
func (r *RepositoryStub) Corrupt(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.malformed[id] = true
}

func (r *RepositoryStub) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *RepositoryStub) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions = make(map[string]Session)
	r.malformed = make(map[string]bool)
}
