package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/artihcus/portal/internal/utils"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const DefaultTTL = 12 * time.Hour

type Service interface {
	// Start opens a session for the token and profile returned by the auth service.
	Start(ctx context.Context, token string, profile Profile) (Session, error)
	// Lookup returns the live session with the given id. Unknown, expired and
	// undecodable sessions all yield ErrNoSession.
	Lookup(ctx context.Context, id string) (Session, error)
	End(ctx context.Context, id string) error
	// Sweep removes expired sessions from storage.
	Sweep(ctx context.Context) (int, error)
}

type ServiceImpl struct {
	repo  Repository
	clock utils.Clock
	ttl   time.Duration
}

func NewService(repo Repository, clock utils.Clock, ttl time.Duration) *ServiceImpl {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ServiceImpl{repo: repo, clock: clock, ttl: ttl}
}

func (s *ServiceImpl) Start(ctx context.Context, token string, profile Profile) (Session, error) {
	now := s.clock.Now().UTC().Truncate(time.Second)
	created := Session{
		Id:        uuid.NewString(),
		Token:     token,
		User:      profile,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.repo.Create(ctx, created); err != nil {
		return Session{}, fmt.Errorf("failed to start session: %w", err)
	}
	log.Debugf("started session %s for %s", created.Id, created.Owner())
	return created, nil
}

func (s *ServiceImpl) Lookup(ctx context.Context, id string) (Session, error) {
	if id == "" {
		return Session{}, ErrNoSession
	}
	found, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return Session{}, ErrNoSession
		}
		if errors.Is(err, ErrMalformedSession) {
			log.Warnf("discarding session %s: %v", id, err)
			s.discard(ctx, id)
			return Session{}, ErrNoSession
		}
		return Session{}, err
	}
	if found.Expired(s.clock.Now()) {
		log.Debugf("session %s expired at %s", id, found.ExpiresAt)
		s.discard(ctx, id)
		return Session{}, ErrNoSession
	}
	return found, nil
}

func (s *ServiceImpl) End(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if err != nil && !errors.Is(err, ErrSessionNotFound) {
		return fmt.Errorf("failed to end session: %w", err)
	}
	return nil
}

func (s *ServiceImpl) Sweep(ctx context.Context) (int, error) {
	removed, err := s.repo.DeleteExpired(ctx, s.clock.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to remove expired sessions: %w", err)
	}
	if removed > 0 {
		log.Infof("removed %d expired sessions", removed)
	}
	return removed, nil
}

func (s *ServiceImpl) discard(ctx context.Context, id string) {
	if err := s.repo.Delete(ctx, id); err != nil && !errors.Is(err, ErrSessionNotFound) {
		log.Errorf("failed to delete session %s: %v", id, err)
	}
}
