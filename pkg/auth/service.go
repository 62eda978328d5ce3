package auth

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/artihcus/portal/internal/event_bus"
	"github.com/artihcus/portal/pkg/session"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	Login(ctx context.Context, req LoginRequest) (session.Session, error)
	Signup(ctx context.Context, req SignupRequest) (session.Session, error)
	// Logout ends the session attached to ctx.
	Logout(ctx context.Context) error
}

type ServiceImpl struct {
	client   Client
	sessions session.Service
	eventBus *event_bus.EventBus
	pending  *inflight
}

func NewService(client Client, sessions session.Service, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{
		client:   client,
		sessions: sessions,
		eventBus: eventBus,
		pending:  newInflight(),
	}
}

func (s *ServiceImpl) Login(ctx context.Context, req LoginRequest) (session.Session, error) {
	if req.Identifier == "" || req.Password == "" {
		return session.Session{}, &ValidationError{Message: MsgLoginFieldsRequired}
	}

	release, ok := s.pending.acquire("login:" + req.Identifier)
	if !ok {
		return session.Session{}, ErrInProgress
	}
	defer release()

	result, err := s.client.Login(ctx, req.Identifier, req.Password)
	if err != nil {
		return session.Session{}, withDefaultMessage(err, MsgLoginFailed)
	}
	return s.open(ctx, result, false)
}

func (s *ServiceImpl) Signup(ctx context.Context, req SignupRequest) (session.Session, error) {
	if req.Name == "" || req.UserId == "" || req.Password == "" {
		return session.Session{}, &ValidationError{Message: MsgSignupFieldsRequired}
	}
	if utf8.RuneCountInString(req.Password) < MinPasswordLength {
		return session.Session{}, &ValidationError{Message: MsgPasswordTooShort}
	}

	release, ok := s.pending.acquire("signup:" + req.UserId)
	if !ok {
		return session.Session{}, ErrInProgress
	}
	defer release()

	result, err := s.client.Signup(ctx, req.Name, req.UserId, req.Password)
	if err != nil {
		return session.Session{}, withDefaultMessage(err, MsgSignupFailed)
	}
	return s.open(ctx, result, true)
}

func (s *ServiceImpl) Logout(ctx context.Context) error {
	current, err := session.Current(ctx)
	if err != nil {
		return err
	}
	if err := s.sessions.End(ctx, current.Id); err != nil {
		return err
	}
	log.Debugf("session %s ended", current.Id)
	s.eventBus.Notify(ctx, event_bus.SessionEnded, event_bus.SessionEndedEvent{
		SessionId: current.Id,
		Owner:     current.Owner(),
	})
	return nil
}

func (s *ServiceImpl) open(ctx context.Context, result Result, signup bool) (session.Session, error) {
	started, err := s.sessions.Start(ctx, result.Token, result.User)
	if err != nil {
		return session.Session{}, fmt.Errorf("failed to open session: %w", err)
	}
	s.eventBus.Notify(ctx, event_bus.SessionStarted, event_bus.SessionStartedEvent{
		SessionId: started.Id,
		Owner:     started.Owner(),
		Name:      started.User.Name,
		Signup:    signup,
	})
	return started, nil
}

// withDefaultMessage fills in the user-visible message of a rejection that came without one.
func withDefaultMessage(err error, fallback string) error {
	var rejected *RejectedError
	if errors.As(err, &rejected) && rejected.Message == "" {
		return &RejectedError{StatusCode: rejected.StatusCode, Message: fallback}
	}
	return err
}
