package session

import (
	"context"
	"testing"
	"time"

	"github.com/artihcus/portal/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

var profile = Profile{
	Name:       "Asha Rao",
	UserId:     "EMP-001",
	Email:      "asha@example.com",
	Role:       "EMPLOYEE",
	Department: "Finance",
}

func setupService(t *testing.T) (*ServiceImpl, *RepositoryStub, *utils.MockClock) {
	repo := NewRepositoryStub()
	clock := utils.NewMockClock(time.Date(2025, 1, 13, 9, 0, 0, 0, time.UTC))
	t.Cleanup(repo.Reset)
	return NewService(repo, clock, time.Hour), repo, clock
}

func TestServiceImpl_Start(t *testing.T) {
	t.Run("creates a session with id and expiry", func(t *testing.T) {
		// given
		service, repo, clock := setupService(t)

		// when
		started, err := service.Start(ctx, "token-123", profile)

		// then
		require.NoError(t, err)
		_, parseErr := uuid.Parse(started.Id)
		assert.NoError(t, parseErr)
		assert.Equal(t, "token-123", started.Token)
		assert.Equal(t, profile, started.User)
		assert.Equal(t, clock.Now(), started.CreatedAt)
		assert.Equal(t, clock.Now().Add(time.Hour), started.ExpiresAt)
		assert.Equal(t, 1, repo.Count())
	})

	t.Run("uses the default ttl when none is configured", func(t *testing.T) {
		clock := utils.NewMockClock(time.Date(2025, 1, 13, 9, 0, 0, 0, time.UTC))
		service := NewService(NewRepositoryStub(), clock, 0)

		started, err := service.Start(ctx, "token", Profile{})

		require.NoError(t, err)
		assert.Equal(t, DefaultTTL, started.ExpiresAt.Sub(started.CreatedAt))
	})
}

func TestServiceImpl_Lookup(t *testing.T) {
	t.Run("returns a live session", func(t *testing.T) {
		service, _, _ := setupService(t)
		started, err := service.Start(ctx, "token", profile)
		require.NoError(t, err)

		found, err := service.Lookup(ctx, started.Id)

		require.NoError(t, err)
		assert.Equal(t, started, found)
	})

	t.Run("unknown and empty ids are no session", func(t *testing.T) {
		service, _, _ := setupService(t)

		_, err := service.Lookup(ctx, "")
		require.ErrorIs(t, err, ErrNoSession)
		_, err = service.Lookup(ctx, uuid.NewString())
		require.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("expired sessions are no session and get removed", func(t *testing.T) {
		service, repo, clock := setupService(t)
		started, err := service.Start(ctx, "token", profile)
		require.NoError(t, err)

		clock.Advance(time.Hour)
		_, err = service.Lookup(ctx, started.Id)

		require.ErrorIs(t, err, ErrNoSession)
		assert.Equal(t, 0, repo.Count())
	})

	t.Run("malformed stored data is no session", func(t *testing.T) {
		service, repo, _ := setupService(t)
		started, err := service.Start(ctx, "token", profile)
		require.NoError(t, err)
		repo.Corrupt(started.Id)

		_, err = service.Lookup(ctx, started.Id)

		require.ErrorIs(t, err, ErrNoSession)
		_, err = repo.Get(ctx, started.Id)
		require.ErrorIs(t, err, ErrSessionNotFound)
	})
}

func TestServiceImpl_End(t *testing.T) {
	service, repo, _ := setupService(t)
	started, err := service.Start(ctx, "token", profile)
	require.NoError(t, err)

	require.NoError(t, service.End(ctx, started.Id))
	assert.Equal(t, 0, repo.Count())
	// ending twice is harmless
	require.NoError(t, service.End(ctx, started.Id))
}

func TestServiceImpl_Sweep(t *testing.T) {
	service, repo, clock := setupService(t)
	_, err := service.Start(ctx, "old", profile)
	require.NoError(t, err)
	clock.Advance(30 * time.Minute)
	fresh, err := service.Start(ctx, "fresh", profile)
	require.NoError(t, err)

	clock.Advance(45 * time.Minute)
	removed, err := service.Sweep(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, repo.Count())
	_, err = service.Lookup(ctx, fresh.Id)
	assert.NoError(t, err)
}

func TestSession_Owner(t *testing.T) {
	assert.Equal(t, "EMP-001", Session{Id: "s", User: profile}.Owner())
	assert.Equal(t, "a@b.c", Session{Id: "s", User: Profile{Email: "a@b.c"}}.Owner())
	assert.Equal(t, "s", Session{Id: "s"}.Owner())
}

func TestContext(t *testing.T) {
	_, err := Current(ctx)
	require.ErrorIs(t, err, ErrNoSession)

	s := Session{Id: "abc", User: profile}
	found, err := Current(WithSession(ctx, s))
	require.NoError(t, err)
	assert.Equal(t, s, found)
}
