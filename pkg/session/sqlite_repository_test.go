package session

import (
	"testing"
	"time"

	"github.com/artihcus/portal/internal/test_utils"
	"github.com/artihcus/portal/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSQLiteRepository(t *testing.T) *SQLiteRepository {
	return NewSQLiteRepository(test_utils.SetupSQLiteDB(t))
}

func storedSession(id string, expiresAt time.Time) Session {
	return Session{
		Id:        id,
		Token:     "token-" + id,
		User:      profile,
		CreatedAt: expiresAt.Add(-time.Hour),
		ExpiresAt: expiresAt,
	}
}

func TestSQLiteRepository_CreateAndGet(t *testing.T) {
	// given
	repo := setupSQLiteRepository(t)
	s := storedSession("a", time.Date(2025, 1, 13, 10, 0, 0, 0, time.UTC))

	// when
	require.NoError(t, repo.Create(ctx, s))
	found, err := repo.Get(ctx, "a")

	// then
	require.NoError(t, err)
	assert.Equal(t, s, found)
}

func TestSQLiteRepository_Get(t *testing.T) {
	t.Run("unknown session", func(t *testing.T) {
		repo := setupSQLiteRepository(t)

		_, err := repo.Get(ctx, "missing")

		require.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("undecodable profile", func(t *testing.T) {
		repo := setupSQLiteRepository(t)
		_, err := repo.db.Exec(`INSERT INTO session (id, token, user_profile, created_at, expires_at) VALUES ('bad', 't', '{not json', 0, 0)`)
		require.NoError(t, err)

		_, err = repo.Get(ctx, "bad")

		require.ErrorIs(t, err, ErrMalformedSession)
	})
}

func TestSQLiteRepository_Delete(t *testing.T) {
	repo := setupSQLiteRepository(t)
	require.NoError(t, repo.Create(ctx, storedSession("a", time.Now())))

	require.NoError(t, repo.Delete(ctx, "a"))
	require.ErrorIs(t, repo.Delete(ctx, "a"), ErrSessionNotFound)
}

func TestSQLiteRepository_DeleteExpired(t *testing.T) {
	repo := setupSQLiteRepository(t)
	now := time.Date(2025, 1, 13, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, storedSession("expired", now.Add(-time.Minute))))
	require.NoError(t, repo.Create(ctx, storedSession("boundary", now)))
	require.NoError(t, repo.Create(ctx, storedSession("live", now.Add(time.Minute))))

	removed, err := repo.DeleteExpired(ctx, now)

	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	_, err = repo.Get(ctx, "live")
	assert.NoError(t, err)
}

func TestSQLiteRepository_ServiceTreatsMalformedAsNoSession(t *testing.T) {
	repo := setupSQLiteRepository(t)
	_, err := repo.db.Exec(`INSERT INTO session (id, token, user_profile, created_at, expires_at) VALUES ('bad', 't', '', 0, 4102444800)`)
	require.NoError(t, err)
	service := NewService(repo, utils.NewMockClock(time.Date(2025, 1, 13, 9, 0, 0, 0, time.UTC)), time.Hour)

	_, err = service.Lookup(ctx, "bad")

	require.ErrorIs(t, err, ErrNoSession)
	_, err = repo.Get(ctx, "bad")
	require.ErrorIs(t, err, ErrSessionNotFound)
}
