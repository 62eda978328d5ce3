package session

import (
	"os"
	"testing"
	"time"

	"github.com/artihcus/portal/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	code := m.Run()
	test_utils.TerminatePostgres()
	os.Exit(code)
}

func setupPostgresRepository(t *testing.T) *PostgresRepository {
	return NewPostgresRepository(test_utils.PostgresPool(t))
}

func TestPostgresRepository(t *testing.T) {
	t.Run("should store and load a session", func(t *testing.T) {
		// given
		repo := setupPostgresRepository(t)
		s := storedSession("pg-a", time.Date(2025, 1, 13, 10, 0, 0, 0, time.UTC))

		// when
		require.NoError(t, repo.Create(ctx, s))
		found, err := repo.Get(ctx, "pg-a")

		// then
		require.NoError(t, err)
		assert.Equal(t, s.Id, found.Id)
		assert.Equal(t, s.Token, found.Token)
		assert.Equal(t, s.User, found.User)
		assert.True(t, s.ExpiresAt.Equal(found.ExpiresAt))
	})

	t.Run("should report unknown sessions", func(t *testing.T) {
		repo := setupPostgresRepository(t)

		_, err := repo.Get(ctx, "missing")

		require.ErrorIs(t, err, ErrSessionNotFound)
		require.ErrorIs(t, repo.Delete(ctx, "missing"), ErrSessionNotFound)
	})

	t.Run("should detect malformed profiles", func(t *testing.T) {
		repo := setupPostgresRepository(t)
		_, err := repo.db.Exec(ctx, `INSERT INTO session (id, token, user_profile, created_at, expires_at) VALUES ('bad', 't', 'oops', now(), now())`)
		require.NoError(t, err)

		_, err = repo.Get(ctx, "bad")

		require.ErrorIs(t, err, ErrMalformedSession)
	})

	t.Run("should delete expired sessions only", func(t *testing.T) {
		repo := setupPostgresRepository(t)
		now := time.Date(2025, 1, 13, 12, 0, 0, 0, time.UTC)
		require.NoError(t, repo.Create(ctx, storedSession("expired", now.Add(-time.Minute))))
		require.NoError(t, repo.Create(ctx, storedSession("live", now.Add(time.Minute))))

		removed, err := repo.DeleteExpired(ctx, now)

		require.NoError(t, err)
		assert.Equal(t, 1, removed)
		_, err = repo.Get(ctx, "live")
		assert.NoError(t, err)
	})
}
