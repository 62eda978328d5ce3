package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

// SQLiteRepository stores sessions in an embedded SQLite database. Timestamps
// are kept as unix seconds.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, s Session) error {
	profile, err := encodeProfile(s.User)
	if err != nil {
		return err
	}
	query := `INSERT INTO session (id, token, user_profile, created_at, expires_at) VALUES (?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query, s.Id, s.Token, profile, s.CreatedAt.Unix(), s.ExpiresAt.Unix())
	if err != nil {
		log.Errorf("failed to create session: %v", err)
		return fmt.Errorf("could not create session: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (Session, error) {
	query := `SELECT id, token, user_profile, created_at, expires_at FROM session WHERE id = ?`
	var s Session
	var profile string
	var createdAt, expiresAt int64
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.Id, &s.Token, &profile, &createdAt, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debugf("session %s not found", id)
		return Session{}, ErrSessionNotFound
	} else if err != nil {
		log.Errorf("failed to get session: %v", err)
		return Session{}, err
	}
	s.CreatedAt = time.Unix(createdAt, 0).UTC()
	s.ExpiresAt = time.Unix(expiresAt, 0).UTC()
	s.User, err = decodeProfile(profile)
	if err != nil {
		return Session{}, err
	}
	return s, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM session WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		log.Debugf("no rows affected of deleting session %s", id)
		return ErrSessionNotFound
	}
	return nil
}

func (r *SQLiteRepository) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM session WHERE expires_at <= ?`, now.Unix())
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}
