package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, s Session) error {
	profile, err := encodeProfile(s.User)
	if err != nil {
		return err
	}
	query := `INSERT INTO session (id, token, user_profile, created_at, expires_at) VALUES ($1, $2, $3, $4, $5)`
	_, err = r.db.Exec(ctx, query, s.Id, s.Token, profile, s.CreatedAt.UTC(), s.ExpiresAt.UTC())
	if err != nil {
		log.Errorf("failed to create session: %v", err)
		return fmt.Errorf("could not create session: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (Session, error) {
	query := `SELECT id, token, user_profile, created_at, expires_at FROM session WHERE id = $1`
	var s Session
	var profile string
	err := r.db.QueryRow(ctx, query, id).Scan(&s.Id, &s.Token, &profile, &s.CreatedAt, &s.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		log.Debugf("session %s not found", id)
		return Session{}, ErrSessionNotFound
	} else if err != nil {
		log.Errorf("failed to get session: %v", err)
		return Session{}, err
	}
	s.User, err = decodeProfile(profile)
	if err != nil {
		return Session{}, err
	}
	return s, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM session WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		log.Debugf("no rows affected of deleting session %s", id)
		return ErrSessionNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM session WHERE expires_at <= $1`, now.UTC())
	if err != nil {
		return 0, err
	}
	return int(result.RowsAffected()), nil
}
