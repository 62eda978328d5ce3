package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")
var ErrMalformedSession = errors.New("malformed session data")

type Repository interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
	// DeleteExpired removes every session expiring at or before now and returns how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

func encodeProfile(p Profile) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("could not encode user profile: %w", err)
	}
	return string(data), nil
}

func decodeProfile(raw string) (Profile, error) {
	var p Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return Profile{}, fmt.Errorf("%w: %v", ErrMalformedSession, err)
	}
	return p, nil
}
