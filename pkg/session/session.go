package session

import "time"

// Profile is the user object returned by the auth service. Every attribute is optional.
type Profile struct {
	Name       string `json:"name,omitempty"`
	UserId     string `json:"userId,omitempty"`
	Email      string `json:"email,omitempty"`
	Role       string `json:"role,omitempty"`
	Department string `json:"department,omitempty"`
}

// Session is the authenticated identity of one browser: the opaque token issued
// by the auth service and the user profile that came with it.
type Session struct {
	Id        string
	Token     string
	User      Profile
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Owner identifies the person behind the session for per-user bookkeeping.
// It is the profile's userId, then its email, then the session id.
func (s Session) Owner() string {
	if s.User.UserId != "" {
		return s.User.UserId
	}
	if s.User.Email != "" {
		return s.User.Email
	}
	return s.Id
}
