package auth

import (
	"errors"
	"fmt"

	"github.com/artihcus/portal/pkg/session"
)

// Messages shown to the user, matching the portal's login and sign-up screens.
const (
	MsgLoginFieldsRequired  = "Please fill in all fields"
	MsgSignupFieldsRequired = "Please fill in all required fields"
	MsgPasswordTooShort     = "Password must be at least 6 characters long"
	MsgLoginFailed          = "Login failed. Check your credentials."
	MsgSignupFailed         = "Sign up failed. Please try again."
	MsgUnreachable          = "Unable to reach the server. Please try again."
	MsgInProgress           = "A request for this account is already in progress"
)

const MinPasswordLength = 6

var ErrUnreachable = errors.New("auth service unreachable")
var ErrInProgress = errors.New("request already in progress")

type LoginRequest struct {
	Identifier string
	Password   string
}

type SignupRequest struct {
	Name     string
	UserId   string
	Password string
}

// Result is the success payload of the auth service.
type Result struct {
	Token string          `json:"token"`
	User  session.Profile `json:"user"`
}

// RejectedError is returned when the auth service answers with a non-success status.
type RejectedError struct {
	StatusCode int
	Message    string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("auth service rejected request with status %d: %s", e.StatusCode, e.Message)
}

// ValidationError reports a form that was not sent to the auth service.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
