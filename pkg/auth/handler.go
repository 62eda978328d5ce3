package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/artihcus/portal/internal/rest"
	"github.com/artihcus/portal/pkg/session"
	log "github.com/sirupsen/logrus"
)

type LoginDTO struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type SignupDTO struct {
	Name     string `json:"name"`
	UserId   string `json:"userId"`
	Password string `json:"password"`
}

type SessionDTO struct {
	User      session.Profile `json:"user"`
	ExpiresAt time.Time       `json:"expiresAt"`
}

type Handler struct {
	service Service
	cookie  session.CookieConfig
}

func NewHandler(service Service, cookie session.CookieConfig) *Handler {
	return &Handler{
		service: service,
		cookie:  cookie,
	}
}

// Login godoc
// @Summary Log in
// @Description Authenticate against the auth service and open a portal session
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginDTO true "Credentials"
// @Success 200 {object} SessionDTO
// @Failure 400 {object} rest.ErrorResponse "Missing fields"
// @Failure 401 {object} rest.ErrorResponse "Rejected by the auth service"
// @Failure 409 {object} rest.ErrorResponse "Login already in progress"
// @Failure 502 {object} rest.ErrorResponse "Auth service unreachable"
// @Router /api/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	log.Debug("Logging in")

	var body LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}

	started, err := h.service.Login(r.Context(), LoginRequest{Identifier: body.Identifier, Password: body.Password})
	if err != nil {
		writeAuthError(w, err)
		return
	}
	log.Tracef("Logged in: %s", started.Owner())

	session.SetCookie(w, h.cookie, started)
	rest.WriteJSON(w, http.StatusOK, sessionToDTO(started))
}

// Signup godoc
// @Summary Sign up
// @Description Register with the auth service and open a portal session
// @Tags Auth
// @Accept json
// @Produce json
// @Param account body SignupDTO true "Account"
// @Success 201 {object} SessionDTO
// @Failure 400 {object} rest.ErrorResponse "Missing fields or short password"
// @Failure 409 {object} rest.ErrorResponse "Sign up already in progress"
// @Failure 502 {object} rest.ErrorResponse "Auth service unreachable"
// @Router /api/auth/signup [post]
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	log.Debug("Signing up")

	var body SignupDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}

	started, err := h.service.Signup(r.Context(), SignupRequest{Name: body.Name, UserId: body.UserId, Password: body.Password})
	if err != nil {
		writeAuthError(w, err)
		return
	}

	session.SetCookie(w, h.cookie, started)
	rest.WriteJSON(w, http.StatusCreated, sessionToDTO(started))
}

// CurrentSession godoc
// @Summary Get the current session
// @Tags Auth
// @Produce json
// @Success 200 {object} SessionDTO
// @Failure 401 {object} rest.ErrorResponse "No session"
// @Router /api/auth/session [get]
func (h *Handler) CurrentSession(w http.ResponseWriter, r *http.Request) {
	current, err := session.Current(r.Context())
	if err != nil {
		rest.WriteError(w, http.StatusUnauthorized, "Not logged in", "")
		return
	}
	rest.WriteJSON(w, http.StatusOK, sessionToDTO(current))
}

// Logout godoc
// @Summary Log out
// @Description End the current session. Succeeds also without a session.
// @Tags Auth
// @Success 204 "No Content"
// @Router /api/auth/session [delete]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	err := h.service.Logout(r.Context())
	if err != nil && !errors.Is(err, session.ErrNoSession) {
		log.Errorf("failed to log out: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "Logout failed", err.Error())
		return
	}
	session.ClearCookie(w, h.cookie)
	w.WriteHeader(http.StatusNoContent)
}

func writeAuthError(w http.ResponseWriter, err error) {
	var validation *ValidationError
	var rejected *RejectedError
	switch {
	case errors.As(err, &validation):
		rest.WriteError(w, http.StatusBadRequest, validation.Message, "")
	case errors.Is(err, ErrInProgress):
		rest.WriteError(w, http.StatusConflict, MsgInProgress, "")
	case errors.As(err, &rejected):
		status := rejected.StatusCode
		if status < 400 || status > 499 {
			status = http.StatusBadGateway
		}
		rest.WriteError(w, status, rejected.Message, "")
	case errors.Is(err, ErrUnreachable):
		rest.WriteError(w, http.StatusBadGateway, MsgUnreachable, "")
	default:
		log.Errorf("authentication failed: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, MsgUnreachable, "")
	}
}

func sessionToDTO(s session.Session) SessionDTO {
	return SessionDTO{
		User:      s.User,
		ExpiresAt: s.ExpiresAt,
	}
}
