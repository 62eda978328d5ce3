package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/artihcus/portal/pkg/session"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies) {

	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, req)
			log.WithFields(log.Fields{
				"method":   req.Method,
				"path":     req.URL.Path,
				"status":   rec.status,
				"duration": time.Since(start),
			}).Debug("request handled")
		})
	})

	// Attach the session named by the cookie or X-Session-Id header to the context.
	// Requests without a live session pass through; handlers decide whether one is required.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			id := session.IdFromRequest(req, deps.CookieConfig)
			if id == "" {
				next.ServeHTTP(w, req)
				return
			}

			ctx := req.Context()
			current, err := deps.SessionService.Lookup(ctx, id)
			if err != nil {
				if !errors.Is(err, session.ErrNoSession) {
					log.Errorf("failed to look up session: %v", err)
				}
				log.Debugf("no live session for id %s", id)
				next.ServeHTTP(w, req)
				return
			}
			next.ServeHTTP(w, req.WithContext(session.WithSession(ctx, current)))
		})
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
