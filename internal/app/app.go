package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/artihcus/portal/internal/config"
	"github.com/artihcus/portal/internal/database"
	"github.com/artihcus/portal/internal/rest"
	"github.com/artihcus/portal/internal/utils"
	"github.com/artihcus/portal/pkg/auth"
	"github.com/artihcus/portal/pkg/session"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

// Application wires configuration, storage, router, and server lifecycle.
type Application struct {
	cfg    config.Application
	deps   *Dependencies
	router *mux.Router
	srv    *http.Server
	close  func()
}

// NewApplication opens the session storage, runs its migrations and builds the
// full HTTP application, ready to Run().
func NewApplication(cfg config.Application) (*Application, error) {
	repo, closeStorage, err := OpenSessionRepository(cfg.Database)
	if err != nil {
		return nil, err
	}

	authClient := auth.NewClient(cfg.Auth.BaseUrl, cfg.Auth.Timeout)
	deps := BuildDependencies(repo, authClient, utils.SystemClock{}, cfg)
	r := NewRouter(deps, cfg)

	srv := &http.Server{
		Handler:      r,
		Addr:         cfg.Server.Addr,
		WriteTimeout: cfg.Server.WriteTimeout,
		ReadTimeout:  cfg.Server.ReadTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &Application{cfg: cfg, deps: deps, router: r, srv: srv, close: closeStorage}, nil
}

// NewRouter builds the router with middleware, API routes and, when enabled, the frontend.
func NewRouter(deps *Dependencies, cfg config.Application) *mux.Router {
	r := mux.NewRouter()

	SetupMiddleware(r, deps)
	RegisterRoutes(r, deps)

	if cfg.Frontend.Enabled {
		frontend := rest.NewFrontendHandler(cfg.Frontend.Dir, "index.html")
		r.PathPrefix("/").Handler(frontend)
	}
	return r
}

// OpenSessionRepository migrates and opens the session storage of the configured driver.
func OpenSessionRepository(cfg config.Database) (session.Repository, func(), error) {
	if cfg.Driver != config.DriverPostgres && cfg.Driver != config.DriverSQLite {
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err := database.Migrate(cfg); err != nil {
		return nil, nil, err
	}

	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := database.OpenSQLite(cfg)
		if err != nil {
			return nil, nil, err
		}
		log.Infof("storing sessions in sqlite database %s", cfg.Path)
		return session.NewSQLiteRepository(db), func() {
			if err := db.Close(); err != nil {
				log.Warnf("failed to close sqlite database: %v", err)
			}
		}, nil
	default:
		pool, err := database.Open(cfg)
		if err != nil {
			return nil, nil, err
		}
		log.Infof("storing sessions in postgres database %s at %s:%d", cfg.Name, cfg.Host, cfg.Port)
		return session.NewPostgresRepository(pool), pool.Close, nil
	}
}

// Run starts the HTTP server and blocks until ctx is cancelled or the server fails.
func (a *Application) Run(ctx context.Context) error {
	defer a.close()

	serverErr := make(chan error, 1)
	go func() {
		log.Infof("Starting server on %s", a.srv.Addr)
		if err := a.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go a.sweep(sweepCtx)

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return a.srv.Shutdown(shutdownCtx)
}

// sweep periodically removes expired sessions and drafts idle for longer than the session TTL.
func (a *Application) sweep(ctx context.Context) {
	interval := a.cfg.Session.SweepInterval
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			Sweep(ctx, a.deps, a.cfg.Session.TTL)
		}
	}
}

// Sweep runs one cleanup pass over sessions and timesheet drafts.
func Sweep(ctx context.Context, deps *Dependencies, ttl time.Duration) {
	if _, err := deps.SessionService.Sweep(ctx); err != nil {
		log.Errorf("session sweep failed: %v", err)
	}
	if ttl <= 0 {
		ttl = session.DefaultTTL
	}
	deps.TimesheetService.DeleteIdle(deps.Clock.Now().Add(-ttl))
}
