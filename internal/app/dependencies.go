package app

import (
	"github.com/artihcus/portal/internal/config"
	"github.com/artihcus/portal/internal/event_bus"
	"github.com/artihcus/portal/internal/utils"
	"github.com/artihcus/portal/pkg/auth"
	"github.com/artihcus/portal/pkg/dashboard"
	"github.com/artihcus/portal/pkg/session"
	"github.com/artihcus/portal/pkg/timesheet"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Clock    utils.Clock
	EventBus *event_bus.EventBus

	SessionRepo    session.Repository
	SessionService *session.ServiceImpl
	CookieConfig   session.CookieConfig

	AuthClient  auth.Client
	AuthService *auth.ServiceImpl
	AuthHandler *auth.Handler

	DraftStore       *timesheet.MemoryStore
	TimesheetService *timesheet.ServiceImpl
	TimesheetHandler *timesheet.Handler

	ActivityFeed     *dashboard.ActivityFeed
	DashboardService *dashboard.ServiceImpl
	DashboardHandler *dashboard.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(sessionRepo session.Repository, authClient auth.Client, clock utils.Clock, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = clock
	deps.EventBus = event_bus.NewEventBus()

	deps.SessionRepo = sessionRepo
	deps.SessionService = session.NewService(deps.SessionRepo, deps.Clock, cfg.Session.TTL)
	deps.CookieConfig = session.CookieConfig{Name: cfg.Session.Cookie, Secure: cfg.Session.Secure}

	deps.AuthClient = authClient
	deps.AuthService = auth.NewService(deps.AuthClient, deps.SessionService, deps.EventBus)
	deps.AuthHandler = auth.NewHandler(deps.AuthService, deps.CookieConfig)

	deps.DraftStore = timesheet.NewMemoryStore()
	deps.TimesheetService = timesheet.NewService(deps.DraftStore, deps.EventBus, deps.Clock,
		timesheet.NewCsvRenderer(),
		timesheet.NewXlsxRenderer(),
		timesheet.NewPdfRenderer(),
	)
	deps.TimesheetHandler = timesheet.NewHandler(deps.TimesheetService)

	deps.ActivityFeed = dashboard.NewActivityFeed(dashboard.DefaultFeedSize)
	deps.ActivityFeed.Subscribe(deps.EventBus)
	deps.DashboardService = dashboard.NewService(dashboard.Widgets{
		AttendancePercent: cfg.Dashboard.AttendancePercent,
		PendingLeaves:     cfg.Dashboard.PendingLeaves,
		EmployeeCount:     cfg.Dashboard.EmployeeCount,
	}, deps.ActivityFeed)
	deps.DashboardHandler = dashboard.NewHandler(deps.DashboardService)

	return deps
}
