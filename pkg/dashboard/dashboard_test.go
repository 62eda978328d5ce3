package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/artihcus/portal/internal/event_bus"
	"github.com/artihcus/portal/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var widgets = Widgets{AttendancePercent: 96.5, PendingLeaves: 2, EmployeeCount: 128}

func withSession(profile session.Profile) context.Context {
	return session.WithSession(context.Background(), session.Session{Id: "session-1", User: profile})
}

func TestGreeting(t *testing.T) {
	assert.Equal(t, "Welcome back, Asha", Greeting("Asha"))
	assert.Equal(t, "Welcome back", Greeting(""))
}

func TestServiceImpl_Summary(t *testing.T) {
	t.Run("uses the profile of the session", func(t *testing.T) {
		service := NewService(widgets, NewActivityFeed(0))

		summary, err := service.Summary(withSession(session.Profile{Name: "Asha", UserId: "EMP-001", Role: "MANAGER"}))

		require.NoError(t, err)
		assert.Equal(t, "Welcome back, Asha", summary.Greeting)
		assert.Equal(t, User{Name: "Asha", Role: "MANAGER"}, summary.User)
		assert.Equal(t, widgets, summary.Widgets)
		assert.Empty(t, summary.Activity)
	})

	t.Run("falls back to defaults for a bare profile", func(t *testing.T) {
		service := NewService(widgets, NewActivityFeed(0))

		summary, err := service.Summary(withSession(session.Profile{}))

		require.NoError(t, err)
		assert.Equal(t, "Welcome back", summary.Greeting)
		assert.Equal(t, User{Name: "User", Role: "EMPLOYEE"}, summary.User)
	})

	t.Run("requires a session", func(t *testing.T) {
		service := NewService(widgets, NewActivityFeed(0))

		_, err := service.Summary(context.Background())

		assert.ErrorIs(t, err, session.ErrNoSession)
	})
}

func TestActivityFeed(t *testing.T) {
	t.Run("keeps the newest entries first up to the size", func(t *testing.T) {
		feed := NewActivityFeed(3)
		start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
		for i := 0; i < 5; i++ {
			feed.Record("EMP-001", Activity{Time: start.Add(time.Duration(i) * time.Minute), Message: fmt.Sprintf("entry %d", i)})
		}

		entries := feed.List("EMP-001")

		require.Len(t, entries, 3)
		assert.Equal(t, "entry 4", entries[0].Message)
		assert.Equal(t, "entry 2", entries[2].Message)
		assert.Empty(t, feed.List("EMP-002"))
	})

	t.Run("records portal events", func(t *testing.T) {
		// given
		bus := event_bus.NewEventBus()
		feed := NewActivityFeed(0)
		feed.Subscribe(bus)
		submittedAt := time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC)

		// when
		bus.Notify(context.Background(), event_bus.SessionStarted, event_bus.SessionStartedEvent{SessionId: "s", Owner: "EMP-001", Signup: true})
		bus.Notify(context.Background(), event_bus.SessionStarted, event_bus.SessionStartedEvent{SessionId: "s", Owner: "EMP-001"})
		bus.Notify(context.Background(), event_bus.TimesheetSubmitted, event_bus.TimesheetSubmittedEvent{Owner: "EMP-001", Month: "March", TotalHours: 15.5, SubmittedAt: submittedAt})
		bus.Notify(context.Background(), event_bus.TimesheetExported, event_bus.TimesheetExportedEvent{Owner: "EMP-001", Month: "March", Format: "pdf"})
		bus.Notify(context.Background(), event_bus.TimesheetExported, event_bus.TimesheetExportedEvent{Owner: "EMP-002", Format: "csv"})

		// then
		entries := feed.List("EMP-001")
		messages := make([]string, 0, len(entries))
		for _, e := range entries {
			messages = append(messages, e.Message)
		}
		assert.Equal(t, []string{
			"Exported March timesheet as PDF",
			"Submitted March timesheet (15.50 hours)",
			"Signed in",
			"Account created",
		}, messages)
		assert.Equal(t, submittedAt, entries[1].Time)
		assert.Equal(t, "Exported the timesheet as CSV", feed.List("EMP-002")[0].Message)
	})
}

func TestHandler_Summary(t *testing.T) {
	t.Run("returns the dashboard", func(t *testing.T) {
		feed := NewActivityFeed(0)
		feed.Record("EMP-001", Activity{Time: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), Message: "Signed in"})
		handler := NewHandler(NewService(widgets, feed))
		req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil).
			WithContext(withSession(session.Profile{Name: "Asha", UserId: "EMP-001"}))
		rr := httptest.NewRecorder()

		handler.Summary(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var body SummaryDTO
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
		assert.Equal(t, "Welcome back, Asha", body.Greeting)
		assert.Equal(t, UserDTO{Name: "Asha", Role: "EMPLOYEE"}, body.User)
		assert.Equal(t, WidgetsDTO{AttendancePercent: 96.5, PendingLeaves: 2, EmployeeCount: 128}, body.Widgets)
		require.Len(t, body.Activity, 1)
		assert.Equal(t, "Signed in", body.Activity[0].Message)
	})

	t.Run("responds 401 without a session", func(t *testing.T) {
		handler := NewHandler(NewService(widgets, NewActivityFeed(0)))
		rr := httptest.NewRecorder()

		handler.Summary(rr, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
