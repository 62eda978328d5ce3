package event_bus

import "time"

const (
	SessionStarted     EventType = "session.started"
	SessionEnded       EventType = "session.ended"
	TimesheetSubmitted EventType = "timesheet.submitted"
	TimesheetExported  EventType = "timesheet.exported"
)

type SessionStartedEvent struct {
	SessionId string
	Owner     string
	Name      string
	// Signup is true when the session was opened by registering a new account.
	Signup bool
}

type SessionEndedEvent struct {
	SessionId string
	Owner     string
}

type TimesheetSubmittedEvent struct {
	SessionId   string
	Owner       string
	Month       string
	Rows        int
	TotalHours  float64
	SubmittedAt time.Time
}

type TimesheetExportedEvent struct {
	SessionId string
	Owner     string
	Month     string
	Format    string
}
