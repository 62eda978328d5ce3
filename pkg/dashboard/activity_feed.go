package dashboard

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/artihcus/portal/internal/event_bus"
)

const DefaultFeedSize = 10

// ActivityFeed keeps the most recent activity of each user, newest first.
type ActivityFeed struct {
	mu      sync.RWMutex
	size    int
	entries map[string][]Activity
}

func NewActivityFeed(size int) *ActivityFeed {
	if size <= 0 {
		size = DefaultFeedSize
	}
	return &ActivityFeed{
		size:    size,
		entries: make(map[string][]Activity),
	}
}

func (f *ActivityFeed) Record(owner string, activity Activity) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entries := append([]Activity{activity}, f.entries[owner]...)
	if len(entries) > f.size {
		entries = entries[:f.size]
	}
	f.entries[owner] = entries
}

func (f *ActivityFeed) List(owner string) []Activity {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.entries[owner])
}

// Subscribe records the portal events that appear on the dashboard.
func (f *ActivityFeed) Subscribe(eventBus *event_bus.EventBus) {
	event_bus.SubscribeTyped(eventBus, event_bus.SessionStarted, func(e event_bus.EventT[event_bus.SessionStartedEvent]) error {
		message := "Signed in"
		if e.Data.Signup {
			message = "Account created"
		}
		f.Record(e.Data.Owner, Activity{Time: e.Timestamp, Message: message})
		return nil
	})
	event_bus.SubscribeTyped(eventBus, event_bus.TimesheetSubmitted, func(e event_bus.EventT[event_bus.TimesheetSubmittedEvent]) error {
		f.Record(e.Data.Owner, Activity{
			Time:    e.Data.SubmittedAt,
			Message: fmt.Sprintf("Submitted %s timesheet (%.2f hours)", monthLabel(e.Data.Month), e.Data.TotalHours),
		})
		return nil
	})
	event_bus.SubscribeTyped(eventBus, event_bus.TimesheetExported, func(e event_bus.EventT[event_bus.TimesheetExportedEvent]) error {
		f.Record(e.Data.Owner, Activity{
			Time:    e.Timestamp,
			Message: fmt.Sprintf("Exported %s timesheet as %s", monthLabel(e.Data.Month), strings.ToUpper(e.Data.Format)),
		})
		return nil
	})
}

func monthLabel(month string) string {
	if month == "" {
		return "the"
	}
	return month
}
