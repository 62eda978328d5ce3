package dashboard

import "time"

const (
	DefaultName = "User"
	DefaultRole = "EMPLOYEE"
)

// Widgets are the figures on the dashboard cards.
type Widgets struct {
	AttendancePercent float64
	PendingLeaves     int
	EmployeeCount     int
}

type Activity struct {
	Time    time.Time
	Message string
}

type User struct {
	Name string
	Role string
}

type Summary struct {
	Greeting string
	User     User
	Widgets  Widgets
	Activity []Activity
}

// Greeting returns the dashboard title for a user name, which may be empty.
func Greeting(name string) string {
	if name == "" {
		return "Welcome back"
	}
	return "Welcome back, " + name
}
