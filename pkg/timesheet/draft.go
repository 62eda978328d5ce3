package timesheet

import (
	"errors"
	"slices"
	"time"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

var Months = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

const SubmittedMessage = "Timesheet submitted successfully!"

// Header is the form section above the rows.
type Header struct {
	Month      string
	EmployeeId string
	Name       string
	Manager    string
}

func validMonth(month string) bool {
	return slices.Contains(Months, month)
}

// Draft is the timesheet a session is currently editing.
type Draft struct {
	Header    Header
	Sheet     Timesheet
	UpdatedAt time.Time
}

type Receipt struct {
	Message     string
	SubmittedAt time.Time
	Rows        int
	TotalHours  float64
}

// Export is a rendered draft ready to be downloaded.
type Export struct {
	ContentType string
	Filename    string
	Content     []byte
}
