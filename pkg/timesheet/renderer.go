package timesheet

import "strconv"

type Renderer interface {
	Format() string
	ContentType() string
	Render(draft Draft) ([]byte, error)
}

var columnTitles = []string{
	"Date",
	"Day",
	"Shift",
	"Forenoon In",
	"Forenoon Out",
	"Afternoon In",
	"Afternoon Out",
	"Hours Completed",
	"Overtime",
	"Total Daily Hours",
}

func headerLines(h Header) [][2]string {
	return [][2]string{
		{"Month", h.Month},
		{"Employee ID", h.EmployeeId},
		{"Name", h.Name},
		{"Manager", h.Manager},
	}
}

// cells lays out a row in column order with the date in display form.
func cells(r Row) []string {
	return []string{
		FormatDisplayDate(r.Date),
		r.Day,
		r.Shift,
		r.ForenoonIn,
		r.ForenoonOut,
		r.AfternoonIn,
		r.AfternoonOut,
		r.HoursCompleted,
		r.Overtime,
		r.TotalDailyHours,
	}
}

func formatHours(hours float64) string {
	return strconv.FormatFloat(hours, 'f', 2, 64)
}
