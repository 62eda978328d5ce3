package timesheet

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

var ErrRowOutOfRange = errors.New("timesheet row out of range")
var ErrUnknownField = errors.New("unknown timesheet field")
var ErrFieldNotEditable = errors.New("timesheet field is not editable")
var ErrInvalidValue = errors.New("invalid timesheet field value")

type Field string

const (
	FieldDate            Field = "date"
	FieldDay             Field = "day"
	FieldShift           Field = "shift"
	FieldForenoonIn      Field = "forenoonIn"
	FieldForenoonOut     Field = "forenoonOut"
	FieldAfternoonIn     Field = "afternoonIn"
	FieldAfternoonOut    Field = "afternoonOut"
	FieldHoursCompleted  Field = "hoursCompleted"
	FieldOvertime        Field = "overtime"
	FieldTotalDailyHours Field = "totalDailyHours"
)

// EditableFields lists the row attributes a user may set, in column order.
var EditableFields = []Field{
	FieldDate,
	FieldDay,
	FieldShift,
	FieldForenoonIn,
	FieldForenoonOut,
	FieldAfternoonIn,
	FieldAfternoonOut,
	FieldHoursCompleted,
	FieldOvertime,
}

var DaysOfWeek = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

var Shifts = []string{"Day Shift", "Night Shift", "Evening Shift"}

// Row is one calendar day's attendance record. Values are kept as entered;
// an empty string means the field is unset.
type Row struct {
	Date            string
	Day             string
	Shift           string
	ForenoonIn      string
	ForenoonOut     string
	AfternoonIn     string
	AfternoonOut    string
	HoursCompleted  string
	Overtime        string
	TotalDailyHours string // derived from HoursCompleted and Overtime
}

// IsBlank reports whether no field of the row has been set.
func (r Row) IsBlank() bool {
	return r == Row{}
}

// Total returns the numeric value of TotalDailyHours, 0 when unset.
func (r Row) Total() float64 {
	return coerceHours(r.TotalDailyHours)
}

func (r *Row) field(f Field) *string {
	switch f {
	case FieldDate:
		return &r.Date
	case FieldDay:
		return &r.Day
	case FieldShift:
		return &r.Shift
	case FieldForenoonIn:
		return &r.ForenoonIn
	case FieldForenoonOut:
		return &r.ForenoonOut
	case FieldAfternoonIn:
		return &r.AfternoonIn
	case FieldAfternoonOut:
		return &r.AfternoonOut
	case FieldHoursCompleted:
		return &r.HoursCompleted
	case FieldOvertime:
		return &r.Overtime
	}
	return nil
}

// Timesheet is an ordered, append-only sequence of rows. A Timesheet value is
// a snapshot: SetField and AddRow return a new Timesheet and never modify the
// receiver or any previously returned snapshot.
type Timesheet struct {
	rows []Row
}

// New returns a timesheet holding exactly one blank row.
func New() Timesheet {
	return Timesheet{rows: []Row{{}}}
}

// FromRows builds a timesheet from existing rows. Derived totals are taken as given.
func FromRows(rows []Row) Timesheet {
	return Timesheet{rows: slices.Clone(rows)}
}

func (t Timesheet) Len() int {
	return len(t.rows)
}

// Rows returns a copy of the rows in display order.
func (t Timesheet) Rows() []Row {
	return slices.Clone(t.rows)
}

func (t Timesheet) Row(index int) (Row, error) {
	if index < 0 || index >= len(t.rows) {
		return Row{}, fmt.Errorf("%w: %d", ErrRowOutOfRange, index)
	}
	return t.rows[index], nil
}

// TotalHours sums the derived totals of all rows.
func (t Timesheet) TotalHours() float64 {
	var total float64
	for _, row := range t.rows {
		total += row.Total()
	}
	return total
}

// SetField replaces a single field on the row at index. Setting hoursCompleted
// or overtime recomputes the row's TotalDailyHours; any other field leaves it
// as it was.
func (t Timesheet) SetField(index int, field Field, value string) (Timesheet, error) {
	if index < 0 || index >= len(t.rows) {
		return t, fmt.Errorf("%w: %d", ErrRowOutOfRange, index)
	}
	if field == FieldTotalDailyHours {
		return t, fmt.Errorf("%w: %s", ErrFieldNotEditable, field)
	}
	if err := validateValue(field, value); err != nil {
		return t, err
	}

	rows := slices.Clone(t.rows)
	row := rows[index]
	target := row.field(field)
	if target == nil {
		return t, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	*target = value
	if field == FieldHoursCompleted || field == FieldOvertime {
		row.TotalDailyHours = TotalDailyHours(row.HoursCompleted, row.Overtime)
	}
	rows[index] = row

	return Timesheet{rows: rows}, nil
}

// AddRow appends one blank row.
func (t Timesheet) AddRow() Timesheet {
	rows := make([]Row, len(t.rows), len(t.rows)+1)
	copy(rows, t.rows)
	rows = append(rows, Row{})
	return Timesheet{rows: rows}
}

// TotalDailyHours sums both hour values and formats the result with two
// decimals. Empty or non-numeric values count as 0.
func TotalDailyHours(hoursCompleted string, overtime string) string {
	total := coerceHours(hoursCompleted) + coerceHours(overtime)
	return strconv.FormatFloat(total, 'f', 2, 64)
}

func coerceHours(value string) float64 {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0
	}
	return parsed
}

func validateValue(field Field, value string) error {
	if value == "" {
		return nil
	}
	switch field {
	case FieldDay:
		if !slices.Contains(DaysOfWeek, value) {
			return fmt.Errorf("%w: %q is not a day of the week", ErrInvalidValue, value)
		}
	case FieldShift:
		if !slices.Contains(Shifts, value) {
			return fmt.Errorf("%w: %q is not a shift", ErrInvalidValue, value)
		}
	}
	return nil
}

// ParseField maps a field name to a Field.
func ParseField(name string) (Field, error) {
	field := Field(name)
	if field == FieldTotalDailyHours {
		return field, fmt.Errorf("%w: %s", ErrFieldNotEditable, name)
	}
	if !slices.Contains(EditableFields, field) {
		return "", fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	return field, nil
}
