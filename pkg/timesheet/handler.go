package timesheet

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/artihcus/portal/internal/rest"
	"github.com/artihcus/portal/pkg/session"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type RowDTO struct {
	Date            string `json:"date"`
	DisplayDate     string `json:"displayDate"`
	Day             string `json:"day"`
	Shift           string `json:"shift"`
	ForenoonIn      string `json:"forenoonIn"`
	ForenoonOut     string `json:"forenoonOut"`
	AfternoonIn     string `json:"afternoonIn"`
	AfternoonOut    string `json:"afternoonOut"`
	HoursCompleted  string `json:"hoursCompleted"`
	Overtime        string `json:"overtime"`
	TotalDailyHours string `json:"totalDailyHours"`
}

type HeaderDTO struct {
	Month      string `json:"month"`
	EmployeeId string `json:"employeeId"`
	Name       string `json:"name"`
	Manager    string `json:"manager"`
}

type DraftDTO struct {
	Header     HeaderDTO `json:"header"`
	Rows       []RowDTO  `json:"rows"`
	TotalHours float64   `json:"totalHours"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// FieldUpdateDTO sets one field of a row. Value may be a JSON string, number or null.
type FieldUpdateDTO struct {
	Field string          `json:"field"`
	Value json.RawMessage `json:"value"`
}

type ReceiptDTO struct {
	Message     string    `json:"message"`
	SubmittedAt time.Time `json:"submittedAt"`
	Rows        int       `json:"rows"`
	TotalHours  float64   `json:"totalHours"`
}

type OptionsDTO struct {
	Days   []string `json:"days"`
	Shifts []string `json:"shifts"`
	Months []string `json:"months"`
	Fields []Field  `json:"fields"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Options godoc
// @Summary Get the timesheet form options
// @Description Days, shifts, months and editable fields offered by the timesheet form
// @Tags Timesheet
// @Produce json
// @Success 200 {object} OptionsDTO
// @Router /api/timesheet/options [get]
func (h *Handler) Options(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, OptionsDTO{
		Days:   DaysOfWeek,
		Shifts: Shifts,
		Months: Months,
		Fields: EditableFields,
	})
}

// Open godoc
// @Summary Start a new timesheet
// @Description Replace the current draft with one blank row
// @Tags Timesheet
// @Produce json
// @Success 201 {object} DraftDTO
// @Failure 401 {object} rest.ErrorResponse
// @Router /api/timesheet [post]
func (h *Handler) Open(w http.ResponseWriter, r *http.Request) {
	draft, err := h.service.Open(r.Context())
	if err != nil {
		writeTimesheetError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, draftToDTO(draft))
}

// Current godoc
// @Summary Get the current timesheet
// @Tags Timesheet
// @Produce json
// @Success 200 {object} DraftDTO
// @Failure 401 {object} rest.ErrorResponse
// @Router /api/timesheet [get]
func (h *Handler) Current(w http.ResponseWriter, r *http.Request) {
	draft, err := h.service.Current(r.Context())
	if err != nil {
		writeTimesheetError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, draftToDTO(draft))
}

// UpdateHeader godoc
// @Summary Update the timesheet header
// @Tags Timesheet
// @Accept json
// @Produce json
// @Param header body HeaderDTO true "Header"
// @Success 200 {object} DraftDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid month"
// @Failure 401 {object} rest.ErrorResponse
// @Router /api/timesheet/header [put]
func (h *Handler) UpdateHeader(w http.ResponseWriter, r *http.Request) {
	var body HeaderDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}
	draft, err := h.service.UpdateHeader(r.Context(), Header{
		Month:      body.Month,
		EmployeeId: body.EmployeeId,
		Name:       body.Name,
		Manager:    body.Manager,
	})
	if err != nil {
		writeTimesheetError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, draftToDTO(draft))
}

// AddRow godoc
// @Summary Append a blank row
// @Tags Timesheet
// @Produce json
// @Success 200 {object} DraftDTO
// @Failure 401 {object} rest.ErrorResponse
// @Router /api/timesheet/row [post]
func (h *Handler) AddRow(w http.ResponseWriter, r *http.Request) {
	draft, err := h.service.AddRow(r.Context())
	if err != nil {
		writeTimesheetError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, draftToDTO(draft))
}

// SetField godoc
// @Summary Set one field of a row
// @Description Setting hoursCompleted or overtime recomputes totalDailyHours
// @Tags Timesheet
// @Accept json
// @Produce json
// @Param index path int true "Row index"
// @Param update body FieldUpdateDTO true "Field and value"
// @Success 200 {object} DraftDTO
// @Failure 400 {object} rest.ErrorResponse "Unknown field or invalid value"
// @Failure 401 {object} rest.ErrorResponse
// @Failure 404 {object} rest.ErrorResponse "Row not found"
// @Router /api/timesheet/row/{index} [patch]
func (h *Handler) SetField(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid row index", "index must be an integer")
		return
	}

	var body FieldUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}
	field, err := ParseField(body.Field)
	if err != nil {
		writeTimesheetError(w, err)
		return
	}
	value, err := body.text()
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid value", err.Error())
		return
	}

	draft, err := h.service.SetField(r.Context(), index, field, value)
	if err != nil {
		writeTimesheetError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, draftToDTO(draft))
}

// Submit godoc
// @Summary Submit the timesheet
// @Tags Timesheet
// @Produce json
// @Success 200 {object} ReceiptDTO
// @Failure 401 {object} rest.ErrorResponse
// @Router /api/timesheet/submit [post]
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	receipt, err := h.service.Submit(r.Context())
	if err != nil {
		writeTimesheetError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ReceiptDTO{
		Message:     receipt.Message,
		SubmittedAt: receipt.SubmittedAt,
		Rows:        receipt.Rows,
		TotalHours:  receipt.TotalHours,
	})
}

// Export godoc
// @Summary Download the timesheet
// @Tags Timesheet
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv, xlsx or pdf" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} rest.ErrorResponse "Unsupported format"
// @Failure 401 {object} rest.ErrorResponse
// @Router /api/timesheet/export [get]
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	export, err := h.service.Export(r.Context(), format)
	if err != nil {
		writeTimesheetError(w, err)
		return
	}
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(export.Content); err != nil {
		log.Errorf("failed to write export: %v", err)
	}
}

// text returns the value as entered: strings as they are, numbers in their
// literal form and null as the empty string.
func (u FieldUpdateDTO) text() (string, error) {
	raw := bytes.TrimSpace(u.Value)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), nil
	}
	return "", errors.New("value must be a string or a number")
}

func writeTimesheetError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrNoSession):
		rest.WriteError(w, http.StatusUnauthorized, "Not logged in", "")
	case errors.Is(err, ErrRowOutOfRange):
		rest.WriteError(w, http.StatusNotFound, "Row not found", err.Error())
	case errors.Is(err, ErrUnknownField),
		errors.Is(err, ErrFieldNotEditable),
		errors.Is(err, ErrInvalidValue),
		errors.Is(err, ErrUnsupportedFormat):
		rest.WriteError(w, http.StatusBadRequest, "Invalid timesheet update", err.Error())
	default:
		log.Errorf("timesheet request failed: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "Timesheet request failed", err.Error())
	}
}

func draftToDTO(d Draft) DraftDTO {
	rows := d.Sheet.Rows()
	dtos := make([]RowDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, rowToDTO(row))
	}
	return DraftDTO{
		Header: HeaderDTO{
			Month:      d.Header.Month,
			EmployeeId: d.Header.EmployeeId,
			Name:       d.Header.Name,
			Manager:    d.Header.Manager,
		},
		Rows:       dtos,
		TotalHours: d.Sheet.TotalHours(),
		UpdatedAt:  d.UpdatedAt,
	}
}

func rowToDTO(r Row) RowDTO {
	return RowDTO{
		Date:            r.Date,
		DisplayDate:     FormatDisplayDate(r.Date),
		Day:             r.Day,
		Shift:           r.Shift,
		ForenoonIn:      r.ForenoonIn,
		ForenoonOut:     r.ForenoonOut,
		AfternoonIn:     r.AfternoonIn,
		AfternoonOut:    r.AfternoonOut,
		HoursCompleted:  r.HoursCompleted,
		Overtime:        r.Overtime,
		TotalDailyHours: r.TotalDailyHours,
	}
}
