package dashboard

import (
	"errors"
	"net/http"
	"time"

	"github.com/artihcus/portal/internal/rest"
	"github.com/artihcus/portal/pkg/session"
	log "github.com/sirupsen/logrus"
)

type UserDTO struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type WidgetsDTO struct {
	AttendancePercent float64 `json:"attendancePercent"`
	PendingLeaves     int     `json:"pendingLeaves"`
	EmployeeCount     int     `json:"employeeCount"`
}

type ActivityDTO struct {
	Time    time.Time `json:"time"`
	Message string    `json:"message"`
}

type SummaryDTO struct {
	Greeting string        `json:"greeting"`
	User     UserDTO       `json:"user"`
	Widgets  WidgetsDTO    `json:"widgets"`
	Activity []ActivityDTO `json:"activity"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Summary godoc
// @Summary Get the dashboard
// @Description Greeting, user, widget figures and recent activity of the logged in user
// @Tags Dashboard
// @Produce json
// @Success 200 {object} SummaryDTO
// @Failure 401 {object} rest.ErrorResponse
// @Router /api/dashboard [get]
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			rest.WriteError(w, http.StatusUnauthorized, "Not logged in", "")
			return
		}
		log.Errorf("failed to build dashboard: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "Failed to load dashboard", err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, summaryToDTO(summary))
}

func summaryToDTO(s Summary) SummaryDTO {
	activity := make([]ActivityDTO, 0, len(s.Activity))
	for _, a := range s.Activity {
		activity = append(activity, ActivityDTO{Time: a.Time, Message: a.Message})
	}
	return SummaryDTO{
		Greeting: s.Greeting,
		User:     UserDTO{Name: s.User.Name, Role: s.User.Role},
		Widgets: WidgetsDTO{
			AttendancePercent: s.Widgets.AttendancePercent,
			PendingLeaves:     s.Widgets.PendingLeaves,
			EmployeeCount:     s.Widgets.EmployeeCount,
		},
		Activity: activity,
	}
}
