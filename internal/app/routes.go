package app

import (
	"net/http"

	"github.com/artihcus/portal/internal/rest"
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	r.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		rest.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	// Auth
	r.HandleFunc("/api/auth/login", deps.AuthHandler.Login).Methods("POST")
	r.HandleFunc("/api/auth/signup", deps.AuthHandler.Signup).Methods("POST")
	r.HandleFunc("/api/auth/session", deps.AuthHandler.CurrentSession).Methods("GET")
	r.HandleFunc("/api/auth/session", deps.AuthHandler.Logout).Methods("DELETE")

	// Dashboard
	r.HandleFunc("/api/dashboard", deps.DashboardHandler.Summary).Methods("GET")

	// Timesheet
	r.HandleFunc("/api/timesheet/options", deps.TimesheetHandler.Options).Methods("GET")
	r.HandleFunc("/api/timesheet", deps.TimesheetHandler.Current).Methods("GET")
	r.HandleFunc("/api/timesheet", deps.TimesheetHandler.Open).Methods("POST")
	r.HandleFunc("/api/timesheet/header", deps.TimesheetHandler.UpdateHeader).Methods("PUT")
	r.HandleFunc("/api/timesheet/row", deps.TimesheetHandler.AddRow).Methods("POST")
	r.HandleFunc("/api/timesheet/row/{index}", deps.TimesheetHandler.SetField).Methods("PATCH")
	r.HandleFunc("/api/timesheet/submit", deps.TimesheetHandler.Submit).Methods("POST")
	r.HandleFunc("/api/timesheet/export", deps.TimesheetHandler.Export).Methods("GET")
}
