package app

import (
	"github.com/gorilla/mux"
	"github.com/sitelog/sitelog/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Timesheet form
	r.HandleFunc("/api/timesheet", deps.TimesheetHandler.GetForm).Methods("GET")
	r.HandleFunc("/api/timesheet/window", deps.TimesheetHandler.GetWindow).Methods("GET")
	r.HandleFunc("/api/timesheet/field", deps.TimesheetHandler.UpdateField).Methods("PUT")
	r.HandleFunc("/api/timesheet/rows", deps.TimesheetHandler.AddRow).Methods("POST")
	r.HandleFunc("/api/timesheet/rows", deps.TimesheetHandler.RemoveRow).Methods("DELETE")
	r.HandleFunc("/api/timesheet/rows/field", deps.TimesheetHandler.UpdateRowField).Methods("PUT")
	r.HandleFunc("/api/timesheet/navigate", deps.TimesheetHandler.Navigate).Methods("POST")
	r.HandleFunc("/api/timesheet/submit", deps.TimesheetHandler.Submit).Methods("POST")
	r.HandleFunc("/api/timesheet/drafts", deps.TimesheetHandler.ResetDrafts).Methods("DELETE")

	// Reference data
	r.HandleFunc("/api/reference", deps.ReferenceHandler.GetReference).Methods("GET")
	r.HandleFunc("/api/reference/refresh", deps.ReferenceHandler.RefreshReference).Methods("POST")

	// Weather
	r.HandleFunc("/api/weather", deps.WeatherHandler.GetWeather).Methods("GET")

	// Microsoft authentication
	r.HandleFunc("/api/auth/login", deps.MSAuth.OAuthLogin).Methods("GET")
	r.HandleFunc("/api/auth/callback", deps.MSAuth.OAuthCallback).Methods("GET")
	r.HandleFunc("/api/auth/logout", deps.MSAuth.OAuthLogout).Methods("DELETE")
	r.HandleFunc("/api/auth/status", deps.MSAuth.IsAuthenticated).Methods("GET")
}
