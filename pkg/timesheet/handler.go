package timesheet

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/sitelog/sitelog/internal/rest"
	"github.com/sitelog/sitelog/pkg/msauth"
	"github.com/sitelog/sitelog/pkg/session"
	"github.com/sitelog/sitelog/pkg/sheettime"
)

type RowDTO struct {
	Name        string `json:"name"`
	TimeIn      string `json:"timeIn"`
	TimeOut     string `json:"timeOut"`
	Description string `json:"description"`
}

type PlantRowDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type FormDTO struct {
	ReporterName   string        `json:"reporterName"`
	Site           string        `json:"site"`
	Weather        string        `json:"weather"`
	Date           string        `json:"date"`
	TasksCompleted string        `json:"tasksCompleted"`
	Setbacks       string        `json:"setbacks"`
	RFI            string        `json:"rfi"`
	UserStartTime  string        `json:"userStartTime"`
	UserEndTime    string        `json:"userEndTime"`
	Employees      []RowDTO      `json:"employees"`
	Subcontractors []RowDTO      `json:"subcontractors"`
	Plants         []PlantRowDTO `json:"plants"`
}

type WindowDTO struct {
	Start           string `json:"start"`
	End             string `json:"end"`
	Current         string `json:"current"`
	CanStepBackward bool   `json:"canStepBackward"`
	CanStepForward  bool   `json:"canStepForward"`
}

type updateFieldRequest struct {
	Field Field  `json:"field"`
	Value string `json:"value"`
}

type updateRowFieldRequest struct {
	Collection Collection `json:"collection"`
	Index      int        `json:"index"`
	Field      RowField   `json:"field"`
	Value      string     `json:"value"`
}

type addRowRequest struct {
	Collection Collection `json:"collection"`
}

type removeRowRequest struct {
	Collection Collection `json:"collection"`
	Index      int        `json:"index"`
}

type navigateRequest struct {
	Direction Direction `json:"direction"`
	Date      string    `json:"date"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func toFormDTO(form Form) FormDTO {
	dto := FormDTO{
		ReporterName:   form.ReporterName,
		Site:           form.Site,
		Weather:        form.Weather,
		Date:           form.Date.String(),
		TasksCompleted: form.TasksCompleted,
		Setbacks:       form.Setbacks,
		RFI:            form.RFI,
		UserStartTime:  form.UserStartTime,
		UserEndTime:    form.UserEndTime,
		Employees:      []RowDTO{},
		Subcontractors: []RowDTO{},
		Plants:         []PlantRowDTO{},
	}
	for _, row := range form.Employees {
		dto.Employees = append(dto.Employees, RowDTO(row))
	}
	for _, row := range form.Subcontractors {
		dto.Subcontractors = append(dto.Subcontractors, RowDTO(row))
	}
	for _, row := range form.Plants {
		dto.Plants = append(dto.Plants, PlantRowDTO(row))
	}
	return dto
}

// GetForm is a handler for GET /api/timesheet requests.
func (h *Handler) GetForm(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	h.writeForm(w, h.service.Form(r.Context()))
}

// GetWindow is a handler for GET /api/timesheet/window requests.
func (h *Handler) GetWindow(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	state := h.service.Window(r.Context())
	dto := WindowDTO{
		Start:           state.Start.String(),
		End:             state.End.String(),
		Current:         state.Current.String(),
		CanStepBackward: state.CanStepBackward,
		CanStepForward:  state.CanStepForward,
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// UpdateField is a handler for PUT /api/timesheet/field requests.
func (h *Handler) UpdateField(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var request updateFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	form, err := h.service.SetField(r.Context(), request.Field, request.Value)
	if err != nil {
		h.writeFormError(w, err)
		return
	}
	h.writeForm(w, form)
}

// UpdateRowField is a handler for PUT /api/timesheet/rows/field requests.
func (h *Handler) UpdateRowField(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var request updateRowFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	form, err := h.service.SetRowField(r.Context(), request.Collection, request.Index, request.Field, request.Value)
	if err != nil {
		h.writeFormError(w, err)
		return
	}
	h.writeForm(w, form)
}

// AddRow is a handler for POST /api/timesheet/rows requests.
func (h *Handler) AddRow(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var request addRowRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	form, err := h.service.AddRow(r.Context(), request.Collection)
	if err != nil {
		h.writeFormError(w, err)
		return
	}
	h.writeForm(w, form)
}

// RemoveRow is a handler for DELETE /api/timesheet/rows requests.
func (h *Handler) RemoveRow(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var request removeRowRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	form, err := h.service.RemoveRow(r.Context(), request.Collection, request.Index)
	if err != nil {
		h.writeFormError(w, err)
		return
	}
	h.writeForm(w, form)
}

// Navigate is a handler for POST /api/timesheet/navigate requests. Either
// a direction or an explicit target date may be given.
func (h *Handler) Navigate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var request navigateRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var form Form
	var err error
	if request.Date != "" {
		var date sheettime.Date
		date, err = sheettime.ParseDate(request.Date)
		if err != nil {
			http.Error(w, "Invalid date", http.StatusBadRequest)
			return
		}
		form, err = h.service.NavigateTo(r.Context(), date)
	} else {
		form, err = h.service.Navigate(r.Context(), request.Direction)
	}
	if err != nil {
		h.writeFormError(w, err)
		return
	}
	h.writeForm(w, form)
}

// Submit is a handler for POST /api/timesheet/submit requests.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := h.service.Submit(r.Context()); err != nil {
		h.writeSubmitError(w, err)
		return
	}
	h.writeForm(w, h.service.Form(r.Context()))
}

// ResetDrafts is a handler for DELETE /api/timesheet/drafts requests.
func (h *Handler) ResetDrafts(w http.ResponseWriter, r *http.Request) {
	h.service.ResetDrafts(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeForm(w http.ResponseWriter, form Form) {
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(toFormDTO(form)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) writeFormError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sheettime.ErrMalformedTime):
		writeError(w, http.StatusUnprocessableEntity, "Times must be entered as HH:MM.", err)
	case errors.Is(err, ErrRowOutOfRange),
		errors.Is(err, ErrUnknownField),
		errors.Is(err, ErrUnknownCollection):
		writeError(w, http.StatusBadRequest, "Invalid form update", err)
	default:
		log.Errorf("form update failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to update the form", err)
	}
}

func (h *Handler) writeSubmitError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNoNotesProvided):
		writeError(w, http.StatusUnprocessableEntity,
			"Please enter notes describing the works completed today.", err)
	case errors.Is(err, ErrNoEmployeesProvided):
		writeError(w, http.StatusUnprocessableEntity,
			"Please add at least one employee with a name selected to the form.", err)
	case errors.Is(err, sheettime.ErrMalformedTime):
		writeError(w, http.StatusUnprocessableEntity, "Times must be entered as HH:MM.", err)
	case errors.Is(err, msauth.ErrNotAuthenticated), errors.Is(err, session.ErrNoSession):
		writeError(w, http.StatusUnauthorized, "Please sign in again.", err)
	default:
		log.Errorf("timesheet submission failed: %v", err)
		writeError(w, http.StatusBadGateway, "Error submitting form. Please try again.", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	w.WriteHeader(status)
	response := rest.ErrorResponse{Error: message}
	if err != nil {
		response.Details = err.Error()
	}
	if encodeErr := json.NewEncoder(w).Encode(response); encodeErr != nil {
		http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
	}
}
