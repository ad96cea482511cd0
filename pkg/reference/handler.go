package reference

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/sitelog/sitelog/internal/rest"
	"github.com/sitelog/sitelog/pkg/msauth"
	"github.com/sitelog/sitelog/pkg/session"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetReference is a handler for GET /api/reference requests.
func (h *Handler) GetReference(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	data, err := h.service.Current(r.Context())
	if err != nil {
		h.writeReferenceError(w, err)
		return
	}
	h.writeData(w, data)
}

// RefreshReference is a handler for POST /api/reference/refresh requests.
func (h *Handler) RefreshReference(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	data, err := h.service.Refresh(r.Context())
	if err != nil {
		h.writeReferenceError(w, err)
		return
	}
	h.writeData(w, data)
}

func (h *Handler) writeData(w http.ResponseWriter, data Data) {
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) writeReferenceError(w http.ResponseWriter, err error) {
	var status int
	var message string
	switch {
	case errors.Is(err, msauth.ErrNotAuthenticated), errors.Is(err, session.ErrNoSession):
		status = http.StatusUnauthorized
		message = "Please sign in again."
	default:
		log.Errorf("reference data fetch failed: %v", err)
		status = http.StatusBadGateway
		message = "Error loading employee and site lists. Please try again."
	}

	w.WriteHeader(status)
	if encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: message, Details: err.Error()}); encodeErr != nil {
		http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
	}
}
