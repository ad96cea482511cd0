package weather

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/sitelog/sitelog/internal/rest"
)

type observationDTO struct {
	Description string  `json:"description"`
	Temperature float64 `json:"temperature"`
	Display     string  `json:"display"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetWeather is a handler for GET /api/weather requests. The optional
// "site" query parameter selects the location.
func (h *Handler) GetWeather(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	observation, err := h.service.ForSite(r.Context(), r.URL.Query().Get("site"))
	if err != nil {
		log.Warnf("weather lookup failed: %v", err)
		w.WriteHeader(http.StatusBadGateway)
		if encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Could not fetch the current weather.",
			Details: err.Error(),
		}); encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
	dto := observationDTO{
		Description: observation.Description,
		Temperature: observation.Temperature,
		Display:     observation.String(),
	}
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
