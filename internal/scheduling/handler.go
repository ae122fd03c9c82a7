package scheduling

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nilahealth/patient-booking/internal/directory"
	"github.com/nilahealth/patient-booking/pkg/logging"
)

// Handler serves the availability data the booking screen renders.
type Handler struct {
	therapists directory.Repository
	logger     *logging.Logger
}

// NewHandler creates a scheduling handler.
func NewHandler(therapists directory.Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{therapists: therapists, logger: logger}
}

// AvailabilityResponse is the response for the availability endpoint.
type AvailabilityResponse struct {
	TherapistID string              `json:"therapist_id"`
	QuickPicks  []QuickPick         `json:"quick_picks"`
	Slots       map[string][]string `json:"slots"`
	Modes       []Mode              `json:"modes"`
	Location    Location            `json:"location"`
}

// GetAvailability handles GET /therapists/{therapistID}/availability.
func (h *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "therapistID")

	if _, err := h.therapists.GetByID(r.Context(), id); err != nil {
		if errors.Is(err, directory.ErrTherapistNotFound) {
			http.Error(w, "therapist not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to resolve therapist", "error", err, "therapist_id", id)
		http.Error(w, "failed to load availability", http.StatusInternalServerError)
		return
	}

	response := AvailabilityResponse{
		TherapistID: id,
		QuickPicks:  QuickPicks(),
		Slots:       SlotBuckets(),
		Modes:       []Mode{ModeInPerson, ModeVideo, ModePhone},
		Location:    DefaultLocation(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
