package directory

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nilahealth/patient-booking/pkg/logging"
)

// Handler handles HTTP requests for the therapist directory
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a new directory handler
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

// ListTherapistsResponse is the response for listing therapists
type ListTherapistsResponse struct {
	Therapists []*Therapist `json:"therapists"`
	Count      int          `json:"count"`
}

// ListTherapists handles GET /therapists requests
func (h *Handler) ListTherapists(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	therapists, err := h.repo.List(r.Context(), search)
	if err != nil {
		h.logger.Error("failed to list therapists", "error", err)
		http.Error(w, "failed to list therapists", http.StatusInternalServerError)
		return
	}

	response := ListTherapistsResponse{
		Therapists: therapists,
		Count:      len(therapists),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// GetTherapist handles GET /therapists/{therapistID} requests. A miss is
// terminal for the booking flow: the body carries a navigation hint back
// to the directory instead of a retry.
func (h *Handler) GetTherapist(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "therapistID")

	therapist, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrTherapistNotFound) {
			writeNotFound(w)
			return
		}
		h.logger.Error("failed to load therapist", "error", err, "therapist_id", id)
		http.Error(w, "failed to load therapist", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(therapist)
}

func writeNotFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(map[string]string{
		"error":    "Doctor Not Available",
		"message":  "The requested specialist is not currently available.",
		"fallback": "/therapists",
	})
}
