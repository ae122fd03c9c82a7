package records

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/nilahealth/patient-booking/internal/notify"
	"github.com/nilahealth/patient-booking/pkg/logging"
)

// Clock abstracts "now" for receipt ids.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Handler serves the appointment dashboard: the durable record, the
// editable patient profile, and the receipt projection.
type Handler struct {
	store  *Store
	mailer notify.EmailSender
	clock  Clock
	logger *logging.Logger
}

// NewHandler creates a dashboard handler. A nil mailer disables the
// share route (503).
func NewHandler(store *Store, mailer notify.EmailSender, clock Clock, logger *logging.Logger) *Handler {
	if clock == nil {
		clock = systemClock{}
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		store:  store,
		mailer: mailer,
		clock:  clock,
		logger: logger,
	}
}

// DashboardResponse is the reconstructed dashboard payload.
type DashboardResponse struct {
	Appointment *AppointmentRecord `json:"appointment"`
	ModeDisplay string             `json:"mode_display"`
	Profile     PatientProfile     `json:"profile"`
}

// GetDashboard handles GET /dashboard. With no record on file the
// response is a terminal empty-state pointing back to the directory.
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	rec, err := h.store.LoadAppointment(r.Context())
	if err != nil {
		if errors.Is(err, ErrNoAppointment) {
			writeEmptyState(w)
			return
		}
		h.logger.Error("failed to load dashboard", "error", err)
		http.Error(w, "failed to load dashboard", http.StatusInternalServerError)
		return
	}

	profile := rec.Patient
	if stored, err := h.store.LoadProfile(r.Context()); err == nil {
		profile = *stored
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(DashboardResponse{
		Appointment: rec,
		ModeDisplay: rec.ModeDisplay(),
		Profile:     profile,
	})
}

// SavePatientInfo handles PUT /dashboard/patient-info. The profile is
// written to its own slot and into the embedded copy inside the
// appointment record, keeping both read paths consistent.
func (h *Handler) SavePatientInfo(w http.ResponseWriter, r *http.Request) {
	var profile PatientProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		http.Error(w, "invalid patient info payload", http.StatusBadRequest)
		return
	}

	if err := h.store.UpdateProfile(r.Context(), &profile); err != nil {
		h.logger.Error("failed to save patient info", "error", err)
		http.Error(w, "failed to save patient info", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"saved": true, "profile": profile})
}

// GetReceipt handles GET /dashboard/receipt, serving the receipt as a
// JSON download.
func (h *Handler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	rec, err := h.store.LoadAppointment(r.Context())
	if err != nil {
		if errors.Is(err, ErrNoAppointment) {
			writeEmptyState(w)
			return
		}
		h.logger.Error("failed to load receipt data", "error", err)
		http.Error(w, "failed to build receipt", http.StatusInternalServerError)
		return
	}

	var profile *PatientProfile
	if stored, err := h.store.LoadProfile(r.Context()); err == nil {
		profile = stored
	}

	receipt := BuildReceipt(rec, profile, h.clock.Now())
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", receipt.Filename()))

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(receipt)
}

// ShareRequest is the body of POST /dashboard/share.
type ShareRequest struct {
	Email string `json:"email"`
}

// ShareReceipt handles POST /dashboard/share, emailing the receipt.
func (h *Handler) ShareReceipt(w http.ResponseWriter, r *http.Request) {
	if h.mailer == nil {
		http.Error(w, "email sharing is not configured", http.StatusServiceUnavailable)
		return
	}

	var req ShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		http.Error(w, "a destination email is required", http.StatusBadRequest)
		return
	}

	rec, err := h.store.LoadAppointment(r.Context())
	if err != nil {
		if errors.Is(err, ErrNoAppointment) {
			writeEmptyState(w)
			return
		}
		h.logger.Error("failed to load appointment for sharing", "error", err)
		http.Error(w, "failed to share appointment", http.StatusInternalServerError)
		return
	}

	var profile *PatientProfile
	if stored, err := h.store.LoadProfile(r.Context()); err == nil {
		profile = stored
	}
	receipt := BuildReceipt(rec, profile, h.clock.Now())
	body, err := json.MarshalIndent(receipt, "", "  ")
	if err != nil {
		http.Error(w, "failed to build receipt", http.StatusInternalServerError)
		return
	}

	msg := notify.EmailMessage{
		To:      req.Email,
		ToName:  rec.PatientName,
		Subject: fmt.Sprintf("Your appointment with %s", rec.Doctor),
		Body: fmt.Sprintf("Appointment confirmed with %s on %s at %s (%s).\n\nReceipt:\n%s\n",
			rec.Doctor, rec.Date, rec.Time, rec.ModeDisplay(), body),
	}
	if err := h.mailer.Send(r.Context(), msg); err != nil {
		h.logger.Error("failed to email receipt", "error", err, "to", req.Email)
		http.Error(w, "failed to send email", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"shared": true, "receipt_id": receipt.ReceiptID})
}

func writeEmptyState(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(map[string]string{
		"error":    "No Appointment Found",
		"message":  "You have no confirmed appointment yet. Book a consultation to see it here.",
		"action":   "Book Appointment",
		"fallback": "/therapists",
	})
}
