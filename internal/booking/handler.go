package booking

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nilahealth/patient-booking/internal/checkout"
	"github.com/nilahealth/patient-booking/internal/directory"
	"github.com/nilahealth/patient-booking/internal/scheduling"
	"github.com/nilahealth/patient-booking/internal/verification"
	"github.com/nilahealth/patient-booking/pkg/logging"
)

// Handler exposes the booking flow over HTTP.
type Handler struct {
	service *Service
	logger  *logging.Logger
}

func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

// Routes mounts the flow endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.StartBooking)
	r.Route("/{bookingID}", func(r chi.Router) {
		r.Get("/", h.GetSession)
		r.Post("/phone", h.SubmitPhone)
		r.Post("/keys", h.PressKey)
		r.Post("/verify", h.Verify)
		r.Post("/resend", h.Resend)
		r.Post("/checkout", h.Checkout)
		r.Post("/payment/complete", h.CompletePayment)
		r.Post("/payment/cancel", h.CancelPayment)
		r.Get("/confirmation", h.Confirmation)
	})
	return r
}

// StartBookingRequest is the body of POST /bookings.
type StartBookingRequest struct {
	TherapistID string `json:"therapist_id"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Mode        string `json:"mode"`
}

func (h *Handler) StartBooking(w http.ResponseWriter, r *http.Request) {
	var req StartBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid booking payload", http.StatusBadRequest)
		return
	}

	sess, err := h.service.Start(r.Context(), req.TherapistID, req.Date, req.Time, scheduling.Mode(req.Mode))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeSession(w, http.StatusCreated, sess)
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.service.Load(r.Context(), chi.URLParam(r, "bookingID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeSession(w, http.StatusOK, sess)
}

func (h *Handler) SubmitPhone(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid phone payload", http.StatusBadRequest)
		return
	}

	sess, err := h.service.SubmitPhone(r.Context(), chi.URLParam(r, "bookingID"), req.Phone)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeSession(w, http.StatusOK, sess)
}

func (h *Handler) PressKey(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid key payload", http.StatusBadRequest)
		return
	}

	sess, err := h.service.PressKey(r.Context(), chi.URLParam(r, "bookingID"), req.Key)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeSession(w, http.StatusOK, sess)
}

func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid verify payload", http.StatusBadRequest)
		return
	}

	sess, err := h.service.Verify(r.Context(), chi.URLParam(r, "bookingID"), req.Code)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeSession(w, http.StatusOK, sess)
}

func (h *Handler) Resend(w http.ResponseWriter, r *http.Request) {
	sess, err := h.service.Resend(r.Context(), chi.URLParam(r, "bookingID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeSession(w, http.StatusOK, sess)
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkout.PatientDetails
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid checkout payload", http.StatusBadRequest)
		return
	}

	sess, err := h.service.Checkout(r.Context(), chi.URLParam(r, "bookingID"), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeSession(w, http.StatusOK, sess)
}

func (h *Handler) CompletePayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PaymentID string `json:"payment_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payment payload", http.StatusBadRequest)
		return
	}

	id := chi.URLParam(r, "bookingID")
	if err := h.service.CompletePayment(r.Context(), id, req.PaymentID); err != nil {
		h.writeError(w, err)
		return
	}
	sess, err := h.service.Load(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeSession(w, http.StatusOK, sess)
}

func (h *Handler) CancelPayment(w http.ResponseWriter, r *http.Request) {
	sess, err := h.service.CancelPayment(r.Context(), chi.URLParam(r, "bookingID"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusConflict)
	json.NewEncoder(w).Encode(map[string]any{
		"notice":  sess.Notice,
		"session": NewSessionView(sess, h.service.Now(), h.service.checkout.Currency()),
	})
}

func (h *Handler) Confirmation(w http.ResponseWriter, r *http.Request) {
	sess, err := h.service.Confirmation(r.Context(), chi.URLParam(r, "bookingID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeSession(w, http.StatusOK, sess)
}

func (h *Handler) writeSession(w http.ResponseWriter, status int, sess *FlowSession) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(NewSessionView(sess, h.service.Now(), h.service.checkout.Currency()))
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var fieldErrs checkout.FieldErrors
	if errors.As(err, &fieldErrs) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": fieldErrs})
		return
	}

	switch {
	case errors.Is(err, ErrSessionNotFound), errors.Is(err, directory.ErrTherapistNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error":    err.Error(),
			"fallback": "/therapists",
		})
	case errors.Is(err, ErrNotConfirmed):
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error":    "no confirmed appointment for this booking",
			"fallback": "/therapists",
		})
	case errors.Is(err, verification.ErrResendNotReady):
		writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": err.Error()})
	case errors.Is(err, ErrWrongStage),
		errors.Is(err, ErrNoPendingOrder),
		errors.Is(err, verification.ErrNotAwaitingCode):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, ErrPaymentIDRequired),
		errors.Is(err, verification.ErrPhoneRequired),
		errors.Is(err, verification.ErrInvalidPhone),
		errors.Is(err, verification.ErrCodeIncomplete),
		errors.Is(err, verification.ErrCodeMismatch),
		errors.Is(err, verification.ErrUnknownKey),
		errors.Is(err, scheduling.ErrDateRequired),
		errors.Is(err, scheduling.ErrTimeRequired),
		errors.Is(err, scheduling.ErrDateNotSelectable),
		errors.Is(err, scheduling.ErrUnknownSlot),
		errors.Is(err, scheduling.ErrUnknownMode):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	default:
		h.logger.Error("booking request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
