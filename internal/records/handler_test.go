package records

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilahealth/patient-booking/internal/notify"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type recordingMailer struct {
	msg notify.EmailMessage
	err error
}

func (m *recordingMailer) Send(_ context.Context, msg notify.EmailMessage) error {
	m.msg = msg
	return m.err
}

func TestHandler_GetDashboard_EmptyState(t *testing.T) {
	store, _ := newTestStore(t)
	handler := NewHandler(store, nil, nil, nil)

	rec := httptest.NewRecorder()
	handler.GetDashboard(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "/therapists", body["fallback"])
	assert.NotEmpty(t, body["action"])
}

func TestHandler_GetDashboard_MergesStoredProfile(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.SaveAppointment(ctx, sampleRecord()))
	require.NoError(t, store.SaveProfile(ctx, &PatientProfile{Allergies: []string{"Penicillin"}}))

	handler := NewHandler(store, nil, nil, nil)
	rec := httptest.NewRecorder()
	handler.GetDashboard(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp DashboardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Dr. Meera Nair", resp.Appointment.Doctor)
	assert.Equal(t, "Video Consultation", resp.ModeDisplay)
	assert.Equal(t, []string{"Penicillin"}, resp.Profile.Allergies)
}

func TestHandler_GetDashboard_ReadsLegacySlot(t *testing.T) {
	store, mr := newTestStore(t)
	mr.Set(lastAppointmentKey, `{"payment":{"doctorName":"Dr. Meera Nair","appointmentDate":"2024-02-14","appointmentTime":"09:30","mode":"video","amount":1200,"paymentId":"pay_123"}}`)

	handler := NewHandler(store, nil, nil, nil)
	rec := httptest.NewRecorder()
	handler.GetDashboard(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp DashboardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Dr. Meera Nair", resp.Appointment.Doctor)
	assert.Equal(t, "Video Consultation", resp.ModeDisplay)
	assert.Equal(t, "pay_123", resp.Appointment.PaymentID)
}

func TestHandler_SavePatientInfo(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.SaveAppointment(context.Background(), sampleRecord()))

	handler := NewHandler(store, nil, nil, nil)
	body := strings.NewReader(`{"bloodType":"O+","allergies":["Penicillin"]}`)
	rec := httptest.NewRecorder()
	handler.SavePatientInfo(rec, httptest.NewRequest(http.MethodPut, "/dashboard/patient-info", body))

	require.Equal(t, http.StatusOK, rec.Code)

	stored, err := store.LoadAppointment(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "O+", stored.Patient.BloodType)
}

func TestHandler_GetReceipt_Download(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.SaveAppointment(context.Background(), sampleRecord()))

	clock := fixedClock{now: time.UnixMilli(1707880000123)}
	handler := NewHandler(store, nil, clock, nil)

	rec := httptest.NewRecorder()
	handler.GetReceipt(rec, httptest.NewRequest(http.MethodGet, "/dashboard/receipt", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="receipt-REC-80000123.json"`, rec.Header().Get("Content-Disposition"))

	var receipt Receipt
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &receipt))
	assert.Equal(t, "REC-80000123", receipt.ReceiptID)
	assert.Equal(t, "Completed", receipt.Payment.Status)
}

func TestHandler_ShareReceipt(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.SaveAppointment(context.Background(), sampleRecord()))

	mailer := &recordingMailer{}
	handler := NewHandler(store, mailer, nil, nil)

	body := strings.NewReader(`{"email":"family@example.com"}`)
	rec := httptest.NewRecorder()
	handler.ShareReceipt(rec, httptest.NewRequest(http.MethodPost, "/dashboard/share", body))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "family@example.com", mailer.msg.To)
	assert.Contains(t, mailer.msg.Subject, "Dr. Meera Nair")
	assert.Contains(t, mailer.msg.Body, "Video Consultation")
}

func TestHandler_ShareReceipt_NoMailerConfigured(t *testing.T) {
	store, _ := newTestStore(t)
	handler := NewHandler(store, nil, nil, nil)

	body := strings.NewReader(`{"email":"family@example.com"}`)
	rec := httptest.NewRecorder()
	handler.ShareReceipt(rec, httptest.NewRequest(http.MethodPost, "/dashboard/share", body))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
