package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilahealth/patient-booking/internal/booking"
	"github.com/nilahealth/patient-booking/internal/checkout"
	"github.com/nilahealth/patient-booking/internal/directory"
	"github.com/nilahealth/patient-booking/internal/observability/metrics"
	"github.com/nilahealth/patient-booking/internal/payments"
	"github.com/nilahealth/patient-booking/internal/records"
	"github.com/nilahealth/patient-booking/internal/scheduling"
	"github.com/nilahealth/patient-booking/internal/verification"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	repo := directory.NewStaticRepository(nil)
	scheduler := scheduling.NewService(nil)
	verifier := verification.NewService(verification.NewDemoSender("123456", nil), nil, 30*time.Second, 0, nil)
	gateway := payments.NewFakeGateway("http://localhost:8080", nil)
	co := checkout.NewService(gateway, "INR", nil)
	recStore := records.NewStore(client, nil)

	svc := booking.NewService(
		repo,
		scheduler,
		verifier,
		co,
		booking.NewSessionStore(client, time.Hour),
		recStore,
		metrics.NewFlowMetrics(prometheus.NewRegistry()),
		"demo",
		nil,
	)

	reg := prometheus.NewRegistry()
	return New(&Config{
		DirectoryHandler:  directory.NewHandler(repo, nil),
		SchedulingHandler: scheduling.NewHandler(repo, nil),
		BookingHandler:    booking.NewHandler(svc, nil),
		DashboardHandler:  records.NewHandler(recStore, nil, nil, nil),
		FakePayments:      payments.NewFakePaymentsHandler(gateway, svc, nil),
		MetricsHandler:    promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_TherapistRoutes(t *testing.T) {
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/therapists?search=meera", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var list directory.ListTherapistsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Count)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/therapists/t-101/availability", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var avail scheduling.AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &avail))
	assert.Len(t, avail.QuickPicks, 7)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/therapists/t-999", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// Walks the whole flow through the mounted routes, completing payment
// through the demo checkout page rather than the API callback.
func TestRouter_DemoPaymentFlow(t *testing.T) {
	r := newTestRouter(t)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	rec := do(http.MethodPost, "/bookings", `{"therapist_id":"t-103","date":"2024-02-12","time":"15:30","mode":"phone"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var view booking.SessionView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	base := "/bookings/" + view.ID

	require.Equal(t, http.StatusOK, do(http.MethodPost, base+"/phone", `{"phone":"9876543210"}`).Code)
	require.Equal(t, http.StatusOK, do(http.MethodPost, base+"/verify", `{"code":"123456"}`).Code)

	rec = do(http.MethodPost, base+"/checkout", `{"name":"Asha Rao","email":"asha@example.com","phone":"9876543210"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.NotNil(t, view.PendingOrder)
	orderID := view.PendingOrder.ID

	rec = do(http.MethodGet, "/demo/payments/"+orderID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "900.00")

	rec = do(http.MethodPost, "/demo/payments/"+orderID+"/complete", "")
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = do(http.MethodGet, base+"/confirmation", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, booking.StageConfirmed, view.Stage)

	rec = do(http.MethodGet, "/dashboard", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Dr. Sneha Pillai")
	assert.Contains(t, rec.Body.String(), "Phone Consultation")

	rec = do(http.MethodGet, "/dashboard/receipt", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "receipt-REC-")
}

func TestSplitOrigins(t *testing.T) {
	assert.Equal(t, []string{"*"}, SplitOrigins("*"))
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, SplitOrigins("https://a.example, https://b.example,"))
	assert.Empty(t, SplitOrigins(""))
}
