package scheduling

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilahealth/patient-booking/internal/directory"
)

func newAvailabilityRouter() http.Handler {
	h := NewHandler(directory.NewStaticRepository(nil), nil)
	r := chi.NewRouter()
	r.Get("/therapists/{therapistID}/availability", h.GetAvailability)
	return r
}

func TestGetAvailability(t *testing.T) {
	r := newAvailabilityRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/therapists/t-102/availability", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "t-102", resp.TherapistID)
	assert.Len(t, resp.QuickPicks, 7)
	assert.Len(t, resp.Slots, 3)
	assert.Contains(t, resp.Slots["evening"], "17:00")
	assert.Equal(t, []Mode{ModeInPerson, ModeVideo, ModePhone}, resp.Modes)
	assert.Equal(t, "Nila Hospital", resp.Location.Name)
}

func TestGetAvailability_UnknownTherapist(t *testing.T) {
	r := newAvailabilityRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/therapists/t-404/availability", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
