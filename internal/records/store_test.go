package records

import (
	"context"
	"errors"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilahealth/patient-booking/internal/scheduling"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewStore(client, nil), mr
}

func sampleRecord() *AppointmentRecord {
	return &AppointmentRecord{
		Doctor:       "Dr. Meera Nair",
		Specialty:    "Clinical Psychologist",
		Date:         "2024-02-14",
		Time:         "09:30",
		Mode:         scheduling.ModeVideo,
		Location:     scheduling.DefaultLocation(),
		PatientName:  "Asha Rao",
		Email:        "asha@example.com",
		Phone:        "9876543210",
		AmountRupees: 1200,
		Currency:     "INR",
		OrderID:      "order_1",
		PaymentID:    "pay_123",
		Method:       "razorpay",
		Status:       "completed",
	}
}

func TestStore_AppointmentRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.LoadAppointment(ctx)
	require.ErrorIs(t, err, ErrNoAppointment)

	require.NoError(t, store.SaveAppointment(ctx, sampleRecord()))

	got, err := store.LoadAppointment(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Dr. Meera Nair", got.Doctor)
	assert.Equal(t, "pay_123", got.PaymentID)
	assert.Equal(t, "Video Consultation", got.ModeDisplay())
}

func TestStore_ProfileRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.LoadProfile(ctx)
	require.ErrorIs(t, err, ErrNoProfile)

	profile := &PatientProfile{
		BloodType:        "O+",
		Age:              "34",
		Gender:           "female",
		EmergencyContact: "9812345678",
		Allergies:        []string{"Penicillin"},
	}
	require.NoError(t, store.SaveProfile(ctx, profile))

	got, err := store.LoadProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Penicillin"}, got.Allergies)
	assert.Equal(t, "O+", got.BloodType)
	assert.Empty(t, got.MedicalConditions)
}

func TestStore_MalformedSlotTreatedAsAbsent(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	mr.Set(lastAppointmentKey, "{not json")
	mr.Set(patientInfoKey, "also not json")

	_, err := store.LoadAppointment(ctx)
	assert.True(t, errors.Is(err, ErrNoAppointment))

	_, err = store.LoadProfile(ctx)
	assert.True(t, errors.Is(err, ErrNoProfile))
}

func TestStore_UpdateProfileWritesBothSlots(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveAppointment(ctx, sampleRecord()))

	profile := &PatientProfile{BloodType: "B+", Allergies: []string{"Penicillin"}}
	require.NoError(t, store.UpdateProfile(ctx, profile))

	stored, err := store.LoadProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "B+", stored.BloodType)

	rec, err := store.LoadAppointment(ctx)
	require.NoError(t, err)
	assert.Equal(t, "B+", rec.Patient.BloodType)
	assert.Equal(t, []string{"Penicillin"}, rec.Patient.Allergies)
}

func TestStore_UpdateProfileWithoutAppointment(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.UpdateProfile(ctx, &PatientProfile{Age: "40"}))

	_, err := store.LoadAppointment(ctx)
	assert.ErrorIs(t, err, ErrNoAppointment)
}
