package records

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/nilahealth/patient-booking/pkg/logging"
)

const (
	lastAppointmentKey = "lastAppointment"
	patientInfoKey     = "patientInfo"
)

// Store persists the two durable dashboard slots. Both are single
// keys with last-writer-wins semantics and no expiry; each confirmed
// booking overwrites the appointment slot wholesale.
type Store struct {
	redis  *redis.Client
	tracer trace.Tracer
	logger *logging.Logger
}

func NewStore(client *redis.Client, logger *logging.Logger) *Store {
	if client == nil {
		panic("records: redis client cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{
		redis:  client,
		tracer: otel.Tracer("nila.internal.records"),
		logger: logger,
	}
}

func (s *Store) SaveAppointment(ctx context.Context, rec *AppointmentRecord) error {
	ctx, span := s.tracer.Start(ctx, "records.save_appointment")
	defer span.End()

	data, err := json.Marshal(rec)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("records: marshal appointment: %w", err)
	}
	if err := s.redis.Set(ctx, lastAppointmentKey, data, 0).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("records: persist appointment: %w", err)
	}
	return nil
}

// LoadAppointment reads the appointment slot, applying the legacy
// fallback mapping. An unreadable slot is logged and treated as
// absent, never surfaced as a server error.
func (s *Store) LoadAppointment(ctx context.Context) (*AppointmentRecord, error) {
	ctx, span := s.tracer.Start(ctx, "records.load_appointment")
	defer span.End()

	data, err := s.redis.Get(ctx, lastAppointmentKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNoAppointment
		}
		span.RecordError(err)
		return nil, fmt.Errorf("records: load appointment: %w", err)
	}

	rec, err := DecodeRecord(data)
	if err != nil {
		span.RecordError(err)
		s.logger.Error("malformed appointment slot, treating as absent", "error", err)
		return nil, ErrNoAppointment
	}
	return rec, nil
}

func (s *Store) SaveProfile(ctx context.Context, profile *PatientProfile) error {
	ctx, span := s.tracer.Start(ctx, "records.save_profile")
	defer span.End()

	data, err := json.Marshal(profile)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("records: marshal profile: %w", err)
	}
	if err := s.redis.Set(ctx, patientInfoKey, data, 0).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("records: persist profile: %w", err)
	}
	return nil
}

func (s *Store) LoadProfile(ctx context.Context) (*PatientProfile, error) {
	ctx, span := s.tracer.Start(ctx, "records.load_profile")
	defer span.End()

	data, err := s.redis.Get(ctx, patientInfoKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNoProfile
		}
		span.RecordError(err)
		return nil, fmt.Errorf("records: load profile: %w", err)
	}

	var profile PatientProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		span.RecordError(err)
		s.logger.Error("malformed patient profile slot, treating as absent", "error", err)
		return nil, ErrNoProfile
	}
	return &profile, nil
}

// UpdateProfile saves the profile slot AND refreshes the embedded copy
// inside the appointment slot, so both read paths agree. A missing
// appointment slot is not an error.
func (s *Store) UpdateProfile(ctx context.Context, profile *PatientProfile) error {
	ctx, span := s.tracer.Start(ctx, "records.update_profile")
	defer span.End()

	if err := s.SaveProfile(ctx, profile); err != nil {
		return err
	}

	rec, err := s.LoadAppointment(ctx)
	if err != nil {
		if err == ErrNoAppointment {
			return nil
		}
		return err
	}
	rec.Patient = *profile
	return s.SaveAppointment(ctx, rec)
}
