package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// SessionStore persists flow sessions in Redis with a TTL. A single
// client drives each booking, so writes are last-writer-wins with no
// cross-key coordination.
type SessionStore struct {
	redis  *redis.Client
	ttl    time.Duration
	tracer trace.Tracer
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if client == nil {
		panic("booking: redis client cannot be nil")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionStore{
		redis:  client,
		ttl:    ttl,
		tracer: otel.Tracer("nila.internal.booking.sessions"),
	}
}

func (s *SessionStore) Save(ctx context.Context, sess *FlowSession) error {
	ctx, span := s.tracer.Start(ctx, "booking.save_session")
	defer span.End()

	data, err := json.Marshal(sess)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("booking: marshal session: %w", err)
	}
	if err := s.redis.Set(ctx, sessionKey(sess.ID), data, s.ttl).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("booking: persist session: %w", err)
	}
	return nil
}

func (s *SessionStore) Load(ctx context.Context, id string) (*FlowSession, error) {
	ctx, span := s.tracer.Start(ctx, "booking.load_session")
	defer span.End()

	data, err := s.redis.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		span.RecordError(err)
		return nil, fmt.Errorf("booking: load session: %w", err)
	}

	var sess FlowSession
	if err := json.Unmarshal(data, &sess); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("booking: decode session: %w", err)
	}
	return &sess, nil
}

func sessionKey(id string) string {
	return fmt.Sprintf("booking_session:%s", id)
}
