package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	id "propertyguard/pkg/domain"
)

// Store persists audit events. The postgres implementation writes through a
// transactional outbox so events commit atomically with the domain change
// that produced them; the relay ships outbox rows to Kafka afterwards.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByProperty(ctx context.Context, propertyID id.PropertyID) ([]Event, error)
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}

// OutboxEntry is one outbox row awaiting publication. The payload is the
// JSON document shipped to Kafka verbatim.
type OutboxEntry struct {
	ID            uuid.UUID
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
	CreatedAt     time.Time
}
