// Package relay ships transactional-outbox rows to Kafka. Domain services
// never talk to Kafka directly: they append events to the outbox inside
// their own transaction, and the relay publishes them afterwards.
package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	id "propertyguard/pkg/domain"
	audit "propertyguard/pkg/platform/audit"
)

// OutboxSource provides unpublished outbox rows and records publication.
type OutboxSource interface {
	UnpublishedBatch(ctx context.Context, limit int) ([]audit.OutboxEntry, error)
	MarkPublished(ctx context.Context, ids []uuid.UUID) error
}

// Producer ships one record to a topic and waits for broker ack.
type Producer interface {
	Produce(ctx context.Context, topic string, key, value []byte) error
}

// Materializer copies published events into the queryable audit_events
// table. Must be idempotent per event ID.
type Materializer interface {
	AppendWithID(ctx context.Context, eventID uuid.UUID, event audit.Event) error
}

// Relay polls the outbox on a fixed interval and publishes pending rows.
// Publish failures leave rows unmarked so the next pass retries them.
type Relay struct {
	source   OutboxSource
	producer Producer
	topic    string

	sink      Materializer
	logger    *slog.Logger
	interval  time.Duration
	batchSize int
}

// Option configures a Relay.
type Option func(*Relay)

// WithLogger sets the relay logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Relay) {
		r.logger = logger
	}
}

// WithInterval sets the poll interval.
func WithInterval(d time.Duration) Option {
	return func(r *Relay) {
		r.interval = d
	}
}

// WithBatchSize sets how many rows one pass loads at a time.
func WithBatchSize(n int) Option {
	return func(r *Relay) {
		r.batchSize = n
	}
}

// WithMaterializer also writes published events into the local audit_events
// table. Kafka holds the canonical copy either way; the local table can be
// rebuilt from the topic.
func WithMaterializer(sink Materializer) Option {
	return func(r *Relay) {
		r.sink = sink
	}
}

// New creates a relay publishing to the given topic.
func New(source OutboxSource, producer Producer, topic string, opts ...Option) *Relay {
	r := &Relay{
		source:    source,
		producer:  producer,
		topic:     topic,
		logger:    slog.Default(),
		interval:  2 * time.Second,
		batchSize: 100,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run polls until the context is cancelled. Pass failures are logged and
// retried on the next tick, never fatal.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.drain(ctx); err != nil {
				r.logger.Error("audit relay pass failed", "error", err)
			}
		}
	}
}

// drain publishes pending outbox rows batch by batch until the outbox is
// empty or a publish fails.
func (r *Relay) drain(ctx context.Context) error {
	for {
		entries, err := r.source.UnpublishedBatch(ctx, r.batchSize)
		if err != nil {
			return fmt.Errorf("load outbox batch: %w", err)
		}
		if len(entries) == 0 {
			return nil
		}

		published := make([]uuid.UUID, 0, len(entries))
		for _, entry := range entries {
			// Key by aggregate so one property's trail stays ordered
			// within a partition.
			err := r.producer.Produce(ctx, r.topic, []byte(entry.AggregateID), entry.Payload)
			if err != nil {
				r.logger.Error("audit publish failed",
					"entry_id", entry.ID,
					"event_type", entry.EventType,
					"error", err)
				break
			}
			r.materialize(ctx, entry)
			published = append(published, entry.ID)
		}

		if err := r.source.MarkPublished(ctx, published); err != nil {
			return fmt.Errorf("mark outbox published: %w", err)
		}

		if len(published) < len(entries) || len(entries) < r.batchSize {
			return nil
		}
	}
}

// relayPayload matches the outbox payload JSON written by the postgres store.
type relayPayload struct {
	ID         string `json:"id"`
	Category   string `json:"category"`
	Timestamp  string `json:"timestamp"`
	UserID     string `json:"user_id"`
	PropertyID string `json:"property_id"`
	Subject    string `json:"subject"`
	Action     string `json:"action"`
	Detail     string `json:"detail"`
	RequestID  string `json:"request_id"`
}

func (r *Relay) materialize(ctx context.Context, entry audit.OutboxEntry) {
	if r.sink == nil {
		return
	}

	var payload relayPayload
	if err := json.Unmarshal(entry.Payload, &payload); err != nil {
		r.logger.Error("failed to unmarshal audit payload",
			"entry_id", entry.ID,
			"error", err)
		return
	}

	eventID, err := uuid.Parse(payload.ID)
	if err != nil {
		eventID = entry.ID
	}

	event := audit.Event{
		Category:  audit.EventCategory(payload.Category),
		Subject:   payload.Subject,
		Action:    payload.Action,
		Detail:    payload.Detail,
		RequestID: payload.RequestID,
	}
	if ts, err := time.Parse(time.RFC3339Nano, payload.Timestamp); err == nil {
		event.Timestamp = ts
	} else {
		event.Timestamp = time.Now()
	}
	if uid, err := uuid.Parse(payload.UserID); err == nil {
		event.UserID = id.UserID(uid)
	}
	if pid, err := uuid.Parse(payload.PropertyID); err == nil {
		event.PropertyID = id.PropertyID(pid)
	}

	if err := r.sink.AppendWithID(ctx, eventID, event); err != nil {
		r.logger.Error("failed to materialize audit event",
			"event_id", eventID,
			"action", event.Action,
			"error", err)
	}
}
