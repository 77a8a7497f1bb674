// Package publisher is the single entry point services use to record
// audit events. It wraps an audit.Store and optionally decouples callers
// from store latency with a buffered async mode.
package publisher

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	id "propertyguard/pkg/domain"
	audit "propertyguard/pkg/platform/audit"
)

// ErrBufferFull is returned by Emit in async mode when the buffer has no
// room and the caller's context is still live.
var ErrBufferFull = errors.New("audit buffer full")

// Publisher records audit events through an audit.Store. In sync mode
// (default) Emit writes through immediately; with WithAsyncBuffer the write
// happens on a background goroutine and Emit only enqueues.
type Publisher struct {
	store  audit.Store
	logger *slog.Logger

	ch        chan audit.Event
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithLogger sets the logger used to report async store failures.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithAsyncBuffer switches the publisher to async mode with the given
// buffer size. Events that cannot be enqueued are dropped with
// ErrBufferFull rather than blocking the request path.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		p.ch = make(chan audit.Event, size)
	}
}

// NewPublisher creates a Publisher over the given store.
func NewPublisher(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{
		store:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.ch != nil {
		p.wg.Add(1)
		go p.run()
	}
	return p
}

func (p *Publisher) run() {
	defer p.wg.Done()
	for event := range p.ch {
		if err := p.store.Append(context.Background(), event); err != nil {
			p.logger.Error("audit append failed",
				"action", event.Action,
				"error", err)
		}
	}
}

// Emit records an audit event. The timestamp defaults to now when unset.
// In sync mode a store failure is returned to the caller; in async mode
// Emit returns once the event is enqueued.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.Action == "" {
		return errors.New("audit event requires an action")
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.Category == "" {
		event.Category = audit.AuditEvent(event.Action).Category()
	}

	if p.ch == nil {
		return p.store.Append(ctx, event)
	}

	select {
	case p.ch <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrBufferFull
	}
}

// List returns the audit trail for one property.
func (p *Publisher) List(ctx context.Context, propertyID id.PropertyID) ([]audit.Event, error) {
	return p.store.ListByProperty(ctx, propertyID)
}

// Close drains any buffered events and stops the background worker. Safe to
// call multiple times and in sync mode.
func (p *Publisher) Close() {
	p.closeOnce.Do(func() {
		if p.ch != nil {
			close(p.ch)
			p.wg.Wait()
		}
	})
}
