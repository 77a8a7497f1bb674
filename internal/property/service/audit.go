package service

import (
	"context"
	"fmt"
	"log/slog"

	"propertyguard/internal/property/models"
	dErrors "propertyguard/pkg/domain-errors"
	audit "propertyguard/pkg/platform/audit"
	"propertyguard/pkg/requestcontext"
)

// AuditPublisher records audit events. Satisfied by audit/publisher.Publisher.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// auditEmitter wraps the publisher with the property module's event
// vocabulary. Property creation is a compliance-category event and fails
// closed; responsibility changes are operational and only log.
type auditEmitter struct {
	logger    *slog.Logger
	publisher AuditPublisher
}

func newAuditEmitter(logger *slog.Logger, publisher AuditPublisher) *auditEmitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &auditEmitter{logger: logger, publisher: publisher}
}

func (e *auditEmitter) emitPropertyCreated(ctx context.Context, payload models.PropertyCreated) error {
	if e.publisher == nil {
		return nil
	}
	event := e.stamp(ctx, audit.EventPropertyCreated, audit.Event{
		PropertyID: payload.PropertyID,
		Subject:    payload.Name,
		Detail:     fmt.Sprintf("%d compliance items seeded", payload.ItemsSeeded),
	})
	if err := e.publisher.Emit(ctx, event); err != nil {
		e.logger.ErrorContext(ctx, "audit emit failed",
			"action", event.Action,
			"error", err)
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record audit event")
	}
	return nil
}

func (e *auditEmitter) emitResponsibilityAdded(ctx context.Context, payload models.ResponsibilityAdded) {
	if e.publisher == nil {
		return
	}
	event := e.stamp(ctx, audit.EventResponsibilityAdded, audit.Event{
		PropertyID: payload.PropertyID,
		Subject:    payload.AreaOrSystem,
		Detail:     payload.ResponsibilityID.String(),
	})
	if err := e.publisher.Emit(ctx, event); err != nil {
		e.logger.ErrorContext(ctx, "audit emit failed",
			"action", event.Action,
			"error", err)
	}
}

func (e *auditEmitter) stamp(ctx context.Context, action audit.AuditEvent, event audit.Event) audit.Event {
	event.Category = action.Category()
	event.Action = string(action)
	event.Timestamp = requestcontext.Now(ctx)
	event.UserID = requestcontext.UserID(ctx)
	event.RequestID = requestcontext.RequestID(ctx)
	return event
}
