package service

import (
	"context"
	"fmt"
	"log/slog"

	"propertyguard/internal/compliance/models"
	dErrors "propertyguard/pkg/domain-errors"
	audit "propertyguard/pkg/platform/audit"
	"propertyguard/pkg/requestcontext"
)

// AuditPublisher records audit events. Satisfied by audit/publisher.Publisher.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// auditEmitter wraps the publisher with the compliance module's event
// vocabulary. Compliance-category events fail closed: an emit error aborts
// the surrounding transaction. Operational events only log.
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

func (e *auditEmitter) emitItemUpdated(ctx context.Context, payload models.ItemUpdated) error {
	return e.emitCompliance(ctx, audit.EventComplianceItemUpdated, audit.Event{
		PropertyID: payload.PropertyID,
		Subject:    payload.ItemID.String(),
	})
}

func (e *auditEmitter) emitGapResolved(ctx context.Context, payload models.GapResolved) error {
	return e.emitCompliance(ctx, audit.EventGapResolved, audit.Event{
		PropertyID: payload.PropertyID,
		Subject:    payload.GapID.String(),
	})
}

func (e *auditEmitter) emitGapsDetected(ctx context.Context, payload models.GapsDetected) {
	if e.publisher == nil {
		return
	}
	event := e.stamp(ctx, audit.EventGapDetected, audit.Event{
		PropertyID: payload.PropertyID,
		Detail:     fmt.Sprintf("%d new gaps", payload.Count),
	})
	if err := e.publisher.Emit(ctx, event); err != nil {
		e.logger.ErrorContext(ctx, "audit emit failed",
			"action", event.Action,
			"error", err)
	}
}

func (e *auditEmitter) emitCompliance(ctx context.Context, action audit.AuditEvent, event audit.Event) error {
	if e.publisher == nil {
		return nil
	}
	event = e.stamp(ctx, action, event)
	if err := e.publisher.Emit(ctx, event); err != nil {
		e.logger.ErrorContext(ctx, "audit emit failed",
			"action", event.Action,
			"error", err)
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record audit event")
	}
	return nil
}

func (e *auditEmitter) stamp(ctx context.Context, action audit.AuditEvent, event audit.Event) audit.Event {
	event.Category = action.Category()
	event.Action = string(action)
	event.Timestamp = requestcontext.Now(ctx)
	event.UserID = requestcontext.UserID(ctx)
	event.RequestID = requestcontext.RequestID(ctx)
	return event
}
