package service

import (
	"context"
	"fmt"
	"log/slog"

	id "propertyguard/pkg/domain"
	audit "propertyguard/pkg/platform/audit"
	"propertyguard/pkg/requestcontext"
)

// AuditPublisher records audit events. Satisfied by audit/publisher.Publisher.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// auditEmitter wraps the publisher with the council module's event
// vocabulary. Imports are operational events and fail open: a dropped audit
// record never rolls back an import.
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

func (e *auditEmitter) emitCouncilImported(ctx context.Context, propertyID id.PropertyID, municipality string, documentsImported int) {
	if e.publisher == nil {
		return
	}
	action := audit.EventCouncilDataImported
	event := audit.Event{
		Category:   action.Category(),
		Action:     string(action),
		Timestamp:  requestcontext.Now(ctx),
		UserID:     requestcontext.UserID(ctx),
		PropertyID: propertyID,
		Subject:    municipality,
		Detail:     fmt.Sprintf("%d council documents imported", documentsImported),
		RequestID:  requestcontext.RequestID(ctx),
	}
	if err := e.publisher.Emit(ctx, event); err != nil {
		e.logger.ErrorContext(ctx, "audit emit failed",
			"action", event.Action,
			"error", err)
	}
}
