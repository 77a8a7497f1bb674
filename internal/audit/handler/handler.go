// Package handler serves the audit trail read surface. Events are written
// by the domain services through the platform audit publisher; this module
// only reads what the trail already holds.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	id "propertyguard/pkg/domain"
	dErrors "propertyguard/pkg/domain-errors"
	audit "propertyguard/pkg/platform/audit"
	"propertyguard/pkg/platform/httputil"
	"propertyguard/pkg/requestcontext"
)

const (
	defaultRecentLimit = 50
	maxRecentLimit     = 200
)

// Trail is the read slice of the audit store.
type Trail interface {
	ListByProperty(ctx context.Context, propertyID id.PropertyID) ([]audit.Event, error)
	ListRecent(ctx context.Context, limit int) ([]audit.Event, error)
}

// Handler wires audit trail endpoints to the audit store.
type Handler struct {
	trail  Trail
	logger *slog.Logger
}

// New constructs an audit handler with its dependencies.
func New(trail Trail, logger *slog.Logger) *Handler {
	return &Handler{
		trail:  trail,
		logger: logger,
	}
}

// Register mounts audit endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/enhanced-properties/{propertyID}/audit-events", h.HandlePropertyTrail)
	r.Get("/audit-events", h.HandleRecent)
}

// HandlePropertyTrail handles GET /enhanced-properties/{propertyID}/audit-events.
// A property with no recorded events yields an empty trail; the store does
// not distinguish that from an unknown property.
func (h *Handler) HandlePropertyTrail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	propertyID, err := id.ParsePropertyID(chi.URLParam(r, "propertyID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	events, err := h.trail.ListByProperty(ctx, propertyID)
	if err != nil {
		h.logger.ErrorContext(ctx, "audit trail read failed",
			"request_id", requestID,
			"property_id", propertyID,
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "audit trail unavailable"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, TrailResponseFrom(events))
}

// HandleRecent handles GET /audit-events. The limit query parameter bounds
// the page, defaulting to 50 and capped at 200.
func (h *Handler) HandleRecent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	limit := defaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "limit must be a positive integer"))
			return
		}
		limit = parsed
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	events, err := h.trail.ListRecent(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "recent audit events read failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "audit trail unavailable"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, TrailResponseFrom(events))
}
