package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"propertyguard/internal/compliance/models"
	"propertyguard/internal/compliance/service"
	id "propertyguard/pkg/domain"
	"propertyguard/pkg/platform/httputil"
	"propertyguard/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/compliance-mocks.go -package=mocks Service

// Service defines the compliance operations the HTTP layer depends on.
type Service interface {
	UpdateItem(ctx context.Context, propertyID id.PropertyID, itemID id.ItemID, update models.ItemUpdate) (*models.ComplianceItem, float64, error)
	ResolveGap(ctx context.Context, propertyID id.PropertyID, gapID id.GapID, res models.GapResolution) (*models.DocumentationGap, float64, error)
	ScoreReport(ctx context.Context, propertyID id.PropertyID) (*service.ScoreReport, error)
}

// Handler wires compliance endpoints to the compliance service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a compliance handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts compliance endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Put("/enhanced-properties/{propertyID}/compliance-items/{itemID}", h.HandleUpdateItem)
	r.Put("/enhanced-properties/{propertyID}/documentation-gaps/{gapID}/resolve", h.HandleResolveGap)
	r.Get("/enhanced-properties/{propertyID}/documentation-score", h.HandleScore)
}

// HandleUpdateItem handles PUT /enhanced-properties/{propertyID}/compliance-items/{itemID}.
func (h *Handler) HandleUpdateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	propertyID, err := id.ParsePropertyID(chi.URLParam(r, "propertyID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	itemID, err := id.ParseItemID(chi.URLParam(r, "itemID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpdateItemRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	_, score, err := h.service.UpdateItem(ctx, propertyID, itemID, req.ParsedUpdate())
	if err != nil {
		h.logger.ErrorContext(ctx, "compliance item update failed",
			"request_id", requestID,
			"property_id", propertyID,
			"item_id", itemID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "compliance item updated",
		"request_id", requestID,
		"property_id", propertyID,
		"item_id", itemID,
		"new_score", score,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, &MutationResponse{
		Success:               true,
		Message:               "Compliance item updated successfully",
		NewDocumentationScore: score,
	})
}

// HandleResolveGap handles PUT /enhanced-properties/{propertyID}/documentation-gaps/{gapID}/resolve.
func (h *Handler) HandleResolveGap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	propertyID, err := id.ParsePropertyID(chi.URLParam(r, "propertyID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	gapID, err := id.ParseGapID(chi.URLParam(r, "gapID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[ResolveGapRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	_, score, err := h.service.ResolveGap(ctx, propertyID, gapID, req.Resolution())
	if err != nil {
		h.logger.ErrorContext(ctx, "documentation gap resolution failed",
			"request_id", requestID,
			"property_id", propertyID,
			"gap_id", gapID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "documentation gap resolved",
		"request_id", requestID,
		"property_id", propertyID,
		"gap_id", gapID,
		"new_score", score,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, &MutationResponse{
		Success:               true,
		Message:               "Documentation gap resolved successfully",
		NewDocumentationScore: score,
	})
}

// HandleScore handles GET /enhanced-properties/{propertyID}/documentation-score.
func (h *Handler) HandleScore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	propertyID, err := id.ParsePropertyID(chi.URLParam(r, "propertyID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	report, err := h.service.ScoreReport(ctx, propertyID)
	if err != nil {
		h.logger.ErrorContext(ctx, "documentation score read failed",
			"request_id", requestID,
			"property_id", propertyID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromReport(report))
}
