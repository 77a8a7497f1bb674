package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"propertyguard/internal/property/models"
	"propertyguard/internal/property/service"
	id "propertyguard/pkg/domain"
	"propertyguard/pkg/platform/httputil"
	"propertyguard/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/property-mocks.go -package=mocks Service

// Service defines the property operations the HTTP layer depends on.
type Service interface {
	Create(ctx context.Context, in models.NewPropertyInput) (*service.CreateResult, error)
	Get(ctx context.Context, propertyID id.PropertyID) (*service.Detail, error)
	AddSharedResponsibility(ctx context.Context, propertyID id.PropertyID, in models.NewResponsibilityInput) (*models.SharedResponsibility, error)
}

// Handler wires property endpoints to the property service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a property handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts property endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/property-types", h.HandleCatalog)
	r.Post("/enhanced-properties", h.HandleCreate)
	r.Get("/enhanced-properties/{propertyID}", h.HandleGet)
	r.Post("/enhanced-properties/{propertyID}/shared-responsibilities", h.HandleAddResponsibility)
}

// HandleCatalog handles GET /property-types. The catalog is static and needs
// no service round trip.
func (h *Handler) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, ClassificationCatalog())
}

// HandleCreate handles POST /enhanced-properties.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[CreatePropertyRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Create(ctx, req.ParsedInput())
	if err != nil {
		h.logger.ErrorContext(ctx, "property creation failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "property created",
		"request_id", requestID,
		"property_id", result.Property.ID,
		"property_type", result.Property.PropertyType,
		"items_seeded", result.ItemsSeeded,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusCreated, &CreateResponse{
		Success:                true,
		PropertyID:             result.Property.ID.String(),
		Message:                "Enhanced property created successfully",
		ComplianceItemsCreated: result.ItemsSeeded,
	})
}

// HandleGet handles GET /enhanced-properties/{propertyID}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	propertyID, err := id.ParsePropertyID(chi.URLParam(r, "propertyID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	detail, err := h.service.Get(ctx, propertyID)
	if err != nil {
		h.logger.ErrorContext(ctx, "property read failed",
			"request_id", requestID,
			"property_id", propertyID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, DetailResponseFrom(detail))
}

// HandleAddResponsibility handles POST /enhanced-properties/{propertyID}/shared-responsibilities.
func (h *Handler) HandleAddResponsibility(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	propertyID, err := id.ParsePropertyID(chi.URLParam(r, "propertyID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[AddResponsibilityRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	responsibility, err := h.service.AddSharedResponsibility(ctx, propertyID, req.Input())
	if err != nil {
		h.logger.ErrorContext(ctx, "shared responsibility add failed",
			"request_id", requestID,
			"property_id", propertyID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "shared responsibility added",
		"request_id", requestID,
		"property_id", propertyID,
		"responsibility_id", responsibility.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, &ResponsibilityResponse{
		Success:                true,
		Message:                "Shared responsibility added successfully",
		SharedResponsibilityID: responsibility.ID.String(),
	})
}
