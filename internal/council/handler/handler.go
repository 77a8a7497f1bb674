package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"propertyguard/internal/council/models"
	"propertyguard/internal/council/service"
	id "propertyguard/pkg/domain"
	"propertyguard/pkg/platform/httputil"
	"propertyguard/pkg/requestcontext"
)

// Service defines the council operations the HTTP layer depends on.
type Service interface {
	ImportCouncilData(ctx context.Context, propertyID id.PropertyID, municipality string) (*service.ImportResult, error)
	Municipalities(ctx context.Context) ([]*models.Municipality, error)
}

// Handler wires council endpoints to the council service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a council handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts council endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/enhanced-properties/{propertyID}/council-import", h.HandleImport)
	r.Get("/municipalities", h.HandleMunicipalities)
}

// HandleImport handles POST /enhanced-properties/{propertyID}/council-import.
func (h *Handler) HandleImport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	propertyID, err := id.ParsePropertyID(chi.URLParam(r, "propertyID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[ImportRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.ImportCouncilData(ctx, propertyID, req.Municipality)
	if err != nil {
		h.logger.ErrorContext(ctx, "council import failed",
			"request_id", requestID,
			"property_id", propertyID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "council data imported",
		"request_id", requestID,
		"property_id", propertyID,
		"municipality", result.Municipality,
		"documents_imported", result.DocumentsImported,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, ImportResponseFrom(result))
}

// HandleMunicipalities handles GET /municipalities.
func (h *Handler) HandleMunicipalities(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	municipalities, err := h.service.Municipalities(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "municipality listing failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, MunicipalitiesResponseFrom(municipalities))
}
