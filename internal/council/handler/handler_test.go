package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"propertyguard/internal/council/service"
	"propertyguard/internal/council/store"
	documentstore "propertyguard/internal/council/store/document"
	municipalitystore "propertyguard/internal/council/store/municipality"
	id "propertyguard/pkg/domain"
	"propertyguard/pkg/platform/sentinel"
)

type stubRegistry struct {
	propertyID id.PropertyID
	imported   bool
}

func (r *stubRegistry) CouncilProfile(_ context.Context, propertyID id.PropertyID) (service.CouncilProfile, error) {
	if propertyID != r.propertyID {
		return service.CouncilProfile{}, sentinel.ErrNotFound
	}
	yearBuilt := 1998
	return service.CouncilProfile{ErfNumber: "12345", YearBuilt: &yearBuilt}, nil
}

func (r *stubRegistry) MarkCouncilImported(_ context.Context, propertyID id.PropertyID, _ time.Time) error {
	if propertyID != r.propertyID {
		return sentinel.ErrNotFound
	}
	r.imported = true
	return nil
}

func newCouncilRouter(t *testing.T) (http.Handler, *stubRegistry) {
	t.Helper()
	documents := documentstore.NewInMemory()
	municipalities := municipalitystore.NewInMemory()
	if err := store.SeedMunicipalities(context.Background(), municipalities); err != nil {
		t.Fatalf("seed municipalities: %v", err)
	}
	registry := &stubRegistry{propertyID: id.PropertyID(uuid.New())}
	svc := service.NewCouncilService(documents, municipalities, registry)
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	h := New(svc, logger)
	r := chi.NewRouter()
	h.Register(r)
	return r, registry
}

func TestImportCouncilDataViaHandler(t *testing.T) {
	router, registry := newCouncilRouter(t)

	body, _ := json.Marshal(map[string]string{"municipality": "City of Cape Town"})
	req := httptest.NewRequest(http.MethodPost, "/enhanced-properties/"+registry.propertyID.String()+"/council-import", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 importing council data, got %d", rec.Code)
	}

	var resp struct {
		Success           bool   `json:"success"`
		Message           string `json:"message"`
		DocumentsImported int    `json:"documents_imported"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode import response: %v", err)
	}
	if !resp.Success {
		t.Fatalf("expected success true")
	}
	if resp.Message != "Council data imported successfully for City of Cape Town" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
	if resp.DocumentsImported != 2 {
		t.Fatalf("expected 2 documents imported, got %d", resp.DocumentsImported)
	}
	if !registry.imported {
		t.Fatalf("expected property to be stamped as imported")
	}
}

func TestImportDefaultsMunicipality(t *testing.T) {
	router, registry := newCouncilRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/enhanced-properties/"+registry.propertyID.String()+"/council-import", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 importing without municipality, got %d", rec.Code)
	}

	var resp struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode import response: %v", err)
	}
	if resp.Message != "Council data imported successfully for Unknown Municipality" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
}

func TestImportUnknownProperty(t *testing.T) {
	router, _ := newCouncilRouter(t)

	body, _ := json.Marshal(map[string]string{"municipality": "City of Cape Town"})
	req := httptest.NewRequest(http.MethodPost, "/enhanced-properties/"+uuid.NewString()+"/council-import", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown property, got %d", rec.Code)
	}
}

func TestImportMalformedPropertyID(t *testing.T) {
	router, _ := newCouncilRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/enhanced-properties/42/council-import", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed property id, got %d", rec.Code)
	}
}

func TestImportRejectsOverlongMunicipality(t *testing.T) {
	router, registry := newCouncilRouter(t)

	body, _ := json.Marshal(map[string]string{"municipality": strings.Repeat("x", 101)})
	req := httptest.NewRequest(http.MethodPost, "/enhanced-properties/"+registry.propertyID.String()+"/council-import", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for overlong municipality, got %d", rec.Code)
	}
}

func TestMunicipalityDirectory(t *testing.T) {
	router, _ := newCouncilRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/municipalities", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 listing municipalities, got %d", rec.Code)
	}

	var resp struct {
		Municipalities []map[string]any `json:"municipalities"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode municipalities response: %v", err)
	}
	if len(resp.Municipalities) != 5 {
		t.Fatalf("expected 5 seeded municipalities, got %d", len(resp.Municipalities))
	}

	first := resp.Municipalities[0]
	if first["name"] != "City of Cape Town" {
		t.Fatalf("expected City of Cape Town first, got %v", first["name"])
	}
	if first["integration_status"] != "manual" {
		t.Fatalf("expected manual integration status, got %v", first["integration_status"])
	}
	if first["has_building_plans"] != true {
		t.Fatalf("expected building plan capability for Cape Town")
	}
	if first["last_sync_date"] != nil {
		t.Fatalf("expected null last_sync_date before any sync, got %v", first["last_sync_date"])
	}
	if _, leaked := first["contact_email"]; leaked {
		t.Fatalf("contact details must not appear in the directory listing")
	}
}
