package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	councilmetrics "propertyguard/internal/council/metrics"
	"propertyguard/internal/council/models"
	id "propertyguard/pkg/domain"
	dErrors "propertyguard/pkg/domain-errors"
	"propertyguard/pkg/requestcontext"
)

// DocumentStore persists council documents.
type DocumentStore interface {
	CreateBatch(ctx context.Context, documents []*models.CouncilDocument) error
	ListByProperty(ctx context.Context, propertyID id.PropertyID) ([]*models.CouncilDocument, error)
}

// MunicipalityStore reads the municipality integration directory.
type MunicipalityStore interface {
	List(ctx context.Context) ([]*models.Municipality, error)
}

// CouncilProfile is the council view of a property row: the identifiers
// council reference numbers are built from.
type CouncilProfile struct {
	ErfNumber           string
	YearBuilt           *int
	CouncilDataImported bool
}

// PropertyRegistry is the slice of the property module council import reads
// and stamps.
type PropertyRegistry interface {
	CouncilProfile(ctx context.Context, propertyID id.PropertyID) (CouncilProfile, error)
	MarkCouncilImported(ctx context.Context, propertyID id.PropertyID, importedAt time.Time) error
}

// DefaultMunicipality is used when an import names no municipality.
const DefaultMunicipality = "Unknown Municipality"

// CouncilService imports municipal records for properties and serves the
// municipality integration directory.
type CouncilService struct {
	documents      DocumentStore
	municipalities MunicipalityStore
	properties     PropertyRegistry
	auditEmitter   *auditEmitter
	metrics        *councilmetrics.Metrics
	tx             StoreTx
}

func NewCouncilService(documents DocumentStore, municipalities MunicipalityStore, properties PropertyRegistry, opts ...Option) *CouncilService {
	cfg := &serviceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	tx := cfg.tx
	if tx == nil {
		tx = newInMemoryStoreTx()
	}
	return &CouncilService{
		documents:      documents,
		municipalities: municipalities,
		properties:     properties,
		auditEmitter:   newAuditEmitter(cfg.logger, cfg.auditPublisher),
		metrics:        cfg.metrics,
		tx:             tx,
	}
}

// ImportResult summarizes one council import.
type ImportResult struct {
	Municipality      string
	DocumentsImported int
}

// ImportCouncilData records council documents for a property and stamps the
// property as imported. No municipal API integration exists yet, so the
// import produces the standard record pair every council holds: the approved
// building plan and the surveyed stand plan. Imports are append-only;
// re-importing adds another pair rather than replacing the first.
func (s *CouncilService) ImportCouncilData(ctx context.Context, propertyID id.PropertyID, municipality string) (*ImportResult, error) {
	if propertyID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "property id is required")
	}
	municipality = strings.TrimSpace(municipality)
	if municipality == "" {
		municipality = DefaultMunicipality
	}

	profile, err := s.properties.CouncilProfile(ctx, propertyID)
	if err != nil {
		return nil, wrapPropertyErr(err)
	}

	now := requestcontext.Now(ctx)
	documents := standardImportDocuments(propertyID, profile, municipality, now)

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.documents.CreateBatch(txCtx, documents); err != nil {
			return wrapDocumentErr(err)
		}
		if err := s.properties.MarkCouncilImported(txCtx, propertyID, now); err != nil {
			return wrapPropertyErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.auditEmitter.emitCouncilImported(ctx, propertyID, municipality, len(documents))
	s.addDocumentsImported(len(documents))

	return &ImportResult{
		Municipality:      municipality,
		DocumentsImported: len(documents),
	}, nil
}

// DocumentsForProperty lists the council records attached to a property.
func (s *CouncilService) DocumentsForProperty(ctx context.Context, propertyID id.PropertyID) ([]*models.CouncilDocument, error) {
	documents, err := s.documents.ListByProperty(ctx, propertyID)
	if err != nil {
		return nil, wrapDocumentErr(err)
	}
	return documents, nil
}

// Municipalities lists the municipality integration directory.
func (s *CouncilService) Municipalities(ctx context.Context) ([]*models.Municipality, error) {
	municipalities, err := s.municipalities.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "municipality directory failure")
	}
	return municipalities, nil
}

// standardImportDocuments builds the record pair a manual import produces.
// Reference numbers derive from the erf number and, for building plans, the
// construction year when known.
func standardImportDocuments(propertyID id.PropertyID, profile CouncilProfile, municipality string, now time.Time) []*models.CouncilDocument {
	yearRef := "UNKNOWN"
	if profile.YearBuilt != nil {
		yearRef = strconv.Itoa(*profile.YearBuilt)
	}

	buildingPlan := newImportedDocument(propertyID, municipality, now)
	buildingPlan.DocumentType = models.DocumentTypeBuildingPlan
	buildingPlan.DocumentName = fmt.Sprintf("Original Building Plan - %s", profile.ErfNumber)
	buildingPlan.Description = "Original approved building plans from council records"
	buildingPlan.ReferenceNumber = fmt.Sprintf("BP-%s-%s", profile.ErfNumber, yearRef)

	standPlan := newImportedDocument(propertyID, municipality, now)
	standPlan.DocumentType = models.DocumentTypeStandPlan
	standPlan.DocumentName = fmt.Sprintf("Stand Plan - Erf %s", profile.ErfNumber)
	standPlan.Description = "Official surveyed stand boundaries and measurements"
	standPlan.ReferenceNumber = fmt.Sprintf("SP-%s", profile.ErfNumber)

	return []*models.CouncilDocument{buildingPlan, standPlan}
}

func newImportedDocument(propertyID id.PropertyID, municipality string, now time.Time) *models.CouncilDocument {
	return &models.CouncilDocument{
		ID:           id.DocumentID(uuid.New()),
		PropertyID:   propertyID,
		Municipality: municipality,
		ImportMethod: models.ImportMethodManual,
		ImportDate:   now,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (s *CouncilService) addDocumentsImported(n int) {
	if s.metrics != nil {
		s.metrics.AddDocumentsImported(n)
	}
}
