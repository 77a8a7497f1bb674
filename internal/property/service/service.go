package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"propertyguard/internal/compliance"
	compliancemodels "propertyguard/internal/compliance/models"
	councilmodels "propertyguard/internal/council/models"
	propertymetrics "propertyguard/internal/property/metrics"
	"propertyguard/internal/property/models"
	id "propertyguard/pkg/domain"
	dErrors "propertyguard/pkg/domain-errors"
	"propertyguard/pkg/requestcontext"
)

// PropertyStore persists the property aggregate.
type PropertyStore interface {
	Create(ctx context.Context, property *models.Property) error
	FindByID(ctx context.Context, propertyID id.PropertyID) (*models.Property, error)
}

// ResponsibilityStore persists shared responsibility splits.
type ResponsibilityStore interface {
	Create(ctx context.Context, responsibility *models.SharedResponsibility) error
	ListByProperty(ctx context.Context, propertyID id.PropertyID) ([]*models.SharedResponsibility, error)
}

// ComplianceEngine is the slice of the compliance service property
// operations drive: seeding on creation, then gap detection and scoring,
// plus the item and gap listings the detail view shows.
type ComplianceEngine interface {
	SeedItems(ctx context.Context, propertyID id.PropertyID, class compliance.Classification) ([]*compliancemodels.ComplianceItem, error)
	DetectGaps(ctx context.Context, propertyID id.PropertyID) ([]*compliancemodels.DocumentationGap, error)
	Score(ctx context.Context, propertyID id.PropertyID) (float64, error)
	ItemsForProperty(ctx context.Context, propertyID id.PropertyID) ([]*compliancemodels.ComplianceItem, error)
	UnresolvedGaps(ctx context.Context, propertyID id.PropertyID) ([]*compliancemodels.DocumentationGap, error)
}

// CouncilDocuments reads the council records shown on the property detail.
type CouncilDocuments interface {
	DocumentsForProperty(ctx context.Context, propertyID id.PropertyID) ([]*councilmodels.CouncilDocument, error)
}

// PropertyService owns the property aggregate: creation with compliance
// seeding, the detail view, and shared responsibility splits.
type PropertyService struct {
	properties       PropertyStore
	responsibilities ResponsibilityStore
	compliance       ComplianceEngine
	council          CouncilDocuments
	auditEmitter     *auditEmitter
	metrics          *propertymetrics.Metrics
	tx               StoreTx
}

func NewPropertyService(
	properties PropertyStore,
	responsibilities ResponsibilityStore,
	complianceEngine ComplianceEngine,
	council CouncilDocuments,
	opts ...Option,
) *PropertyService {
	cfg := &serviceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	tx := cfg.tx
	if tx == nil {
		tx = newInMemoryStoreTx()
	}
	return &PropertyService{
		properties:       properties,
		responsibilities: responsibilities,
		compliance:       complianceEngine,
		council:          council,
		auditEmitter:     newAuditEmitter(cfg.logger, cfg.auditPublisher),
		metrics:          cfg.metrics,
		tx:               tx,
	}
}

// CreateResult is what property creation hands back to the HTTP layer.
type CreateResult struct {
	Property    *models.Property
	ItemsSeeded int
}

// Create inserts the property and runs the full compliance bootstrap in one
// transaction: seed one item per applicable requirement, record the initial
// documentation gaps, compute and persist the first score. Either all of it
// lands or none of it does.
func (s *PropertyService) Create(ctx context.Context, in models.NewPropertyInput) (*CreateResult, error) {
	start := time.Now()
	now := requestcontext.Now(ctx)
	property, err := models.NewProperty(id.PropertyID(uuid.New()), in, now)
	if err != nil {
		return nil, err
	}

	var itemsSeeded int
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.properties.Create(txCtx, property); err != nil {
			return wrapPropertyErr(err)
		}

		items, err := s.compliance.SeedItems(txCtx, property.ID, property.Classification())
		if err != nil {
			return err
		}
		itemsSeeded = len(items)

		if _, err := s.compliance.DetectGaps(txCtx, property.ID); err != nil {
			return err
		}

		score, err := s.compliance.Score(txCtx, property.ID)
		if err != nil {
			return err
		}
		property.DocumentationScore = score

		return s.auditEmitter.emitPropertyCreated(txCtx, models.PropertyCreated{
			PropertyID:  property.ID,
			Name:        property.Name,
			ItemsSeeded: itemsSeeded,
		})
	})
	if err != nil {
		return nil, err
	}

	s.incrementCreated()
	s.observeCreate(start)
	return &CreateResult{Property: property, ItemsSeeded: itemsSeeded}, nil
}

// Detail is the full property view: the aggregate plus everything hanging
// off it. DocumentationGaps carries only unresolved rows; resolved history
// stays out of the detail read.
type Detail struct {
	Property               *models.Property
	ComplianceItems        []*compliancemodels.ComplianceItem
	SharedResponsibilities []*models.SharedResponsibility
	CouncilDocuments       []*councilmodels.CouncilDocument
	DocumentationGaps      []*compliancemodels.DocumentationGap
}

// Get assembles the property detail. The four child listings are
// independent reads and run concurrently.
func (s *PropertyService) Get(ctx context.Context, propertyID id.PropertyID) (*Detail, error) {
	if err := requirePropertyID(propertyID); err != nil {
		return nil, err
	}

	property, err := s.properties.FindByID(ctx, propertyID)
	if err != nil {
		return nil, wrapPropertyErr(err)
	}

	detail := &Detail{Property: property}
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.compliance.ItemsForProperty(gCtx, propertyID)
		if err != nil {
			return err
		}
		detail.ComplianceItems = items
		return nil
	})
	g.Go(func() error {
		responsibilities, err := s.responsibilities.ListByProperty(gCtx, propertyID)
		if err != nil {
			return wrapResponsibilityErr(err)
		}
		detail.SharedResponsibilities = responsibilities
		return nil
	})
	g.Go(func() error {
		documents, err := s.council.DocumentsForProperty(gCtx, propertyID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load council documents")
		}
		detail.CouncilDocuments = documents
		return nil
	})
	g.Go(func() error {
		gaps, err := s.compliance.UnresolvedGaps(gCtx, propertyID)
		if err != nil {
			return err
		}
		detail.DocumentationGaps = gaps
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return detail, nil
}

// AddSharedResponsibility records a responsibility split for an existing
// property.
func (s *PropertyService) AddSharedResponsibility(ctx context.Context, propertyID id.PropertyID, in models.NewResponsibilityInput) (*models.SharedResponsibility, error) {
	if err := requirePropertyID(propertyID); err != nil {
		return nil, err
	}
	if _, err := s.properties.FindByID(ctx, propertyID); err != nil {
		return nil, wrapPropertyErr(err)
	}

	responsibility, err := models.NewSharedResponsibility(
		id.ResponsibilityID(uuid.New()),
		propertyID,
		in,
		requestcontext.Now(ctx),
	)
	if err != nil {
		return nil, err
	}

	if err := s.responsibilities.Create(ctx, responsibility); err != nil {
		return nil, wrapResponsibilityErr(err)
	}

	s.auditEmitter.emitResponsibilityAdded(ctx, models.ResponsibilityAdded{
		PropertyID:       propertyID,
		ResponsibilityID: responsibility.ID,
		AreaOrSystem:     responsibility.AreaOrSystem,
	})
	s.incrementResponsibilityAdded()
	return responsibility, nil
}

func (s *PropertyService) incrementCreated() {
	if s.metrics != nil {
		s.metrics.IncrementCreated()
	}
}

func (s *PropertyService) observeCreate(start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveCreate(start)
	}
}

func (s *PropertyService) incrementResponsibilityAdded() {
	if s.metrics != nil {
		s.metrics.IncrementResponsibilityAdded()
	}
}
