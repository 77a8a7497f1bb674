package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"propertyguard/internal/compliance"
	compliancemetrics "propertyguard/internal/compliance/metrics"
	"propertyguard/internal/compliance/models"
	id "propertyguard/pkg/domain"
	dErrors "propertyguard/pkg/domain-errors"
	"propertyguard/pkg/requestcontext"
)

// ItemStore persists compliance items.
type ItemStore interface {
	CreateBatch(ctx context.Context, items []*models.ComplianceItem) error
	FindByID(ctx context.Context, itemID id.ItemID) (*models.ComplianceItem, error)
	ListByProperty(ctx context.Context, propertyID id.PropertyID) ([]*models.ComplianceItem, error)
	Update(ctx context.Context, item *models.ComplianceItem) error
}

// GapStore persists documentation gaps.
type GapStore interface {
	CreateBatch(ctx context.Context, gaps []*models.DocumentationGap) error
	FindByID(ctx context.Context, gapID id.GapID) (*models.DocumentationGap, error)
	ListByProperty(ctx context.Context, propertyID id.PropertyID) ([]*models.DocumentationGap, error)
	Update(ctx context.Context, gap *models.DocumentationGap) error
}

// PropertySnapshot is the compliance view of a property row.
type PropertySnapshot struct {
	Classification      compliance.Classification
	CouncilDataImported bool
	UpdatedAt           time.Time
}

// PropertyStore exposes the property fields compliance reads and the one
// column it writes.
type PropertyStore interface {
	Snapshot(ctx context.Context, propertyID id.PropertyID) (PropertySnapshot, error)
	UpdateDocumentationScore(ctx context.Context, propertyID id.PropertyID, score float64, updatedAt time.Time) error
}

// ComplianceService resolves requirements, scores documentation completeness
// and tracks documentation gaps for properties.
type ComplianceService struct {
	items        ItemStore
	gaps         GapStore
	properties   PropertyStore
	auditEmitter *auditEmitter
	metrics      *compliancemetrics.Metrics
	tx           StoreTx
}

func NewComplianceService(items ItemStore, gaps GapStore, properties PropertyStore, opts ...Option) *ComplianceService {
	cfg := &serviceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	tx := cfg.tx
	if tx == nil {
		tx = newInMemoryStoreTx()
	}
	return &ComplianceService{
		items:        items,
		gaps:         gaps,
		properties:   properties,
		auditEmitter: newAuditEmitter(cfg.logger, cfg.auditPublisher),
		metrics:      cfg.metrics,
		tx:           tx,
	}
}

// SeedItems creates one compliance item per applicable requirement for a
// freshly created property. Runs in the caller's context so property
// creation can hold all writes in one transaction. Unmapped classifications
// seed nothing.
func (s *ComplianceService) SeedItems(ctx context.Context, propertyID id.PropertyID, class compliance.Classification) ([]*models.ComplianceItem, error) {
	if err := requirePropertyID(propertyID); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	required := compliance.RequirementsFor(class)

	items := make([]*models.ComplianceItem, 0, len(required))
	for _, req := range required {
		item, err := models.NewComplianceItem(
			id.ItemID(uuid.New()),
			propertyID,
			req.Name,
			req.Category,
			compliance.ResponsibleParty(req),
			req.IndividualResponsibility,
			now,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := s.items.CreateBatch(ctx, items); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to seed compliance items")
	}
	return items, nil
}

// Score computes the documentation completeness percentage and persists it
// on the property row. The stored value is overwritten on every call, so
// repeated calls with unchanged rows are idempotent.
//
// The denominator is the number of applicable requirements, not the number
// of persisted items; ScoreReport's item breakdown divides by persisted
// items instead. The two disagree whenever the item set has drifted from
// the rule table.
func (s *ComplianceService) Score(ctx context.Context, propertyID id.PropertyID) (float64, error) {
	start := time.Now()
	if err := requirePropertyID(propertyID); err != nil {
		return 0, err
	}

	snap, err := s.properties.Snapshot(ctx, propertyID)
	if err != nil {
		return 0, wrapPropertyErr(err)
	}

	score, err := s.computeScore(ctx, propertyID, snap.Classification)
	if err != nil {
		return 0, err
	}

	if err := s.properties.UpdateDocumentationScore(ctx, propertyID, score, requestcontext.Now(ctx)); err != nil {
		return 0, wrapPropertyErr(err)
	}

	s.observeScore(start)
	return score, nil
}

// computeScore counts compliant items against the rule table. An empty rule
// table means vacuous compliance: 100.
func (s *ComplianceService) computeScore(ctx context.Context, propertyID id.PropertyID, class compliance.Classification) (float64, error) {
	required := compliance.RequirementsFor(class)
	if len(required) == 0 {
		return 100, nil
	}

	items, err := s.items.ListByProperty(ctx, propertyID)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load compliance items")
	}

	compliant := 0
	for _, item := range items {
		if item.IsCompliant {
			compliant++
		}
	}
	return float64(compliant) / float64(len(required)) * 100, nil
}

// DetectGaps records a gap row for every applicable requirement with no
// compliance item of the same name, whatever that item's compliance status.
// Detection is append-only and does not dedupe against earlier gap rows;
// re-running while a requirement is still missing records it again. Returns
// only the gaps created by this call.
func (s *ComplianceService) DetectGaps(ctx context.Context, propertyID id.PropertyID) ([]*models.DocumentationGap, error) {
	if err := requirePropertyID(propertyID); err != nil {
		return nil, err
	}

	snap, err := s.properties.Snapshot(ctx, propertyID)
	if err != nil {
		return nil, wrapPropertyErr(err)
	}

	required := compliance.RequirementsFor(snap.Classification)
	if len(required) == 0 {
		return nil, nil
	}

	items, err := s.items.ListByProperty(ctx, propertyID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load compliance items")
	}
	existing := make(map[string]struct{}, len(items))
	for _, item := range items {
		existing[item.Name] = struct{}{}
	}

	now := requestcontext.Now(ctx)
	var gaps []*models.DocumentationGap
	for _, req := range required {
		if _, ok := existing[req.Name]; ok {
			continue
		}
		gaps = append(gaps, models.NewMissingComplianceGap(
			id.GapID(uuid.New()),
			propertyID,
			req.Name,
			req.Category,
			compliance.GapSeverity(req),
			now,
		))
	}
	if len(gaps) == 0 {
		return nil, nil
	}

	if err := s.gaps.CreateBatch(ctx, gaps); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record documentation gaps")
	}

	s.auditEmitter.emitGapsDetected(ctx, models.GapsDetected{PropertyID: propertyID, Count: len(gaps)})
	s.addGapsDetected(len(gaps))
	return gaps, nil
}

// UpdateItem applies owner-supplied changes to a compliance item, then
// recomputes and persists the documentation score in the same transaction.
// Returns the updated item and the new score.
func (s *ComplianceService) UpdateItem(ctx context.Context, propertyID id.PropertyID, itemID id.ItemID, update models.ItemUpdate) (*models.ComplianceItem, float64, error) {
	if err := requirePropertyID(propertyID); err != nil {
		return nil, 0, err
	}
	if itemID.IsNil() {
		return nil, 0, dErrors.New(dErrors.CodeBadRequest, "compliance item id is required")
	}

	var (
		item     *models.ComplianceItem
		newScore float64
	)
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		found, err := s.items.FindByID(txCtx, itemID)
		if err != nil {
			return wrapItemErr(err)
		}
		// Item lookups are scoped to the property in the URL.
		if found.PropertyID != propertyID {
			return dErrors.New(dErrors.CodeNotFound, "compliance item not found")
		}

		found.Apply(update, requestcontext.Now(txCtx))
		if err := s.items.Update(txCtx, found); err != nil {
			return wrapItemErr(err)
		}

		snap, err := s.properties.Snapshot(txCtx, propertyID)
		if err != nil {
			return wrapPropertyErr(err)
		}
		score, err := s.computeScore(txCtx, propertyID, snap.Classification)
		if err != nil {
			return err
		}
		if err := s.properties.UpdateDocumentationScore(txCtx, propertyID, score, requestcontext.Now(txCtx)); err != nil {
			return wrapPropertyErr(err)
		}

		item = found
		newScore = score
		return s.auditEmitter.emitItemUpdated(txCtx, models.ItemUpdated{PropertyID: propertyID, ItemID: itemID})
	})
	if err != nil {
		return nil, 0, err
	}

	s.incrementItemUpdated()
	return item, newScore, nil
}

// ResolveGap marks a documentation gap resolved and recomputes the score.
// Resolution never deletes the row; detection may later append a fresh gap
// for the same requirement.
func (s *ComplianceService) ResolveGap(ctx context.Context, propertyID id.PropertyID, gapID id.GapID, res models.GapResolution) (*models.DocumentationGap, float64, error) {
	if err := requirePropertyID(propertyID); err != nil {
		return nil, 0, err
	}
	if gapID.IsNil() {
		return nil, 0, dErrors.New(dErrors.CodeBadRequest, "documentation gap id is required")
	}

	var (
		gap      *models.DocumentationGap
		newScore float64
	)
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		found, err := s.gaps.FindByID(txCtx, gapID)
		if err != nil {
			return wrapGapErr(err)
		}
		if found.PropertyID != propertyID {
			return dErrors.New(dErrors.CodeNotFound, "documentation gap not found")
		}

		found.ApplyResolution(res, requestcontext.Now(txCtx))
		if err := s.gaps.Update(txCtx, found); err != nil {
			return wrapGapErr(err)
		}

		snap, err := s.properties.Snapshot(txCtx, propertyID)
		if err != nil {
			return wrapPropertyErr(err)
		}
		score, err := s.computeScore(txCtx, propertyID, snap.Classification)
		if err != nil {
			return err
		}
		if err := s.properties.UpdateDocumentationScore(txCtx, propertyID, score, requestcontext.Now(txCtx)); err != nil {
			return wrapPropertyErr(err)
		}

		gap = found
		newScore = score
		return s.auditEmitter.emitGapResolved(txCtx, models.GapResolved{PropertyID: propertyID, GapID: gapID})
	})
	if err != nil {
		return nil, 0, err
	}

	s.incrementGapResolved()
	return gap, newScore, nil
}

// ScoreBreakdown is the persisted-item view of compliance progress.
type ScoreBreakdown struct {
	TotalItems           int
	CompliantItems       int
	CompliancePercentage float64
}

// GapsBreakdown is the gap-resolution view.
type GapsBreakdown struct {
	TotalGaps            int
	ResolvedGaps         int
	ResolutionPercentage float64
}

// ScoreReport is the on-demand documentation score read.
type ScoreReport struct {
	PropertyID          id.PropertyID
	DocumentationScore  float64
	Compliance          ScoreBreakdown
	Gaps                GapsBreakdown
	CouncilDataImported bool
	LastUpdated         time.Time
}

// ScoreReport recomputes and persists the documentation score, then reports
// it with breakdowns over the persisted rows. The breakdown percentages
// divide by persisted counts, unlike the headline score's rule-table
// denominator; properties with zero items report 0% compliance while zero
// gaps report 100% resolution.
func (s *ComplianceService) ScoreReport(ctx context.Context, propertyID id.PropertyID) (*ScoreReport, error) {
	start := time.Now()
	if err := requirePropertyID(propertyID); err != nil {
		return nil, err
	}

	snap, err := s.properties.Snapshot(ctx, propertyID)
	if err != nil {
		return nil, wrapPropertyErr(err)
	}

	var (
		items []*models.ComplianceItem
		gaps  []*models.DocumentationGap
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		loaded, err := s.items.ListByProperty(gCtx, propertyID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load compliance items")
		}
		items = loaded
		return nil
	})
	g.Go(func() error {
		loaded, err := s.gaps.ListByProperty(gCtx, propertyID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load documentation gaps")
		}
		gaps = loaded
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	compliant := 0
	for _, item := range items {
		if item.IsCompliant {
			compliant++
		}
	}
	resolved := 0
	for _, gap := range gaps {
		if gap.IsResolved {
			resolved++
		}
	}

	score := 100.0
	if required := compliance.RequirementsFor(snap.Classification); len(required) > 0 {
		score = float64(compliant) / float64(len(required)) * 100
	}

	now := requestcontext.Now(ctx)
	if err := s.properties.UpdateDocumentationScore(ctx, propertyID, score, now); err != nil {
		return nil, wrapPropertyErr(err)
	}

	report := &ScoreReport{
		PropertyID:         propertyID,
		DocumentationScore: score,
		Compliance: ScoreBreakdown{
			TotalItems:     len(items),
			CompliantItems: compliant,
		},
		Gaps: GapsBreakdown{
			TotalGaps:            len(gaps),
			ResolvedGaps:         resolved,
			ResolutionPercentage: 100,
		},
		CouncilDataImported: snap.CouncilDataImported,
		LastUpdated:         now,
	}
	if len(items) > 0 {
		report.Compliance.CompliancePercentage = float64(compliant) / float64(len(items)) * 100
	}
	if len(gaps) > 0 {
		report.Gaps.ResolutionPercentage = float64(resolved) / float64(len(gaps)) * 100
	}

	s.observeScore(start)
	return report, nil
}

// ItemsForProperty lists all compliance items for a property.
func (s *ComplianceService) ItemsForProperty(ctx context.Context, propertyID id.PropertyID) ([]*models.ComplianceItem, error) {
	if err := requirePropertyID(propertyID); err != nil {
		return nil, err
	}
	items, err := s.items.ListByProperty(ctx, propertyID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load compliance items")
	}
	return items, nil
}

// UnresolvedGaps lists the property's open documentation gaps.
func (s *ComplianceService) UnresolvedGaps(ctx context.Context, propertyID id.PropertyID) ([]*models.DocumentationGap, error) {
	if err := requirePropertyID(propertyID); err != nil {
		return nil, err
	}
	gaps, err := s.gaps.ListByProperty(ctx, propertyID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load documentation gaps")
	}
	open := make([]*models.DocumentationGap, 0, len(gaps))
	for _, gap := range gaps {
		if !gap.IsResolved {
			open = append(open, gap)
		}
	}
	return open, nil
}

func (s *ComplianceService) incrementItemUpdated() {
	if s.metrics != nil {
		s.metrics.IncrementItemUpdated()
	}
}

func (s *ComplianceService) addGapsDetected(n int) {
	if s.metrics != nil {
		s.metrics.AddGapsDetected(n)
	}
}

func (s *ComplianceService) incrementGapResolved() {
	if s.metrics != nil {
		s.metrics.IncrementGapResolved()
	}
}

func (s *ComplianceService) observeScore(start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveScore(start)
	}
}
