package gap

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"propertyguard/internal/compliance/models"
	id "propertyguard/pkg/domain"
	"propertyguard/pkg/platform/sentinel"
)

type GapStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *GapStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestGapStoreSuite(t *testing.T) {
	suite.Run(t, new(GapStoreSuite))
}

func (s *GapStoreSuite) newGap(propertyID id.PropertyID, requirement string) *models.DocumentationGap {
	return models.NewMissingComplianceGap(
		id.GapID(uuid.New()),
		propertyID,
		requirement,
		"electrical",
		models.GapSeverityHigh,
		time.Now(),
	)
}

// TestCreationAndLookups verifies batch creation and retrieval.
func (s *GapStoreSuite) TestCreationAndLookups() {
	s.Run("creates a batch and finds gaps by ID", func() {
		propertyID := id.PropertyID(uuid.New())
		gaps := []*models.DocumentationGap{
			s.newGap(propertyID, "Electrical COC"),
			s.newGap(propertyID, "Plumbing COC"),
		}
		s.Require().NoError(s.store.CreateBatch(s.ctx, gaps))

		found, err := s.store.FindByID(s.ctx, gaps[1].ID)
		s.Require().NoError(err)
		s.Equal("Missing Plumbing COC for electrical compliance", found.Description)
	})

	s.Run("returns ErrNotFound for unknown ID", func() {
		_, err := s.store.FindByID(s.ctx, id.GapID(uuid.New()))
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("duplicate records for the same requirement coexist", func() {
		propertyID := id.PropertyID(uuid.New())
		first := s.newGap(propertyID, "Gas COC")
		second := s.newGap(propertyID, "Gas COC")
		s.Require().NoError(s.store.CreateBatch(s.ctx, []*models.DocumentationGap{first}))
		s.Require().NoError(s.store.CreateBatch(s.ctx, []*models.DocumentationGap{second}))

		gaps, err := s.store.ListByProperty(s.ctx, propertyID)
		s.Require().NoError(err)
		s.Len(gaps, 2)
	})

	s.Run("rejects reuse of an existing ID", func() {
		propertyID := id.PropertyID(uuid.New())
		existing := s.newGap(propertyID, "Pool COC")
		s.Require().NoError(s.store.CreateBatch(s.ctx, []*models.DocumentationGap{existing}))

		err := s.store.CreateBatch(s.ctx, []*models.DocumentationGap{existing})
		s.Require().ErrorIs(err, sentinel.ErrConflict)
	})
}

// TestListByProperty verifies per-property filtering and ordering.
func (s *GapStoreSuite) TestListByProperty() {
	s.Run("lists only the property's gaps in insertion order", func() {
		propertyID := id.PropertyID(uuid.New())
		otherID := id.PropertyID(uuid.New())

		first := s.newGap(propertyID, "Electrical COC")
		second := s.newGap(propertyID, "Beetle Certificate")
		s.Require().NoError(s.store.CreateBatch(s.ctx, []*models.DocumentationGap{
			first,
			s.newGap(otherID, "Gas COC"),
			second,
		}))

		gaps, err := s.store.ListByProperty(s.ctx, propertyID)
		s.Require().NoError(err)
		s.Require().Len(gaps, 2)
		s.Equal(first.ID, gaps[0].ID)
		s.Equal(second.ID, gaps[1].ID)
	})

	s.Run("returns empty for a property with no gaps", func() {
		gaps, err := s.store.ListByProperty(s.ctx, id.PropertyID(uuid.New()))
		s.Require().NoError(err)
		s.Empty(gaps)
	})
}

// TestUpdates verifies resolution persistence and value isolation.
func (s *GapStoreSuite) TestUpdates() {
	s.Run("persists resolution fields", func() {
		propertyID := id.PropertyID(uuid.New())
		gap := s.newGap(propertyID, "Electrical COC")
		s.Require().NoError(s.store.CreateBatch(s.ctx, []*models.DocumentationGap{gap}))

		cost := 1500.0
		gap.ApplyResolution(models.GapResolution{
			ResolutionNotes:     "COC issued by registered electrician",
			ActualCostToResolve: &cost,
		}, time.Now())
		s.Require().NoError(s.store.Update(s.ctx, gap))

		found, err := s.store.FindByID(s.ctx, gap.ID)
		s.Require().NoError(err)
		s.True(found.IsResolved)
		s.NotNil(found.ResolutionDate)
		s.Equal("COC issued by registered electrician", found.ResolutionNotes)
		s.Require().NotNil(found.ActualCostToResolve)
		s.Equal(1500.0, *found.ActualCostToResolve)
	})

	s.Run("returns ErrNotFound for non-existent gap", func() {
		ghost := s.newGap(id.PropertyID(uuid.New()), "Ghost Gap")
		s.Require().ErrorIs(s.store.Update(s.ctx, ghost), sentinel.ErrNotFound)
	})

	s.Run("mutating a returned gap does not touch the store", func() {
		propertyID := id.PropertyID(uuid.New())
		gap := s.newGap(propertyID, "Roof Inspection")
		s.Require().NoError(s.store.CreateBatch(s.ctx, []*models.DocumentationGap{gap}))

		found, err := s.store.FindByID(s.ctx, gap.ID)
		s.Require().NoError(err)
		found.IsResolved = true

		again, err := s.store.FindByID(s.ctx, gap.ID)
		s.Require().NoError(err)
		s.False(again.IsResolved)
	})
}
