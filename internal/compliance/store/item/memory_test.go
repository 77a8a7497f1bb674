package item

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

type ItemStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *ItemStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestItemStoreSuite(t *testing.T) {
	suite.Run(t, new(ItemStoreSuite))
}

func (s *ItemStoreSuite) newItem(propertyID id.PropertyID, name string) *models.ComplianceItem {
	item, err := models.NewComplianceItem(
		id.ItemID(uuid.New()),
		propertyID,
		name,
		"electrical",
		"Owner",
		true,
		time.Now(),
	)
	s.Require().NoError(err)
	return item
}

// TestCreationAndLookups verifies batch creation and retrieval.
func (s *ItemStoreSuite) TestCreationAndLookups() {
	s.Run("creates a batch and finds items by ID", func() {
		propertyID := id.PropertyID(uuid.New())
		items := []*models.ComplianceItem{
			s.newItem(propertyID, "Electrical COC"),
			s.newItem(propertyID, "Plumbing COC"),
		}
		s.Require().NoError(s.store.CreateBatch(s.ctx, items))

		found, err := s.store.FindByID(s.ctx, items[0].ID)
		s.Require().NoError(err)
		s.Equal("Electrical COC", found.Name)
	})

	s.Run("returns ErrNotFound for unknown ID", func() {
		_, err := s.store.FindByID(s.ctx, id.ItemID(uuid.New()))
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("empty batch is a no-op", func() {
		s.Require().NoError(s.store.CreateBatch(s.ctx, nil))
	})

	s.Run("rejects duplicate IDs without partial writes", func() {
		propertyID := id.PropertyID(uuid.New())
		existing := s.newItem(propertyID, "Gas COC")
		s.Require().NoError(s.store.CreateBatch(s.ctx, []*models.ComplianceItem{existing}))

		fresh := s.newItem(propertyID, "Pool COC")
		err := s.store.CreateBatch(s.ctx, []*models.ComplianceItem{fresh, existing})
		s.Require().ErrorIs(err, sentinel.ErrConflict)

		_, err = s.store.FindByID(s.ctx, fresh.ID)
		s.ErrorIs(err, sentinel.ErrNotFound, "failed batch must not leave rows behind")
	})
}

// TestListByProperty verifies per-property filtering and ordering.
func (s *ItemStoreSuite) TestListByProperty() {
	s.Run("lists only the property's items in insertion order", func() {
		propertyID := id.PropertyID(uuid.New())
		otherID := id.PropertyID(uuid.New())

		first := s.newItem(propertyID, "Electrical COC")
		second := s.newItem(propertyID, "Plumbing COC")
		other := s.newItem(otherID, "Gas COC")
		s.Require().NoError(s.store.CreateBatch(s.ctx, []*models.ComplianceItem{first, other, second}))

		items, err := s.store.ListByProperty(s.ctx, propertyID)
		s.Require().NoError(err)
		s.Require().Len(items, 2)
		s.Equal("Electrical COC", items[0].Name)
		s.Equal("Plumbing COC", items[1].Name)
	})

	s.Run("returns empty for a property with no items", func() {
		items, err := s.store.ListByProperty(s.ctx, id.PropertyID(uuid.New()))
		s.Require().NoError(err)
		s.Empty(items)
	})
}

// TestUpdates verifies persistence of mutations and isolation of returned values.
func (s *ItemStoreSuite) TestUpdates() {
	s.Run("persists compliance flips", func() {
		propertyID := id.PropertyID(uuid.New())
		item := s.newItem(propertyID, "Electrical COC")
		s.Require().NoError(s.store.CreateBatch(s.ctx, []*models.ComplianceItem{item}))

		item.IsCompliant = true
		item.CertificateNumber = "COC-2025-001"
		s.Require().NoError(s.store.Update(s.ctx, item))

		found, err := s.store.FindByID(s.ctx, item.ID)
		s.Require().NoError(err)
		s.True(found.IsCompliant)
		s.Equal("COC-2025-001", found.CertificateNumber)
	})

	s.Run("returns ErrNotFound for non-existent item", func() {
		ghost := s.newItem(id.PropertyID(uuid.New()), "Ghost Item")
		s.Require().ErrorIs(s.store.Update(s.ctx, ghost), sentinel.ErrNotFound)
	})

	s.Run("mutating a returned item does not touch the store", func() {
		propertyID := id.PropertyID(uuid.New())
		item := s.newItem(propertyID, "Roof Inspection")
		s.Require().NoError(s.store.CreateBatch(s.ctx, []*models.ComplianceItem{item}))

		found, err := s.store.FindByID(s.ctx, item.ID)
		s.Require().NoError(err)
		found.IsCompliant = true

		again, err := s.store.FindByID(s.ctx, item.ID)
		s.Require().NoError(err)
		s.False(again.IsCompliant)
	})
}
