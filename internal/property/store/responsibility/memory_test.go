package responsibility

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"propertyguard/internal/property/models"
	id "propertyguard/pkg/domain"
	"propertyguard/pkg/platform/sentinel"
)

type ResponsibilityStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
	now   time.Time
}

func (s *ResponsibilityStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
	s.now = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
}

func TestResponsibilityStoreSuite(t *testing.T) {
	suite.Run(t, new(ResponsibilityStoreSuite))
}

func (s *ResponsibilityStoreSuite) newResponsibility(propertyID id.PropertyID, area string) *models.SharedResponsibility {
	responsibility, err := models.NewSharedResponsibility(
		id.ResponsibilityID(uuid.New()),
		propertyID,
		models.NewResponsibilityInput{
			AreaOrSystem:            area,
			IndividualPercentage:    50,
			BodyCorporatePercentage: 50,
		},
		s.now,
	)
	s.Require().NoError(err)
	return responsibility
}

// TestCreate verifies insertion and duplicate rejection.
func (s *ResponsibilityStoreSuite) TestCreate() {
	s.Run("creates a responsibility", func() {
		propertyID := id.PropertyID(uuid.New())
		responsibility := s.newResponsibility(propertyID, "Roof and gutters")
		s.Require().NoError(s.store.Create(s.ctx, responsibility))

		listed, err := s.store.ListByProperty(s.ctx, propertyID)
		s.Require().NoError(err)
		s.Require().Len(listed, 1)
		s.Equal("Roof and gutters", listed[0].AreaOrSystem)
		s.Equal(50.0, listed[0].IndividualPercentage)
	})

	s.Run("rejects duplicate IDs", func() {
		responsibility := s.newResponsibility(id.PropertyID(uuid.New()), "Boundary wall")
		s.Require().NoError(s.store.Create(s.ctx, responsibility))
		s.Require().ErrorIs(s.store.Create(s.ctx, responsibility), sentinel.ErrConflict)
	})
}

// TestListByProperty verifies per-property filtering and ordering.
func (s *ResponsibilityStoreSuite) TestListByProperty() {
	s.Run("lists only the property's splits in insertion order", func() {
		propertyID := id.PropertyID(uuid.New())
		otherID := id.PropertyID(uuid.New())

		first := s.newResponsibility(propertyID, "Roof and gutters")
		other := s.newResponsibility(otherID, "Lift maintenance")
		second := s.newResponsibility(propertyID, "Geyser and plumbing")
		for _, r := range []*models.SharedResponsibility{first, other, second} {
			s.Require().NoError(s.store.Create(s.ctx, r))
		}

		listed, err := s.store.ListByProperty(s.ctx, propertyID)
		s.Require().NoError(err)
		s.Require().Len(listed, 2)
		s.Equal("Roof and gutters", listed[0].AreaOrSystem)
		s.Equal("Geyser and plumbing", listed[1].AreaOrSystem)
	})

	s.Run("returns empty for a property with no splits", func() {
		listed, err := s.store.ListByProperty(s.ctx, id.PropertyID(uuid.New()))
		s.Require().NoError(err)
		s.Empty(listed)
	})

	s.Run("mutating a listed split does not touch the store", func() {
		propertyID := id.PropertyID(uuid.New())
		responsibility := s.newResponsibility(propertyID, "Swimming pool")
		s.Require().NoError(s.store.Create(s.ctx, responsibility))

		listed, err := s.store.ListByProperty(s.ctx, propertyID)
		s.Require().NoError(err)
		listed[0].AreaOrSystem = "tampered"

		again, err := s.store.ListByProperty(s.ctx, propertyID)
		s.Require().NoError(err)
		s.Equal("Swimming pool", again[0].AreaOrSystem)
	})
}
