//go:build integration

package gap_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"propertyguard/internal/compliance/models"
	"propertyguard/internal/compliance/store/gap"
	id "propertyguard/pkg/domain"
	"propertyguard/pkg/platform/sentinel"
	"propertyguard/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres   *containers.PostgresContainer
	store      *gap.PostgresStore
	propertyID id.PropertyID
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = gap.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	// Truncate in dependency order
	err := s.postgres.TruncateTables(ctx, "compliance_items", "documentation_gaps", "properties")
	s.Require().NoError(err)

	// Create a property for FK constraint
	s.propertyID = id.PropertyID(uuid.New())
	_, err = s.postgres.Exec(ctx, `
		INSERT INTO properties (id, name, address, property_type, ownership_type, created_at, updated_at)
		VALUES ($1, $2, '45 Beach Road', 'sectional_title_apartment', 'sectional_title', NOW(), NOW())
	`, uuid.UUID(s.propertyID), "Test Property "+uuid.NewString())
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) newTestGap(requirement string) *models.DocumentationGap {
	return models.NewMissingComplianceGap(
		id.GapID(uuid.New()),
		s.propertyID,
		requirement,
		"structural",
		models.GapSeverityMedium,
		time.Now(),
	)
}

// TestBatchRoundTrip verifies detected gaps come back intact and ordered.
func (s *PostgresStoreSuite) TestBatchRoundTrip() {
	ctx := context.Background()

	batch := []*models.DocumentationGap{
		s.newTestGap("Sectional Title Plan"),
		s.newTestGap("Body Corporate Rules"),
	}
	s.Require().NoError(s.store.CreateBatch(ctx, batch))

	gaps, err := s.store.ListByProperty(ctx, s.propertyID)
	s.Require().NoError(err)
	s.Require().Len(gaps, 2)
	for i, want := range batch {
		s.Equal(want.ID, gaps[i].ID)
		s.Equal(want.Description, gaps[i].Description)
		s.Equal(models.GapTypeMissingCompliance, gaps[i].GapType)
		s.Equal(models.GapSeverityMedium, gaps[i].Severity)
		s.False(gaps[i].IsResolved)
		s.Nil(gaps[i].ResolutionDate)
	}
}

// TestDuplicateRowsForSameRequirement verifies that re-detection of the same
// requirement inserts a second row rather than conflicting.
func (s *PostgresStoreSuite) TestDuplicateRowsForSameRequirement() {
	ctx := context.Background()

	first := s.newTestGap("Electrical COC")
	second := s.newTestGap("Electrical COC")
	s.Require().NoError(s.store.CreateBatch(ctx, []*models.DocumentationGap{first}))
	s.Require().NoError(s.store.CreateBatch(ctx, []*models.DocumentationGap{second}))

	gaps, err := s.store.ListByProperty(ctx, s.propertyID)
	s.Require().NoError(err)
	s.Len(gaps, 2)
}

// TestResolutionRoundTrip verifies the resolution fields persist, including
// the nullable cost column.
func (s *PostgresStoreSuite) TestResolutionRoundTrip() {
	ctx := context.Background()

	created := s.newTestGap("Gas COC")
	s.Require().NoError(s.store.CreateBatch(ctx, []*models.DocumentationGap{created}))

	cost := 2350.50
	created.ApplyResolution(models.GapResolution{
		ResolutionNotes:     "Certificate issued after reinspection",
		ActualCostToResolve: &cost,
	}, time.Now())
	s.Require().NoError(s.store.Update(ctx, created))

	found, err := s.store.FindByID(ctx, created.ID)
	s.Require().NoError(err)
	s.True(found.IsResolved)
	s.Require().NotNil(found.ResolutionDate)
	s.Equal("Certificate issued after reinspection", found.ResolutionNotes)
	s.Require().NotNil(found.ActualCostToResolve)
	s.Equal(2350.50, *found.ActualCostToResolve)
}

// TestFindByIDNotFound verifies the sentinel mapping for missing rows.
func (s *PostgresStoreSuite) TestFindByIDNotFound() {
	ctx := context.Background()

	_, err := s.store.FindByID(ctx, id.GapID(uuid.New()))
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

// TestUpdateMissingRow verifies that resolving a nonexistent gap reports
// not-found.
func (s *PostgresStoreSuite) TestUpdateMissingRow() {
	ctx := context.Background()

	ghost := s.newTestGap("Ghost Gap")
	ghost.ApplyResolution(models.GapResolution{}, time.Now())
	s.Require().ErrorIs(s.store.Update(ctx, ghost), sentinel.ErrNotFound)
}
