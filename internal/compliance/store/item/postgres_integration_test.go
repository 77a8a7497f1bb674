//go:build integration

package item_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"propertyguard/internal/compliance/models"
	"propertyguard/internal/compliance/store/item"
	id "propertyguard/pkg/domain"
	"propertyguard/pkg/platform/sentinel"
	"propertyguard/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres   *containers.PostgresContainer
	store      *item.PostgresStore
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
	s.store = item.NewPostgres(s.postgres.DB)
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
		VALUES ($1, $2, '123 Main Road', 'freestanding_house', 'individual', NOW(), NOW())
	`, uuid.UUID(s.propertyID), "Test Property "+uuid.NewString())
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) newTestItem(name string) *models.ComplianceItem {
	i, err := models.NewComplianceItem(
		id.ItemID(uuid.New()),
		s.propertyID,
		name,
		"electrical",
		"Owner",
		true,
		time.Now(),
	)
	s.Require().NoError(err)
	return i
}

// TestBatchRoundTrip verifies that a seeded batch comes back intact.
func (s *PostgresStoreSuite) TestBatchRoundTrip() {
	ctx := context.Background()

	batch := []*models.ComplianceItem{
		s.newTestItem("Electrical COC " + uuid.NewString()),
		s.newTestItem("Plumbing COC " + uuid.NewString()),
		s.newTestItem("Gas COC " + uuid.NewString()),
	}
	s.Require().NoError(s.store.CreateBatch(ctx, batch))

	items, err := s.store.ListByProperty(ctx, s.propertyID)
	s.Require().NoError(err)
	s.Require().Len(items, 3)
	for i, want := range batch {
		s.Equal(want.ID, items[i].ID)
		s.Equal(want.Name, items[i].Name)
		s.Equal("electrical", items[i].Category)
		s.True(items[i].IsRequired)
		s.False(items[i].IsCompliant)
	}
}

// TestNullableColumnsRoundTrip verifies NULL handling for optional dates and
// empty text columns.
func (s *PostgresStoreSuite) TestNullableColumnsRoundTrip() {
	ctx := context.Background()

	created := s.newTestItem("Roof Inspection " + uuid.NewString())
	s.Require().NoError(s.store.CreateBatch(ctx, []*models.ComplianceItem{created}))

	found, err := s.store.FindByID(ctx, created.ID)
	s.Require().NoError(err)
	s.Nil(found.DueDate)
	s.Nil(found.LastInspectionDate)
	s.Nil(found.NextInspectionDate)
	s.Empty(found.CertificateNumber)

	due := time.Now().Add(30 * 24 * time.Hour).UTC().Truncate(time.Second)
	found.DueDate = &due
	found.CertificateNumber = "COC-2025-042"
	s.Require().NoError(s.store.Update(ctx, found))

	again, err := s.store.FindByID(ctx, created.ID)
	s.Require().NoError(err)
	s.Require().NotNil(again.DueDate)
	s.WithinDuration(due, *again.DueDate, time.Second)
	s.Equal("COC-2025-042", again.CertificateNumber)
}

// TestFindByIDNotFound verifies the sentinel mapping for missing rows.
func (s *PostgresStoreSuite) TestFindByIDNotFound() {
	ctx := context.Background()

	_, err := s.store.FindByID(ctx, id.ItemID(uuid.New()))
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

// TestUpdateMissingRow verifies that updating a nonexistent item reports
// not-found instead of silently affecting zero rows.
func (s *PostgresStoreSuite) TestUpdateMissingRow() {
	ctx := context.Background()

	ghost := s.newTestItem("Ghost " + uuid.NewString())
	s.Require().ErrorIs(s.store.Update(ctx, ghost), sentinel.ErrNotFound)
}

// TestConcurrentUpdates verifies racing updates on one row all succeed and the
// row ends in one of the written states.
func (s *PostgresStoreSuite) TestConcurrentUpdates() {
	ctx := context.Background()

	created := s.newTestItem("Contended Item " + uuid.NewString())
	s.Require().NoError(s.store.CreateBatch(ctx, []*models.ComplianceItem{created}))

	const goroutines = 20
	var wg sync.WaitGroup
	var updateErrors atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			copied := *created
			copied.IsCompliant = idx%2 == 0
			copied.UpdatedAt = time.Now()
			if err := s.store.Update(ctx, &copied); err != nil {
				updateErrors.Add(1)
			}
		}(i)
	}

	wg.Wait()

	s.Equal(int32(0), updateErrors.Load(), "no errors expected for concurrent updates")

	_, err := s.store.FindByID(ctx, created.ID)
	s.Require().NoError(err)
}
