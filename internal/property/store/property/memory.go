package property

import (
	"context"
	"sync"
	"time"

	complianceservice "propertyguard/internal/compliance/service"
	councilservice "propertyguard/internal/council/service"
	"propertyguard/internal/property/models"
	id "propertyguard/pkg/domain"
	"propertyguard/pkg/platform/sentinel"
)

// InMemory is a thread-safe in-memory property store for tests and local
// development. Beyond the property module's own operations it serves the
// read/write slices the compliance and council modules take on the property
// row.
type InMemory struct {
	mu   sync.RWMutex
	byID map[id.PropertyID]*models.Property
}

func NewInMemory() *InMemory {
	return &InMemory{
		byID: make(map[id.PropertyID]*models.Property),
	}
}

func (s *InMemory) Create(ctx context.Context, property *models.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[property.ID]; exists {
		return sentinel.ErrConflict
	}
	stored := *property
	s.byID[property.ID] = &stored
	return nil
}

func (s *InMemory) FindByID(ctx context.Context, propertyID id.PropertyID) (*models.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.byID[propertyID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	found := *stored
	return &found, nil
}

// Snapshot returns the compliance view of the property row.
func (s *InMemory) Snapshot(ctx context.Context, propertyID id.PropertyID) (complianceservice.PropertySnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.byID[propertyID]
	if !ok {
		return complianceservice.PropertySnapshot{}, sentinel.ErrNotFound
	}
	return complianceservice.PropertySnapshot{
		Classification:      stored.Classification(),
		CouncilDataImported: stored.CouncilDataImported,
		UpdatedAt:           stored.UpdatedAt,
	}, nil
}

// UpdateDocumentationScore persists a recomputed documentation score.
func (s *InMemory) UpdateDocumentationScore(ctx context.Context, propertyID id.PropertyID, score float64, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.byID[propertyID]
	if !ok {
		return sentinel.ErrNotFound
	}
	stored.DocumentationScore = score
	stored.UpdatedAt = updatedAt
	return nil
}

// CouncilProfile returns the council view of the property row.
func (s *InMemory) CouncilProfile(ctx context.Context, propertyID id.PropertyID) (councilservice.CouncilProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.byID[propertyID]
	if !ok {
		return councilservice.CouncilProfile{}, sentinel.ErrNotFound
	}
	profile := councilservice.CouncilProfile{
		ErfNumber:           stored.ErfNumber,
		CouncilDataImported: stored.CouncilDataImported,
	}
	if stored.YearBuilt != nil {
		yearBuilt := *stored.YearBuilt
		profile.YearBuilt = &yearBuilt
	}
	return profile, nil
}

// MarkCouncilImported stamps the property as having council data.
func (s *InMemory) MarkCouncilImported(ctx context.Context, propertyID id.PropertyID, importedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.byID[propertyID]
	if !ok {
		return sentinel.ErrNotFound
	}
	stored.CouncilDataImported = true
	importDate := importedAt
	stored.CouncilDataImportDate = &importDate
	stored.UpdatedAt = importedAt
	return nil
}
