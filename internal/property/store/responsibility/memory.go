package responsibility

import (
	"context"
	"sync"

	"propertyguard/internal/property/models"
	id "propertyguard/pkg/domain"
	"propertyguard/pkg/platform/sentinel"
)

// InMemory is a thread-safe in-memory shared responsibility store for tests
// and local development. Records are returned in insertion order, matching
// the postgres store's created_at ordering.
type InMemory struct {
	mu    sync.RWMutex
	order []id.ResponsibilityID
	byID  map[id.ResponsibilityID]*models.SharedResponsibility
}

func NewInMemory() *InMemory {
	return &InMemory{
		byID: make(map[id.ResponsibilityID]*models.SharedResponsibility),
	}
}

func (s *InMemory) Create(ctx context.Context, responsibility *models.SharedResponsibility) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[responsibility.ID]; exists {
		return sentinel.ErrConflict
	}
	stored := *responsibility
	s.byID[responsibility.ID] = &stored
	s.order = append(s.order, responsibility.ID)
	return nil
}

func (s *InMemory) ListByProperty(ctx context.Context, propertyID id.PropertyID) ([]*models.SharedResponsibility, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var responsibilities []*models.SharedResponsibility
	for _, responsibilityID := range s.order {
		stored := s.byID[responsibilityID]
		if stored.PropertyID != propertyID {
			continue
		}
		found := *stored
		responsibilities = append(responsibilities, &found)
	}
	return responsibilities, nil
}
