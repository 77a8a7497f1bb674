package item

import (
	"context"
	"sync"

	"propertyguard/internal/compliance/models"
	id "propertyguard/pkg/domain"
	"propertyguard/pkg/platform/sentinel"
)

// InMemory is a thread-safe in-memory compliance item store for tests and
// local development. Items are returned in insertion order, matching the
// postgres store's created_at ordering.
type InMemory struct {
	mu    sync.RWMutex
	order []id.ItemID
	byID  map[id.ItemID]*models.ComplianceItem
}

func NewInMemory() *InMemory {
	return &InMemory{
		byID: make(map[id.ItemID]*models.ComplianceItem),
	}
}

func (s *InMemory) CreateBatch(ctx context.Context, items []*models.ComplianceItem) error {
	if len(items) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range items {
		if _, exists := s.byID[item.ID]; exists {
			return sentinel.ErrConflict
		}
	}
	for _, item := range items {
		stored := *item
		s.byID[item.ID] = &stored
		s.order = append(s.order, item.ID)
	}
	return nil
}

func (s *InMemory) FindByID(ctx context.Context, itemID id.ItemID) (*models.ComplianceItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.byID[itemID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	found := *stored
	return &found, nil
}

func (s *InMemory) ListByProperty(ctx context.Context, propertyID id.PropertyID) ([]*models.ComplianceItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var items []*models.ComplianceItem
	for _, itemID := range s.order {
		stored := s.byID[itemID]
		if stored.PropertyID != propertyID {
			continue
		}
		found := *stored
		items = append(items, &found)
	}
	return items, nil
}

func (s *InMemory) Update(ctx context.Context, item *models.ComplianceItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.byID[item.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	*stored = *item
	return nil
}
