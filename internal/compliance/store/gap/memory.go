package gap

import (
	"context"
	"sync"

	"propertyguard/internal/compliance/models"
	id "propertyguard/pkg/domain"
	"propertyguard/pkg/platform/sentinel"
)

// InMemory is a thread-safe in-memory documentation gap store for tests and
// local development. Gaps keep insertion order; nothing ever deletes a row.
type InMemory struct {
	mu    sync.RWMutex
	order []id.GapID
	byID  map[id.GapID]*models.DocumentationGap
}

func NewInMemory() *InMemory {
	return &InMemory{
		byID: make(map[id.GapID]*models.DocumentationGap),
	}
}

func (s *InMemory) CreateBatch(ctx context.Context, gaps []*models.DocumentationGap) error {
	if len(gaps) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, gap := range gaps {
		if _, exists := s.byID[gap.ID]; exists {
			return sentinel.ErrConflict
		}
	}
	for _, gap := range gaps {
		stored := *gap
		s.byID[gap.ID] = &stored
		s.order = append(s.order, gap.ID)
	}
	return nil
}

func (s *InMemory) FindByID(ctx context.Context, gapID id.GapID) (*models.DocumentationGap, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.byID[gapID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	found := *stored
	return &found, nil
}

func (s *InMemory) ListByProperty(ctx context.Context, propertyID id.PropertyID) ([]*models.DocumentationGap, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var gaps []*models.DocumentationGap
	for _, gapID := range s.order {
		stored := s.byID[gapID]
		if stored.PropertyID != propertyID {
			continue
		}
		found := *stored
		gaps = append(gaps, &found)
	}
	return gaps, nil
}

func (s *InMemory) Update(ctx context.Context, gap *models.DocumentationGap) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.byID[gap.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	*stored = *gap
	return nil
}
