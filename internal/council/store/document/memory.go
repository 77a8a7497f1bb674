package document

import (
	"context"
	"sync"

	"propertyguard/internal/council/models"
	id "propertyguard/pkg/domain"
	"propertyguard/pkg/platform/sentinel"
)

// InMemory is a thread-safe in-memory council document store for tests and
// local development. Documents are returned in insertion order, matching the
// postgres store's created_at ordering.
type InMemory struct {
	mu    sync.RWMutex
	order []id.DocumentID
	byID  map[id.DocumentID]*models.CouncilDocument
}

func NewInMemory() *InMemory {
	return &InMemory{
		byID: make(map[id.DocumentID]*models.CouncilDocument),
	}
}

func (s *InMemory) CreateBatch(ctx context.Context, documents []*models.CouncilDocument) error {
	if len(documents) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, document := range documents {
		if _, exists := s.byID[document.ID]; exists {
			return sentinel.ErrConflict
		}
	}
	for _, document := range documents {
		stored := *document
		s.byID[document.ID] = &stored
		s.order = append(s.order, document.ID)
	}
	return nil
}

func (s *InMemory) ListByProperty(ctx context.Context, propertyID id.PropertyID) ([]*models.CouncilDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var documents []*models.CouncilDocument
	for _, documentID := range s.order {
		stored := s.byID[documentID]
		if stored.PropertyID != propertyID {
			continue
		}
		found := *stored
		documents = append(documents, &found)
	}
	return documents, nil
}
