package municipality

import (
	"context"
	"sort"
	"sync"

	"propertyguard/internal/council/models"
	id "propertyguard/pkg/domain"
	"propertyguard/pkg/platform/sentinel"
)

// InMemory is a thread-safe in-memory municipality store for tests and local
// development. Listings are sorted by name, matching the postgres store.
type InMemory struct {
	mu     sync.RWMutex
	byID   map[id.MunicipalityID]*models.Municipality
	byName map[string]id.MunicipalityID
}

func NewInMemory() *InMemory {
	return &InMemory{
		byID:   make(map[id.MunicipalityID]*models.Municipality),
		byName: make(map[string]id.MunicipalityID),
	}
}

func (s *InMemory) Create(ctx context.Context, municipality *models.Municipality) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[municipality.ID]; exists {
		return sentinel.ErrConflict
	}
	if _, exists := s.byName[municipality.Name]; exists {
		return sentinel.ErrConflict
	}
	stored := *municipality
	s.byID[municipality.ID] = &stored
	s.byName[municipality.Name] = municipality.ID
	return nil
}

// Upsert adds a municipality, leaving any existing entry with the same name
// untouched.
func (s *InMemory) Upsert(ctx context.Context, municipality *models.Municipality) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byName[municipality.Name]; exists {
		return nil
	}
	if _, exists := s.byID[municipality.ID]; exists {
		return sentinel.ErrConflict
	}
	stored := *municipality
	s.byID[municipality.ID] = &stored
	s.byName[municipality.Name] = municipality.ID
	return nil
}

func (s *InMemory) List(ctx context.Context) ([]*models.Municipality, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	municipalities := make([]*models.Municipality, 0, len(s.byID))
	for _, stored := range s.byID {
		found := *stored
		municipalities = append(municipalities, &found)
	}
	sort.Slice(municipalities, func(i, j int) bool {
		return municipalities[i].Name < municipalities[j].Name
	})
	return municipalities, nil
}
