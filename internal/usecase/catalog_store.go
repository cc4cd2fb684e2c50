package usecase

import (
	"sync"

	"github.com/plantshop/backend/internal/domain"
)

// CatalogStore holds the current catalog snapshot. The snapshot is only
// ever replaced as a whole; records are kept exactly as fetched.
type CatalogStore struct {
	mu      sync.RWMutex
	records []domain.PlantRecord
}

// NewCatalogStore creates an empty catalog store
func NewCatalogStore() *CatalogStore {
	return &CatalogStore{}
}

// Load replaces the snapshot with a copy of records
func (s *CatalogStore) Load(records []domain.PlantRecord) {
	snapshot := make([]domain.PlantRecord, len(records))
	copy(snapshot, records)

	s.mu.Lock()
	s.records = snapshot
	s.mu.Unlock()
}

// Filter returns the records whose category equals category exactly, in
// snapshot order. domain.CategoryAll returns the whole snapshot.
func (s *CatalogStore) Filter(category string) []domain.PlantRecord {
	if category == domain.CategoryAll {
		return s.Snapshot()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := make([]domain.PlantRecord, 0)
	for _, record := range s.records {
		if record.CategoryName() == category {
			filtered = append(filtered, record)
		}
	}
	return filtered
}

// Snapshot returns a copy of the full catalog
func (s *CatalogStore) Snapshot() []domain.PlantRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]domain.PlantRecord, len(s.records))
	copy(snapshot, s.records)
	return snapshot
}

// Find returns the first record with the given name
func (s *CatalogStore) Find(name string) (domain.PlantRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, record := range s.records {
		if record.Name == name {
			return record, true
		}
	}
	return domain.PlantRecord{}, false
}

// Categories returns the distinct non-empty categories in first-seen order
func (s *CatalogStore) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, record := range s.records {
		category := record.CategoryName()
		if category == "" {
			continue
		}
		if _, ok := seen[category]; ok {
			continue
		}
		seen[category] = struct{}{}
		categories = append(categories, category)
	}
	return categories
}

// Len returns the number of records in the snapshot
func (s *CatalogStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
