package usecase

import (
	"sync"

	"github.com/plantshop/backend/internal/domain"
	"github.com/shopspring/decimal"
)

// CartStore holds the cart lines. Lines are keyed by plant name: adding a
// name that is already present bumps its quantity instead of adding a line.
//
// Two distinct plants sharing a display name are merged into one line;
// the catalog API offers no other stable identity.
type CartStore struct {
	mu    sync.RWMutex
	lines []domain.CartLine
	index map[string]int
}

// NewCartStore creates an empty cart
func NewCartStore() *CartStore {
	return &CartStore{
		index: make(map[string]int),
	}
}

// Add puts one unit of record into the cart
func (s *CartStore) Add(record domain.PlantRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.index[record.Name]; ok {
		s.lines[i].Quantity++
		return
	}

	s.index[record.Name] = len(s.lines)
	s.lines = append(s.lines, domain.CartLine{Plant: record, Quantity: 1})
}

// Remove deletes the whole line for name, whatever its quantity.
// Removing a name that is not in the cart does nothing.
func (s *CartStore) Remove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[name]
	if !ok {
		return
	}

	s.lines = append(s.lines[:i], s.lines[i+1:]...)
	delete(s.index, name)
	for j := i; j < len(s.lines); j++ {
		s.index[s.lines[j].Plant.Name] = j
	}
}

// Total sums price × quantity over all lines. Missing or invalid prices count as 0.
func (s *CartStore) Total() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalLocked()
}

func (s *CartStore) totalLocked() decimal.Decimal {
	total := decimal.Zero
	for _, line := range s.lines {
		total = total.Add(line.Plant.PriceValue().Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

// Lines returns a copy of the lines in insertion order
func (s *CartStore) Lines() []domain.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lines := make([]domain.CartLine, len(s.lines))
	copy(lines, s.lines)
	return lines
}

// Snapshot returns the lines and their total as one consistent read
func (s *CartStore) Snapshot() ([]domain.CartLine, decimal.Decimal) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lines := make([]domain.CartLine, len(s.lines))
	copy(lines, s.lines)
	return lines, s.totalLocked()
}

// Len returns the number of distinct lines
func (s *CartStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lines)
}

// Count returns the number of units across all lines
func (s *CartStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, line := range s.lines {
		count += line.Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no lines
func (s *CartStore) IsEmpty() bool {
	return s.Len() == 0
}
