package usecase

import (
	"sync"

	"github.com/plantshop/backend/internal/domain"
)

// CategorySelector tracks the single active category of the filter bar
type CategorySelector struct {
	mu     sync.RWMutex
	active string
}

// NewCategorySelector starts with domain.CategoryAll active
func NewCategorySelector() *CategorySelector {
	return &CategorySelector{active: domain.CategoryAll}
}

// Select makes category the active one, replacing the previous selection
func (s *CategorySelector) Select(category string) {
	s.mu.Lock()
	s.active = category
	s.mu.Unlock()
}

// Active returns the active category
func (s *CategorySelector) Active() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}
