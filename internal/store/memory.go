package store

import (
	"errors"
	"sync"

	"github.com/i474232898/potato-farm-advisor/internal/advisor"
)

var (
	// ErrNotFound is returned when no analysis matches the request.
	ErrNotFound = errors.New("analysis not found")
)

// MemoryStore is a concurrency-safe in-memory store of analyses.
// Stored analyses are treated as immutable; Save replaces, never mutates.
type MemoryStore struct {
	mu sync.RWMutex

	// key: analysis id
	data map[string]*advisor.Analysis
	// ids in insertion order, oldest first
	order []string

	// max number of analyses retained (<= 0 = unlimited)
	maxHistory int
}

// NewMemoryStore creates a new MemoryStore.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]*advisor.Analysis),
		maxHistory: maxHistory,
	}
}

// Save stores a and makes it the latest analysis, evicting the oldest beyond maxHistory.
func (s *MemoryStore) Save(a *advisor.Analysis) {
	if a == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[a.ID]; exists {
		s.removeLocked(a.ID)
	}
	s.data[a.ID] = a
	s.order = append(s.order, a.ID)

	if s.maxHistory > 0 && len(s.order) > s.maxHistory {
		over := len(s.order) - s.maxHistory
		for _, id := range s.order[:over] {
			delete(s.data, id)
		}
		s.order = append([]string(nil), s.order[over:]...)
	}
}

func (s *MemoryStore) removeLocked(id string) {
	delete(s.data, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}

// Get returns the analysis with the given id.
func (s *MemoryStore) Get(id string) (*advisor.Analysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.data[id]
	if !ok {
		return nil, ErrNotFound
	}
	return a, nil
}

// Latest returns the most recently saved analysis.
func (s *MemoryStore) Latest() (*advisor.Analysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.order) == 0 {
		return nil, ErrNotFound
	}
	return s.data[s.order[len(s.order)-1]], nil
}

// Len returns the number of retained analyses.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
