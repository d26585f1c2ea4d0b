package repositories

import (
	"context"
	"sync"
)

// MemoryStore keeps values for the lifetime of the process.
type MemoryStore[V any] struct {
	mu    sync.RWMutex
	items map[string]V
	order []string
}

func NewMemoryStore[V any]() *MemoryStore[V] {
	return &MemoryStore[V]{items: make(map[string]V)}
}

func (s *MemoryStore[V]) Put(_ context.Context, key string, value V) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[key]; !exists {
		s.order = append(s.order, key)
	}
	s.items[key] = value
	return nil
}

func (s *MemoryStore[V]) Get(_ context.Context, key string) (V, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.items[key]
	if !ok {
		var zero V
		return zero, ErrNotFound
	}
	return value, nil
}

func (s *MemoryStore[V]) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[key]; !ok {
		return nil
	}
	delete(s.items, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns values in insertion order.
func (s *MemoryStore[V]) List(_ context.Context) ([]V, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	values := make([]V, 0, len(s.order))
	for _, k := range s.order {
		values = append(values, s.items[k])
	}
	return values, nil
}
