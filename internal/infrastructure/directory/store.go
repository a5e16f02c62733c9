// Package directory implements the in-memory profile collections. Each
// store is an explicit object injected into the service layer — there
// are no module-level singletons — and all access goes through a single
// RWMutex, so concurrent handlers see a consistent map. The store is a
// process-local cache: a restart loses every record.
package directory

import "sync"

// Store is a mutex-guarded keyed collection. It satisfies
// ports.Directory for any record type.
type Store[T any] struct {
	mu    sync.RWMutex
	items map[string]T
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{items: make(map[string]T)}
}

// Insert stores record under id, replacing any existing entry
// (last writer wins).
func (s *Store[T]) Insert(id string, record T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[id] = record
}

func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.items[id]
	return record, ok
}

// List returns a snapshot copy; callers may mutate the slice freely.
func (s *Store[T]) List() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0, len(s.items))
	for _, record := range s.items {
		out = append(out, record)
	}
	return out
}

// Update applies fn to the stored record under the write lock and keeps
// the result. Returns false without calling fn when id is absent.
func (s *Store[T]) Update(id string, fn func(*T)) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.items[id]
	if !ok {
		var zero T
		return zero, false
	}
	fn(&record)
	s.items[id] = record
	return record, true
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
