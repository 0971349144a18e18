package ecs

import "github.com/kamstrup/intmap"

// Removable is implemented by all component stores so the World can
// bulk-remove an entity's data from every store on destroy.
type Removable interface {
	Remove(id EntityID)
}

// Store is a sparse table mapping entity ids to one component type.
// Iteration order is deterministic for a given sequence of inserts and removes.
type Store[T any] struct {
	data *intmap.Map[EntityID, *T]
}

// NewStore creates an empty store sized for capacity entities.
func NewStore[T any](capacity int) *Store[T] {
	return &Store[T]{
		data: intmap.New[EntityID, *T](capacity),
	}
}

// Set attaches c to id, replacing any previous value.
func (s *Store[T]) Set(id EntityID, c T) *T {
	p := &c
	s.data.Put(id, p)
	return p
}

// Get returns a pointer to id's component, or false if it has none.
func (s *Store[T]) Get(id EntityID) (*T, bool) {
	return s.data.Get(id)
}

// Has reports whether id has this component.
func (s *Store[T]) Has(id EntityID) bool {
	return s.data.Has(id)
}

// Remove detaches the component from id.
func (s *Store[T]) Remove(id EntityID) {
	s.data.Del(id)
}

// Len returns the number of entities carrying this component.
func (s *Store[T]) Len() int {
	return s.data.Len()
}

// Each calls fn for every entity in the store.
// fn must not add or remove entries from this store.
func (s *Store[T]) Each(fn func(EntityID, *T)) {
	s.data.ForEach(func(id EntityID, c *T) bool {
		fn(id, c)
		return true
	})
}

// Find returns the first entity for which pred returns true.
func (s *Store[T]) Find(pred func(EntityID, *T) bool) (EntityID, bool) {
	var (
		found EntityID
		ok    bool
	)
	s.data.ForEach(func(id EntityID, c *T) bool {
		if pred(id, c) {
			found, ok = id, true
			return false
		}
		return true
	})
	return found, ok
}

// IDs returns a snapshot of the ids in the store.
func (s *Store[T]) IDs() []EntityID {
	ids := make([]EntityID, 0, s.data.Len())
	s.data.ForEach(func(id EntityID, _ *T) bool {
		ids = append(ids, id)
		return true
	})
	return ids
}
