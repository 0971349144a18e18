package ecs

// World is the top-level ECS container. It owns the entity pool, the component
// stores registered with it, and a deferred destruction queue that callers flush
// once the systems of a frame have finished.
type World struct {
	pool         *EntityPool
	stores       []Removable
	destroyQueue []EntityID
}

func NewWorld() *World {
	return &World{
		pool:         NewEntityPool(),
		stores:       make([]Removable, 0, 8),
		destroyQueue: make([]EntityID, 0, 16),
	}
}

// Register adds a component store so destroyed entities are removed from it.
func Register[T any](w *World, s *Store[T]) *Store[T] {
	w.stores = append(w.stores, s)
	return s
}

// CreateEntity allocates a new entity id with no components.
func (w *World) CreateEntity() EntityID {
	return w.pool.Create()
}

// Alive reports whether id refers to a live entity.
func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return w.pool.Len()
}

// MarkForDestruction queues an entity for end-of-frame cleanup.
// Stores may be iterated safely while entities are queued.
func (w *World) MarkForDestruction(id EntityID) {
	w.destroyQueue = append(w.destroyQueue, id)
}

// Pending returns the number of entities waiting in the destroy queue.
func (w *World) Pending() int {
	return len(w.destroyQueue)
}

// Destroy removes id from every store and frees it immediately.
func (w *World) Destroy(id EntityID) {
	if !w.pool.Alive(id) {
		return
	}
	for _, s := range w.stores {
		s.Remove(id)
	}
	w.pool.Destroy(id)
}

// FlushDestroyQueue destroys all queued entities and clears their components.
// Ids queued more than once are destroyed once.
func (w *World) FlushDestroyQueue() int {
	n := 0
	for _, id := range w.destroyQueue {
		if w.pool.Alive(id) {
			w.Destroy(id)
			n++
		}
	}
	w.destroyQueue = w.destroyQueue[:0]
	return n
}
