package ecs

// Each2 iterates over entities that have both component A and B.
// It iterates over the smaller store and checks the larger one.
func Each2[A, B any](sa *Store[A], sb *Store[B], fn func(EntityID, *A, *B)) {
	if sa.Len() <= sb.Len() {
		sa.Each(func(id EntityID, a *A) {
			if b, ok := sb.Get(id); ok {
				fn(id, a, b)
			}
		})
		return
	}
	sb.Each(func(id EntityID, b *B) {
		if a, ok := sa.Get(id); ok {
			fn(id, a, b)
		}
	})
}

// Each3 iterates over entities that have components A, B, and C,
// driven by the first store.
func Each3[A, B, C any](sa *Store[A], sb *Store[B], sc *Store[C], fn func(EntityID, *A, *B, *C)) {
	sa.Each(func(id EntityID, a *A) {
		b, ok := sb.Get(id)
		if !ok {
			return
		}
		if c, ok := sc.Get(id); ok {
			fn(id, a, b, c)
		}
	})
}

// Single returns the only entity carrying component T.
// It panics when the store is empty or holds more than one entity: callers use
// it for singletons whose existence is guaranteed by startup.
func Single[T any](s *Store[T]) (EntityID, *T) {
	if s.Len() != 1 {
		panic("ecs: expected exactly one entity in singleton store")
	}
	var (
		id EntityID
		c  *T
	)
	s.Each(func(eid EntityID, v *T) {
		id, c = eid, v
	})
	return id, c
}
