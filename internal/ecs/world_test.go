package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-flappy/internal/ecs"
)

type position struct{ X, Y float64 }
type velocity struct{ X, Y float64 }
type tag struct{}

func TestEntityPool(t *testing.T) {
	t.Run("ids are unique and alive", func(t *testing.T) {
		p := ecs.NewEntityPool()
		a := p.Create()
		b := p.Create()

		assert.NotEqual(t, a, b)
		assert.True(t, p.Alive(a))
		assert.True(t, p.Alive(b))
		assert.Equal(t, 2, p.Len())
	})

	t.Run("destroyed ids become stale when the index is reused", func(t *testing.T) {
		p := ecs.NewEntityPool()
		a := p.Create()
		p.Destroy(a)
		b := p.Create()

		assert.Equal(t, a.Index(), b.Index())
		assert.NotEqual(t, a.Generation(), b.Generation())
		assert.False(t, p.Alive(a))
		assert.True(t, p.Alive(b))
	})

	t.Run("destroying twice is a no-op", func(t *testing.T) {
		p := ecs.NewEntityPool()
		a := p.Create()
		p.Destroy(a)
		p.Destroy(a)

		assert.Equal(t, 0, p.Len())
		c := p.Create()
		d := p.Create()
		assert.NotEqual(t, c.Index(), d.Index(), "index must not be handed out twice")
	})
}

func TestStore(t *testing.T) {
	s := ecs.NewStore[position](4)

	_, ok := s.Get(ecs.NewEntityID(1, 0))
	assert.False(t, ok)

	id := ecs.NewEntityID(7, 0)
	p := s.Set(id, position{X: 1, Y: 2})
	p.X = 10

	got, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, position{X: 10, Y: 2}, *got, "Set must return a pointer into the store")
	assert.Equal(t, 1, s.Len())

	s.Remove(id)
	assert.False(t, s.Has(id))
	assert.Equal(t, 0, s.Len())
}

func TestStoreEachOnEmpty(t *testing.T) {
	s := ecs.NewStore[position](0)
	calls := 0
	s.Each(func(ecs.EntityID, *position) { calls++ })

	assert.Zero(t, calls)
	assert.Empty(t, s.IDs())
	_, found := s.Find(func(ecs.EntityID, *position) bool { return true })
	assert.False(t, found)
}

func TestEach2(t *testing.T) {
	w := ecs.NewWorld()
	pos := ecs.Register(w, ecs.NewStore[position](8))
	vel := ecs.Register(w, ecs.NewStore[velocity](8))

	moving := w.CreateEntity()
	pos.Set(moving, position{})
	vel.Set(moving, velocity{X: 1, Y: -1})

	static := w.CreateEntity()
	pos.Set(static, position{X: 5})

	for range 3 {
		ecs.Each2(pos, vel, func(_ ecs.EntityID, p *position, v *velocity) {
			p.X += v.X
			p.Y += v.Y
		})
	}

	mp, _ := pos.Get(moving)
	sp, _ := pos.Get(static)
	assert.Equal(t, position{X: 3, Y: -3}, *mp)
	assert.Equal(t, position{X: 5}, *sp)
}

func TestEach3(t *testing.T) {
	w := ecs.NewWorld()
	pos := ecs.Register(w, ecs.NewStore[position](8))
	vel := ecs.Register(w, ecs.NewStore[velocity](8))
	tags := ecs.Register(w, ecs.NewStore[tag](8))

	tagged := w.CreateEntity()
	pos.Set(tagged, position{})
	vel.Set(tagged, velocity{})
	tags.Set(tagged, tag{})

	untagged := w.CreateEntity()
	pos.Set(untagged, position{})
	vel.Set(untagged, velocity{})

	var seen []ecs.EntityID
	ecs.Each3(pos, vel, tags, func(id ecs.EntityID, _ *position, _ *velocity, _ *tag) {
		seen = append(seen, id)
	})
	assert.Equal(t, []ecs.EntityID{tagged}, seen)
}

func TestSingle(t *testing.T) {
	s := ecs.NewStore[tag](1)
	assert.Panics(t, func() { ecs.Single(s) }, "empty singleton store is a precondition violation")

	id := ecs.NewEntityID(3, 1)
	s.Set(id, tag{})
	got, _ := ecs.Single(s)
	assert.Equal(t, id, got)

	s.Set(ecs.NewEntityID(4, 0), tag{})
	assert.Panics(t, func() { ecs.Single(s) })
}

func TestWorldDeferredDestroy(t *testing.T) {
	w := ecs.NewWorld()
	pos := ecs.Register(w, ecs.NewStore[position](8))
	vel := ecs.Register(w, ecs.NewStore[velocity](8))

	ids := make([]ecs.EntityID, 0, 5)
	for i := range 5 {
		id := w.CreateEntity()
		pos.Set(id, position{X: float64(i)})
		vel.Set(id, velocity{})
		ids = append(ids, id)
	}

	// Queue while iterating; the store must not change until the flush.
	pos.Each(func(id ecs.EntityID, p *position) {
		if p.X < 3 {
			w.MarkForDestruction(id)
			w.MarkForDestruction(id)
		}
	})
	assert.Equal(t, 5, pos.Len())
	assert.Equal(t, 6, w.Pending())

	destroyed := w.FlushDestroyQueue()
	assert.Equal(t, 3, destroyed)
	assert.Equal(t, 2, pos.Len())
	assert.Equal(t, 2, vel.Len())
	assert.Equal(t, 2, w.Len())
	assert.Zero(t, w.Pending())
	assert.False(t, w.Alive(ids[0]))
	assert.True(t, w.Alive(ids[4]))
}
