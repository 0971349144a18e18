package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/ecs"
	"github.com/vovakirdan/tui-flappy/internal/sched"
)

// spawnSystem creates one gated pair off-screen right. The gap bottom is drawn
// uniformly from config.GapRange, so the gap never touches floor or ceiling.
func spawnSystem(s *Sim, _ sched.Frame) {
	lo, hi := s.cfg.GapRange()
	bottom := lo + s.rng.Float64()*(hi-lo)
	top := bottom + s.cfg.Obstacles.Gap

	// Obstacles are anchored at their top-left corner and extend down, so the
	// upper member's bottom edge sits at the gap top.
	s.spawnObstacle(top+s.cfg.Obstacles.Height, bottom, top, true)
	lower := s.spawnObstacle(bottom, bottom, top, false)

	s.pairs++
	s.emit(Event{Kind: EventPairSpawned, Entity: lower, GapBottom: bottom})
}

func (s *Sim) spawnObstacle(y, gapBottom, gapTop float64, upper bool) ecs.EntityID {
	kind := KindObstacleLower
	if upper {
		kind = KindObstacleUpper
	}

	id := s.world.CreateEntity()
	s.positions.Set(id, Position{core.Vec2{X: s.cfg.Obstacles.SpawnX, Y: y}})
	s.velocities.Set(id, Velocity{core.Vec2{X: -s.cfg.Physics.Speed}})
	s.obstacles.Set(id, Obstacle{
		GapBottom: gapBottom,
		GapTop:    gapTop,
		Upper:     upper,
		Scores:    !upper,
	})
	s.sprites.Set(id, Sprite{Kind: kind, W: s.cfg.Obstacles.Width, H: s.cfg.Obstacles.Height})
	return id
}

// retireSystem removes obstacles that have passed fully off the left edge.
func retireSystem(s *Sim, _ sched.Frame) {
	limit := -s.cfg.Viewport.HalfWidth() - s.cfg.Obstacles.Width
	ecs.Each2(s.obstacles, s.positions, func(id ecs.EntityID, _ *Obstacle, p *Position) {
		if p.X < limit {
			s.world.MarkForDestruction(id)
			s.emit(Event{Kind: EventObstacleRetired, Entity: id})
		}
	})
	s.world.FlushDestroyQueue()
}

// gameOverSystem checks the floor, then every obstacle, stopping at the first hit.
func gameOverSystem(s *Sim, _ sched.Frame) {
	id, _ := ecs.Single(s.avatars)
	p, _ := s.positions.Get(id)

	if p.Y < s.cfg.FloorLine() {
		s.crash(CauseFloor)
		return
	}

	avatarBox := s.avatarBox(p.Vec2)
	_, hit := s.obstacles.Find(func(ob ecs.EntityID, _ *Obstacle) bool {
		op, ok := s.positions.Get(ob)
		return ok && avatarBox.Overlaps(s.obstacleBox(op.Vec2))
	})
	if hit {
		s.crash(CauseObstacle)
	}
}

func (s *Sim) crash(cause CrashCause) {
	s.runs++
	s.emit(Event{Kind: EventCrashed, Score: s.score, Cause: cause})
	s.requestTransition(ModeMenu)
}

// scoreSystem counts a pair once its right edge is behind the avatar's left edge.
func scoreSystem(s *Sim, _ sched.Frame) {
	id, _ := ecs.Single(s.avatars)
	ap, _ := s.positions.Get(id)
	behind := ap.X - s.cfg.Avatar.Hitbox/2

	ecs.Each2(s.obstacles, s.positions, func(_ ecs.EntityID, o *Obstacle, p *Position) {
		if !o.Scores || o.Scored || p.X+s.cfg.Obstacles.Width >= behind {
			return
		}
		o.Scored = true
		s.score++
		if s.score > s.best {
			s.best = s.score
		}
		s.emit(Event{Kind: EventScored, Score: s.score})
	})
}

func (s *Sim) avatarBox(center core.Vec2) core.Box {
	return core.NewBox(center, s.cfg.Avatar.Hitbox, s.cfg.Avatar.Hitbox)
}

func (s *Sim) obstacleBox(topLeft core.Vec2) core.Box {
	return core.BoxFromTopLeft(topLeft, s.cfg.Obstacles.Width, s.cfg.Obstacles.Height)
}
