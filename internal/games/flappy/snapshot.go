package flappy

import (
	"cmp"
	"slices"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/ecs"
)

// Entity is the render view of one entity.
type Entity struct {
	ID       ecs.EntityID
	Kind     Kind
	Pos      core.Vec2 // Center for the avatar, top-left corner otherwise
	W, H     float64
	Rotation float64 // Radians, avatar only
	Frame    int     // Animation frame, avatar only
}

// Snapshot is everything a renderer needs for one frame.
type Snapshot struct {
	Mode     Mode
	Score    int
	Best     int
	Entities []Entity // Back to front
}

func layer(k Kind) int {
	switch k {
	case KindBackdrop:
		return 0
	case KindObstacleUpper, KindObstacleLower:
		return 1
	case KindFloor:
		return 2
	default:
		return 3
	}
}

// Snapshot captures the current render state.
func (s *Sim) Snapshot() Snapshot {
	snap := Snapshot{
		Mode:     s.mode,
		Score:    s.score,
		Best:     s.best,
		Entities: make([]Entity, 0, s.sprites.Len()),
	}

	ecs.Each2(s.sprites, s.positions, func(id ecs.EntityID, sp *Sprite, p *Position) {
		e := Entity{ID: id, Kind: sp.Kind, Pos: p.Vec2, W: sp.W, H: sp.H}
		if a, ok := s.avatars.Get(id); ok {
			e.Rotation = a.Tilt
		}
		if an, ok := s.animations.Get(id); ok {
			e.Frame = an.Frame
		}
		snap.Entities = append(snap.Entities, e)
	})

	slices.SortStableFunc(snap.Entities, func(a, b Entity) int {
		if c := cmp.Compare(layer(a.Kind), layer(b.Kind)); c != 0 {
			return c
		}
		return cmp.Compare(a.Pos.X, b.Pos.X)
	})
	return snap
}

// View is the read-only state handed to pilots.
type View struct {
	Frame   uint64
	Mode    Mode
	Score   int
	Avatar  core.Vec2
	Vel     core.Vec2
	Floor   float64
	HasGap  bool
	GapX    float64 // Left edge of the next pair still ahead of the avatar
	GapLow  float64
	GapHigh float64
}

// View returns the pilot view of the current state.
func (s *Sim) View() View {
	pos, vel := s.Avatar()
	v := View{
		Frame:  s.sched.Frame().Index,
		Mode:   s.mode,
		Score:  s.score,
		Avatar: pos,
		Vel:    vel,
		Floor:  s.cfg.FloorLine(),
	}

	behind := pos.X - s.cfg.Avatar.Hitbox/2
	ecs.Each2(s.obstacles, s.positions, func(_ ecs.EntityID, o *Obstacle, p *Position) {
		if o.Upper || p.X+s.cfg.Obstacles.Width < behind {
			return
		}
		if !v.HasGap || p.X < v.GapX {
			v.HasGap = true
			v.GapX = p.X
			v.GapLow = o.GapBottom
			v.GapHigh = o.GapTop
		}
	})
	return v
}
