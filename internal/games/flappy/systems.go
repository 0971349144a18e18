package flappy

import (
	"math"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/ecs"
	"github.com/vovakirdan/tui-flappy/internal/sched"
)

// Registration order is execution order.
func newSchedule(cfg config.FlappyConfig) *sched.Scheduler[*Sim] {
	spawnEvery := sched.Every(cfg.Timing.SpawnInterval.Std())
	collideEvery := sched.Every(cfg.Timing.CollisionInterval.Std())

	s := sched.New[*Sim]()
	s.Register("start-game", sched.EveryFrame(), startGameSystem, sched.RunIf(inMenu))
	s.Register("flap", sched.EveryFrame(), flapSystem, sched.RunIf(inGame))
	s.Register("gravity", sched.EveryFrame(), gravitySystem, sched.RunIf(inGame))
	s.Register("retire", spawnEvery, retireSystem, sched.RunIf(inGame))
	s.Register("spawn", spawnEvery, spawnSystem, sched.RunIf(inGame))
	s.Register("game-over", collideEvery, gameOverSystem, sched.RunIf(inGame))
	s.Register("tilt", sched.EveryFrame(), tiltSystem, sched.RunIf(inGame))
	s.Register("integrate", sched.EveryFrame(), integrateSystem)
	s.Register("score", sched.EveryFrame(), scoreSystem, sched.RunIf(scoring))
	s.Register("scroll", sched.EveryFrame(), scrollSystem)
	s.Register("animate", sched.EveryFrame(), animateSystem)
	return s
}

func startGameSystem(s *Sim, _ sched.Frame) {
	if s.flap {
		s.requestTransition(ModeInGame)
	}
}

// flapSystem overwrites the avatar's vertical velocity; flaps do not stack.
func flapSystem(s *Sim, _ sched.Frame) {
	if !s.flap {
		return
	}
	id, _ := ecs.Single(s.avatars)
	if v, ok := s.velocities.Get(id); ok {
		v.Y = s.cfg.Physics.FlapImpulse
	}
}

func gravitySystem(s *Sim, f sched.Frame) {
	dv := s.cfg.Physics.Gravity * f.DeltaSeconds()
	ecs.Each2(s.gravity, s.velocities, func(_ ecs.EntityID, _ *Gravity, v *Velocity) {
		v.Y -= dv
	})
}

func tiltSystem(s *Sim, _ sched.Frame) {
	ecs.Each2(s.avatars, s.velocities, func(_ ecs.EntityID, a *Avatar, v *Velocity) {
		a.Tilt = Tilt(v.Y, s.cfg.Physics.TiltDivisor)
	})
}

// Tilt maps a vertical velocity to a rotation in radians: vy/divisor * 45deg.
func Tilt(vy, divisor float64) float64 {
	return vy / divisor * math.Pi / 4
}

// integrateSystem applies per-frame displacements with an implicit unit timestep.
func integrateSystem(s *Sim, _ sched.Frame) {
	ecs.Each2(s.positions, s.velocities, func(_ ecs.EntityID, p *Position, v *Velocity) {
		p.Vec2 = p.Add(v.Vec2)
	})
}

func scrollSystem(s *Sim, _ sched.Frame) {
	threshold := -s.cfg.Viewport.HalfWidth()
	ecs.Each2(s.positions, s.scrolls, func(_ ecs.EntityID, p *Position, sc *Scroll) {
		p.X = Wrap(p.X+sc.Speed, threshold, sc.SegmentWidth)
	})
}

// Wrap moves a segment that has fully left the viewport (x < left-width) to
// the far side of its partner. Applying it twice without movement is the same
// as applying it once.
func Wrap(x, left, width float64) float64 {
	if x < left-width {
		x += 2 * width
	}
	return x
}

func animateSystem(s *Sim, f sched.Frame) {
	s.animations.Each(func(_ ecs.EntityID, a *Animation) {
		if !a.timer.Tick(f.Delta) {
			return
		}
		a.Frame++
		if a.Frame > a.Last {
			a.Frame = a.First
		}
	})
}
