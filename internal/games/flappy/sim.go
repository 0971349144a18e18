// Package flappy implements the simulation core of a Flappy Bird-style game:
// an avatar falls under gravity, flaps upward on input, and must pass through
// gated obstacle pairs scrolling in from the right.
//
// The core is single-threaded and deterministic for a given seed, config and
// sequence of (delta, flap) inputs. It never blocks and performs no I/O.
package flappy

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/ecs"
	"github.com/vovakirdan/tui-flappy/internal/sched"
)

// Sim owns the world, the mode machine and the system schedule.
type Sim struct {
	cfg   config.FlappyConfig
	rng   *rand.Rand
	sched *sched.Scheduler[*Sim]

	world      *ecs.World
	positions  *ecs.Store[Position]
	velocities *ecs.Store[Velocity]
	gravity    *ecs.Store[Gravity]
	avatars    *ecs.Store[Avatar]
	obstacles  *ecs.Store[Obstacle]
	scrolls    *ecs.Store[Scroll]
	sprites    *ecs.Store[Sprite]
	animations *ecs.Store[Animation]

	mode    Mode
	next    Mode
	pending bool

	flap   bool // Rising edge of the flap signal for the current frame
	score  int
	best   int
	runs   int
	pairs  int
	events []Event
}

// StepResult reports what happened during one Step.
type StepResult struct {
	Frame  sched.Frame
	Mode   Mode
	Events []Event
}

// New creates a simulation in Menu mode with the avatar and scroll layers in
// place. cfg must be valid; see config.FlappyConfig.Validate.
func New(cfg config.FlappyConfig, seed int64) *Sim {
	return NewWithRand(cfg, rand.New(rand.NewSource(seed)))
}

// NewWithRand is New with an injected random source.
func NewWithRand(cfg config.FlappyConfig, rng *rand.Rand) *Sim {
	w := ecs.NewWorld()
	s := &Sim{
		cfg:        cfg,
		rng:        rng,
		world:      w,
		positions:  ecs.Register(w, ecs.NewStore[Position](16)),
		velocities: ecs.Register(w, ecs.NewStore[Velocity](16)),
		gravity:    ecs.Register(w, ecs.NewStore[Gravity](1)),
		avatars:    ecs.Register(w, ecs.NewStore[Avatar](1)),
		obstacles:  ecs.Register(w, ecs.NewStore[Obstacle](8)),
		scrolls:    ecs.Register(w, ecs.NewStore[Scroll](4)),
		sprites:    ecs.Register(w, ecs.NewStore[Sprite](16)),
		animations: ecs.Register(w, ecs.NewStore[Animation](1)),
		mode:       ModeMenu,
	}

	s.spawnAvatar()
	s.spawnScrollLayers()
	s.sched = newSchedule(cfg)
	return s
}

// Step advances the simulation by one frame of length dt. flap reports
// whether the flap input was newly pressed this frame.
func (s *Sim) Step(dt time.Duration, flap bool) StepResult {
	s.flap = flap
	s.events = nil

	frame := s.sched.Step(s, dt)
	s.applyTransition()

	return StepResult{
		Frame:  frame,
		Mode:   s.mode,
		Events: s.events,
	}
}

// Mode returns the active game mode.
func (s *Sim) Mode() Mode { return s.mode }

// Score returns the score of the current run.
func (s *Sim) Score() int { return s.score }

// Best returns the highest score reached since the simulation was created.
func (s *Sim) Best() int { return s.best }

// Runs returns how many runs have ended in a crash.
func (s *Sim) Runs() int { return s.runs }

// PairsSpawned returns the total number of obstacle pairs spawned.
func (s *Sim) PairsSpawned() int { return s.pairs }

// Config returns the configuration the simulation was built with.
func (s *Sim) Config() config.FlappyConfig { return s.cfg }

// Scheduler exposes the system schedule, mainly for its stats.
func (s *Sim) Scheduler() *sched.Scheduler[*Sim] { return s.sched }

// Avatar returns the avatar position and velocity.
func (s *Sim) Avatar() (pos, vel core.Vec2) {
	id, _ := ecs.Single(s.avatars)
	p, _ := s.positions.Get(id)
	v, _ := s.velocities.Get(id)
	return p.Vec2, v.Vec2
}

// ObstacleCount returns the number of live obstacle entities (two per pair).
func (s *Sim) ObstacleCount() int { return s.obstacles.Len() }

func (s *Sim) emit(e Event) {
	s.events = append(s.events, e)
}

func (s *Sim) spawnAvatar() {
	id := s.world.CreateEntity()
	s.positions.Set(id, Position{core.Vec2{X: s.cfg.Avatar.StartX}})
	s.velocities.Set(id, Velocity{})
	s.gravity.Set(id, Gravity{})
	s.avatars.Set(id, Avatar{})
	s.sprites.Set(id, Sprite{Kind: KindAvatar, W: s.cfg.Avatar.Hitbox, H: s.cfg.Avatar.Hitbox})
	s.animations.Set(id, Animation{
		timer: sched.NewTimer(s.cfg.Animation.FrameTime.Std()),
		First: s.cfg.Animation.FirstFrame,
		Last:  s.cfg.Animation.LastFrame,
		Frame: s.cfg.Animation.FirstFrame,
	})
}

// spawnScrollLayers creates two segments per layer, one segment width apart,
// starting at the left viewport edge.
func (s *Sim) spawnScrollLayers() {
	halfW := s.cfg.Viewport.HalfWidth()
	halfH := s.cfg.Viewport.HalfHeight()

	layers := []struct {
		kind  Kind
		y     float64
		w, h  float64
		speed float64
	}{
		{KindBackdrop, halfH, s.cfg.Scroll.BackdropSegmentWidth, s.cfg.Viewport.Height, -s.cfg.Physics.Speed * s.cfg.Scroll.BackdropFactor},
		{KindFloor, s.cfg.FloorLine(), s.cfg.Scroll.FloorSegmentWidth, s.cfg.Scroll.FloorHeight, -s.cfg.Physics.Speed},
	}

	for _, l := range layers {
		for i := range 2 {
			id := s.world.CreateEntity()
			s.positions.Set(id, Position{core.Vec2{X: -halfW + float64(i)*l.w, Y: l.y}})
			s.scrolls.Set(id, Scroll{Speed: l.speed, SegmentWidth: l.w})
			s.sprites.Set(id, Sprite{Kind: l.kind, W: l.w, H: l.h})
		}
	}
}
