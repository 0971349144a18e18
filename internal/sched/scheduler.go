package sched

import (
	"time"
)

// Cadence says how often a system runs.
// The zero value runs every frame.
type Cadence struct {
	Period time.Duration
}

// EveryFrame runs a system once per Step.
func EveryFrame() Cadence {
	return Cadence{}
}

// Every runs a system on frames where a fixed period of d has elapsed.
func Every(d time.Duration) Cadence {
	return Cadence{Period: d}
}

// Fixed reports whether the cadence is tied to a period rather than to frames.
func (c Cadence) Fixed() bool {
	return c.Period > 0
}

// Frame describes the frame being executed.
type Frame struct {
	Index   uint64        // Frame number, starting at 1
	Delta   time.Duration // Time since the previous frame
	Elapsed time.Duration // Total time since the scheduler started
}

// DeltaSeconds returns Delta in seconds.
func (f Frame) DeltaSeconds() float64 {
	return f.Delta.Seconds()
}

// SystemFunc is the body of a system. C is the state threaded through every
// call of a frame, typically a pointer to the simulation.
type SystemFunc[C any] func(ctx C, f Frame)

// Option configures a registered system.
type Option[C any] func(*entry[C])

// RunIf only runs the system on frames where pred returns true.
// The predicate is evaluated immediately before the system would run.
func RunIf[C any](pred func(C) bool) Option[C] {
	return func(e *entry[C]) {
		e.runIf = pred
	}
}

type entry[C any] struct {
	name    string
	cadence Cadence
	runIf   func(C) bool
	run     SystemFunc[C]
	stats   *systemStatsInternal
}

// Scheduler runs registered systems in registration order. Systems sharing a
// fixed period share one timer, so they always fire on the same frame.
type Scheduler[C any] struct {
	systems []*entry[C]
	timers  map[time.Duration]*Timer
	periods []time.Duration
	fired   map[time.Duration]bool
	frame   Frame
}

// New creates an empty scheduler.
func New[C any]() *Scheduler[C] {
	return &Scheduler[C]{
		systems: make([]*entry[C], 0, 16),
		timers:  make(map[time.Duration]*Timer),
		fired:   make(map[time.Duration]bool),
	}
}

// Register appends a system. Registration order is execution order.
func (s *Scheduler[C]) Register(name string, cadence Cadence, run SystemFunc[C], opts ...Option[C]) {
	e := &entry[C]{
		name:    name,
		cadence: cadence,
		run:     run,
		stats:   newSystemStats(name),
	}
	for _, opt := range opts {
		opt(e)
	}

	if cadence.Fixed() {
		if _, ok := s.timers[cadence.Period]; !ok {
			s.timers[cadence.Period] = NewTimer(cadence.Period)
			s.periods = append(s.periods, cadence.Period)
		}
	}

	s.systems = append(s.systems, e)
}

// Step advances the scheduler clock by dt and runs every system whose cadence
// is due and whose predicate holds. Fixed-period timers advance on every Step
// regardless of predicates and fire at most once per Step.
func (s *Scheduler[C]) Step(ctx C, dt time.Duration) Frame {
	if dt < 0 {
		dt = 0
	}
	s.frame.Index++
	s.frame.Delta = dt
	s.frame.Elapsed += dt

	for _, p := range s.periods {
		s.fired[p] = s.timers[p].Tick(dt)
	}

	for _, e := range s.systems {
		if e.cadence.Fixed() && !s.fired[e.cadence.Period] {
			continue
		}
		if e.runIf != nil && !e.runIf(ctx) {
			continue
		}

		start := time.Now()
		e.run(ctx, s.frame)
		e.stats.record(time.Since(start))
	}

	return s.frame
}

// Frame returns the most recently executed frame.
func (s *Scheduler[C]) Frame() Frame {
	return s.frame
}

// Systems returns the registered system names in execution order.
func (s *Scheduler[C]) Systems() []string {
	names := make([]string, len(s.systems))
	for i, e := range s.systems {
		names[i] = e.name
	}
	return names
}
