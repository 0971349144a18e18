package flappy

import "github.com/vovakirdan/tui-flappy/internal/ecs"

// Mode is the coarse game state gating which systems run.
type Mode int

const (
	ModeMenu Mode = iota
	ModeInGame
)

func (m Mode) String() string {
	switch m {
	case ModeMenu:
		return "menu"
	case ModeInGame:
		return "in-game"
	default:
		return "unknown"
	}
}

func inMenu(s *Sim) bool { return s.mode == ModeMenu }
func inGame(s *Sim) bool { return s.mode == ModeInGame }

// scoring stops once the run has ended, so Crashed carries the final score.
func scoring(s *Sim) bool { return inGame(s) && !s.pending }

// requestTransition schedules a mode change for the end of the frame.
// The first request of a frame wins.
func (s *Sim) requestTransition(to Mode) {
	if s.pending {
		return
	}
	s.next = to
	s.pending = true
}

// applyTransition switches modes and runs the entry hook of the new mode.
func (s *Sim) applyTransition() {
	if !s.pending {
		return
	}
	s.pending = false
	if s.next == s.mode {
		return
	}

	s.mode = s.next
	switch s.mode {
	case ModeMenu:
		s.enterMenu()
	case ModeInGame:
		s.emit(Event{Kind: EventStarted})
	}
}

// enterMenu is the only place avatar state is reset.
func (s *Sim) enterMenu() {
	id, av := ecs.Single(s.avatars)
	av.Tilt = 0
	if v, ok := s.velocities.Get(id); ok {
		v.X, v.Y = 0, 0
	}
	if p, ok := s.positions.Get(id); ok {
		p.Y = 0
	}

	for _, ob := range s.obstacles.IDs() {
		s.world.Destroy(ob)
	}
	s.score = 0
}
