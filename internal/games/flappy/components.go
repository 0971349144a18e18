package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/sched"
)

// Kind identifies what an entity is drawn as.
type Kind int

const (
	KindAvatar Kind = iota
	KindObstacleUpper
	KindObstacleLower
	KindFloor
	KindBackdrop
)

func (k Kind) String() string {
	switch k {
	case KindAvatar:
		return "avatar"
	case KindObstacleUpper:
		return "obstacle-upper"
	case KindObstacleLower:
		return "obstacle-lower"
	case KindFloor:
		return "floor"
	case KindBackdrop:
		return "backdrop"
	default:
		return "unknown"
	}
}

// Position is the world-space anchor of an entity. The avatar is anchored at
// its center, every other entity at its top-left corner.
type Position struct {
	core.Vec2
}

// Velocity is a per-frame displacement.
type Velocity struct {
	core.Vec2
}

// Gravity tags entities that fall.
type Gravity struct{}

// Avatar holds the player-only state.
type Avatar struct {
	Tilt float64 // Radians, derived from vertical velocity
}

// Obstacle is one member of a gated pair. Pair members are only related
// through the values they were spawned with.
type Obstacle struct {
	GapBottom float64
	GapTop    float64
	Upper     bool
	Scores    bool // Only the lower member of a pair counts toward the score
	Scored    bool
}

// Scroll moves a looping segment every frame.
type Scroll struct {
	Speed        float64
	SegmentWidth float64
}

// Sprite is the opaque render identity of an entity.
type Sprite struct {
	Kind Kind
	W, H float64
}

// Animation cycles a frame index in [First, Last].
type Animation struct {
	timer *sched.Timer
	First int
	Last  int
	Frame int
}
