package flappy

import "github.com/vovakirdan/tui-flappy/internal/ecs"

// EventKind identifies an Event.
type EventKind int

const (
	EventStarted EventKind = iota
	EventCrashed
	EventPairSpawned
	EventObstacleRetired
	EventScored
)

func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventCrashed:
		return "crashed"
	case EventPairSpawned:
		return "pair-spawned"
	case EventObstacleRetired:
		return "obstacle-retired"
	case EventScored:
		return "scored"
	default:
		return "unknown"
	}
}

// CrashCause says what ended a run.
type CrashCause int

const (
	CauseNone CrashCause = iota
	CauseFloor
	CauseObstacle
)

func (c CrashCause) String() string {
	switch c {
	case CauseFloor:
		return "floor"
	case CauseObstacle:
		return "obstacle"
	default:
		return "none"
	}
}

// Event is something noteworthy that happened during a frame.
// Fields not relevant to Kind are zero.
type Event struct {
	Kind      EventKind
	Score     int        // Crashed: final score of the run. Scored: new score
	Cause     CrashCause // Crashed
	Entity    ecs.EntityID
	GapBottom float64 // PairSpawned
}
