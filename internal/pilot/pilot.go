// Package pilot provides the built-in input sources for headless runs and
// the loop that flies a simulation with one of them.
package pilot

import (
	"context"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

func init() {
	registry.Register("none", "never flaps; the avatar drops to the floor", func(registry.Options) (registry.Pilot, error) {
		return None{}, nil
	})
	registry.Register("autopilot", "flaps whenever it falls below the next gap's center", func(registry.Options) (registry.Pilot, error) {
		return NewAutopilot(), nil
	})
	registry.Register("lua", "calls flap(view) from the script given by --script", func(opts registry.Options) (registry.Pilot, error) {
		if opts.Script == "" {
			return nil, fmt.Errorf("pilot: lua pilot needs a script path")
		}
		return LoadLua(opts.Script)
	})
}

// None never holds the flap button.
type None struct{}

func (None) Name() string                   { return "none" }
func (None) Hold(flappy.View) (bool, error) { return false, nil }
func (None) Close() error                   { return nil }

// Summary describes a finished flight.
type Summary struct {
	Frames  uint64
	Elapsed time.Duration
	Runs    int
	Best    int
	Pairs   int
	Flaps   int
}

// Fly steps s for the given number of frames of length dt, asking p for
// input each frame. fn, if non-nil, receives every event. Fly stops early
// when ctx is done or the pilot fails.
func Fly(ctx context.Context, s *flappy.Sim, p registry.Pilot, frames int, dt time.Duration, fn func(flappy.Event)) (Summary, error) {
	var (
		edge  core.EdgeDetector
		sum   Summary
		frame flappy.StepResult
	)

	for i := 0; i < frames; i++ {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		hold, err := p.Hold(s.View())
		if err != nil {
			return sum, fmt.Errorf("pilot: %s: frame %d: %w", p.Name(), i+1, err)
		}
		flap := edge.Update(hold)
		if flap {
			sum.Flaps++
		}

		frame = s.Step(dt, flap)
		if fn != nil {
			for _, e := range frame.Events {
				fn(e)
			}
		}

		sum.Frames = frame.Frame.Index
		sum.Elapsed = frame.Frame.Elapsed
		sum.Runs = s.Runs()
		sum.Best = s.Best()
		sum.Pairs = s.PairsSpawned()
	}
	return sum, nil
}
