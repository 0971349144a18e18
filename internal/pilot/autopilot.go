package pilot

import (
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

// Autopilot holds the button while the avatar is falling below its target:
// the center of the next gap, or the middle of the screen when none is ahead.
type Autopilot struct {
	Margin float64 // How far below the target the avatar may sink before flapping
}

// NewAutopilot returns an autopilot with the default margin.
func NewAutopilot() *Autopilot {
	return &Autopilot{Margin: 20}
}

func (a *Autopilot) Name() string { return "autopilot" }

func (a *Autopilot) Hold(v flappy.View) (bool, error) {
	if v.Mode == flappy.ModeMenu {
		// Alternate so every other frame is a fresh press.
		return v.Frame%2 == 0, nil
	}

	target, margin := 0.0, a.Margin
	if v.HasGap {
		target = (v.GapLow + v.GapHigh) / 2
		// Narrow gaps leave no room to sink.
		margin = core.ClampF(margin, 0, (v.GapHigh-v.GapLow)/4)
	}
	return v.Vel.Y <= 0 && v.Avatar.Y < target-margin, nil
}

func (a *Autopilot) Close() error { return nil }
