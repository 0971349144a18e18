package desktop

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

func TestToScreen(t *testing.T) {
	vp := config.DefaultFlappyConfig().Viewport

	tests := []struct {
		name   string
		world  core.Vec2
		sx, sy float32
	}{
		{"origin is the window center", core.Vec2{}, 200, 350},
		{"top-left corner", core.Vec2{X: -200, Y: 350}, 0, 0},
		{"bottom-right corner", core.Vec2{X: 200, Y: -350}, 400, 700},
		{"floor line", core.Vec2{X: -150, Y: -300}, 50, 650},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := ToScreen(vp, tt.world)
			assert.InDelta(t, tt.sx, x, 1e-4)
			assert.InDelta(t, tt.sy, y, 1e-4)
		})
	}
}

func TestLayoutUsesViewport(t *testing.T) {
	w := &Window{cfg: config.DefaultFlappyConfig()}
	width, height := w.Layout(1920, 1080)
	assert.Equal(t, 400, width)
	assert.Equal(t, 700, height)
}
