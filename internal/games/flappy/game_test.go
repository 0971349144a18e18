package flappy

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

const tick = 16 * time.Millisecond

func newTestGame(seed int64) *Game {
	g := NewGame(config.DefaultFlappyConfig())
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed})
	return g
}

func flapInput() core.InputFrame {
	in := core.NewInputFrame()
	in.Set(core.ActionFlap)
	return in
}

func TestGameDeterminism(t *testing.T) {
	// Flap every 20 ticks to stay airborne for a while
	inputs := make([]core.InputFrame, 600)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		if i%20 == 0 {
			inputs[i].Set(core.ActionFlap)
		}
	}

	g1 := newTestGame(12345)
	g2 := newTestGame(12345)
	for _, in := range inputs {
		g1.Step(in, tick)
		g2.Step(in, tick)
	}

	if g1.State() != g2.State() {
		t.Errorf("Determinism failed: states differ. Run1=%+v, Run2=%+v", g1.State(), g2.State())
	}
	if g1.Sim().PairsSpawned() != g2.Sim().PairsSpawned() {
		t.Errorf("Determinism failed: pairs differ. Run1=%d, Run2=%d", g1.Sim().PairsSpawned(), g2.Sim().PairsSpawned())
	}
}

func TestGameReset(t *testing.T) {
	g := newTestGame(42)
	for i := 0; i < 50; i++ {
		in := core.NewInputFrame()
		if i%10 == 0 {
			in.Set(core.ActionFlap)
		}
		g.Step(in, tick)
	}

	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 42})

	state := g.State()
	if state.Mode != ModeMenu {
		t.Errorf("Reset should return to menu, got %v", state.Mode)
	}
	if state.Score != 0 || state.Runs != 0 {
		t.Errorf("Reset should clear score and runs, got %+v", state)
	}
	if g.Sim().ObstacleCount() != 0 {
		t.Errorf("Reset should clear obstacles, got %d", g.Sim().ObstacleCount())
	}
}

func TestGamePause(t *testing.T) {
	g := newTestGame(1)
	g.Step(flapInput(), tick)

	pauseInput := core.NewInputFrame()
	pauseInput.Set(core.ActionPause)
	g.Step(pauseInput, tick)
	if !g.State().Paused {
		t.Fatal("Game should be paused")
	}

	posBefore, _ := g.Sim().Avatar()
	frameBefore := g.Sim().Scheduler().Frame().Index
	for i := 0; i < 10; i++ {
		g.Step(core.NewInputFrame(), tick)
	}

	posAfter, _ := g.Sim().Avatar()
	if posAfter != posBefore {
		t.Errorf("Avatar should not move while paused, was %v, now %v", posBefore, posAfter)
	}
	if g.Sim().Scheduler().Frame().Index != frameBefore {
		t.Error("No frames should run while paused")
	}

	g.Step(pauseInput, tick)
	if g.State().Paused {
		t.Error("Game should be unpaused")
	}
}

func TestGameCrashReturnsToMenu(t *testing.T) {
	g := newTestGame(1)
	g.Step(flapInput(), tick)
	if g.State().Mode != ModeInGame {
		t.Fatalf("Flap in menu should start the game, got %v", g.State().Mode)
	}

	var crashed bool
	for i := 0; i < 300 && !crashed; i++ {
		res := g.Step(core.NewInputFrame(), tick)
		for _, e := range res.Events {
			if e.Kind == EventCrashed {
				crashed = true
			}
		}
	}

	if !crashed {
		t.Fatal("Falling without flaps should crash into the floor")
	}
	if g.State().Mode != ModeMenu {
		t.Errorf("Crash should return to menu, got %v", g.State().Mode)
	}
	if g.State().Runs != 1 {
		t.Errorf("Runs should be 1, got %d", g.State().Runs)
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(1)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if !strings.Contains(screen.String(), "FLAPPY") {
		t.Error("Menu should show the title banner")
	}

	// Floor occupies the bottom rows of the field
	bottom := screen.Get(40, 23)
	if bottom != FloorDark && bottom != FloorLight {
		t.Errorf("Floor should be drawn at bottom, got %q", bottom)
	}

	// Field borders around the 27-column playfield
	if screen.Get(25, 5) != BorderChar || screen.Get(53, 5) != BorderChar {
		t.Error("Playfield should be framed by borders")
	}

	g.Step(flapInput(), tick)
	g.Render(screen)
	if strings.Contains(screen.String(), "FLAPPY") {
		t.Error("Banner should disappear in game")
	}
	if screen.Get(29, 12) != AvatarBody {
		t.Errorf("Avatar should be drawn at its start cell, got %q", screen.Get(29, 12))
	}
}

func TestGameRenderObstacles(t *testing.T) {
	g := newTestGame(1)
	g.Step(flapInput(), tick)

	s := g.Sim()
	s.spawnObstacle(100+480, -50, 100, true)
	s.spawnObstacle(-50, -50, 100, false)
	for _, id := range s.obstacles.IDs() {
		p, _ := s.positions.Get(id)
		p.X = 0
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	// x=0 maps to column 26+13; row 12 is inside the gap, row 15 inside the lower pipe
	col := 26 + 13
	if got := screen.GetCell(col, 12).Rune; got == PipeChar {
		t.Error("Gap should be open")
	}
	if got := screen.GetCell(col, 15).Rune; got != PipeChar {
		t.Errorf("Lower pipe should be drawn, got %q", got)
	}
	if got := screen.GetCell(col, 15).Color; got != core.ColorGreen {
		t.Errorf("Pipes should be green, got %v", got)
	}
}

func TestGameRenderHUD(t *testing.T) {
	g := newTestGame(1)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	hud := " Score: 0  Best: 0 "
	x := (80 - len(hud)) / 2
	if got := string([]rune(screen.Row(0))[x : x+len(hud)]); got != hud {
		t.Errorf("HUD should be centered on the top row, got %q", screen.Row(0))
	}
}

func TestGameRenderSkipsOffFieldObstacles(t *testing.T) {
	g := newTestGame(1)
	g.Step(flapInput(), tick)

	s := g.Sim()
	s.spawnObstacle(-50, -50, 100, false)

	// Spawned at x=400, just past the right edge of the playfield.
	screen := core.NewScreen(80, 24)
	g.Render(screen)
	for y := 0; y < 24; y++ {
		for x := 0; x < 80; x++ {
			if screen.Get(x, y) == PipeChar {
				t.Fatalf("Off-field obstacle drawn at (%d, %d)", x, y)
			}
		}
	}
}
