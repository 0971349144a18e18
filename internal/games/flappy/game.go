package flappy

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Visual characters for terminal rendering
const (
	AvatarBody    = '●'
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
	FloorDark     = '▓'
	FloorLight    = '▒'
	SkylineChar   = '▁'
	BorderChar    = '│'
)

// wingFrames is indexed by the avatar's animation frame.
var wingFrames = []rune{'▲', '◆', '▼', '◆'}

// floorStripe is the width in world units of one floor stripe.
const floorStripe = 24

// GameState is the frontend-facing summary of a session.
type GameState struct {
	Mode   Mode
	Score  int
	Best   int
	Runs   int
	Paused bool
}

// Game wraps a Sim for terminal frontends: it owns pause state and draws the
// world into a core.Screen.
type Game struct {
	cfg    config.FlappyConfig
	sim    *Sim
	paused bool
}

// NewGame creates a game with the given simulation config.
func NewGame(cfg config.FlappyConfig) *Game {
	return &Game{cfg: cfg}
}

// ID returns the identifier used for score storage.
func (g *Game) ID() string {
	return "flappy"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Flappy"
}

// Reset starts a fresh simulation seeded from rc.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.sim = New(g.cfg, rc.Seed)
	g.paused = false
}

// Step handles frontend actions and advances the simulation by dt unless paused.
func (g *Game) Step(in core.InputFrame, dt time.Duration) StepResult {
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return StepResult{Frame: g.sim.Scheduler().Frame(), Mode: g.sim.Mode()}
	}
	return g.sim.Step(dt, in.Has(core.ActionFlap))
}

// Sim returns the underlying simulation.
func (g *Game) Sim() *Sim {
	return g.sim
}

// State returns the current game state.
func (g *Game) State() GameState {
	return GameState{
		Mode:   g.sim.Mode(),
		Score:  g.sim.Score(),
		Best:   g.sim.Best(),
		Runs:   g.sim.Runs(),
		Paused: g.paused,
	}
}

// field maps world coordinates onto a column range of the screen. Terminal
// cells are roughly twice as tall as wide, so the field keeps the viewport's
// aspect ratio by using two columns per row-height of world space.
type field struct {
	x0, w, h int
	cfg      config.Viewport
}

func newField(dst *core.Screen, vp config.Viewport) field {
	h := dst.Height()
	w := int(math.Round(float64(h) * vp.Width / vp.Height * 2))
	w = core.Clamp(w, 1, dst.Width())
	return field{x0: (dst.Width() - w) / 2, w: w, h: h, cfg: vp}
}

func (f field) col(x float64) int {
	return f.x0 + int(math.Floor((x+f.cfg.HalfWidth())/f.cfg.Width*float64(f.w)))
}

func (f field) row(y float64) int {
	return int(math.Floor((f.cfg.HalfHeight() - y) / f.cfg.Height * float64(f.h)))
}

// bounds returns the cells of the playfield.
func (f field) bounds() core.Rect {
	return core.NewRect(f.x0, 0, f.w, f.h)
}

// span returns the clipped cell rectangle covered by a top-left anchored box.
// Boxes entirely outside the playfield yield an empty rectangle.
func (f field) span(e Entity) core.Rect {
	c0, c1 := f.col(e.Pos.X), f.col(e.Pos.X+e.W)
	r0, r1 := f.row(e.Pos.Y), f.row(e.Pos.Y-e.H)
	if !core.NewRect(c0, r0, c1-c0, r1-r0).Intersects(f.bounds()) {
		return core.Rect{}
	}
	c0, c1 = max(c0, f.x0), min(c1, f.x0+f.w)
	r0, r1 = max(r0, 0), min(r1, f.h)
	return core.NewRect(c0, r0, c1-c0, r1-r0)
}

// Render draws the current snapshot to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	f := newField(dst, g.cfg.Viewport)
	snap := g.sim.Snapshot()

	for _, e := range snap.Entities {
		switch e.Kind {
		case KindBackdrop:
			g.drawSkyline(dst, f, e)
		case KindObstacleUpper, KindObstacleLower:
			g.drawObstacle(dst, f, e)
		case KindFloor:
			g.drawFloor(dst, f, e)
		case KindAvatar:
			g.drawAvatar(dst, f, e)
		}
	}

	if f.x0 > 0 {
		for y := 0; y < f.h; y++ {
			dst.SetColored(f.x0-1, y, BorderChar, core.ColorGray)
			dst.SetColored(f.x0+f.w, y, BorderChar, core.ColorGray)
		}
	}

	// HUD
	dst.DrawTextCentered(0, fmt.Sprintf(" Score: %d  Best: %d ", snap.Score, snap.Best))

	switch {
	case g.paused:
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case snap.Mode == ModeMenu:
		g.drawCenteredMessage(dst, "FLAPPY", "Press SPACE to flap")
	}
}

// drawSkyline draws a low city line just above the floor, scrolling with the backdrop.
func (g *Game) drawSkyline(dst *core.Screen, f field, e Entity) {
	y := f.row(g.cfg.FloorLine()) - 1
	if y < 0 {
		return
	}
	r := f.span(e)
	for x := r.X; x < r.Right(); x++ {
		worldX := (float64(x-f.x0)+0.5)/float64(f.w)*g.cfg.Viewport.Width - g.cfg.Viewport.HalfWidth()
		if math.Mod(worldX-e.Pos.X, 72) < 40 {
			dst.SetColored(x, y, SkylineChar, core.ColorGray)
		}
	}
}

func (g *Game) drawObstacle(dst *core.Screen, f field, e Entity) {
	r := f.span(e)
	if r.W <= 0 || r.H <= 0 {
		return
	}
	dst.DrawRectColored(r, PipeChar, core.ColorGreen)

	// Cap on the edge facing the gap
	capY, capRune := r.Y, PipeCapBottom
	if e.Kind == KindObstacleUpper {
		capY, capRune = r.Bottom()-1, PipeCapTop
	}
	for x := r.X; x < r.Right(); x++ {
		dst.SetColored(x, capY, capRune, core.ColorBrightGreen)
	}
}

func (g *Game) drawFloor(dst *core.Screen, f field, e Entity) {
	r := f.span(e)
	for x := r.X; x < r.Right(); x++ {
		worldX := (float64(x-f.x0)+0.5)/float64(f.w)*g.cfg.Viewport.Width - g.cfg.Viewport.HalfWidth()
		ch := FloorDark
		if int(math.Floor((worldX-e.Pos.X)/floorStripe))%2 == 1 {
			ch = FloorLight
		}
		for y := r.Y; y < r.Bottom(); y++ {
			dst.SetColored(x, y, ch, core.ColorOrange)
		}
	}
}

func (g *Game) drawAvatar(dst *core.Screen, f field, e Entity) {
	x := f.col(e.Pos.X)
	y := f.row(e.Pos.Y)
	if !f.bounds().Contains(x, y) {
		return
	}

	nose := '➤'
	switch {
	case e.Rotation > math.Pi/8:
		nose = '⬈'
	case e.Rotation < -math.Pi/8:
		nose = '⬊'
	}

	dst.SetColored(x-1, y, wingFrames[e.Frame%len(wingFrames)], core.ColorBrightYellow)
	dst.SetColored(x, y, AvatarBody, core.ColorYellow)
	dst.SetColored(x+1, y, nose, core.ColorBrightYellow)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len([]rune(title)))/2, boxY+1, title)
	dst.DrawHLine(boxX+1, boxY+2, boxW-2, '─')
	dst.DrawText(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle)
}
