// Package desktop runs the flappy simulation in an Ebitengine window.
// World space is centered with +Y up; the window uses the viewport size as its
// logical resolution and lets Ebitengine scale it.
package desktop

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/examples/resources/fonts"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/sched"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

const maxFrameDelta = 250 * time.Millisecond

var (
	skyColor      = color.RGBA{112, 197, 206, 0xff}
	skylineColor  = color.RGBA{160, 220, 200, 0xff}
	pipeColor     = color.RGBA{30, 200, 15, 0xff}
	pipeCapColor  = color.RGBA{20, 140, 10, 0xff}
	floorColor    = color.RGBA{222, 216, 149, 0xff}
	floorStripe   = color.RGBA{200, 190, 110, 0xff}
	avatarColor   = color.RGBA{250, 200, 40, 0xff}
	wingColor     = color.RGBA{240, 240, 240, 0xff}
	beakColor     = color.RGBA{240, 110, 30, 0xff}
	skylineShapes = []float32{0.35, 0.6, 0.45, 0.8, 0.5, 0.3}
	wingOffsets   = []float32{-5, 0, 5, 0}
)

// Options configures a window.
type Options struct {
	Seed     int64
	TickRate int
	Store    *storage.Store // Optional; crashed runs with a score are saved
	Logger   *log.Logger
}

// Window implements ebiten.Game around a flappy.Game.
type Window struct {
	cfg    config.FlappyConfig
	game   *flappy.Game
	store  *storage.Store
	logger *log.Logger
	delta  *sched.DeltaTimer
	font   *text.GoTextFaceSource
}

// New creates a window with a freshly reset game.
func New(cfg config.FlappyConfig, opts Options) (*Window, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(fonts.PressStart2P_ttf))
	if err != nil {
		return nil, fmt.Errorf("desktop: load font: %w", err)
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}

	game := flappy.NewGame(cfg)
	game.Reset(core.RuntimeConfig{TickRate: opts.TickRate, Seed: opts.Seed})

	return &Window{
		cfg:    cfg,
		game:   game,
		store:  opts.Store,
		logger: opts.Logger,
		delta:  sched.NewDeltaTimer(sched.RealClock{}, maxFrameDelta),
		font:   src,
	}, nil
}

// Update reads input and advances the simulation by the measured delta.
func (w *Window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	in := core.NewInputFrame()
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsKeyJustPressed(ebiten.KeyUp) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		in.Set(core.ActionFlap)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		in.Set(core.ActionPause)
	}

	res := w.game.Step(in, w.delta.Delta())
	for _, e := range res.Events {
		if e.Kind != flappy.EventCrashed {
			continue
		}
		w.logger.Info("run ended", "score", e.Score, "cause", e.Cause)
		if w.store != nil && e.Score > 0 {
			if _, err := w.store.SaveScore(w.game.ID(), e.Score); err != nil {
				w.logger.Warn("could not save score", "error", err)
			}
		}
	}
	return nil
}

// Draw renders the current snapshot back to front.
func (w *Window) Draw(screen *ebiten.Image) {
	screen.Fill(skyColor)

	vp := w.cfg.Viewport
	snap := w.game.Sim().Snapshot()
	for _, e := range snap.Entities {
		switch e.Kind {
		case flappy.KindBackdrop:
			w.drawSkyline(screen, vp, e)
		case flappy.KindObstacleUpper, flappy.KindObstacleLower:
			w.drawObstacle(screen, vp, e)
		case flappy.KindFloor:
			w.drawFloor(screen, vp, e)
		case flappy.KindAvatar:
			w.drawAvatar(screen, vp, e)
		}
	}

	w.drawText(screen, fmt.Sprint(snap.Score), 40, 60)
	w.drawText(screen, "BEST "+fmt.Sprint(snap.Best), 12, 100)

	switch {
	case w.game.State().Paused:
		w.drawText(screen, "PAUSED", 24, vp.HalfHeight())
	case snap.Mode == flappy.ModeMenu:
		w.drawText(screen, "FLAPPY", 32, vp.HalfHeight()-80)
		w.drawText(screen, "Press SPACE to flap", 12, vp.HalfHeight()+80)
	}
}

// Layout keeps the logical resolution at the viewport size.
func (w *Window) Layout(_, _ int) (int, int) {
	return int(w.cfg.Viewport.Width), int(w.cfg.Viewport.Height)
}

// ToScreen maps a world point to logical screen pixels.
func ToScreen(vp config.Viewport, p core.Vec2) (x, y float32) {
	return float32(p.X + vp.HalfWidth()), float32(vp.HalfHeight() - p.Y)
}

func (w *Window) drawSkyline(screen *ebiten.Image, vp config.Viewport, e flappy.Entity) {
	x, _ := ToScreen(vp, e.Pos)
	_, base := ToScreen(vp, core.Vec2{Y: w.cfg.FloorLine()})
	bw := float32(e.W) / float32(len(skylineShapes))
	for i, h := range skylineShapes {
		height := h * 120
		vector.DrawFilledRect(screen, x+float32(i)*bw, base-height, bw-2, height, skylineColor, false)
	}
}

func (w *Window) drawObstacle(screen *ebiten.Image, vp config.Viewport, e flappy.Entity) {
	x, y := ToScreen(vp, e.Pos)
	width, height := float32(e.W), float32(e.H)
	vector.DrawFilledRect(screen, x, y, width, height, pipeColor, false)

	const capH = 20
	capY := y + height - capH
	if e.Kind == flappy.KindObstacleLower {
		capY = y
	}
	vector.DrawFilledRect(screen, x-3, capY, width+6, capH, pipeCapColor, false)
}

func (w *Window) drawFloor(screen *ebiten.Image, vp config.Viewport, e flappy.Entity) {
	x, y := ToScreen(vp, e.Pos)
	width, height := float32(e.W), float32(e.H)
	vector.DrawFilledRect(screen, x, y, width, height, floorColor, false)

	const stripe = 24
	for sx := float32(0); sx < width; sx += 2 * stripe {
		vector.DrawFilledRect(screen, x+sx, y, stripe, 8, floorStripe, false)
	}
}

func (w *Window) drawAvatar(screen *ebiten.Image, vp config.Viewport, e flappy.Entity) {
	cx, cy := ToScreen(vp, e.Pos)
	r := float32(e.W / 2)
	vector.DrawFilledCircle(screen, cx, cy, r, avatarColor, true)

	wingY := cy + wingOffsets[e.Frame%len(wingOffsets)]
	vector.DrawFilledRect(screen, cx-r, wingY-4, r*0.9, 8, wingColor, false)

	// Screen y grows downward, so an upward tilt subtracts.
	bx := cx + r*float32(math.Cos(e.Rotation))
	by := cy - r*float32(math.Sin(e.Rotation))
	vector.StrokeLine(screen, cx, cy, bx, by, 6, beakColor, true)
}

func (w *Window) drawText(screen *ebiten.Image, msg string, size, y float64) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(w.cfg.Viewport.HalfWidth(), y)
	op.ColorScale.ScaleWithColor(color.White)
	op.PrimaryAlign = text.AlignCenter
	text.Draw(screen, msg, &text.GoTextFace{Source: w.font, Size: size}, op)
}

// Run opens the window and blocks until it is closed.
func Run(cfg config.FlappyConfig, opts Options) error {
	w, err := New(cfg, opts)
	if err != nil {
		return err
	}

	if opts.TickRate > 0 {
		ebiten.SetTPS(opts.TickRate)
	}
	ebiten.SetWindowSize(int(cfg.Viewport.Width), int(cfg.Viewport.Height))
	ebiten.SetWindowTitle("Flappy")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("desktop: %w", err)
	}
	return nil
}
