package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/sched"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// maxFrameDelta bounds the delta fed to the simulation after a stall.
const maxFrameDelta = 250 * time.Millisecond

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model for playing one flappy session.
// The frame delta is measured with a DeltaTimer rather than assumed from the
// tick rate, so the simulation keeps real time when ticks arrive late.
type Model struct {
	game     *flappy.Game
	screen   *core.Screen
	store    *storage.Store
	logger   *log.Logger
	config   core.RuntimeConfig
	keys     PlayKeyMap
	help     help.Model
	delta    *sched.DeltaTimer
	input    core.InputFrame
	state    flappy.GameState
	tickID   int64
	embedded bool // Back returns control to a parent model instead of quitting
	quitting bool
	back     bool
}

// NewModel creates a new Bubble Tea model for the given game.
// The last terminal row is reserved for the help bar.
func NewModel(game *flappy.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.Default()
	}

	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 1)),
		store:  store,
		logger: logger,
		config: cfg,
		keys:   DefaultPlayKeyMap(),
		help:   help.New(),
		delta:  sched.NewDeltaTimer(sched.RealClock{}, maxFrameDelta),
		input:  core.NewInputFrame(),
		tickID: nextTickID(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.delta.Reset()
	return tickCmd(m.tickID, m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.ID != m.tickID {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		if err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "error", err)
		}
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		m.back = true
		if m.embedded {
			return m, nil
		}
		return m, tea.Quit
	case core.ActionNone:
	default:
		m.input.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events.
// The simulation works in world units, so only the screen buffer changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-1, 1))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick advances the simulation by the measured frame delta.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.back || m.quitting {
		return m, nil
	}

	res := m.game.Step(m.input, m.delta.Delta())
	m.input.Clear()
	m.state = m.game.State()

	for _, e := range res.Events {
		m.handleEvent(e)
	}

	return m, tickCmd(m.tickID, m.config.TickRate)
}

func (m Model) handleEvent(e flappy.Event) {
	switch e.Kind {
	case flappy.EventStarted:
		m.logger.Debug("run started", "run", m.state.Runs+1)
	case flappy.EventScored:
		m.logger.Debug("scored", "score", e.Score)
	case flappy.EventCrashed:
		m.logger.Info("run ended", "score", e.Score, "cause", e.Cause, "best", m.state.Best)
		if m.store == nil || e.Score <= 0 {
			return
		}
		if _, err := m.store.SaveScore(m.game.ID(), e.Score); err != nil {
			m.logger.Warn("could not save score", "error", err)
		}
	}
}

// saveScreenshot writes the current screen as plain text under ~/.flappy/screenshots.
func (m *Model) saveScreenshot() error {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	dir := filepath.Join(home, ".flappy", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return err
	}
	m.logger.Info("screenshot saved", "path", path)
	return nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || (m.back && !m.embedded) {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// State returns the game state as of the last tick.
func (m Model) State() flappy.GameState {
	return m.state
}

// IsQuitting returns true if the user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to leave the game.
func (m Model) BackToMenu() bool {
	return m.back
}

// Run plays the game in the local terminal until the user quits.
func Run(game *flappy.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	p := tea.NewProgram(
		NewModel(game, store, cfg, logger),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
