package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/desktop"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a game in the terminal.

Controls:
  Space/Up/W - Flap (also starts a run)
  P          - Pause
  Esc/B      - Leave
  Ctrl+S     - Save a text screenshot to ~/.flappy/screenshots
  Q/Ctrl+C   - Quit

Runs that pass at least one gap are saved to the scores database.

Examples:
  flappy play
  flappy play --seed 42 --fps 30
  flappy play --config ./hard.toml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Start a game in a desktop window.

Controls:
  Space/Up/Click - Flap (also starts a run)
  P              - Pause
  Esc/Q          - Quit`,
	Args: cobra.NoArgs,
	Run:  runWindow,
}

func runPlay(_ *cobra.Command, _ []string) {
	logger := newLogger(true)
	cfg := loadConfig(logger)

	store := openStore(logger)
	runErr := tui.Run(flappy.NewGame(cfg), store, runtimeConfig(), logger)
	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fail("running game: %v", runErr)
	}
}

func runWindow(_ *cobra.Command, _ []string) {
	logger := newLogger(false)
	cfg := loadConfig(logger)

	store := openStore(logger)
	runErr := desktop.Run(cfg, desktop.Options{
		Seed:     flagSeed,
		TickRate: flagFPS,
		Store:    store,
		Logger:   logger,
	})
	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fail("%v", runErr)
	}
}
