// flappy is a side-scrolling flap-through-the-gaps game with terminal,
// desktop and headless frontends.
//
// Usage:
//
//	flappy                   - Start menu (play or browse high scores)
//	flappy play              - Play in the terminal
//	flappy window            - Play in a desktop window
//	flappy sim               - Run the simulation headless with a pilot
//	flappy serve             - Start SSH server for remote play
//	flappy scores            - Show high scores
//	flappy pilots            - List available pilots
//	flappy config            - Print the effective configuration
//
// Global flags:
//
//	--config <path>     - Simulation config file (YAML or TOML)
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <dsn>          - SQLite path or postgres:// URL (default: ~/.flappy/scores.db)
//	--log-level <level> - debug, info, warn, error
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/storage"

	// Register built-in pilots
	_ "github.com/vovakirdan/tui-flappy/internal/pilot"
)

var (
	// Global flags
	flagConfig   string
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy - flap through the gaps",
	Long: `Flappy is a side-scrolling game where a gravity-bound avatar flaps
through gaps in an endless stream of obstacles.

Run without a subcommand to open the start menu.

Available commands:
  play     - Play in the terminal
  window   - Play in a desktop window
  sim      - Run headless with a pilot
  serve    - Start SSH server for remote play
  scores   - View high scores
  pilots   - List pilots for headless runs
  config   - Print the effective configuration

Examples:
  flappy
  flappy play --seed 42
  flappy sim --pilot autopilot --seconds 120 --stats
  flappy serve --ssh :2222
  flappy scores --board flappy/autopilot`,
	Run: runMenu,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to simulation config (YAML or TOML)")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.flappy/scores.db", "Scores database: SQLite path or postgres:// URL")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (terminal frontends discard logs otherwise)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(pilotsCmd)
	rootCmd.AddCommand(configCmd)
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newLogger builds the command logger. Terminal frontends own the screen, so
// they pass tuiOwned and only log when --log-file is set.
func newLogger(tuiOwned bool) *log.Logger {
	var w io.Writer = os.Stderr
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fail("open log file: %v", err)
		}
		w = f
	} else if tuiOwned {
		w = io.Discard
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fail("%v", err)
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
}

func loadConfig(logger *log.Logger) config.FlappyConfig {
	cfg, src, err := config.Load(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	logger.Debug("config loaded", "source", src)
	return cfg
}

// openStore opens the scores database. Frontends keep working without one.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		return nil
	}
	logger.Debug("scores database opened", "dialect", store.Dialect())
	return store
}

func runtimeConfig() core.RuntimeConfig {
	rc := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW, rc.ScreenH = w, h
	}
	rc.TickRate = flagFPS
	rc.Seed = flagSeed
	return rc
}

func runMenu(_ *cobra.Command, _ []string) {
	logger := newLogger(true)
	cfg := loadConfig(logger)

	store := openStore(logger)
	runErr := tui.RunSession(cfg, store, runtimeConfig(), logger)
	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fail("%v", runErr)
	}
}

// expandHome resolves a leading ~/ in user-supplied paths.
func expandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
