package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/pilot"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/sched"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagSimSeconds float64
	flagSimDT      time.Duration
	flagSimPilot   string
	flagSimScript  string
	flagSimStats   bool
	flagSimSave    bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the simulation headless with a pilot",
	Long: `Step the simulation without a frontend, with input from a pilot.

Every frame advances the clock by --dt, so runs with the same seed, pilot
and config are reproducible. Events are logged at debug level; crashes at
info level.

Examples:
  flappy sim --seed 1
  flappy sim --pilot none --seconds 5 --log-level debug
  flappy sim --pilot lua --script ./hover.lua --stats
  flappy sim --save   # saves runs under the flappy/<pilot> board`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().Float64Var(&flagSimSeconds, "seconds", 60, "Simulated time to run")
	simCmd.Flags().DurationVar(&flagSimDT, "dt", time.Second/60, "Frame delta")
	simCmd.Flags().StringVar(&flagSimPilot, "pilot", "autopilot", "Pilot to fly with (see 'flappy pilots')")
	simCmd.Flags().StringVar(&flagSimScript, "script", "", "Script for scripted pilots")
	simCmd.Flags().BoolVar(&flagSimStats, "stats", false, "Print per-system scheduler statistics")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Save scored runs to the database")
}

func runSim(cmd *cobra.Command, _ []string) {
	if err := simulate(cmd.Context()); err != nil {
		fail("%v", err)
	}
}

// simulate runs one headless session. Errors are returned rather than exiting
// so the pilot and the store are closed on every path.
func simulate(ctx context.Context) error {
	logger := newLogger(false)
	cfg := loadConfig(logger)

	if flagSimDT <= 0 {
		return fmt.Errorf("--dt must be positive")
	}
	frames := int(time.Duration(flagSimSeconds*float64(time.Second)) / flagSimDT)

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	p, err := registry.Create(flagSimPilot, registry.Options{Script: flagSimScript, Seed: seed})
	if err != nil {
		return err
	}
	defer p.Close()

	var store *storage.Store
	if flagSimSave {
		store = openStore(logger)
		if store != nil {
			defer store.Close()
		}
	}
	board := registry.Board(tui.GameID, flagSimPilot)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	logger.Info("flying", "pilot", p.Name(), "seed", seed, "frames", frames, "dt", flagSimDT)

	s := flappy.New(cfg, seed)
	started := time.Now()
	sum, err := pilot.Fly(ctx, s, p, frames, flagSimDT, func(e flappy.Event) {
		logEvent(logger, e)
		if e.Kind == flappy.EventCrashed && store != nil && e.Score > 0 {
			if _, err := store.SaveScore(board, e.Score); err != nil {
				logger.Warn("could not save score", "error", err)
			}
		}
	})
	wall := time.Since(started)
	if err != nil && ctx.Err() == nil {
		return err
	}
	if ctx.Err() != nil {
		logger.Warn("interrupted", "frame", sum.Frames)
	}

	printSummary(sum, s, wall)
	if flagSimStats {
		printStats(s.Scheduler().Stats())
	}
	return nil
}

func logEvent(logger *log.Logger, e flappy.Event) {
	switch e.Kind {
	case flappy.EventCrashed:
		logger.Info("crashed", "score", e.Score, "cause", e.Cause)
	case flappy.EventPairSpawned:
		logger.Debug("pair spawned", "gap_bottom", strconv.FormatFloat(e.GapBottom, 'f', 1, 64))
	case flappy.EventObstacleRetired, flappy.EventScored, flappy.EventStarted:
		logger.Debug(e.Kind.String(), "score", e.Score, "entity", e.Entity)
	}
}

var (
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Width(12)
	valueStyle = lipgloss.NewStyle().Bold(true)
)

func printSummary(sum pilot.Summary, s *flappy.Sim, wall time.Duration) {
	p := message.NewPrinter(language.English)
	rows := [][2]string{
		{"Frames", p.Sprintf("%d", sum.Frames)},
		{"Simulated", sum.Elapsed.Round(time.Millisecond).String()},
		{"Wall time", wall.Round(time.Millisecond).String()},
		{"Runs ended", p.Sprintf("%d", sum.Runs)},
		{"Best", p.Sprintf("%d", sum.Best)},
		{"Current", p.Sprintf("%d (%s)", s.Score(), s.Mode())},
		{"Pairs", p.Sprintf("%d", sum.Pairs)},
		{"Flaps", p.Sprintf("%d", sum.Flaps)},
	}
	for _, r := range rows {
		p.Println(labelStyle.Render(r[0]) + valueStyle.Render(r[1]))
	}
}

func printStats(stats *sched.SchedulerStats) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("System", "Runs", "Avg", "Min", "Max", "Total")
	for _, sys := range stats.Systems {
		t.Row(
			sys.Name,
			strconv.FormatInt(sys.ExecutionCount, 10),
			sys.AvgDuration.String(),
			sys.MinDuration.String(),
			sys.MaxDuration.String(),
			sys.TotalDuration.String(),
		)
	}
	os.Stdout.WriteString("\n" + t.Render() + "\n")
	message.NewPrinter(language.English).Printf("%d systems, %d executions over %d frames\n",
		stats.SystemCount, stats.TotalExecutions, stats.Frames)
}
