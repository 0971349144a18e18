package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagScoresBoard       string
	flagScoresClear       bool
	flagScoresInteractive bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top 10 high scores of a board.

Human runs are saved under the "flappy" board; headless runs saved with
'flappy sim --save' go to "flappy/<pilot>".

Examples:
  flappy scores
  flappy scores --board flappy/autopilot
  flappy scores --interactive
  flappy scores --board flappy/none --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresBoard, "board", tui.GameID, "Board to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores of the board")
	scoresCmd.Flags().BoolVarP(&flagScoresInteractive, "interactive", "i", false, "Browse all boards in the terminal")
}

func runScores(_ *cobra.Command, _ []string) {
	if err := showScores(); err != nil {
		fail("%v", err)
	}
}

// showScores returns errors so the store is closed before the process exits.
func showScores() error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagScoresInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, width, height)
	}

	if flagScoresClear {
		if err := store.ClearScores(flagScoresBoard); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s\n", flagScoresBoard)
		return nil
	}

	scores, err := store.TopScores(flagScoresBoard, 10)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", flagScoresBoard)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'flappy play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10s  %s\n", i+1, tui.FormatScore(entry.Score), entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(flagScoresBoard)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Best: %s  Runs: %s  Average: %.1f\n",
		tui.FormatScore(stats.HighScore), tui.FormatScore(stats.GamesCount), stats.AvgScore)
	return nil
}
