package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

var flagConfigFormat string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the simulation configuration after applying --config or the
files found in the search path:

  ~/.flappy/config.yaml, ~/.flappy/config.toml,
  ./configs/flappy.yaml, ./configs/flappy.toml

The output is a complete file that can be edited and passed back with --config.

Examples:
  flappy config > my.yaml
  flappy config --format toml --config my.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagConfigFormat, "format", "yaml", "Output format: yaml or toml")
}

func runConfig(_ *cobra.Command, _ []string) {
	cfg := loadConfig(newLogger(false))

	out, err := config.Dump(cfg, flagConfigFormat)
	if err != nil {
		fail("%v", err)
	}
	os.Stdout.Write(out)
}
