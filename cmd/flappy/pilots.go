package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/registry"
)

var pilotsCmd = &cobra.Command{
	Use:   "pilots",
	Short: "List pilots for headless runs",
	Long:  `Shows the pilots that 'flappy sim --pilot' accepts.`,
	Args:  cobra.NoArgs,
	Run:   runPilots,
}

func runPilots(_ *cobra.Command, _ []string) {
	pilots := registry.List()

	if len(pilots) == 0 {
		fmt.Println("No pilots available.")
		return
	}

	fmt.Println("Available pilots:")
	fmt.Println()

	maxLen := len("Name")
	for _, p := range pilots {
		maxLen = max(maxLen, len(p.Name))
	}

	fmt.Printf("  %-*s  %s\n", maxLen, "Name", "Description")
	fmt.Printf("  %-*s  %s\n", maxLen, "----", "-----------")
	for _, p := range pilots {
		fmt.Printf("  %-*s  %s\n", maxLen, p.Name, p.Description)
	}

	fmt.Println()
	fmt.Println("Run 'flappy sim --pilot <name>' to fly with one.")
}
