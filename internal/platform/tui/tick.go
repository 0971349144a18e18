// Package tui provides the Bubble Tea frontend for the flappy simulation.
// It handles the terminal UI loop, input mapping, score persistence and the
// SSH server.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation frame of the game with the given ID.
type TickMsg struct {
	ID   int64
	Time time.Time
}

// lastTickID hands out tick chain IDs. A game ignores ticks from an earlier
// chain, so leaving and re-entering a game never doubles the frame rate.
var lastTickID atomic.Int64

func nextTickID() int64 {
	return lastTickID.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
// The actual frame delta is measured by the model, so a late tick only
// lengthens the next frame.
func tickCmd(id int64, tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Time: t}
	})
}
