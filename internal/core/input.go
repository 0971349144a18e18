package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone  Action = iota
	ActionFlap         // Space, W, Up - flap while playing, start while in menu
	ActionPause        // P - pause/unpause the frontend
	ActionBack         // Esc, B - leave the current screen
	ActionQuit         // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionFlap:
		return "Flap"
	case ActionPause:
		return "Pause"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input collected during one frame.
// Actions are edge events: an action is present only in the frame it was pressed.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// EdgeDetector turns a level signal (button held or not) into rising edges.
// Sources that report raw pressed state, such as scripted pilots, feed it once
// per frame.
type EdgeDetector struct {
	prev bool
}

// Update records the current level and reports whether it just went from
// released to pressed.
func (d *EdgeDetector) Update(pressed bool) bool {
	rising := pressed && !d.prev
	d.prev = pressed
	return rising
}

// Reset forgets the previous level.
func (d *EdgeDetector) Reset() {
	d.prev = false
}
