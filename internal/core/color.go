package core

// Color is the foreground color of a screen cell. Frontends map it to their
// own palette; the zero value is the terminal's default color.
type Color uint8

const (
	ColorDefault      Color = iota
	ColorGreen              // pipes
	ColorBrightGreen        // pipe caps
	ColorYellow             // avatar body
	ColorBrightYellow       // wings and beak
	ColorOrange             // floor
	ColorGray               // skyline and field border
)
