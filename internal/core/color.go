package core

// Color is a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorOrange
	ColorGray
	ColorBrightWhite
)

// ballPalette gives each ball color id its own screen color.
// Index 0 is unused (empty cell).
var ballPalette = []Color{
	ColorDefault,
	ColorRed,
	ColorGreen,
	ColorYellow,
	ColorBlue,
	ColorMagenta,
	ColorCyan,
	ColorOrange,
}

// BallColor returns the screen color for a ball color id. Ids beyond the
// palette wrap around, skipping 0.
func BallColor(id int) Color {
	if id <= 0 {
		return ColorDefault
	}
	n := len(ballPalette) - 1
	return ballPalette[(id-1)%n+1]
}
