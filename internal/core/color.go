package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for world tiles, entities and HUD elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorDarkGreen
	ColorBrown
	ColorDarkGray
	ColorSand
)

// Dim returns the color used for a cell drawn under heavy darkness.
// Light sources and HUD text are drawn without dimming.
func (c Color) Dim() Color {
	switch c {
	case ColorBrightGreen, ColorGreen:
		return ColorDarkGreen
	case ColorBrightBlue, ColorCyan:
		return ColorBlue
	case ColorSand, ColorYellow, ColorBrown:
		return ColorBrown
	case ColorGray, ColorWhite:
		return ColorDarkGray
	case ColorBrightRed:
		return ColorRed
	default:
		return c
	}
}
