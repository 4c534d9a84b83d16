package core

import "strings"

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Palette used by the renderers.
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
	ColorDarkGray
	ColorBrown
)

// colorNames maps the color names used in configuration files (CSS color
// keywords) to the nearest palette entry.
var colorNames = map[string]Color{
	"red":         ColorRed,
	"green":       ColorGreen,
	"yellow":      ColorYellow,
	"blue":        ColorBlue,
	"magenta":     ColorMagenta,
	"cyan":        ColorCyan,
	"white":       ColorBrightWhite,
	"black":       ColorGray, // Black is invisible on dark terminals
	"gray":        ColorGray,
	"grey":        ColorGray,
	"darkgray":    ColorDarkGray,
	"darkgrey":    ColorDarkGray,
	"orange":      ColorOrange,
	"brown":       ColorBrown,
	"lightgreen":  ColorBrightGreen,
	"greenyellow": ColorBrightYellow,
	"indianred":   ColorBrightRed,
	"lightblue":   ColorBrightBlue,
	"pink":        ColorBrightMagenta,
	"lightcyan":   ColorBrightCyan,
	"gold":        ColorYellow,
	"purple":      ColorMagenta,
	"darkgreen":   ColorGreen,
	"darkred":     ColorRed,
	"lightgray":   ColorWhite,
	"lightgrey":   ColorWhite,
	"default":     ColorDefault,
	"":            ColorDefault,
}

// ParseColor converts a configuration color name to a palette color.
// Unknown names fall back to ColorDefault.
func ParseColor(name string) Color {
	if c, ok := colorNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c
	}
	return ColorDefault
}
