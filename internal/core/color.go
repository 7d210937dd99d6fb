package core

import "strings"

// Color is a terminal foreground color for a screen cell. The platform maps
// it to an actual style.
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
	ColorBrightYellow
)

var paletteColors = map[string]Color{
	"red":    ColorRed,
	"green":  ColorGreen,
	"yellow": ColorYellow,
	"blue":   ColorBlue,
	"purple": ColorMagenta,
	"violet": ColorMagenta,
	"cyan":   ColorCyan,
	"teal":   ColorCyan,
	"white":  ColorWhite,
	"orange": ColorOrange,
}

// PaletteColor returns the terminal color for a tile palette name. Unknown
// names fall back to a color picked by palette index.
func PaletteColor(name string, index int) Color {
	if c, ok := paletteColors[strings.ToLower(name)]; ok {
		return c
	}
	fallback := []Color{ColorRed, ColorBlue, ColorGreen, ColorYellow, ColorMagenta, ColorCyan, ColorOrange, ColorWhite}
	return fallback[Wrap(index, len(fallback))]
}
