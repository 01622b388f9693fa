package canvas

import (
	"fmt"
	"image/color"
)

// ParseHexColor parses a "#rrggbb" string into an opaque color. Malformed
// input yields the fallback.
func ParseHexColor(s string, fallback color.RGBA) color.RGBA {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return fallback
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// FormatHexColor renders a color as a "#rrggbb" string, dropping alpha.
func FormatHexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
