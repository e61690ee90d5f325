package color

import (
	"fmt"
	"strconv"
	"strings"
)

// Color represents an RGB color. The R, G, B uint8 fields are the source of truth;
// all output formats are derived from them.
type Color struct {
	R, G, B uint8
}

// ParseHex parses a hex color string like "#eb6f92" into a Color.
func ParseHex(s string) (Color, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return Color{}, fmt.Errorf("invalid hex color %q: must be 6 hex digits", s)
	}
	var r, g, b uint8
	_, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return Color{R: r, G: g, B: b}, nil
}

// ParseHexLenient parses a hex color without ever failing. Each channel is read
// from its two-character slot; a slot that is missing or not valid hex yields 0.
func ParseHexLenient(s string) Color {
	s = strings.TrimPrefix(s, "#")
	return Color{
		R: channel(s, 0),
		G: channel(s, 2),
		B: channel(s, 4),
	}
}

func channel(s string, at int) uint8 {
	if len(s) < at+2 {
		return 0
	}
	v, err := strconv.ParseUint(s[at:at+2], 16, 8)
	if err != nil {
		return 0
	}
	return uint8(v)
}

// Hex returns the color as a hex string with leading #, e.g. "#eb6f92".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RGB returns the color as an rgb() string, e.g. "rgb(235, 111, 146)".
func (c Color) RGB() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex()
}
