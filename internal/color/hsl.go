package color

import "math"

// HSL is a color in hue/saturation/lightness form.
// H is in degrees [0, 360), S and L are percentages [0, 100].
type HSL struct {
	H, S, L float64
}

// HSL converts the color to HSL. Achromatic colors (r == g == b) get
// hue and saturation 0.
func (c Color) HSL() HSL {
	// Normalize RGB to 0-1 range
	r, g, b := float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0

	var h, s, l float64

	min := math.Min(math.Min(r, g), b)
	max := math.Max(math.Max(r, g), b)
	l = (max + min) / 2.0

	if max == min {
		return HSL{H: 0, S: 0, L: l * 100}
	}

	d := max - min
	if l > 0.5 {
		s = d / (2.0 - max - min)
	} else {
		s = d / (max + min)
	}

	// Hue sector value scaled straight to degrees so 0/120/240 stay exact.
	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6.0
		}
	case g:
		h = (b-r)/d + 2.0
	case b:
		h = (r-g)/d + 4.0
	}

	return HSL{H: h * 60, S: s * 100, L: l * 100}
}

// Color converts the HSL value back to RGB, rounding and clamping each
// channel to [0, 255]. H must be in [0, 360).
func (v HSL) Color() Color {
	s := v.S / 100
	l := v.L / 100

	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(v.H/60, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case v.H < 60:
		r, g, b = c, x, 0
	case v.H < 120:
		r, g, b = x, c, 0
	case v.H < 180:
		r, g, b = 0, c, x
	case v.H < 240:
		r, g, b = 0, x, c
	case v.H < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return Color{
		R: toChannel(r + m),
		G: toChannel(g + m),
		B: toChannel(b + m),
	}
}

// toChannel scales a [0, 1] component to a rounded, clamped uint8.
func toChannel(v float64) uint8 {
	return uint8(math.Round(clamp(v*255, 0, 255)))
}

// HexToHSL parses hex leniently and converts it to HSL. Malformed input never
// produces NaN: unparseable channels read as 0.
func HexToHSL(hex string) HSL {
	return ParseHexLenient(hex).HSL()
}

// HSLToHex converts HSL components to a lowercase "#rrggbb" string.
func HSLToHex(h, s, l float64) string {
	return HSL{H: h, S: s, L: l}.Color().Hex()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
