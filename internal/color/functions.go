package color

// DefaultAmount is the lightness shift used to derive a palette, as a
// fraction of the full lightness range.
const DefaultAmount = 0.15

// Lighten returns c with its HSL lightness raised by amount*100 points,
// capped at 100. Hue and saturation are kept.
func Lighten(c Color, amount float64) Color {
	v := c.HSL()
	v.L = clamp(v.L+amount*100, 0, 100)
	return v.Color()
}

// Darken returns c with its HSL lightness lowered by amount*100 points,
// floored at 0. Hue and saturation are kept.
func Darken(c Color, amount float64) Color {
	v := c.HSL()
	v.L = clamp(v.L-amount*100, 0, 100)
	return v.Color()
}

// LightenHex is Lighten over hex strings, parsing leniently.
func LightenHex(hex string, amount float64) string {
	return Lighten(ParseHexLenient(hex), amount).Hex()
}

// DarkenHex is Darken over hex strings, parsing leniently.
func DarkenHex(hex string, amount float64) string {
	return Darken(ParseHexLenient(hex), amount).Hex()
}
