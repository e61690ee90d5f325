package color

import "fmt"

// Member names one color of a Palette.
type Member string

const (
	MemberBase  Member = "base"
	MemberLight Member = "light"
	MemberDark  Member = "dark"
)

// Members lists palette members in display order.
var Members = []Member{MemberBase, MemberLight, MemberDark}

// ParseMember validates a member name.
func ParseMember(s string) (Member, error) {
	switch m := Member(s); m {
	case MemberBase, MemberLight, MemberDark:
		return m, nil
	}
	return "", fmt.Errorf("unknown palette member %q (valid: base, light, dark)", s)
}

// Palette is the base/light/dark triple derived from one accent color.
type Palette struct {
	Base  Color
	Light Color
	Dark  Color
}

// NewPalette derives a palette from accent, shifting lightness by amount in
// each direction.
func NewPalette(accent Color, amount float64) Palette {
	return Palette{
		Base:  accent,
		Light: Lighten(accent, amount),
		Dark:  Darken(accent, amount),
	}
}

// Get returns the color for member m. Unknown members return Base.
func (p Palette) Get(m Member) Color {
	switch m {
	case MemberLight:
		return p.Light
	case MemberDark:
		return p.Dark
	default:
		return p.Base
	}
}
