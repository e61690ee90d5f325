package theme

import "github.com/jsvensson/accentsync/internal/color"

// Defs names reserved for the derived palette. They always overwrite
// same-named entries inherited from a base theme.
const (
	DefBase  = "accentBase"
	DefLight = "accentLight"
	DefDark  = "accentDark"
)

// DefName returns the reserved defs name holding palette member m.
func DefName(m color.Member) string {
	switch m {
	case color.MemberLight:
		return DefLight
	case color.MemberDark:
		return DefDark
	default:
		return DefBase
	}
}

// Rule says which palette member feeds a role's dark-mode and light-mode slot.
type Rule struct {
	Role  string
	Dark  color.Member
	Light color.Member
}

// Value returns the role value for r: a pair of reserved defs references.
func (r Rule) Value() Value {
	return Pair(DefName(r.Dark), DefName(r.Light))
}

// Policy is the ordered set of roles the synthesizer owns.
type Policy []Rule

// same feeds both slots from one member.
func same(role string, m color.Member) Rule {
	return Rule{Role: role, Dark: m, Light: m}
}

// swapped puts the lighter variant on dark backgrounds and the darker one on
// light backgrounds.
func swapped(role string) Rule {
	return Rule{Role: role, Dark: color.MemberLight, Light: color.MemberDark}
}

// DefaultPolicy returns the built-in role table. swapAccent selects whether
// the accent role uses the swapped light/dark variants or the base color in
// both modes.
func DefaultPolicy(swapAccent bool) Policy {
	accent := same("accent", color.MemberBase)
	if swapAccent {
		accent = swapped("accent")
	}
	return Policy{
		same("primary", color.MemberBase),
		accent,
		swapped("secondary"),
		same("borderActive", color.MemberBase),
		swapped("markdownHeading"),
		same("markdownLink", color.MemberBase),
		swapped("markdownLinkText"),
		same("markdownListItem", color.MemberBase),
	}
}

// With returns a copy of p where each rule replaces the existing rule for the
// same role, or is appended when the role is new.
func (p Policy) With(rules ...Rule) Policy {
	out := make(Policy, len(p), len(p)+len(rules))
	copy(out, p)

	for _, r := range rules {
		replaced := false
		for i := range out {
			if out[i].Role == r.Role {
				out[i] = r
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, r)
		}
	}
	return out
}

// Roles returns the role names in policy order.
func (p Policy) Roles() []string {
	names := make([]string, len(p))
	for i, r := range p {
		names[i] = r.Role
	}
	return names
}
