package theme

import (
	"maps"

	"github.com/jsvensson/accentsync/internal/color"
)

// Synthesizer merges a palette derived from an accent color into a base
// theme. It holds no state between calls and is safe for concurrent use.
type Synthesizer struct {
	// Amount is the lightness shift for the light and dark variants.
	Amount float64
	// Policy lists the roles overwritten with palette references.
	Policy Policy
}

// Default returns a Synthesizer with DefaultAmount and the unswapped
// default policy.
func Default() Synthesizer {
	return Synthesizer{
		Amount: color.DefaultAmount,
		Policy: DefaultPolicy(false),
	}
}

// Synthesize builds a new theme document from base and accent using Default.
func Synthesize(base *Document, accent string) *Document {
	return Default().Synthesize(base, accent)
}

// Synthesize builds a new theme document. base may be nil. The accent is
// parsed leniently, so malformed input yields a palette built from black
// rather than an error. base is never modified.
func (s Synthesizer) Synthesize(base *Document, accent string) *Document {
	p := color.NewPalette(color.ParseHexLenient(accent), s.Amount)

	doc := &Document{
		Schema: SchemaURL,
		Defs:   make(Defs),
		Theme:  make(Roles),
	}
	if base != nil {
		maps.Copy(doc.Defs, base.Defs)
		maps.Copy(doc.Theme, base.Theme)
	}

	for _, m := range color.Members {
		doc.Defs[DefName(m)] = p.Get(m).Hex()
	}
	for _, r := range s.Policy {
		doc.Theme[r.Role] = r.Value()
	}

	return doc
}
