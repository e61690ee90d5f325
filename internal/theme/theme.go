package theme

import (
	"bytes"
	"encoding/json"
)

// SchemaURL identifies a document as an opencode theme file.
const SchemaURL = "https://opencode.ai/theme.json"

// Document is a theme file: a defs table of named colors and a role table
// referencing them.
type Document struct {
	Schema string `json:"$schema"`
	Defs   Defs   `json:"defs"`
	Theme  Roles  `json:"theme"`
}

// Defs maps a symbolic name to a literal color.
type Defs map[string]string

// Roles maps a semantic role name to its value.
type Roles map[string]Value

// Value is a role entry. It is either a single reference (a literal color or
// a defs name) or a pair of references for dark and light mode. Entries of any
// other JSON shape are kept verbatim so they survive a rewrite.
type Value struct {
	Ref   string
	Dark  string
	Light string

	pair bool
	raw  json.RawMessage
}

// Single returns a Value holding one reference for both modes.
func Single(ref string) Value {
	return Value{Ref: ref}
}

// Pair returns a Value with separate dark and light mode references.
func Pair(dark, light string) Value {
	return Value{Dark: dark, Light: light, pair: true}
}

// IsPair reports whether v carries separate dark and light references.
func (v Value) IsPair() bool {
	return v.raw == nil && v.pair
}

type pair struct {
	Dark  string `json:"dark"`
	Light string `json:"light"`
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.raw != nil {
		return v.raw, nil
	}
	if v.IsPair() {
		return json.Marshal(pair{Dark: v.Dark, Light: v.Light})
	}
	return json.Marshal(v.Ref)
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	*v = Value{}

	if ref, ok := decodeString(data); ok {
		v.Ref = ref
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err == nil && len(fields) == 2 {
		dark, darkOK := decodeString(fields["dark"])
		light, lightOK := decodeString(fields["light"])
		if darkOK && lightOK {
			*v = Pair(dark, light)
			return nil
		}
	}

	v.raw = bytes.Clone(data)
	return nil
}

// decodeString decodes data only if it is a JSON string. null, which
// encoding/json would accept as an empty string, is rejected.
func decodeString(data json.RawMessage) (string, bool) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", false
	}
	return s, true
}

// Decode parses a theme document.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Encode renders doc as indented JSON with a trailing newline. Map keys are
// sorted, so equal documents encode to identical bytes.
func Encode(doc *Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
