// Package format formats accentsync config files.
package format

import (
	"regexp"

	"github.com/hashicorp/hcl/v2/hclwrite"
)

type rewrite struct {
	pattern *regexp.Regexp
	repl    string
}

// blankLineRules run in order over hclwrite output.
var blankLineRules = []rewrite{
	{regexp.MustCompile(`\n{3,}`), "\n\n"},
	{regexp.MustCompile(`\{\n\s*\n`), "{\n"},
	{regexp.MustCompile(`\n\s*\n(\s*\})`), "\n${1}"},
}

// Format returns content in canonical style: hclwrite layout, at most one
// blank line in a row, none directly inside braces. Invalid HCL is formatted
// as far as it parses.
func Format(content string) (string, error) {
	out := string(hclwrite.Format([]byte(content)))
	for _, r := range blankLineRules {
		out = r.pattern.ReplaceAllString(out, r.repl)
	}
	return out, nil
}

// IsFormatted reports whether content is already in canonical style.
func IsFormatted(content string) bool {
	formatted, err := Format(content)
	return err == nil && formatted == content
}
