package lsp

import (
	"fmt"
	"strings"

	"github.com/jsvensson/accentsync/internal/color"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// hover describes the color under pos: its hex, rgb and HSL values and the
// light and dark variants a sync pass would derive from it at amount.
// Computed colors also show their source expression. Returns nil if no color
// is found at the position.
func hover(result *AnalysisResult, content string, pos protocol.Position, amount float64) *protocol.Hover {
	if result == nil {
		return nil
	}

	for _, cl := range result.Colors {
		if !posInRange(pos, cl.Range) {
			continue
		}

		var b strings.Builder
		if cl.IsRef {
			fmt.Fprintf(&b, "**%s**\n\n", extractText(content, cl.Range))
		}
		hsl := cl.Color.HSL()
		fmt.Fprintf(&b, "`%s` \u00b7 `%s` \u00b7 `hsl(%.0f, %.0f%%, %.0f%%)`", cl.Color.Hex(), cl.Color.RGB(), hsl.H, hsl.S, hsl.L)

		p := color.NewPalette(cl.Color, amount)
		fmt.Fprintf(&b, "\n\nlight `%s` \u00b7 dark `%s`", p.Light.Hex(), p.Dark.Hex())

		return &protocol.Hover{
			Contents: protocol.MarkupContent{
				Kind:  protocol.MarkupKindMarkdown,
				Value: b.String(),
			},
			Range: &cl.Range,
		}
	}

	return nil
}

func (s *Server) textDocumentHover(_ *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	uri := string(params.TextDocument.URI)

	result := s.docs.Result(uri)
	if result == nil {
		return nil, nil
	}
	content, ok := s.docs.Get(uri)
	if !ok {
		return nil, nil
	}

	return hover(result, content, params.Position, s.amount()), nil
}
