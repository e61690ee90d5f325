package lsp

import (
	"math"
	"strings"

	"github.com/jsvensson/accentsync/internal/color"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// colorToLSP converts a color.Color (uint8 RGB) to a protocol.Color (float32 0.0-1.0).
func colorToLSP(c color.Color) protocol.Color {
	return protocol.Color{
		Red:   float32(c.R) / 255.0,
		Green: float32(c.G) / 255.0,
		Blue:  float32(c.B) / 255.0,
		Alpha: 1.0,
	}
}

// colorFromLSP is the inverse of colorToLSP. Alpha is dropped.
func colorFromLSP(c protocol.Color) color.Color {
	return color.Color{R: lspChannel(c.Red), G: lspChannel(c.Green), B: lspChannel(c.Blue)}
}

func lspChannel(v float32) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, float64(v))) * 255))
}

func documentColors(result *AnalysisResult) []protocol.ColorInformation {
	if result == nil {
		return []protocol.ColorInformation{}
	}

	infos := make([]protocol.ColorInformation, 0, len(result.Colors))
	for _, cl := range result.Colors {
		infos = append(infos, protocol.ColorInformation{
			Range: cl.Range,
			Color: colorToLSP(cl.Color),
		})
	}
	return infos
}

// colorPresentation offers a replacement for a picked color. Hex literals,
// quoted or bare, are rewritten in place. Computed colors such as
// lighten(...) get no presentation so the expression is never clobbered.
func colorPresentation(content string, params *protocol.ColorPresentationParams) []protocol.ColorPresentation {
	hex := colorFromLSP(params.Color).Hex()
	text := extractText(content, params.Range)

	var newText string
	switch {
	case strings.HasPrefix(text, `"#`):
		newText = `"` + hex + `"`
	case strings.HasPrefix(text, "#"):
		newText = hex
	default:
		return []protocol.ColorPresentation{}
	}

	return []protocol.ColorPresentation{
		{
			Label: hex,
			TextEdit: &protocol.TextEdit{
				Range:   params.Range,
				NewText: newText,
			},
		},
	}
}

func (s *Server) textDocumentColor(_ *glsp.Context, params *protocol.DocumentColorParams) ([]protocol.ColorInformation, error) {
	return documentColors(s.docs.Result(string(params.TextDocument.URI))), nil
}

func (s *Server) textDocumentColorPresentation(_ *glsp.Context, params *protocol.ColorPresentationParams) ([]protocol.ColorPresentation, error) {
	content, ok := s.docs.Get(string(params.TextDocument.URI))
	if !ok {
		return []protocol.ColorPresentation{}, nil
	}
	return colorPresentation(content, params), nil
}
