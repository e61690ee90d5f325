package lsp

import (
	"strings"

	"github.com/jsvensson/accentsync/internal/format"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// formatEdits returns the edits that bring an accentsync config into
// canonical style: nothing when it already is, otherwise one edit replacing
// the whole document.
func formatEdits(content string) ([]protocol.TextEdit, error) {
	formatted, err := format.Format(content)
	if err != nil {
		return nil, err
	}
	if formatted == content {
		return []protocol.TextEdit{}, nil
	}
	return []protocol.TextEdit{{Range: fullRange(content), NewText: formatted}}, nil
}

// fullRange spans all of content.
func fullRange(content string) protocol.Range {
	lines := strings.Split(content, "\n")
	last := len(lines) - 1
	return protocol.Range{
		Start: protocol.Position{Line: 0, Character: 0},
		End:   protocol.Position{Line: uint32(last), Character: uint32(len(lines[last]))},
	}
}

func (s *Server) textDocumentFormatting(_ *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	uri := string(params.TextDocument.URI)
	content, ok := s.docs.Get(uri)
	if !ok || !isConfigFile(uriToPath(uri)) {
		return []protocol.TextEdit{}, nil
	}
	return formatEdits(content)
}
