package lsp

import (
	"strings"
	"unicode/utf16"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// LSP positions count characters in UTF-16 code units.

func before(a, b protocol.Position) bool {
	return a.Line < b.Line || (a.Line == b.Line && a.Character < b.Character)
}

// posInRange reports whether pos lies in [r.Start, r.End).
func posInRange(pos protocol.Position, r protocol.Range) bool {
	return !before(pos, r.Start) && before(pos, r.End)
}

// extractText returns the text of content covered by r.
func extractText(content string, r protocol.Range) string {
	start, end := offset(content, r.Start), offset(content, r.End)
	if end < start {
		return ""
	}
	return content[start:end]
}

// offset converts pos to a byte offset in content. Columns past the end of a
// line clamp to the line end; lines past the end clamp to len(content).
func offset(content string, pos protocol.Position) int {
	start := 0
	for line := uint32(0); line < pos.Line; line++ {
		i := strings.IndexByte(content[start:], '\n')
		if i < 0 {
			return len(content)
		}
		start += i + 1
	}
	end := len(content)
	if i := strings.IndexByte(content[start:], '\n'); i >= 0 {
		end = start + i
	}
	return start + byteColumn(content[start:end], pos.Character)
}

func byteColumn(line string, col uint32) int {
	var units uint32
	for i, r := range line {
		if units >= col {
			return i
		}
		units += uint32(len(utf16.Encode([]rune{r})))
	}
	return len(line)
}

func utf16Column(line string, byteIdx int) uint32 {
	var units uint32
	for _, r := range line[:byteIdx] {
		units += uint32(len(utf16.Encode([]rune{r})))
	}
	return units
}
