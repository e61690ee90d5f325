package lsp

import (
	"errors"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/jsvensson/accentsync/internal/color"
	"github.com/jsvensson/accentsync/internal/config"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/zclconf/go-cty/cty"
)

var (
	DiagError   = protocol.DiagnosticSeverityError
	DiagWarning = protocol.DiagnosticSeverityWarning
)

const diagSource = "accentsync"

// hexLiteral matches six-digit hex colors in any document.
var hexLiteral = regexp.MustCompile(`#[0-9a-fA-F]{6}\b`)

// AnalysisResult holds everything the server knows about one document.
type AnalysisResult struct {
	Diagnostics []protocol.Diagnostic
	Colors      []ColorLocation
}

// ColorLocation records a resolved color at a specific source position.
type ColorLocation struct {
	Range protocol.Range
	Color color.Color
	IsRef bool // true if computed by lighten/darken rather than written out
}

// isConfigFile reports whether filename is an accentsync project config.
func isConfigFile(filename string) bool {
	return filepath.Base(filename) == config.FileName
}

// Analyze inspects document content. Config files are parsed and validated
// as HCL; anything else (editor settings, theme JSON) is scanned for hex
// color literals.
func Analyze(filename, content string) *AnalysisResult {
	if isConfigFile(filename) {
		return analyzeConfig(filename, content)
	}
	return &AnalysisResult{Colors: scanHexLiterals(content)}
}

func scanHexLiterals(content string) []ColorLocation {
	var out []ColorLocation
	for i, line := range strings.Split(content, "\n") {
		for _, m := range hexLiteral.FindAllStringIndex(line, -1) {
			c, err := color.ParseHex(line[m[0]:m[1]])
			if err != nil {
				continue
			}
			out = append(out, ColorLocation{
				Range: protocol.Range{
					Start: protocol.Position{Line: uint32(i), Character: utf16Column(line, m[0])},
					End:   protocol.Position{Line: uint32(i), Character: utf16Column(line, m[1])},
				},
				Color: c,
			})
		}
	}
	return out
}

func analyzeConfig(filename, content string) *AnalysisResult {
	result := &AnalysisResult{}

	file, diags := hclsyntax.ParseConfig([]byte(content), filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		for _, d := range diags {
			result.Diagnostics = append(result.Diagnostics, hclDiagToLSP(d))
		}
		return result
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		result.addError(fileStart(filename), "internal error: parsed body is not *hclsyntax.Body")
		return result
	}

	result.collectColors(body, config.EvalContext())

	// Decode and validate through config.Parse, as a sync pass does.
	if _, err := config.Parse([]byte(content), filename); err != nil {
		var decodeDiags hcl.Diagnostics
		if errors.As(err, &decodeDiags) {
			for _, d := range decodeDiags {
				result.Diagnostics = append(result.Diagnostics, hclDiagToLSP(d))
			}
		} else {
			result.addError(attributeRange(body, filename, err), err.Error())
		}
	}

	return result
}

// collectColors records every attribute in body (and nested blocks) whose
// value evaluates to a hex color. Evaluation errors are left to the decoder.
func (r *AnalysisResult) collectColors(body *hclsyntax.Body, ctx *hcl.EvalContext) {
	attrs := make([]*hclsyntax.Attribute, 0, len(body.Attributes))
	for _, attr := range body.Attributes {
		attrs = append(attrs, attr)
	}
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].SrcRange.Start.Byte < attrs[j].SrcRange.Start.Byte
	})

	for _, attr := range attrs {
		val, diags := attr.Expr.Value(ctx)
		if diags.HasErrors() || !val.IsKnown() || val.IsNull() || !val.Type().Equals(cty.String) {
			continue
		}
		c, err := color.ParseHex(val.AsString())
		if err != nil {
			continue
		}
		_, literal := attr.Expr.(*hclsyntax.TemplateExpr)
		r.Colors = append(r.Colors, ColorLocation{
			Range: hclRangeToLSP(attr.Expr.Range()),
			Color: c,
			IsRef: !literal,
		})
	}

	for _, block := range body.Blocks {
		r.collectColors(block.Body, ctx)
	}
}

// attributeRange points a validation error at the top-level attribute it
// names ("amount: ..."), falling back to the start of the file.
func attributeRange(body *hclsyntax.Body, filename string, err error) hcl.Range {
	name, _, found := strings.Cut(err.Error(), ":")
	if found {
		if attr, ok := body.Attributes[name]; ok {
			return attr.SrcRange
		}
	}
	return fileStart(filename)
}

func fileStart(filename string) hcl.Range {
	return hcl.Range{
		Filename: filename,
		Start:    hcl.Pos{Line: 1, Column: 1},
		End:      hcl.Pos{Line: 1, Column: 1},
	}
}

// hclPosToLSP converts an HCL position to an LSP position.
// HCL positions are 1-based; LSP positions are 0-based.
func hclPosToLSP(pos hcl.Pos) protocol.Position {
	return protocol.Position{
		Line:      uint32(pos.Line - 1),
		Character: uint32(pos.Column - 1),
	}
}

func hclRangeToLSP(r hcl.Range) protocol.Range {
	return protocol.Range{
		Start: hclPosToLSP(r.Start),
		End:   hclPosToLSP(r.End),
	}
}

func hclDiagToLSP(d *hcl.Diagnostic) protocol.Diagnostic {
	sev := DiagError
	if d.Severity == hcl.DiagWarning {
		sev = DiagWarning
	}

	diag := protocol.Diagnostic{
		Severity: &sev,
		Message:  d.Summary,
		Source:   strPtr(diagSource),
	}
	if d.Detail != "" {
		diag.Message = d.Summary + ": " + d.Detail
	}
	if d.Subject != nil {
		diag.Range = hclRangeToLSP(*d.Subject)
	}
	return diag
}

func (r *AnalysisResult) addError(rng hcl.Range, msg string) {
	r.Diagnostics = append(r.Diagnostics, protocol.Diagnostic{
		Range:    hclRangeToLSP(rng),
		Severity: &DiagError,
		Source:   strPtr(diagSource),
		Message:  msg,
	})
}

func strPtr(s string) *string {
	return &s
}
