package lsp

import (
	"strings"
	"testing"

	"github.com/jsvensson/accentsync/internal/color"
)

const configPath = "/project/.accentsync.hcl"

func TestAnalyze_ValidConfig(t *testing.T) {
	content := `theme_name      = "peacock"
fallback_accent = "#3498db"
amount          = 0.2

settings {
  key = "peacock.color"
}
`
	result := Analyze(configPath, content)

	if len(result.Diagnostics) != 0 {
		t.Fatalf("expected no diagnostics, got %+v", result.Diagnostics)
	}
	if len(result.Colors) != 1 {
		t.Fatalf("expected 1 color, got %d", len(result.Colors))
	}

	cl := result.Colors[0]
	if cl.IsRef {
		t.Error("quoted literal should not be a ref")
	}
	if cl.Color.Hex() != "#3498db" {
		t.Errorf("color = %s, want #3498db", cl.Color.Hex())
	}
	if cl.Range.Start.Line != 1 {
		t.Errorf("color on line %d, want 1", cl.Range.Start.Line)
	}
	if got := extractText(content, cl.Range); got != `"#3498db"` {
		t.Errorf("range covers %q, want the quoted literal", got)
	}
}

func TestAnalyze_FunctionCall(t *testing.T) {
	content := `fallback_accent = lighten("#3498db", 0.1)` + "\n"
	result := Analyze(configPath, content)

	if len(result.Diagnostics) != 0 {
		t.Fatalf("expected no diagnostics, got %+v", result.Diagnostics)
	}
	if len(result.Colors) != 1 {
		t.Fatalf("expected 1 color, got %d", len(result.Colors))
	}

	cl := result.Colors[0]
	if !cl.IsRef {
		t.Error("function call should be a ref")
	}
	if want := color.LightenHex("#3498db", 0.1); cl.Color.Hex() != want {
		t.Errorf("color = %s, want %s", cl.Color.Hex(), want)
	}
	if got := extractText(content, cl.Range); !strings.HasPrefix(got, "lighten(") {
		t.Errorf("range covers %q, want the call expression", got)
	}
}

func TestAnalyze_Diagnostics(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantLine uint32
		contains string
	}{
		{"syntax error", "amount = \n", 0, ""},
		{"out of range", "theme_name = \"x\"\namount = 7\n", 1, "amount"},
		{"unknown attribute", "colour = \"#ffffff\"\n", 0, "colour"},
		{"bad function argument", "fallback_accent = darken(\"nope\", 0.1)\n", 0, ""},
		{"bad role member", "role \"x\" {\n  dark  = \"bogus\"\n  light = \"base\"\n}\n", 0, "bogus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Analyze(configPath, tt.content)
			if len(result.Diagnostics) == 0 {
				t.Fatal("expected diagnostics")
			}
			d := result.Diagnostics[0]
			if d.Severity == nil || *d.Severity != DiagError {
				t.Errorf("expected error severity, got %v", d.Severity)
			}
			if d.Range.Start.Line != tt.wantLine {
				t.Errorf("diagnostic on line %d, want %d", d.Range.Start.Line, tt.wantLine)
			}
			if tt.contains != "" && !strings.Contains(d.Message, tt.contains) {
				t.Errorf("message %q should mention %q", d.Message, tt.contains)
			}
			if d.Source == nil || *d.Source != "accentsync" {
				t.Errorf("unexpected source %v", d.Source)
			}
		})
	}
}

func TestAnalyze_NestedBlockColors(t *testing.T) {
	content := `settings {
  key = "#ff0000"
}
`
	result := Analyze(configPath, content)
	if len(result.Colors) != 1 {
		t.Fatalf("expected colors from nested blocks, got %d", len(result.Colors))
	}
	if result.Colors[0].Range.Start.Line != 1 {
		t.Errorf("color on line %d, want 1", result.Colors[0].Range.Start.Line)
	}
}

func TestAnalyze_JSONDocument(t *testing.T) {
	content := `{
  "peacock.color": "#3498DB",
  "short": "#abc",
  "alpha": "#ff0000aa",
  "workbench.colorCustomizations": {"a": "#111111", "b": "#222222"}
}`
	result := Analyze("/project/.vscode/settings.json", content)

	if len(result.Diagnostics) != 0 {
		t.Errorf("JSON documents carry no diagnostics, got %+v", result.Diagnostics)
	}

	var got []string
	for _, cl := range result.Colors {
		got = append(got, cl.Color.Hex())
	}
	want := []string{"#3498db", "#111111", "#222222"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("colors = %v, want %v", got, want)
	}

	first := result.Colors[0]
	if first.Range.Start.Line != 1 || extractText(content, first.Range) != "#3498DB" {
		t.Errorf("unexpected range %+v", first.Range)
	}
}
