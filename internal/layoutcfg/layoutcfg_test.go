package layoutcfg

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.LayerName(0); got != "Base" {
		t.Fatalf("LayerName(0) = %q, want Base", got)
	}
	if got := cfg.LayerName(9); got != "Layer 9" {
		t.Fatalf("LayerName(9) = %q, want Layer 9", got)
	}
	if cfg.MacroLayout != nil {
		t.Fatalf("macro layout = %v, want nil", cfg.MacroLayout)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"layer_names": {"2": "Symbols", "3": "Nav"},
		"macro_layout": {"0x1c": ",", "30": "+"}
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.LayerName(2); got != "Symbols" {
		t.Fatalf("LayerName(2) = %q", got)
	}
	// Unconfigured layers keep their built-in names.
	if got := cfg.LayerName(0); got != "Base" {
		t.Fatalf("LayerName(0) = %q", got)
	}
	if got := cfg.MacroLayout[0x1C]; got != ',' {
		t.Fatalf("layout[0x1C] = %q", got)
	}
	if got := cfg.MacroLayout[30]; got != '+' {
		t.Fatalf("layout[30] = %q", got)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name, content string
	}{
		{"bad layer key", `{"layer_names": {"x": "Oops"}}`},
		{"layer out of range", `{"layer_names": {"300": "Oops"}}`},
		{"bad layout code", `{"macro_layout": {"zz": "a"}}`},
		{"multi-char layout value", `{"macro_layout": {"4": "ab"}}`},
		{"not json", `{`},
	}

	for _, tt := range tests {
		path := filepath.Join(t.TempDir(), "config.json")
		if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("%s: accepted %q", tt.name, tt.content)
		}
	}
}
