package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parse(defaultPlatformerYAML)
	if err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if cfg != DefaultPlatformerConfig() {
		t.Errorf("embedded default = %+v, expected %+v", cfg, DefaultPlatformerConfig())
	}
}

func TestLoadPlatformerCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "render:\n  cell_width: 1\nlevels:\n  dir: ./my-levels\n  start: drip-cave\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadPlatformer(path)
	if err != nil {
		t.Fatalf("LoadPlatformer failed: %v", err)
	}

	if cfg.Render.CellWidth != 1 {
		t.Errorf("CellWidth = %d, expected 1", cfg.Render.CellWidth)
	}
	// Missing fields keep defaults
	if cfg.Render.CellHeight != 1 || cfg.Input.HoldWindow != 0.15 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.Levels.Dir != "./my-levels" || cfg.Levels.Start != "drip-cave" {
		t.Errorf("levels = %+v", cfg.Levels)
	}
}

func TestLoadPlatformerErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		errPart string
	}{
		{"invalid yaml", "input: [", "failed to parse"},
		{"hold window too long", "input:\n  hold_window: 3\n", "hold_window"},
		{"cell width too large", "render:\n  cell_width: 9\n", "cell_width"},
		{"negative cell height", "render:\n  cell_height: -1\n", "cell_height"},
	}

	for i, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name+".yaml")
			if err := os.WriteFile(path, []byte(tc.content), 0o600); err != nil {
				t.Fatalf("write config %d: %v", i, err)
			}
			_, err := LoadPlatformer(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.errPart) {
				t.Errorf("error %q does not mention %q", err, tc.errPart)
			}
		})
	}

	if _, err := LoadPlatformer(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultPlatformerConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}

	cfg.Input.HoldWindow = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero hold window should be rejected")
	}
}
