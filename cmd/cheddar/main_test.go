package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/san-kum/cheddar/internal/ascii"
	"github.com/san-kum/cheddar/internal/config"
	"github.com/san-kum/cheddar/internal/logging"
	"github.com/san-kum/cheddar/internal/storage"
	"github.com/san-kum/cheddar/internal/tui"
)

func testDeps(t *testing.T) tui.Deps {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Console.AutoOpen = false
	return tui.Deps{Config: cfg, Prefs: storage.NewMemory(), Seed: 3}
}

func TestExecLine(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"clear", ""},
		{"help", "help"},
		{"FooBar", "unknown command: FooBar. try help.\n"},
		{"   ", ""},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		execLine(context.Background(), testDeps(t), tt.line, &out)
		got := out.String()
		if tt.want == "" {
			if got != "" {
				t.Errorf("exec %q: expected no output, got %q", tt.line, got)
			}
			continue
		}
		if !strings.Contains(got, tt.want) {
			t.Errorf("exec %q: expected %q in %q", tt.line, tt.want, got)
		}
		if strings.Contains(got, "Welcome to Cheddar OS") {
			t.Errorf("exec %q: greeting leaked into output", tt.line)
		}
	}
}

func TestLoadConfigLayering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cheddar.yaml")
	if err := os.WriteFile(path, []byte("widths:\n  small: 100\n"), 0644); err != nil {
		t.Fatal(err)
	}
	oldPreset, oldFile := preset, configFile
	t.Cleanup(func() { preset, configFile = oldPreset, oldFile })
	preset, configFile = "compact", path

	cfg, err := loadConfig(&cobra.Command{})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Widths.Small != 100 {
		t.Errorf("config file should beat the preset, small=%d", cfg.Widths.Small)
	}
	if cfg.Widths.Big != 120 {
		t.Errorf("preset should beat the defaults, big=%d", cfg.Widths.Big)
	}

	preset = "nope"
	if _, err := loadConfig(&cobra.Command{}); err == nil {
		t.Error("expected an error for an unknown preset")
	}
}

func TestEmblemSubjectUsesSynth(t *testing.T) {
	synth, err := ascii.NewGlyphSynth(nil)
	if err != nil {
		t.Fatal(err)
	}
	chain, ok := emblemSubject(config.DefaultConfig(), synth).(ascii.Chain)
	if !ok || len(chain) != 2 {
		t.Fatalf("expected image then glyph, got %#v", chain)
	}
	g, ok := chain[1].(ascii.Glyph)
	if !ok || g.Synth != synth {
		t.Errorf("fallback glyph should use the configured synth, got %#v", chain[1])
	}
}

func TestLoadSynthFallsBack(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Assets.Font = filepath.Join(t.TempDir(), "missing.ttf")
	if loadSynth(cfg, logging.Discard()) == nil {
		t.Error("missing font should fall back to Go Regular")
	}
}
