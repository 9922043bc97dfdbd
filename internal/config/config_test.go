package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.DataDir != DefaultDataDir {
		t.Errorf("expected data dir %s, got %s", DefaultDataDir, cfg.DataDir)
	}
	if len([]rune(cfg.ASCII.Ramp)) < 2 {
		t.Error("ramp should have at least two characters")
	}
	if cfg.Widths.Small >= cfg.Widths.Big {
		t.Error("small width should be below big width")
	}
}

func TestWidthFor(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.WidthFor(false); got != 160 {
		t.Errorf("small width: expected 160, got %d", got)
	}
	if got := cfg.WidthFor(true); got != 240 {
		t.Errorf("big width: expected 240, got %d", got)
	}

	cfg.Widths = WidthsConfig{}
	if got := cfg.WidthFor(true); got != DefaultBigWidth {
		t.Errorf("zero width should fall back to default, got %d", got)
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cheddar.yaml")

	cfg := DefaultConfig()
	cfg.Assets.Portrait = "me.png"
	cfg.Widths.Big = 200
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Assets.Portrait != "me.png" {
		t.Errorf("expected portrait me.png, got %s", loaded.Assets.Portrait)
	}
	if loaded.Widths.Big != 200 {
		t.Errorf("expected big width 200, got %d", loaded.Widths.Big)
	}
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("data_dir: /tmp/x\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.DataDir != "/tmp/x" {
		t.Errorf("expected data dir override, got %s", cfg.DataDir)
	}
	if cfg.ASCII.Ramp != DefaultRamp {
		t.Error("ramp default lost on partial load")
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("CHEDDAR_PORTRAIT=from-env.png\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CHEDDAR_DEBUG", "true")
	t.Setenv("CHEDDAR_DATA_DIR", filepath.Join(dir, "data"))
	t.Cleanup(func() { os.Unsetenv("CHEDDAR_PORTRAIT") })

	cfg := DefaultConfig()
	if err := cfg.LoadEnv(envFile); err != nil {
		t.Fatalf("load env failed: %v", err)
	}
	if cfg.Assets.Portrait != "from-env.png" {
		t.Errorf("expected portrait from .env, got %s", cfg.Assets.Portrait)
	}
	if !cfg.Debug {
		t.Error("expected debug from environment")
	}
	if cfg.DataDir != filepath.Join(dir, "data") {
		t.Errorf("unexpected data dir %s", cfg.DataDir)
	}
}

func TestLoadEnv_MissingFileIsFine(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.LoadEnv(filepath.Join(t.TempDir(), "nope.env")); err != nil {
		t.Errorf("missing .env should not fail: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	p := GetPreset("compact")
	if p == nil {
		t.Fatal("expected preset, got nil")
	}
	cfg := DefaultConfig()
	p.Apply(cfg)
	if cfg.Widths.Small != 80 {
		t.Errorf("expected small width 80, got %d", cfg.Widths.Small)
	}
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if len(ListPresets()) != len(Presets) {
		t.Error("ListPresets should list every preset")
	}
}

func TestLoadInto_FileBeatsPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cheddar.yaml")
	if err := os.WriteFile(path, []byte("widths:\n  small: 100\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	GetPreset("compact").Apply(cfg)
	if err := LoadInto(path, cfg); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Widths.Small != 100 {
		t.Errorf("file should override the preset's small width, got %d", cfg.Widths.Small)
	}
	if cfg.Widths.Big != 120 {
		t.Errorf("preset big width should survive, got %d", cfg.Widths.Big)
	}
	if cfg.ASCII.CellHeight != 2 {
		t.Errorf("preset cell height should survive, got %v", cfg.ASCII.CellHeight)
	}
}

func TestLoadInto_MissingFile(t *testing.T) {
	cfg := DefaultConfig()
	if err := LoadInto(filepath.Join(t.TempDir(), "nope.yaml"), cfg); !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
	if cfg.Widths.Small != DefaultSmallWidth {
		t.Error("failed load should leave cfg untouched")
	}
}
