package logging

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSetup_DisabledByDefault(t *testing.T) {
	dir := t.TempDir()
	logger, f, err := Setup(dir, false)
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if f != nil {
		t.Error("expected no log file when debug is off")
		f.Close()
	}
	logger.Info("dropped")
	if _, err := os.Stat(filepath.Join(dir, logDir)); !os.IsNotExist(err) {
		t.Error("logs directory should not be created when debug is off")
	}
}

func TestSetup_EnabledWithDebug(t *testing.T) {
	dir := t.TempDir()
	logger, f, err := Setup(dir, true)
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if f == nil {
		t.Fatal("expected a log file when debug is on")
	}
	defer f.Close()

	logger.Info("summon", "variant", "cheese")

	info, err := os.Stat(filepath.Join(dir, logDir, logFileName))
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Size() == 0 {
		t.Error("expected log file to contain content")
	}
}
