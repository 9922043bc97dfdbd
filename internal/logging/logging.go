package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

const (
	logDir      = "logs"
	logFileName = "cheddar.log"
)

// Setup returns a logger for the session. The TUI owns the terminal, so
// output is discarded unless debug is set, in which case it goes to
// <dataDir>/logs/cheddar.log. The returned file is nil when discarding.
func Setup(dataDir string, debug bool) (*log.Logger, *os.File, error) {
	if !debug {
		return Discard(), nil, nil
	}
	dir := filepath.Join(dataDir, logDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Discard(), nil, err
	}
	f, err := os.OpenFile(filepath.Join(dir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return Discard(), nil, err
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           log.DebugLevel,
		Prefix:          "cheddar",
	})
	return logger, f, nil
}

func Discard() *log.Logger {
	return log.New(io.Discard)
}

// Stderr is used by one-shot subcommands that do not take over the screen.
func Stderr(debug bool) *log.Logger {
	level := log.WarnLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{Level: level})
}
