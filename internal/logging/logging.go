// Package logging sets up the zerolog logger. The terminal belongs to the
// menus, so logs go to a file under the XDG state directory.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
)

const (
	appName = "cdplay"
	logFile = "cdplay.log"

	// EnvLevel selects the log level (debug, info, warn, error).
	EnvLevel = "CDPLAY_LOG_LEVEL"
)

// Level returns the level selected by the environment. DEBUG=1 forces debug.
func Level(getenv func(string) string) zerolog.Level {
	if getenv("DEBUG") == "1" {
		return zerolog.DebugLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(getenv(EnvLevel))))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Open returns a logger writing to the default log file, and a function
// closing it. When the file cannot be opened, logs are discarded.
func Open() (zerolog.Logger, func()) {
	path, err := xdg.StateFile(filepath.Join(appName, logFile))
	if err != nil {
		return New(io.Discard, zerolog.InfoLevel), func() {}
	}
	return OpenPath(path)
}

// OpenPath is Open with an explicit file.
func OpenPath(path string) (zerolog.Logger, func()) {
	level := Level(os.Getenv)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return New(io.Discard, level), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return New(io.Discard, level), func() {}
	}
	return New(f, level), func() { _ = f.Close() }
}

// New returns a logger writing JSON lines to w.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
