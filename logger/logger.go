package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

var (
	mu     sync.RWMutex
	Logger *slog.Logger
	level  = new(slog.LevelVar)
	output io.Writer = os.Stderr
	off    bool
)

func init() {
	level.Set(slog.LevelInfo)
	Logger = slog.New(newHandler(output))
}

// newHandler builds a tint handler that only emits colour on a terminal
func newHandler(out io.Writer) slog.Handler {
	return tint.NewHandler(out, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
		NoColor:    !IsTerminal(out),
	})
}

// IsTerminal reports whether w is a terminal (including cygwin/msys ptys).
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ParseLevel maps a level name to a slog level. The second result is false
// for unknown names; "off" and "none" report ok with off set to true.
func ParseLevel(name string) (lvl slog.Level, off bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, false, true
	case "info", "":
		return slog.LevelInfo, false, true
	case "warn", "warning":
		return slog.LevelWarn, false, true
	case "error", "fatal", "panic":
		return slog.LevelError, false, true
	case "off", "none":
		return slog.LevelError, true, true
	default:
		return slog.LevelInfo, false, false
	}
}

// SetLogLevel sets the logging level based on a string. Unknown names fall back to info.
func SetLogLevel(name string) {
	lvl, disabled, _ := ParseLevel(name)

	mu.Lock()
	defer mu.Unlock()
	off = disabled
	level.Set(lvl)
	Logger = build()
}

// SetOutput redirects log output, mainly for tests. A logger turned off stays off.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	Logger = build()
}

// build returns the logger for the current settings; callers hold mu
func build() *slog.Logger {
	if off {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(newHandler(output))
}

// GetLogger returns the configured logger instance
func GetLogger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return Logger
}

// IsDebugEnabled returns true if debug level logging is enabled
func IsDebugEnabled() bool {
	return GetLogger().Enabled(context.Background(), slog.LevelDebug)
}
