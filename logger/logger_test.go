package logger

import (
	"bytes"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	lvl, off, ok := ParseLevel("DEBUG")
	require.True(t, ok)
	require.False(t, off)
	require.Equal(t, slog.LevelDebug, lvl)

	lvl, _, ok = ParseLevel("warning")
	require.True(t, ok)
	require.Equal(t, slog.LevelWarn, lvl)

	_, off, ok = ParseLevel("none")
	require.True(t, ok)
	require.True(t, off)

	_, _, ok = ParseLevel("verbose")
	require.False(t, ok)
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetLogLevel("info")
	})

	SetLogLevel("info")
	require.False(t, IsDebugEnabled())
	GetLogger().Debug("hidden")
	GetLogger().Info("shown", "cells", 3)
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")
	require.Contains(t, buf.String(), "cells=3")

	SetLogLevel("debug")
	require.True(t, IsDebugEnabled())

	buf.Reset()
	SetLogLevel("off")
	GetLogger().Error("silenced")
	require.Empty(t, buf.String())
}

func TestSetOutputKeepsLoggingOff(t *testing.T) {
	t.Cleanup(func() {
		SetLogLevel("info")
		SetOutput(os.Stderr)
	})

	var buf bytes.Buffer
	SetLogLevel("off")
	SetOutput(&buf)
	GetLogger().Error("still silenced")
	require.Empty(t, buf.String())

	SetLogLevel("info")
	GetLogger().Info("back on")
	require.Contains(t, buf.String(), "back on")
}

func TestIsTerminal(t *testing.T) {
	require.False(t, IsTerminal(&bytes.Buffer{}))
}
