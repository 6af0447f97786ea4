package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorHandlerLevels(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewColorHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	log.Debug("hidden")
	log.Info("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}

func TestColorHandlerColors(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewColorHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	log.Error("something failed")
	log.Warn("watch out")
	log.Info("entity store answered")
	log.Info("plain message")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], colorRed), "errors are red")
	assert.True(t, strings.HasPrefix(lines[1], colorYellow), "warnings are yellow")
	assert.True(t, strings.HasPrefix(lines[2], colorGreen), "store traffic is green")
	assert.False(t, strings.HasPrefix(lines[3], "\033["), "plain lines carry no color")
}

func TestColorHandlerAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewColorHandler(&buf, nil))

	log.Info("querying", "type", "plug", "count", 3)

	out := buf.String()
	assert.Contains(t, out, "type=plug")
	assert.Contains(t, out, "count=3")
}

func TestColorHandlerWithAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	base := NewColorHandler(&buf, nil)

	log := slog.New(base).With("component", "dispatcher").WithGroup("req")
	log.Info("dispatching", "type", "plug")

	out := buf.String()
	assert.Contains(t, out, "component=dispatcher")
	assert.Contains(t, out, "req.type=plug")
}

func TestColorHandlerEnabled(t *testing.T) {
	h := NewColorHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})

	ctx := context.Background()
	assert.False(t, h.Enabled(ctx, slog.LevelInfo))
	assert.True(t, h.Enabled(ctx, slog.LevelWarn))
	assert.True(t, h.Enabled(ctx, slog.LevelError))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{" debug ", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}
