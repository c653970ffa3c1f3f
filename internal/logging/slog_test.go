package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(level slog.Level) (*SlogLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level})
	return NewSlogLogger(slog.New(h)), &buf
}

func TestSlogLogger_Levels(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		log   func(l *SlogLogger)
		level string
	}{
		{"debug", func(l *SlogLogger) { l.Debug(ctx, "trace detail", "attempt", 2) }, "DEBUG"},
		{"info", func(l *SlogLogger) { l.Info(ctx, "trace detail", "attempt", 2) }, "INFO"},
		{"warn", func(l *SlogLogger) { l.Warn(ctx, "trace detail", "attempt", 2) }, "WARN"},
		{"error", func(l *SlogLogger) { l.Error(ctx, "trace detail", "attempt", 2) }, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, buf := newBufferLogger(slog.LevelDebug)
			tt.log(l)

			out := buf.String()
			assert.Contains(t, out, "level="+tt.level)
			assert.Contains(t, out, `msg="trace detail"`)
			assert.Contains(t, out, "attempt=2")
		})
	}
}

func TestSlogLogger_DebugSuppressedAtInfo(t *testing.T) {
	l, buf := newBufferLogger(slog.LevelInfo)

	l.Debug(context.Background(), "hidden")

	assert.Empty(t, buf.String())
}

func TestSlogLogger_With(t *testing.T) {
	l, buf := newBufferLogger(slog.LevelInfo)

	child := l.With("component", "session")
	child.Info(context.Background(), "token refreshed")

	out := buf.String()
	assert.Contains(t, out, "component=session")
	assert.Contains(t, out, `msg="token refreshed"`)

	// The parent logger must not inherit the child's attributes.
	buf.Reset()
	l.Info(context.Background(), "plain")
	assert.NotContains(t, buf.String(), "component=session")
}

func TestNew(t *testing.T) {
	l := New()
	require.NotNil(t, l)
	require.NotNil(t, l.l)
}
