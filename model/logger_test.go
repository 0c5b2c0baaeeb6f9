package model

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNopLogger(t *testing.T) {
	l := NopLogger{}
	// None of these may panic.
	l.Debug("test message", "key", "value")
	l.Info("test message", "key", "value")
	l.Warn("test message", "key", "value")
	l.Error("test message", "key", "value")

	_, ok := l.With("key", "value").(NopLogger)
	assert.True(t, ok, "With should return NopLogger")
}

func TestSlogAdapter(t *testing.T) {
	tests := []struct {
		name  string
		log   func(Logger)
		level string
		attr  string
	}{
		{"debug", func(l Logger) { l.Debug("resolving", "ref", "#/components/schemas/Pet") }, "DEBUG", "ref=#/components/schemas/Pet"},
		{"info", func(l Logger) { l.Info("fetched", "count", 42) }, "INFO", "count=42"},
		{"warn", func(l Logger) { l.Warn("skipped", "problem", "something") }, "WARN", "problem=something"},
		{"error", func(l Logger) { l.Error("failed", "err", "boom") }, "ERROR", "err=boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
			tt.log(NewSlogAdapter(slog.New(handler)))

			output := buf.String()
			assert.Contains(t, output, tt.level)
			assert.Contains(t, output, tt.attr)
		})
	}

	t.Run("nil uses default", func(t *testing.T) {
		assert.NotNil(t, NewSlogAdapter(nil).logger)
	})

	t.Run("chained With calls", func(t *testing.T) {
		var buf bytes.Buffer
		handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
		l := NewSlogAdapter(slog.New(handler)).
			With("package", "resolver").
			With("document", "file:///api.yaml")
		l.Debug("resolved")

		output := buf.String()
		assert.True(t, strings.Contains(output, "package=resolver"), output)
		assert.True(t, strings.Contains(output, "document=file:///api.yaml"), output)
	})
}
