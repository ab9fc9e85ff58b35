package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  slog.Level
	}{
		{"info", "info", slog.LevelInfo},
		{"debug", "debug", slog.LevelDebug},
		{"trace", "trace", LevelTrace},
		{"uppercase TRACE", "TRACE", LevelTrace},
		{"padded debug", " debug ", slog.LevelDebug},
		{"unknown defaults to info", "loud", slog.LevelInfo},
		{"empty defaults to info", "", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestValidLevel(t *testing.T) {
	assert := assert.New(t)

	for _, l := range []string{"", "info", "DEBUG", "trace"} {
		assert.True(ValidLevel(l), l)
	}
	assert.False(ValidLevel("loud"))
}

func TestNewLoggerLevelFiltering(t *testing.T) {
	tests := []struct {
		name       string
		level      string
		logAtTrace bool
		logAtDebug bool
	}{
		{"info filters debug", "info", false, false},
		{"debug passes debug", "debug", false, true},
		{"trace passes trace", "trace", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert := assert.New(t)

			var buf bytes.Buffer
			logger := NewLogger(tt.level, &buf)

			logger.Log(context.Background(), LevelTrace, "trace message")
			logger.Debug("debug message")
			logger.Info("info message")

			assert.Equal(tt.logAtTrace, bytes.Contains(buf.Bytes(), []byte("trace message")))
			assert.Equal(tt.logAtDebug, bytes.Contains(buf.Bytes(), []byte("debug message")))
			assert.Contains(buf.String(), "info message")
		})
	}
}

func TestTraceLevelLabel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("trace", &buf)
	logger.Log(context.Background(), LevelTrace, "step")

	assert.Contains(t, buf.String(), "level=TRACE")
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	assert.NotNil(t, logger)
	assert.False(t, logger.Enabled(context.Background(), slog.LevelError))
}
