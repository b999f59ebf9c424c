package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"DEBUG", slog.LevelDebug},
		{"Info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"xyzzy", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

func TestInitLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := InitLogger(LogConfig{Level: "debug", Format: "json", ServiceName: "accountingd", Output: &buf})

	logger.Info("journal posted", "transaction_id", "S42")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "journal posted", line["msg"])
	assert.Equal(t, "accountingd", line["service"])
	assert.Equal(t, "S42", line["transaction_id"])
}

func TestInitLoggerTextFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := InitLogger(LogConfig{Level: "warn", Output: &buf})

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestInitLoggerSetsDefault(t *testing.T) {
	var buf bytes.Buffer
	logger := InitLogger(LogConfig{Level: "info", Format: "json", Output: &buf})

	assert.Equal(t, logger.Handler(), slog.Default().Handler())
}

func TestLoggerContext(t *testing.T) {
	fallback := slog.Default()
	assert.Same(t, fallback, LoggerFromContext(context.Background(), fallback))

	scoped := fallback.With("tenant_id", "t1")
	ctx := ContextWithLogger(context.Background(), scoped)
	assert.Same(t, scoped, LoggerFromContext(ctx, fallback))
}
