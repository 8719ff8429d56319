package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flagkit/flagkit/pkg/logger"
)

func TestNewDefaults(t *testing.T) {
	t.Parallel()

	log := logger.New()
	require.NotNil(t, log)
	assert.True(t, log.Enabled(t.Context(), slog.LevelInfo))
	assert.False(t, log.Enabled(t.Context(), slog.LevelDebug))
}

func TestJSONFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithFormat(logger.FormatJSON),
		logger.WithOutput(&buf),
		logger.WithAttr(slog.String("service", "flags")),
	)

	log.Info("hello", "flag", "beta")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "hello", record["msg"])
	assert.Equal(t, "beta", record["flag"])
	assert.Equal(t, "flags", record["service"])
}

func TestLevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithLevel(slog.LevelWarn), logger.WithOutput(&buf))

	log.Info("dropped")
	assert.Empty(t, buf.String())

	log.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestInvalidFormatPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		logger.New(logger.WithFormat(logger.Format("xml")))
	})
}
