package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/link2cory/echo-hello-world/internal/config"
)

func TestNewLogger_FieldsAndLevel(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Logging.Level = "warn"

	var buf bytes.Buffer
	log := newLogger(&buf, cfg)

	log.Info().Msg("dropped")
	assert.Zero(t, buf.Len())

	log.Warn().Str("route", "/items/:item_id").Msg("kept")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "kept", line["message"])
	assert.Equal(t, config.DefaultServiceName, line["service"])
	assert.Equal(t, "development", line["environment"])
	assert.Equal(t, "/items/:item_id", line["route"])
	assert.Contains(t, line, "time")
}

func TestNewLogger_StackTraces(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, config.DefaultObservabilityConfig())

	log.Error().Stack().Err(errors.New("boom")).Msg("failed")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "boom", line["error"])
	assert.NotEmpty(t, line["stack"])
}

func TestNewLogger_InvalidLevelFallsBackToInfo(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Logging.Level = "loud"

	var buf bytes.Buffer
	log := newLogger(&buf, cfg)

	log.Debug().Msg("dropped")
	assert.Zero(t, buf.Len())
	log.Info().Msg("kept")
	assert.NotZero(t, buf.Len())
}

func TestLoggerService_Disabled(t *testing.T) {
	ls := NewLoggerService(config.DefaultObservabilityConfig())
	assert.Nil(t, ls.GetApplication())

	// Without a license key every call is a no-op.
	ls.RecordEvent("Test", map[string]interface{}{"a": 1})
	ls.Shutdown()

	var nilService *LoggerService
	assert.Nil(t, nilService.GetApplication())
}

func TestWithTraceContext_NoTransaction(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, config.DefaultObservabilityConfig())

	traced := WithTraceContext(log, nil)
	traced.Info().Msg("plain")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.NotContains(t, line, "trace.id")
}
