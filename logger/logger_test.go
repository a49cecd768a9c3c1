package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNewDefaultsToInfoOnBadLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput("not-a-level", false, &buf)

	log.Debug().Msg("hidden")
	assert.Empty(t, buf.String())

	log.Info().Msg("visible")
	entry := captureLine(t, &buf)
	assert.Equal(t, "visible", entry["message"])
}

func TestLogEventFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput("debug", false, &buf)

	log.Info().
		Str("method", "POST").
		Int("status", 502).
		Dur("elapsed", 150*time.Millisecond).
		Err(errors.New("boom")).
		Msg("request failed")

	entry := captureLine(t, &buf)
	assert.Equal(t, "POST", entry["method"])
	assert.Equal(t, float64(502), entry["status"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "request failed", entry["message"])
}

func TestSensitiveFieldsAreMasked(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput("info", false, &buf)

	log.Info().
		Str("password", "hunter2").
		Str("endpoint", "/status").
		Msg("configured")

	entry := captureLine(t, &buf)
	assert.Equal(t, DefaultMaskValue, entry["password"])
	assert.Equal(t, "/status", entry["endpoint"])
}

func TestInterfaceMasksNestedMaps(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput("info", false, &buf)

	log.Info().
		Interface("headers", map[string]string{
			"Authorization": "Basic abc123",
			"Content-Type":  "application/json",
		}).
		Msg("outbound")

	entry := captureLine(t, &buf)
	headers, ok := entry["headers"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, DefaultMaskValue, headers["Authorization"])
	assert.Equal(t, "application/json", headers["Content-Type"])
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput("info", false, &buf)

	scoped := log.WithFields(map[string]any{"component": "transport"})
	scoped.Info().Msg("ready")

	entry := captureLine(t, &buf)
	assert.Equal(t, "transport", entry["component"])
}

func TestFilterString(t *testing.T) {
	f := NewSensitiveDataFilter(nil)

	assert.Equal(t, DefaultMaskValue, f.FilterString("api_key", "abcd"))
	assert.Equal(t, DefaultMaskValue, f.FilterString("session_token", "abcd"))
	assert.Equal(t, "abcd", f.FilterString("host", "abcd"))
}

func TestCustomFilterConfig(t *testing.T) {
	f := NewSensitiveDataFilter(&FilterConfig{
		SensitiveFields: []string{"principal"},
		MaskValue:       "[redacted]",
	})

	assert.Equal(t, "[redacted]", f.FilterString("principal", "aaaaa-aa"))
	assert.Equal(t, "visible", f.FilterString("password", "visible"))
}
