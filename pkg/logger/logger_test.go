package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ProduccionEscribeJSONConComponente(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "warn", Out: &buf})

	l.Info().Msg("descartado por nivel")
	l.Named("chat").Warn().Str("session", "abc").Msg("respuesta inválida")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry), "una sola línea JSON")
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "chat", entry["component"])
	assert.Equal(t, "abc", entry["session"])
	assert.Equal(t, "respuesta inválida", entry["message"])
}

func TestParseLevel_DesconocidoEsInfo(t *testing.T) {
	assert.Equal(t, parseLevel("info"), parseLevel("verbose"))
}
