package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ProgrammerShajib/fullstack/config"
)

func TestConfigureLevels(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	_ = New(&bytes.Buffer{}, config.LoggingConfig{})
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	_ = New(&bytes.Buffer{}, config.LoggingConfig{Level: "DEBUG"})
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	_ = New(&bytes.Buffer{}, config.LoggingConfig{Level: "chatty"})
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestNewWritesJSON(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	var buf bytes.Buffer
	log := New(&buf, config.LoggingConfig{Level: "info", Format: "json"})
	log.Info().Str("user_id", "abc").Msg("created")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "created", line["message"])
	assert.Equal(t, "abc", line["user_id"])
	assert.Contains(t, line, "time")
}

func TestNewConsoleFormat(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	var buf bytes.Buffer
	log := New(&buf, config.LoggingConfig{Format: "console"})
	log.Info().Msg("listening")

	assert.Contains(t, buf.String(), "listening")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}
