package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("URI", "mongodb://localhost:27017")
	t.Setenv("PORT", "")

	cfg := LoadConfig()

	assert.Equal(t, DefaultServerPort, cfg.ServerPort)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Database.URI)
	assert.Equal(t, DefaultDatabaseName, cfg.Database.DBName)
	assert.Equal(t, DefaultMQChannel, cfg.MQ.Channel)
	assert.Equal(t, MQBackendNone, cfg.MQ.Backend)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigPort(t *testing.T) {
	t.Setenv("URI", "mongodb://localhost:27017")
	t.Setenv("PORT", "5000")

	assert.Equal(t, 5000, LoadConfig().ServerPort)
}

func TestValidateRequiresURI(t *testing.T) {
	t.Setenv("URI", "")

	err := LoadConfig().Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "URI is required")
}

func TestDatabaseBackend(t *testing.T) {
	cases := map[string]string{
		"mongodb://localhost:27017/crud":         BackendMongo,
		"mongodb+srv://cluster.example.net/crud": BackendMongo,
		"postgres://u:p@localhost:5432/crud":     BackendPostgres,
		"postgresql://localhost/crud":            BackendPostgres,
	}
	for uri, want := range cases {
		got, err := DatabaseConfig{URI: uri}.Backend()
		require.NoError(t, err, uri)
		assert.Equal(t, want, got, uri)
	}

	_, err := DatabaseConfig{URI: "mysql://localhost/crud"}.Backend()
	assert.Error(t, err)
}

func TestValidateRejectsUnknownBroker(t *testing.T) {
	cfg := Config{
		Database: DatabaseConfig{URI: "mongodb://localhost"},
		MQ:       MQConfig{Backend: "kafka"},
	}
	assert.Error(t, cfg.Validate())
}
