package db

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ProgrammerShajib/fullstack/config"
)

func TestMongoDatabaseName(t *testing.T) {
	cases := []struct {
		cfg  config.DatabaseConfig
		want string
	}{
		{config.DatabaseConfig{URI: "mongodb://localhost:27017/people"}, "people"},
		{config.DatabaseConfig{URI: "mongodb://localhost:27017/people?retryWrites=true", DBName: "other"}, "people"},
		{config.DatabaseConfig{URI: "mongodb://localhost:27017", DBName: "other"}, "other"},
		{config.DatabaseConfig{URI: "mongodb://localhost:27017/"}, config.DefaultDatabaseName},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, MongoDatabaseName(tc.cfg), tc.cfg.URI)
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	names, err := fs.Glob(migrations, "migrations/*.sql")
	require.NoError(t, err)
	assert.Contains(t, names, "migrations/000001_create_users.up.sql")
	assert.Contains(t, names, "migrations/000001_create_users.down.sql")
}

func TestUsersAgeColumnHoldsGoInt(t *testing.T) {
	ddl, err := fs.ReadFile(migrations, "migrations/000001_create_users.up.sql")
	require.NoError(t, err)
	assert.Regexp(t, `(?m)^\s*age\s+BIGINT\s+NOT NULL`, string(ddl))
}
