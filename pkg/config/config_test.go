package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/snowflakedb/gosnowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnvFile(t *testing.T) {
	t.Helper()
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
}

func TestLoadConfigDefaults(t *testing.T) {
	noEnvFile(t)
	t.Setenv("PUBLISH_TARGET", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, PublishNone, cfg.PublishTarget)
	assert.False(t, cfg.PublishEnabled())
	assert.Equal(t, 1000, cfg.PublishBatchSize)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Nil(t, cfg.Postgres)
	assert.Nil(t, cfg.Snowflake)
}

func TestLoadConfigFromEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	content := "PUBLISH_TARGET=postgres\n" +
		"POSTGRES_USER=movies\n" +
		"POSTGRES_PASSWORD=secret\n" +
		"POSTGRES_DB=catalog\n" +
		"POSTGRES_DRIVER=postgres\n" +
		"LOG_FORMAT=console\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("ENV_FILE", path)
	for _, key := range []string{"PUBLISH_TARGET", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB", "POSTGRES_DRIVER", "LOG_FORMAT"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.PublishEnabled())
	require.NotNil(t, cfg.Postgres)
	assert.Equal(t, "postgres", cfg.Postgres.Driver)
	assert.Equal(t, "public", cfg.Postgres.Schema)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t,
		"host=localhost port=5432 user=movies password=secret dbname=catalog sslmode=disable statement_timeout=300000",
		cfg.Postgres.ConnectionString())
}

func TestLoadConfigPostgresMissingCredentials(t *testing.T) {
	noEnvFile(t)
	t.Setenv("PUBLISH_TARGET", PublishPostgres)
	t.Setenv("POSTGRES_USER", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POSTGRES_USER")
}

func TestValidateRejectsUnknownValues(t *testing.T) {
	cfg := &Config{PublishTarget: "kafka", PublishBatchSize: 10, LogFormat: "json"}
	assert.Error(t, cfg.Validate())

	cfg = &Config{PublishTarget: PublishNone, PublishBatchSize: 10, LogFormat: "xml"}
	assert.Error(t, cfg.Validate())

	cfg = &Config{PublishTarget: PublishNone, PublishBatchSize: 0, LogFormat: "json"}
	assert.Error(t, cfg.Validate())

	cfg = &Config{PublishTarget: PublishSnowflake, PublishBatchSize: 10, LogFormat: "json"}
	assert.Error(t, cfg.Validate())
}

func TestLoadSnowflakeConfig(t *testing.T) {
	t.Setenv("SNOWFLAKE_USER", "loader")
	t.Setenv("SNOWFLAKE_PASSWORD", "pw")
	t.Setenv("SNOWFLAKE_ACCOUNT", "acme-xy12345")
	t.Setenv("SNOWFLAKE_WAREHOUSE", "COMPUTE_WH")
	t.Setenv("SNOWFLAKE_AUTHENTICATOR", "jwt")
	t.Setenv("SNOWFLAKE_DATABASE", "")

	cfg, err := LoadSnowflakeConfig()
	require.NoError(t, err)

	assert.Equal(t, "MOVIES", cfg.Database)
	assert.Equal(t, "PUBLIC", cfg.Schema)
	assert.Equal(t, gosnowflake.AuthTypeJwt, cfg.Authenticator)
	assert.Equal(t, "COMPUTE_WH", cfg.DriverConfig().Warehouse)
}

func TestParseAuthenticatorDefault(t *testing.T) {
	assert.Equal(t, gosnowflake.AuthTypeSnowflake, parseAuthenticator("unknown"))
	assert.Equal(t, gosnowflake.AuthTypeOkta, parseAuthenticator("okta"))
}

func TestNewLogger(t *testing.T) {
	cfg := &Config{LogLevel: "debug", LogFormat: "json"}
	logger, err := cfg.NewLogger()
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(-1))

	cfg.LogLevel = "loud"
	_, err = cfg.NewLogger()
	assert.Error(t, err)
}
