package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseYAML = `dbHost: localhost
dbUser: podhost
dbName: podhost
redisAddr: localhost:6379
minioEndpoint: localhost:9000
mediaBucket: podhost-media
`

func writeConfig(t *testing.T, extra string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(baseYAML+extra), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadReadsYAMLFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, "port: \"9090\"\nredisPassword: s3cret\n"))
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "s3cret", cfg.RedisPassword)
	assert.Equal(t, "podhost", cfg.DBName)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "port: \"9090\"\n")

	t.Setenv("PORT", "7070")
	t.Setenv("DB_PASSWORD", "hunter2")
	t.Setenv("ALLOW_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "hunter2", cfg.DBPassword)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowOrigins)
}

func TestLoadMissingFileFallsBackToEnv(t *testing.T) {
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "podhost")
	t.Setenv("DB_NAME", "podhost")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("MINIO_ENDPOINT", "minio:9000")
	t.Setenv("MEDIA_BUCKET", "media")
	t.Setenv("PORT", "6060")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "6060", cfg.Port)
	assert.Equal(t, "db", cfg.DBHost)
}

func TestLoadRejectsIncompleteConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: \"9090\"\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
