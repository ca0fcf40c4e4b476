package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teammatch/internal/taxonomy"
)

func TestLoadConfig_Defaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("APP_NAME: teammatch\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 7, cfg.Session.MaxAgeDays)
	assert.Equal(t, 7*24*60*60, cfg.Session.MaxAge())
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, "local", cfg.Storage.Type)
	assert.Equal(t, "database", cfg.History.Backend)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, taxonomy.DefaultCategories(), cfg.Taxonomy)
}

func TestLoadConfig_FileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
DATABASE:
  TYPE: sqlite
  SQLITE_PATH: test.db
HISTORY:
  BACKEND: redis
TAXONOMY:
  - NAME: ops
    KEYWORDS: [docker, kubernetes]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "test.db", cfg.Database.SQLitePath)
	assert.Equal(t, "redis", cfg.History.Backend)
	require.Len(t, cfg.Taxonomy, 1)
	assert.Equal(t, "ops", cfg.Taxonomy[0].Name)
	assert.Equal(t, []string{"docker", "kubernetes"}, cfg.Taxonomy[0].Keywords)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("LOG_LEVEL: info\n"), 0o644))
	t.Setenv("SESSION_SECRET_KEY", "from-env")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Session.SecretKey)
}
