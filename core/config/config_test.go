package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"crm-sync/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "https://api.hubapi.com", cfg.CRM.BaseURL)
	assert.Equal(t, 9.0, cfg.CRM.RequestsPerSecond)
	assert.Equal(t, 100, cfg.Sync.BatchSize)
	require.NotNil(t, cfg.Sync.UTCOffsetHours)
	assert.Equal(t, 9, cfg.Sync.OffsetHours())
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.False(t, cfg.Storage.Enabled)
	assert.Equal(t, "runs", cfg.Storage.Prefix)
	assert.Nil(t, cfg.Sync.StageLabels)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("CRM_TOKEN", "pat-123")
	t.Setenv("SYNC_BATCH_SIZE", "50")
	t.Setenv("STORAGE_ENABLED", "true")

	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "pat-123", cfg.CRM.Token)
	assert.Equal(t, 50, cfg.Sync.BatchSize)
	assert.True(t, cfg.Storage.Enabled)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_LEVEL=debug\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("LOG_LEVEL") })

	cfg, err := config.LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	yaml := `
crm:
  burst: 4
sync:
  utc_offset_hours: 0
  stage_labels:
    "受注": "closedwon"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))

	cfg, err := config.LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.CRM.Burst)
	require.NotNil(t, cfg.Sync.UTCOffsetHours)
	assert.Equal(t, 0, cfg.Sync.OffsetHours())
	assert.Equal(t, map[string]string{"受注": "closedwon"}, cfg.Sync.StageLabels)

	t.Run("MissingExplicitFile", func(t *testing.T) {
		_, err := config.Load(dir, filepath.Join(dir, "absent.yaml"))
		assert.Error(t, err)
	})
}
