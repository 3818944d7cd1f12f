package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := &Config{}

	assert.Equal(t, int64(12345), cfg.World.GetSeed())
	assert.Equal(t, 2, cfg.World.GetLoadRadius())
	assert.Equal(t, 4, cfg.World.GetUnloadRadius())
	assert.Equal(t, "world_data", cfg.Storage.GetDataPath())
	assert.Equal(t, "file", cfg.Storage.GetBackend())
	assert.Equal(t, 2112, cfg.Metrics.GetMetricsPort())
}

func TestEnvFallbacks(t *testing.T) {
	t.Setenv("WORLD_SEED", "777")
	t.Setenv("WORLD_DATA", "/tmp/myworld")
	t.Setenv("WORLD_STORAGE", "badger")
	t.Setenv("WORLD_METRICS_PORT", "9100")

	cfg := &Config{}
	assert.Equal(t, int64(777), cfg.World.GetSeed())
	assert.Equal(t, "/tmp/myworld", cfg.Storage.GetDataPath())
	assert.Equal(t, "badger", cfg.Storage.GetBackend())
	assert.Equal(t, 9100, cfg.Metrics.GetMetricsPort())
}

func TestConfigOverridesEnv(t *testing.T) {
	t.Setenv("WORLD_SEED", "777")

	cfg := &Config{}
	cfg.World.Seed = 42
	assert.Equal(t, int64(42), cfg.World.GetSeed(), "значение из конфига важнее ENV")
}

func TestInvalidEnvIgnored(t *testing.T) {
	t.Setenv("WORLD_SEED", "не число")
	t.Setenv("WORLD_METRICS_PORT", "-1")

	cfg := &Config{}
	assert.Equal(t, int64(12345), cfg.World.GetSeed())
	assert.Equal(t, 2112, cfg.Metrics.GetMetricsPort())
}

func TestUnloadRadiusHysteresis(t *testing.T) {
	cfg := &Config{}
	cfg.World.LoadRadius = 5
	cfg.World.UnloadRadius = 3 // меньше радиуса подгрузки — игнорируется

	assert.Equal(t, 5, cfg.World.GetLoadRadius())
	assert.Equal(t, 7, cfg.World.GetUnloadRadius())

	cfg.World.UnloadRadius = 8
	assert.Equal(t, 8, cfg.World.GetUnloadRadius())
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	yaml := `
world:
  seed: 999
  load_radius: 3
  unload_radius: 6
storage:
  backend: badger
  data_path: /var/world
  use_gzip_compression: true
metrics:
  port: 9200
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, int64(999), cfg.World.GetSeed())
	assert.Equal(t, 3, cfg.World.GetLoadRadius())
	assert.Equal(t, 6, cfg.World.GetUnloadRadius())
	assert.Equal(t, "badger", cfg.Storage.GetBackend())
	assert.Equal(t, "/var/world", cfg.Storage.GetDataPath())
	assert.True(t, cfg.Storage.UseGzipCompr)
	assert.Equal(t, 9200, cfg.Metrics.GetMetricsPort())
}

func TestLoadMissingConfig(t *testing.T) {
	t.Setenv("WORLD_CONFIG", "")

	cfg, err := Load("")
	assert.NoError(t, err)
	assert.Nil(t, cfg, "отсутствие конфига — не ошибка, работаем на дефолтах")
}

func TestLoadBrokenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("world: [не мэппинг"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
