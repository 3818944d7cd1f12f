package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации приложения.

type Config struct {
	World   WorldConfig   `yaml:"world"`
	Storage StorageConfig `yaml:"storage"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// WorldConfig параметры генерации и стриминга мира
type WorldConfig struct {
	Seed         int64 `yaml:"seed"`
	LoadRadius   int   `yaml:"load_radius"`
	UnloadRadius int   `yaml:"unload_radius"`
}

// StorageConfig параметры хранилища чанков
type StorageConfig struct {
	// Backend: "file" (по файлу на чанк) или "badger"
	Backend      string `yaml:"backend"`
	DataPath     string `yaml:"data_path"`
	UseGzipCompr bool   `yaml:"use_gzip_compression"`
}

// MetricsConfig параметры Prometheus метрик
type MetricsConfig struct {
	Port int `yaml:"port"`
}

// GetSeed возвращает сид мира с приоритетом: config -> env -> default
func (w *WorldConfig) GetSeed() int64 {
	if w.Seed != 0 {
		return w.Seed
	}
	if envVal := os.Getenv("WORLD_SEED"); envVal != "" {
		if seed, err := strconv.ParseInt(envVal, 10, 64); err == nil {
			return seed
		}
	}
	return 12345
}

// GetLoadRadius возвращает радиус подгрузки чанков
func (w *WorldConfig) GetLoadRadius() int {
	if w.LoadRadius > 0 {
		return w.LoadRadius
	}
	return 2
}

// GetUnloadRadius возвращает радиус выгрузки чанков.
// Должен быть больше радиуса подгрузки — гистерезис против
// дёргания чанков на границе.
func (w *WorldConfig) GetUnloadRadius() int {
	if w.UnloadRadius > w.GetLoadRadius() {
		return w.UnloadRadius
	}
	if r := w.GetLoadRadius() + 2; r > 4 {
		return r
	}
	return 4
}

// GetDataPath возвращает директорию данных мира
func (s *StorageConfig) GetDataPath() string {
	if s.DataPath != "" {
		return s.DataPath
	}
	if envVal := os.Getenv("WORLD_DATA"); envVal != "" {
		return envVal
	}
	return "world_data"
}

// GetBackend возвращает тип хранилища чанков
func (s *StorageConfig) GetBackend() string {
	if s.Backend != "" {
		return s.Backend
	}
	if envVal := os.Getenv("WORLD_STORAGE"); envVal != "" {
		return envVal
	}
	return "file"
}

// GetMetricsPort возвращает порт метрик с поддержкой fallback значений
func (m *MetricsConfig) GetMetricsPort() int {
	if m.Port > 0 {
		return m.Port
	}
	if envVal := os.Getenv("WORLD_METRICS_PORT"); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}
	return 2112
}

// Load читает YAML файл конфигурации.
// Если path == "", пытается прочитать из ENV WORLD_CONFIG или возвращает nil, nil.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("WORLD_CONFIG")
		if path == "" {
			return nil, nil // конфиг не задан — использовать дефолты
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
