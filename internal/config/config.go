package config

import (
	"os"
	"runtime"
	"strconv"
	"time"

	"scadaval/internal/errors"

	"gopkg.in/yaml.v3"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Data    DataConfig    `yaml:"data"`
	Engine  EngineConfig  `yaml:"engine"`
	Upload  UploadConfig  `yaml:"upload"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port            string        `yaml:"port"`
	GinMode         string        `yaml:"gin_mode"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DataConfig holds data source settings
type DataConfig struct {
	// ExcelFile is preloaded into the UI dataset cache at startup when set.
	ExcelFile string `yaml:"excel_file"`
	// Sheet selects the worksheet; empty means the first sheet.
	Sheet string `yaml:"sheet"`
}

// EngineConfig tunes the deviation engine worker pool
type EngineConfig struct {
	Workers   int `yaml:"workers"`
	ChunkSize int `yaml:"chunk_size"`
}

// UploadConfig bounds uploaded workbooks and how long they stay cached
type UploadConfig struct {
	MaxMB      int64         `yaml:"max_mb"`
	DatasetTTL time.Duration `yaml:"dataset_ttl"`
}

// LoggingConfig holds the log level name
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// MaxBytes is the upload limit in bytes
func (u UploadConfig) MaxBytes() int64 {
	return u.MaxMB << 20
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			GinMode:         "release",
			ShutdownTimeout: 15 * time.Second,
		},
		Engine: EngineConfig{
			Workers:   runtime.GOMAXPROCS(0),
			ChunkSize: 4096,
		},
		Upload: UploadConfig{
			MaxMB:      32,
			DatasetTTL: 30 * time.Minute,
		},
		Logging: LoggingConfig{Level: "INFO"},
	}
}

// Load builds the configuration from defaults, the optional YAML file named
// by CONFIG_FILE, then environment variables, each overriding the previous.
func Load() (*Config, error) {
	config := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, config); err != nil {
			return nil, errors.Wrapf(err, "failed to load config file %s", path)
		}
	}

	applyEnv(config)

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return errors.WithCode(errors.CodeConfigInvalid, err)
	}
	return nil
}

func applyEnv(config *Config) {
	config.Server.Port = getEnvOrDefault("PORT", config.Server.Port)
	config.Server.GinMode = getEnvOrDefault("GIN_MODE", config.Server.GinMode)
	config.Server.ShutdownTimeout = getEnvDurationOrDefault("SHUTDOWN_TIMEOUT", config.Server.ShutdownTimeout)

	config.Data.ExcelFile = getEnvOrDefault("EXCEL_FILE", config.Data.ExcelFile)
	config.Data.Sheet = getEnvOrDefault("EXCEL_SHEET", config.Data.Sheet)

	config.Engine.Workers = getEnvIntOrDefault("ENGINE_WORKERS", config.Engine.Workers)
	config.Engine.ChunkSize = getEnvIntOrDefault("ENGINE_CHUNK_SIZE", config.Engine.ChunkSize)

	config.Upload.MaxMB = int64(getEnvIntOrDefault("MAX_UPLOAD_MB", int(config.Upload.MaxMB)))
	config.Upload.DatasetTTL = getEnvDurationOrDefault("DATASET_TTL", config.Upload.DatasetTTL)

	config.Logging.Level = getEnvOrDefault("LOG_LEVEL", config.Logging.Level)
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT is required")
	}
	if _, err := strconv.Atoi(config.Server.Port); err != nil {
		return errors.ConfigInvalid("PORT must be numeric")
	}
	switch config.Server.GinMode {
	case "debug", "release", "test":
	default:
		return errors.ConfigInvalid("GIN_MODE must be debug, release or test")
	}
	if config.Engine.Workers <= 0 {
		return errors.ConfigInvalid("ENGINE_WORKERS must be positive")
	}
	if config.Engine.ChunkSize <= 0 {
		return errors.ConfigInvalid("ENGINE_CHUNK_SIZE must be positive")
	}
	if config.Upload.MaxMB <= 0 {
		return errors.ConfigInvalid("MAX_UPLOAD_MB must be positive")
	}
	if config.Upload.DatasetTTL <= 0 {
		return errors.ConfigInvalid("DATASET_TTL must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
