package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	ServerPort       string `yaml:"server_port" validate:"required,numeric"`
	LogLevel         string `yaml:"log_level" validate:"oneof=debug info warn warning error"`
	MaxFileSize      int64  `yaml:"max_file_size" validate:"gt=0"`
	FuzzyThreshold   int    `yaml:"fuzzy_threshold" validate:"min=0,max=100"`
	StrictSheets     bool   `yaml:"strict_sheets"`
	ExportFilePrefix string `yaml:"export_file_prefix" validate:"required,excludesall=/"`
	TimestampExports bool   `yaml:"timestamp_exports"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		ServerPort:       "8080",
		LogLevel:         "info",
		MaxFileSize:      32 << 20, // 32 MB
		FuzzyThreshold:   85,
		StrictSheets:     false,
		ExportFilePrefix: "merged_loan_data",
		TimestampExports: true,
	}
}

// LoadConfig builds the configuration from defaults, an optional YAML file
// (CONFIG_PATH, default config.yaml), an optional .env file and the environment,
// in increasing order of precedence.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := Default()

	configPath := getEnvOrDefault("CONFIG_PATH", "config.yaml")
	if err := loadFile(configPath, cfg); err != nil {
		return nil, err
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.ServerPort = getEnvOrDefault("SERVER_PORT", cfg.ServerPort)
	cfg.LogLevel = getEnvOrDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.MaxFileSize = getEnvAsInt64("MAX_FILE_SIZE", cfg.MaxFileSize)
	cfg.FuzzyThreshold = int(getEnvAsInt64("FUZZY_THRESHOLD", int64(cfg.FuzzyThreshold)))
	cfg.StrictSheets = getEnvAsBool("STRICT_SHEETS", cfg.StrictSheets)
	cfg.ExportFilePrefix = getEnvOrDefault("EXPORT_FILE_PREFIX", cfg.ExportFilePrefix)
	cfg.TimestampExports = getEnvAsBool("TIMESTAMP_EXPORTS", cfg.TimestampExports)
}

func getEnvOrDefault(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

func getEnvAsInt64(key string, defaultVal int64) int64 {
	val, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsBool(key string, defaultVal bool) bool {
	val, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}
