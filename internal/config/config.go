package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Asset store backends
const (
	BackendFS       = "fs"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config holds all configuration for examkit-server
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Assets   AssetsConfig   `yaml:"assets"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host           string        `yaml:"host"`
	Port           int           `yaml:"port"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// AssetsConfig selects where exam content is read from
type AssetsConfig struct {
	Backend string `yaml:"backend"`
	Dir     string `yaml:"dir"`
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	DSN           string `yaml:"dsn"`
	MigrationsDir string `yaml:"migrations_dir"`
	MaxConns      int    `yaml:"max_conns"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// AuthConfig holds API key authentication settings.
// No keys means the API is public.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           8080,
			RequestTimeout: 30 * time.Second,
		},
		Assets: AssetsConfig{
			Backend: BackendFS,
			Dir:     "./resources",
		},
		Database: DatabaseConfig{
			MigrationsDir: "./migrations",
			MaxConns:      10,
		},
		Redis: RedisConfig{
			Address: "localhost:6379",
			Prefix:  "examkit:asset:",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// environment variables, in that order. An empty path falls back to EXAMKIT_CONFIG.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("EXAMKIT_CONFIG")
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server.Host = getEnv("SERVER_HOST", c.Server.Host)
	c.Server.Port = getEnvAsInt("SERVER_PORT", c.Server.Port)
	c.Server.RequestTimeout = getEnvAsDuration("SERVER_REQUEST_TIMEOUT", c.Server.RequestTimeout)

	c.Assets.Backend = getEnv("ASSETS_BACKEND", c.Assets.Backend)
	c.Assets.Dir = getEnv("ASSETS_DIR", c.Assets.Dir)

	c.Database.DSN = getEnv("DATABASE_DSN", c.Database.DSN)
	c.Database.MigrationsDir = getEnv("DATABASE_MIGRATIONS_DIR", c.Database.MigrationsDir)
	c.Database.MaxConns = getEnvAsInt("DATABASE_MAX_CONNS", c.Database.MaxConns)

	c.Redis.Address = getEnv("REDIS_ADDRESS", c.Redis.Address)
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)
	c.Redis.DB = getEnvAsInt("REDIS_DB", c.Redis.DB)
	c.Redis.Prefix = getEnv("REDIS_PREFIX", c.Redis.Prefix)

	c.Auth.APIKeys = getEnvAsList("API_KEYS", c.Auth.APIKeys)

	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Assets.Backend {
	case BackendFS:
		if c.Assets.Dir == "" {
			return fmt.Errorf("assets dir is required for the %s backend", BackendFS)
		}
	case BackendPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database DSN is required for the %s backend", BackendPostgres)
		}
	case BackendRedis:
		if c.Redis.Address == "" {
			return fmt.Errorf("redis address is required for the %s backend", BackendRedis)
		}
	default:
		return fmt.Errorf("unknown assets backend: %q", c.Assets.Backend)
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}

	return nil
}

// SlogLevel parses the configured log level
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level: %q", l.Level)
	}
	return level, nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
