package config

import (
	"fmt"
	"os"
	"time"

	"github.com/JaimeStill/palmwatch/internal/health"
	"github.com/JaimeStill/palmwatch/pkg/auth"
	"github.com/JaimeStill/palmwatch/pkg/database"
	"github.com/JaimeStill/palmwatch/pkg/storage"
	"github.com/pelletier/go-toml/v2"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvPalmwatchEnv             = "PALMWATCH_ENV"
	EnvPalmwatchShutdownTimeout = "PALMWATCH_SHUTDOWN_TIMEOUT"
	EnvPalmwatchVersion         = "PALMWATCH_VERSION"
)

// DatabaseEnv names the PALMWATCH_DB_* overrides, shared with cmd/migrate.
var DatabaseEnv = &database.Env{
	DSN:             "PALMWATCH_DB_DSN",
	Host:            "PALMWATCH_DB_HOST",
	Port:            "PALMWATCH_DB_PORT",
	Name:            "PALMWATCH_DB_NAME",
	User:            "PALMWATCH_DB_USER",
	Password:        "PALMWATCH_DB_PASSWORD",
	SSLMode:         "PALMWATCH_DB_SSL_MODE",
	MaxOpenConns:    "PALMWATCH_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "PALMWATCH_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "PALMWATCH_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "PALMWATCH_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "PALMWATCH_STORAGE_CONTAINER_NAME",
	ConnectionString: "PALMWATCH_STORAGE_CONNECTION_STRING",
	ServiceURL:       "PALMWATCH_STORAGE_SERVICE_URL",
	MaxListSize:      "PALMWATCH_STORAGE_MAX_LIST_SIZE",
}

var healthEnv = &health.Env{
	MinReliability:         "PALMWATCH_HEALTH_MIN_RELIABILITY",
	TreeThreshold:          "PALMWATCH_HEALTH_TREE_THRESHOLD",
	LowConfidenceThreshold: "PALMWATCH_HEALTH_LOW_CONFIDENCE_THRESHOLD",
}

var authEnv = &auth.Env{
	Enabled:           "PALMWATCH_AUTH_ENABLED",
	IssuerURL:         "PALMWATCH_AUTH_ISSUER_URL",
	ClientID:          "PALMWATCH_AUTH_CLIENT_ID",
	SkipClientIDCheck: "PALMWATCH_AUTH_SKIP_CLIENT_ID_CHECK",
}

// Config is the root configuration for the palmwatch service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Logging         LogConfig       `toml:"logging"`
	Database        database.Config `toml:"database"`
	Storage         storage.Config  `toml:"storage"`
	Auth            auth.Config     `toml:"auth"`
	Health          health.Config   `toml:"health"`
	Analysis        AnalysisConfig  `toml:"analysis"`
	API             APIConfig       `toml:"api"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns the PALMWATCH_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvPalmwatchEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Logging.Merge(&overlay.Logging)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.Auth.Merge(&overlay.Auth)
	c.Health.Merge(&overlay.Health)
	c.Analysis.Merge(&overlay.Analysis)
	c.API.Merge(&overlay.API)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Logging.Finalize(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.Database.Finalize(DatabaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Auth.Finalize(authEnv); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if err := c.Health.Finalize(healthEnv); err != nil {
		return fmt.Errorf("health: %w", err)
	}
	if err := c.Analysis.Finalize(); err != nil {
		return fmt.Errorf("analysis: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvPalmwatchShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvPalmwatchVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvPalmwatchEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
