package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/callil/tax-ui/internal/inference"
	"github.com/callil/tax-ui/pkg/database"
	"github.com/callil/tax-ui/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvTaxUIEnv             = "TAXUI_ENV"
	EnvTaxUIShutdownTimeout = "TAXUI_SHUTDOWN_TIMEOUT"
	EnvTaxUIVersion         = "TAXUI_VERSION"
)

var databaseEnv = &database.Env{
	URL:             "TAXUI_DATABASE_URL",
	Host:            "TAXUI_DB_HOST",
	Port:            "TAXUI_DB_PORT",
	Name:            "TAXUI_DB_NAME",
	User:            "TAXUI_DB_USER",
	Password:        "TAXUI_DB_PASSWORD",
	SSLMode:         "TAXUI_DB_SSL_MODE",
	MaxOpenConns:    "TAXUI_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "TAXUI_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "TAXUI_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "TAXUI_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "TAXUI_STORAGE_CONTAINER_NAME",
	ConnectionString: "TAXUI_STORAGE_CONNECTION_STRING",
	AccountURL:       "TAXUI_STORAGE_ACCOUNT_URL",
}

var inferenceEnv = &inference.Env{
	BaseURL:          "TAXUI_INFERENCE_BASE_URL",
	APIKey:           "TAXUI_INFERENCE_API_KEY",
	FallbackAPIKey:   "ANTHROPIC_API_KEY",
	APIVersion:       "TAXUI_INFERENCE_API_VERSION",
	ClassifyModel:    "TAXUI_INFERENCE_CLASSIFY_MODEL",
	ExtractModel:     "TAXUI_INFERENCE_EXTRACT_MODEL",
	MaxTokens:        "TAXUI_INFERENCE_MAX_TOKENS",
	ExtractMaxTokens: "TAXUI_INFERENCE_EXTRACT_MAX_TOKENS",
	Timeout:          "TAXUI_INFERENCE_TIMEOUT",
}

// Config is the root configuration for the tax-ui service.
type Config struct {
	Server          ServerConfig     `toml:"server"`
	Database        database.Config  `toml:"database"`
	Storage         storage.Config   `toml:"storage"`
	API             APIConfig        `toml:"api"`
	Inference       inference.Config `toml:"inference"`
	Classify        ClassifyConfig   `toml:"classify"`
	ShutdownTimeout string           `toml:"shutdown_timeout"`
	Version         string           `toml:"version"`
}

// Env returns the TAXUI_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvTaxUIEnv); env != "" {
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
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
	c.Inference.Merge(&overlay.Inference)
	c.Classify.Merge(&overlay.Classify)
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
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Inference.Finalize(inferenceEnv); err != nil {
		return fmt.Errorf("inference: %w", err)
	}
	if err := c.Classify.Finalize(); err != nil {
		return fmt.Errorf("classify: %w", err)
	}

	c.Server.FitRequestBudget(c.RequestBudget())
	return nil
}

// RequestBudget is the longest a parse request can legitimately take: one
// round of chunk classification followed by one extraction call.
func (c *Config) RequestBudget() time.Duration {
	classify := c.Classify.ChunkTimeoutDuration()
	if classify == 0 {
		classify = c.Inference.TimeoutDuration()
	}
	return classify + c.Inference.TimeoutDuration()
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
	if v := os.Getenv(EnvTaxUIShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvTaxUIVersion); v != "" {
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
	if env := os.Getenv(EnvTaxUIEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
