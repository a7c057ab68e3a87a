package config

import (
	"fmt"
	"os"

	"github.com/callil/tax-ui/pkg/formatting"
	"github.com/callil/tax-ui/pkg/middleware"
)

const defaultMaxUploadSize = 50 * 1024 * 1024

var corsEnv = &middleware.CORSEnv{
	Enabled:          "TAXUI_CORS_ENABLED",
	Origins:          "TAXUI_CORS_ORIGINS",
	AllowedMethods:   "TAXUI_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "TAXUI_CORS_ALLOWED_HEADERS",
	AllowCredentials: "TAXUI_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "TAXUI_CORS_MAX_AGE",
}

// APIConfig holds API routing, upload limits, and CORS settings.
type APIConfig struct {
	BasePath      string                `toml:"base_path"`
	MaxUploadSize string                `toml:"max_upload_size"`
	CORS          middleware.CORSConfig `toml:"cors"`
}

func (c *APIConfig) MaxUploadSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxUploadSize)
	if err != nil || size <= 0 {
		return defaultMaxUploadSize
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS config.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}

	c.CORS.Merge(&overlay.CORS)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "50MB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("TAXUI_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("TAXUI_API_MAX_UPLOAD_SIZE"); v != "" {
		c.MaxUploadSize = v
	}
}

func (c *APIConfig) validate() error {
	if _, err := formatting.ParseBytes(c.MaxUploadSize); err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	return nil
}
