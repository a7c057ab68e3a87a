package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	EnvClassifyChunkSize      = "TAXUI_CLASSIFY_CHUNK_SIZE"
	EnvClassifySkipThreshold  = "TAXUI_CLASSIFY_SKIP_THRESHOLD"
	EnvClassifyChunkTimeout   = "TAXUI_CLASSIFY_CHUNK_TIMEOUT"
	EnvClassifyMaxConcurrency = "TAXUI_CLASSIFY_MAX_CONCURRENCY"
)

// ClassifyConfig tunes page classification. MaxConcurrency of zero runs one
// call per chunk at once. A negative SkipThreshold classifies every document;
// zero selects the default of 20 pages.
type ClassifyConfig struct {
	ChunkSize      int    `toml:"chunk_size"`
	SkipThreshold  int    `toml:"skip_threshold"`
	ChunkTimeout   string `toml:"chunk_timeout"`
	MaxConcurrency int    `toml:"max_concurrency"`
}

func (c *ClassifyConfig) ChunkTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ChunkTimeout)
	return d
}

func (c *ClassifyConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

func (c *ClassifyConfig) Merge(overlay *ClassifyConfig) {
	if overlay.ChunkSize != 0 {
		c.ChunkSize = overlay.ChunkSize
	}
	if overlay.SkipThreshold != 0 {
		c.SkipThreshold = overlay.SkipThreshold
	}
	if overlay.ChunkTimeout != "" {
		c.ChunkTimeout = overlay.ChunkTimeout
	}
	if overlay.MaxConcurrency != 0 {
		c.MaxConcurrency = overlay.MaxConcurrency
	}
}

func (c *ClassifyConfig) loadDefaults() {
	if c.ChunkSize == 0 {
		c.ChunkSize = 15
	}
	if c.SkipThreshold == 0 {
		c.SkipThreshold = 20
	}
	if c.ChunkTimeout == "" {
		c.ChunkTimeout = "2m"
	}
}

func (c *ClassifyConfig) loadEnv() {
	if v := os.Getenv(EnvClassifyChunkSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.ChunkSize = n
		}
	}
	if v := os.Getenv(EnvClassifySkipThreshold); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.SkipThreshold = n
		}
	}
	if v := os.Getenv(EnvClassifyChunkTimeout); v != "" {
		c.ChunkTimeout = v
	}
	if v := os.Getenv(EnvClassifyMaxConcurrency); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxConcurrency = n
		}
	}
}

func (c *ClassifyConfig) validate() error {
	if c.ChunkSize < 1 {
		return fmt.Errorf("invalid chunk_size: %d", c.ChunkSize)
	}
	if c.MaxConcurrency < 0 {
		return fmt.Errorf("invalid max_concurrency: %d", c.MaxConcurrency)
	}
	d, err := time.ParseDuration(c.ChunkTimeout)
	if err != nil {
		return fmt.Errorf("invalid chunk_timeout: %w", err)
	}
	if d < 0 {
		return fmt.Errorf("invalid chunk_timeout: %s", c.ChunkTimeout)
	}
	return nil
}
