// Package config loads service configuration from config.toml, an optional
// environment overlay and environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/Brownie44l1/bank-marketing-api/internal/middleware"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvInferEnv    = "INFER_ENV"
	EnvCORSEnabled = "INFER_CORS_ENABLED"
	EnvCORSOrigins = "INFER_CORS_ORIGINS"
)

// Config is the root configuration for the inference service.
type Config struct {
	Server    ServerConfig          `toml:"server"`
	Artifacts ArtifactsConfig       `toml:"artifacts"`
	CORS      middleware.CORSConfig `toml:"cors"`
}

// Env returns the INFER_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvInferEnv); env != "" {
		return env
	}
	return "local"
}

// Load reads path (or config.toml when path is empty and the file exists),
// applies any environment overlay and finalizes all values. Without a file,
// defaults and environment variables provide everything.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	switch {
	case path != "":
		loaded, err := load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	default:
		if _, err := os.Stat(BaseConfigFile); err == nil {
			loaded, err := load(BaseConfigFile)
			if err != nil {
				return nil, err
			}
			cfg = loaded
		}
	}

	if overlay := overlayPath(); overlay != "" {
		o, err := load(overlay)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", overlay, err)
		}
		cfg.Merge(o)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}
	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sections.
func (c *Config) Merge(overlay *Config) {
	c.Server.Merge(&overlay.Server)
	c.Artifacts.Merge(&overlay.Artifacts)
	c.CORS.Merge(&overlay.CORS)
}

func (c *Config) finalize() error {
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Artifacts.Finalize(); err != nil {
		return fmt.Errorf("artifacts: %w", err)
	}
	c.CORS.LoadDefaults()
	c.loadCORSEnv()
	return nil
}

func (c *Config) loadCORSEnv() {
	if v := os.Getenv(EnvCORSEnabled); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.CORS.Enabled = enabled
		}
	}
	if v := os.Getenv(EnvCORSOrigins); v != "" {
		origins := strings.Split(v, ",")
		c.CORS.Origins = make([]string, 0, len(origins))
		for _, origin := range origins {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				c.CORS.Origins = append(c.CORS.Origins, trimmed)
			}
		}
	}
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
	if env := os.Getenv(EnvInferEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
