// Package config provides loading and parsing of AEGIS SDK configuration
// files. A config file names the backend to talk to and the optional
// behaviors (snapshot caching, circuit breaking) that are configuration
// choices rather than SDK defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Cache modes selectable in configuration.
const (
	// CacheModeNone disables snapshot caching; every temporal query hits
	// the backend. This is the default.
	CacheModeNone = "none"

	// CacheModeMemory enables the in-process LRU snapshot cache.
	CacheModeMemory = "memory"

	// CacheModeRedis enables the Redis-backed snapshot cache.
	CacheModeRedis = "redis"
)

// Config represents an aegis.yaml configuration file.
type Config struct {
	// Backend connection
	BaseURL   string `yaml:"base_url"`
	Timeout   string `yaml:"timeout,omitempty"`
	UserAgent string `yaml:"user_agent,omitempty"`

	// Optional behaviors
	Cache   *CacheConfig   `yaml:"cache,omitempty"`
	Breaker *BreakerConfig `yaml:"breaker,omitempty"`
}

// CacheConfig controls snapshot caching for temporal queries.
type CacheConfig struct {
	// Mode selects the cache backend: "none", "memory", or "redis".
	// Default: "none".
	Mode string `yaml:"mode,omitempty"`

	// Capacity is the entry limit for the memory cache.
	Capacity int `yaml:"capacity,omitempty"`

	// TTL is the expiry for Redis-cached snapshots.
	// Format: Go duration string (e.g., "24h"). Default: no expiry.
	TTL string `yaml:"ttl,omitempty"`

	// RedisURL is the Redis connection string for mode "redis".
	RedisURL string `yaml:"redis_url,omitempty"`
}

// BreakerConfig controls the transport circuit breaker.
type BreakerConfig struct {
	// Enabled turns the circuit breaker on.
	Enabled bool `yaml:"enabled"`

	// MaxFailures is the consecutive-failure count that opens the breaker.
	// Default: 5.
	MaxFailures int `yaml:"max_failures,omitempty"`

	// OpenTimeout is how long the breaker stays open before probing again.
	// Format: Go duration string. Default: 30s.
	OpenTimeout string `yaml:"open_timeout,omitempty"`
}

// Load reads and parses a configuration file from the given path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return &cfg, nil
}

// Find searches for an aegis.yaml (or aegis.yml) file starting at dir and
// walking up to the filesystem root. Returns the path of the first match.
func Find(dir string) (string, error) {
	current, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for {
		for _, name := range []string{"aegis.yaml", "aegis.yml"} {
			candidate := filepath.Join(current, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("no aegis.yaml found from %s upward", dir)
		}
		current = parent
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}

	if c.Timeout != "" {
		if _, err := time.ParseDuration(c.Timeout); err != nil {
			return fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
		}
	}

	if c.Cache != nil {
		switch c.Cache.Mode {
		case "", CacheModeNone, CacheModeMemory, CacheModeRedis:
		default:
			return fmt.Errorf("invalid cache mode %q (want none, memory, or redis)", c.Cache.Mode)
		}

		if c.Cache.Mode == CacheModeRedis && c.Cache.RedisURL == "" {
			return fmt.Errorf("cache mode redis requires redis_url")
		}

		if c.Cache.Capacity < 0 {
			return fmt.Errorf("cache capacity cannot be negative")
		}

		if c.Cache.TTL != "" {
			if _, err := time.ParseDuration(c.Cache.TTL); err != nil {
				return fmt.Errorf("invalid cache ttl %q: %w", c.Cache.TTL, err)
			}
		}
	}

	if c.Breaker != nil {
		if c.Breaker.MaxFailures < 0 {
			return fmt.Errorf("breaker max_failures cannot be negative")
		}
		if c.Breaker.OpenTimeout != "" {
			if _, err := time.ParseDuration(c.Breaker.OpenTimeout); err != nil {
				return fmt.Errorf("invalid breaker open_timeout %q: %w", c.Breaker.OpenTimeout, err)
			}
		}
	}

	return nil
}

// GetTimeout parses the request timeout, defaulting to 30 seconds.
func (c *Config) GetTimeout() time.Duration {
	if c.Timeout == "" {
		return 30 * time.Second
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// GetCacheTTL parses the cache TTL, defaulting to zero (no expiry).
func (c *CacheConfig) GetCacheTTL() time.Duration {
	if c == nil || c.TTL == "" {
		return 0
	}
	d, err := time.ParseDuration(c.TTL)
	if err != nil {
		return 0
	}
	return d
}

// GetOpenTimeout parses the breaker open timeout, defaulting to 30 seconds.
func (c *BreakerConfig) GetOpenTimeout() time.Duration {
	if c == nil || c.OpenTimeout == "" {
		return 30 * time.Second
	}
	d, err := time.ParseDuration(c.OpenTimeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}
