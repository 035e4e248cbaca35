// Package config loads the swatchtower.toml configuration file.
//
// Configuration covers the ambient choices the CLI and server share: which
// cache and catalog backends to use, where the colornames list comes from,
// and the default output size. Everything has a working default, so the file
// is optional.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/swatchtower/swatchtower/pkg/errors"
)

// Backend names accepted in the cache and catalog sections.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Config is the full swatchtower configuration.
type Config struct {
	// PrintWidth is the default output width in pixels.
	PrintWidth float64 `toml:"print_width"`

	Cache      CacheConfig      `toml:"cache"`
	Catalog    CatalogConfig    `toml:"catalog"`
	Colornames ColornamesConfig `toml:"colornames"`
	Server     ServerConfig     `toml:"server"`
}

// CacheConfig selects and configures the pipeline cache.
type CacheConfig struct {
	// Backend is "file", "redis", or "none".
	Backend string `toml:"backend"`

	// Dir is the file backend directory. Empty uses the user cache dir.
	Dir string `toml:"dir"`

	Redis RedisConfig `toml:"redis"`
}

// RedisConfig configures the redis cache backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// CatalogConfig selects and configures the issued-palette registry.
type CatalogConfig struct {
	// Backend is "file" or "mongo".
	Backend string `toml:"backend"`

	// Dir is the file backend directory. Empty uses ~/.config/swatchtower.
	Dir string `toml:"dir"`

	Mongo MongoConfig `toml:"mongo"`
}

// MongoConfig configures the mongo catalog backend.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// ColornamesConfig configures the colornames source.
type ColornamesConfig struct {
	// URL of the colornames CSV. Empty uses the upstream list.
	URL string `toml:"url"`
}

// ServerConfig configures the preview server.
type ServerConfig struct {
	// Addr is the listen address.
	Addr string `toml:"addr"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		PrintWidth: 800,
		Cache:      CacheConfig{Backend: BackendFile, Redis: RedisConfig{Addr: "localhost:6379"}},
		Catalog:    CatalogConfig{Backend: BackendFile},
		Server:     ServerConfig{Addr: ":8080"},
	}
}

// Load reads a configuration file, filling unset fields with defaults.
// An empty path searches ./swatchtower.toml and then
// ~/.config/swatchtower/config.toml; if neither exists, defaults are
// returned. A non-empty path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = findConfigFile()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks backend names and sizes.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidInput,
			"unknown cache backend %q", c.Cache.Backend)
	}
	switch c.Catalog.Backend {
	case BackendFile, BackendMongo:
	default:
		return errors.New(errors.ErrCodeInvalidInput,
			"unknown catalog backend %q", c.Catalog.Backend)
	}
	if c.PrintWidth <= 0 {
		return errors.New(errors.ErrCodeInvalidInput,
			"print_width must be positive, got %v", c.PrintWidth)
	}
	if c.Colornames.URL != "" {
		if err := errors.ValidateURL(c.Colornames.URL); err != nil {
			return err
		}
	}
	return nil
}

func findConfigFile() string {
	if _, err := os.Stat("swatchtower.toml"); err == nil {
		return "swatchtower.toml"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(home, ".config", "swatchtower", "config.toml")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}
