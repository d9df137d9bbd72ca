// Package config loads the release-dashboard configuration file.
//
// Configuration is a TOML document. Every field has a default, so a missing
// file at the default location is not an error:
//
//	registry = "./projects.toml"   # optional, embedded registry when empty
//
//	[cache]
//	backend = "file"               # file | memory | redis | mongo | none
//	dir = ""                       # file backend, default ~/.cache/release-dashboard
//
//	[cache.redis]
//	addr = "localhost:6379"
//	prefix = "release-dashboard:"
//
//	[cache.mongo]
//	uri = "mongodb://localhost:27017"
//	database = "release_dashboard"
//	collection = "http_cache"
//
//	[http]
//	retries = 3
//	timeout = "10s"
//	concurrency = 4
//
//	[server]
//	addr = ":8080"
//
// A handful of environment variables override the file, see [Config.ApplyEnv].
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/rokucommunity/release-dashboard/pkg/buildinfo"
)

// AppName is used for default file and directory names.
const AppName = "release-dashboard"

// Cache backends.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendNone   = "none"
)

// Environment variables read by ApplyEnv and Path.
const (
	EnvConfig       = "RELEASE_DASHBOARD_CONFIG"
	EnvCacheBackend = "RELEASE_DASHBOARD_CACHE_BACKEND"
	EnvRedisAddr    = "RELEASE_DASHBOARD_REDIS_ADDR"
	EnvMongoURI     = "RELEASE_DASHBOARD_MONGO_URI"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the root configuration document.
type Config struct {
	Registry string `toml:"registry"`
	Cache    Cache  `toml:"cache"`
	HTTP     HTTP   `toml:"http"`
	Server   Server `toml:"server"`
}

// Cache selects and configures the persistent response store.
type Cache struct {
	Backend string `toml:"backend"`
	Dir     string `toml:"dir"`
	Redis   Redis  `toml:"redis"`
	Mongo   Mongo  `toml:"mongo"`
}

// Redis configures the Redis store.
type Redis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// Mongo configures the MongoDB store.
type Mongo struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// HTTP configures outbound requests to the hosting API.
type HTTP struct {
	Retries     int           `toml:"retries"`
	Timeout     time.Duration `toml:"timeout"`
	UserAgent   string        `toml:"user_agent"`
	Concurrency int           `toml:"concurrency"`
}

// Server configures the dashboard API server.
type Server struct {
	Addr string `toml:"addr"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Cache: Cache{
			Backend: BackendFile,
			Redis: Redis{
				Addr:   "localhost:6379",
				Prefix: AppName + ":",
			},
			Mongo: Mongo{
				URI:        "mongodb://localhost:27017",
				Database:   "release_dashboard",
				Collection: "http_cache",
			},
		},
		HTTP: HTTP{
			Retries:     3,
			Timeout:     10 * time.Second,
			UserAgent:   buildinfo.UserAgent(AppName),
			Concurrency: 4,
		},
		Server: Server{Addr: ":8080"},
	}
}

// Load reads the configuration at path on top of [Default].
//
// If path is empty the default location from [Path] is used, and a missing
// file there yields the defaults. An explicitly named file must exist.
// Environment overrides are applied and the result is validated.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			cfg = Default()
		} else {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Parse decodes a TOML document on top of [Default] without touching the
// environment.
func Parse(data string) (Config, error) {
	cfg := Default()
	if _, err := toml.Decode(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Path returns the config file location: $RELEASE_DASHBOARD_CONFIG, else
// $XDG_CONFIG_HOME/release-dashboard/config.toml, else
// ~/.config/release-dashboard/config.toml.
func Path() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return p, nil
	}
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// CacheDir returns the directory for the file store, using the XDG standard
// (~/.cache/release-dashboard/) when Dir is unset.
func (c Cache) CacheDir() (string, error) {
	if c.Dir != "" {
		return c.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

// ApplyEnv overrides fields from environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvCacheBackend); v != "" {
		c.Cache.Backend = v
	}
	if v := os.Getenv(EnvRedisAddr); v != "" {
		c.Cache.Redis.Addr = v
	}
	if v := os.Getenv(EnvMongoURI); v != "" {
		c.Cache.Mongo.URI = v
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendMemory, BackendNone:
	case BackendRedis:
		if c.Cache.Redis.Addr == "" {
			return fmt.Errorf("%w: cache.redis.addr is required", ErrInvalid)
		}
	case BackendMongo:
		if c.Cache.Mongo.URI == "" || c.Cache.Mongo.Database == "" || c.Cache.Mongo.Collection == "" {
			return fmt.Errorf("%w: cache.mongo uri, database and collection are required", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown cache backend %q", ErrInvalid, c.Cache.Backend)
	}
	if c.HTTP.Retries < 0 {
		return fmt.Errorf("%w: http.retries must not be negative", ErrInvalid)
	}
	if c.HTTP.Timeout < 0 {
		return fmt.Errorf("%w: http.timeout must not be negative", ErrInvalid)
	}
	if c.HTTP.Concurrency < 1 {
		return fmt.Errorf("%w: http.concurrency must be at least 1", ErrInvalid)
	}
	return nil
}
