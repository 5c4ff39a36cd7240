// Package config loads graphmotion configuration.
//
// Settings come from three layers, each overriding the previous one:
// built-in defaults, an optional TOML file at
// ~/.config/graphmotion/config.toml, and GRAPHMOTION_* environment
// variables for the deployment-sensitive values (server address, cache
// backends, event broker).
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/graphmotion/graphmotion/pkg/errors"
	"github.com/graphmotion/graphmotion/pkg/graph"
)

// Config is the full application configuration.
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
	Events EventsConfig `toml:"events"`
}

// LayoutConfig holds default layout parameters for runs that do not
// override them on the command line or in the request body.
type LayoutConfig struct {
	Engine      string `toml:"engine"`      // graph, tree, dendrogram or force
	Orientation string `toml:"orientation"` // horizontal, vertical or radial (tree engines)
	Iterations  int    `toml:"iterations"`  // force iteration cap
}

// RenderConfig holds default artifact parameters.
type RenderConfig struct {
	Format string  `toml:"format"` // svg, png, dot or json
	Scale  float64 `toml:"scale"`  // render-space units to points
}

// CacheConfig selects and parameterizes the cache backend.
type CacheConfig struct {
	Backend       string `toml:"backend"`        // file, redis, mongo or none
	Dir           string `toml:"dir"`            // file backend directory, empty = ~/.cache/graphmotion
	TTL           string `toml:"ttl"`            // entry lifetime ("24h"), empty = never expire
	RedisURL      string `toml:"redis_url"`      // redis backend connection URL
	MongoURI      string `toml:"mongo_uri"`      // mongo backend connection URI
	MongoDatabase string `toml:"mongo_database"` // mongo database name
	Namespace     string `toml:"namespace"`      // key prefix for shared backends
}

// ServerConfig holds the HTTP service settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// EventsConfig holds the event broker settings.
type EventsConfig struct {
	NATSURL string `toml:"nats_url"` // empty = events disabled
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Layout: LayoutConfig{
			Engine:      graph.EngineForce,
			Orientation: graph.OrientationHorizontal,
			Iterations:  500,
		},
		Render: RenderConfig{
			Format: "svg",
			Scale:  200,
		},
		Cache: CacheConfig{
			Backend:       "file",
			TTL:           "720h",
			MongoDatabase: "graphmotion",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// Path returns the standard config file location
// (~/.config/graphmotion/config.toml).
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "graphmotion", "config.toml"), nil
}

// Load reads the configuration from path, falling back to [Path] when
// path is empty. A missing file is not an error; defaults and
// environment overrides still apply.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		p, err := Path()
		if err != nil {
			return Config{}, err
		}
		path = p
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil && !os.IsNotExist(err) {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "reading config %s", path)
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overlays GRAPHMOTION_* environment variables.
func applyEnv(cfg *Config) {
	if v := os.Getenv("GRAPHMOTION_SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("GRAPHMOTION_CACHE_BACKEND"); v != "" {
		cfg.Cache.Backend = v
	}
	if v := os.Getenv("GRAPHMOTION_CACHE_DIR"); v != "" {
		cfg.Cache.Dir = v
	}
	if v := os.Getenv("GRAPHMOTION_REDIS_URL"); v != "" {
		cfg.Cache.RedisURL = v
	}
	if v := os.Getenv("GRAPHMOTION_MONGO_URI"); v != "" {
		cfg.Cache.MongoURI = v
	}
	if v := os.Getenv("GRAPHMOTION_NATS_URL"); v != "" {
		cfg.Events.NATSURL = v
	}
}

// artifactFormats lists the formats the render stage can produce.
var artifactFormats = map[string]bool{
	"svg":  true,
	"png":  true,
	"dot":  true,
	"json": true,
}

// cacheBackends lists the selectable cache backends.
var cacheBackends = map[string]bool{
	"file":  true,
	"redis": true,
	"mongo": true,
	"none":  true,
}

// Validate checks cross-field consistency. It runs automatically inside
// [Load]; call it directly after mutating a loaded config.
func (c *Config) Validate() error {
	if !graph.ValidEngine(c.Layout.Engine) {
		return errors.New(errors.ErrCodeInvalidEngine, "unknown layout engine: %s", c.Layout.Engine)
	}
	if c.Layout.Orientation != "" && !graph.ValidOrientation(c.Layout.Orientation) {
		return errors.New(errors.ErrCodeInvalidOrientation, "unknown orientation: %s", c.Layout.Orientation)
	}
	if c.Layout.Iterations < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "layout iterations cannot be negative")
	}

	if !artifactFormats[c.Render.Format] {
		return errors.New(errors.ErrCodeInvalidFormat, "unknown artifact format: %s", c.Render.Format)
	}
	if c.Render.Scale <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "render scale must be positive")
	}

	if !cacheBackends[c.Cache.Backend] {
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend: %s", c.Cache.Backend)
	}
	if c.Cache.Backend == "redis" && c.Cache.RedisURL == "" {
		return errors.New(errors.ErrCodeInvalidInput, "redis cache backend requires redis_url")
	}
	if c.Cache.Backend == "mongo" && c.Cache.MongoURI == "" {
		return errors.New(errors.ErrCodeInvalidInput, "mongo cache backend requires mongo_uri")
	}
	if _, err := c.Cache.TTLDuration(); err != nil {
		return err
	}

	if c.Server.Addr == "" {
		return errors.New(errors.ErrCodeInvalidInput, "server addr cannot be empty")
	}

	if c.Events.NATSURL != "" {
		if err := errors.ValidateBrokerURL(c.Events.NATSURL); err != nil {
			return err
		}
	}
	return nil
}

// TTLDuration parses the cache TTL setting. Empty means no expiry.
func (c CacheConfig) TTLDuration() (time.Duration, error) {
	if c.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.TTL)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "cache ttl")
	}
	if d < 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "cache ttl cannot be negative")
	}
	return d, nil
}

// ResolveDir returns the file cache directory, honoring XDG_CACHE_HOME
// and defaulting to ~/.cache/graphmotion.
func (c CacheConfig) ResolveDir() (string, error) {
	if c.Dir != "" {
		return c.Dir, nil
	}
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "graphmotion"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "graphmotion"), nil
}
