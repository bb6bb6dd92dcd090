// Package config loads docsink settings from a TOML file.
//
// The file is optional. Its settings sit between the built-in defaults
// and command-line flags:
//
//	[render]
//	formats = ["html", "markdown"]
//	max-section-level = 5
//	number-captions = false   # number blocks without a caption
//
//	[attributes]
//	sectnumlevels = "2"
//	imagesdir = "images"
//	"table-caption!" = ""
//
//	[cache]
//	backend = "file"          # file | redis | none
//	redis-url = "redis://localhost:6379/0"
//	ttl = "24h"
//	scope = "docs-site"       # key prefix when projects share a cache
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/docsink/pkg/cache"
	errs "github.com/matzehuels/docsink/pkg/errors"
	"github.com/matzehuels/docsink/pkg/render"
)

// FileName is the config file looked up by Find.
const FileName = ".docsink.toml"

// Formats accepted in [render].formats.
var Formats = []string{"html", "markdown", "events"}

// Config is the decoded configuration file.
type Config struct {
	Render     Render            `toml:"render"`
	Attributes map[string]string `toml:"attributes"`
	Cache      Cache             `toml:"cache"`
}

// Render holds render defaults.
type Render struct {
	Formats         []string `toml:"formats"`
	MaxSectionLevel int      `toml:"max-section-level"`
	NumberCaptions  bool     `toml:"number-captions"`
}

// Cache selects the artifact cache backend.
type Cache struct {
	Backend  string `toml:"backend"`
	RedisURL string `toml:"redis-url"`
	TTL      string `toml:"ttl"`
	Scope    string `toml:"scope"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Render: Render{
			Formats:         []string{"html"},
			MaxSectionLevel: render.DefaultMaxSectionLevel,
		},
		Cache: Cache{
			Backend: cache.BackendFile,
			TTL:     cache.ArtifactTTL.String(),
		},
	}
}

// Load decodes data over the defaults and validates the result.
func Load(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "invalid TOML")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errs.New(errs.ErrCodeInvalidConfig, "unknown key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile reads and decodes the file at path.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, errs.Wrap(errs.ErrCodeFileNotFound, err, "config file not found: %s", path)
	}
	if err != nil {
		return Config{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "read %s", path)
	}
	cfg, err := Load(data)
	if err != nil {
		return Config{}, errs.Wrap(errs.GetCode(err), err, "load %s", path)
	}
	return cfg, nil
}

// Find returns the path of FileName in dir or the nearest parent
// directory, or "" if there is none.
func Find(dir string) string {
	for {
		p := filepath.Join(dir, FileName)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Validate checks formats, section level, attribute names and the cache
// section.
func (c Config) Validate() error {
	for _, f := range c.Render.Formats {
		if err := errs.ValidateFormat(f, Formats); err != nil {
			return err
		}
	}
	if c.Render.MaxSectionLevel < 1 || c.Render.MaxSectionLevel > render.DefaultMaxSectionLevel {
		return errs.New(errs.ErrCodeInvalidConfig, "max-section-level must be between 1 and %d, got %d",
			render.DefaultMaxSectionLevel, c.Render.MaxSectionLevel)
	}
	for k := range c.Attributes {
		if err := errs.ValidateAttributeName(k); err != nil {
			return err
		}
	}

	switch c.Cache.Backend {
	case cache.BackendFile, cache.BackendNone:
	case cache.BackendRedis:
		if err := errs.ValidateURL(c.Cache.RedisURL); err != nil {
			return err
		}
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	if _, err := c.CacheTTL(); err != nil {
		return err
	}
	return nil
}

// CacheTTL parses [cache].ttl. An empty value means the default TTL.
func (c Config) CacheTTL() (time.Duration, error) {
	if c.Cache.TTL == "" {
		return cache.ArtifactTTL, nil
	}
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil || d < 0 {
		return 0, errs.New(errs.ErrCodeInvalidConfig, "invalid cache ttl %q", c.Cache.TTL)
	}
	return d, nil
}
