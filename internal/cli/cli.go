package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/docsink/pkg/buildinfo"
	"github.com/matzehuels/docsink/pkg/cache"
	"github.com/matzehuels/docsink/pkg/config"
	errs "github.com/matzehuels/docsink/pkg/errors"
	"github.com/matzehuels/docsink/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "docsink"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// ConfigPath is set by --config; empty means search upwards from the
	// working directory.
	ConfigPath string

	// Config is loaded before any subcommand runs.
	Config config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Docsink renders structured documents to HTML and Markdown",
		Long:         `Docsink renders AsciiDoc-style document trees, stored as JSON, to XHTML, Markdown or a raw sink event log, and prints section outlines.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default: nearest "+config.FileName+")")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.outlineCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads --config, or the nearest config file if the flag is
// empty. A missing implicit file leaves the defaults in place.
func (c *CLI) loadConfig() error {
	path := c.ConfigPath
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil
		}
		path = config.Find(wd)
		if path == "" {
			return nil
		}
	}

	cfg, err := config.LoadFile(path)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("loaded config", "path", path)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.openCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if c.Config.Cache.Scope != "" {
		keyer = cache.NewScopedKeyer(nil, c.Config.Cache.Scope+":")
	}
	runner := pipeline.NewRunner(ch, keyer, c.Logger)
	if ttl, err := c.Config.CacheTTL(); err == nil {
		runner.TTL = ttl
	}
	return runner, nil
}

// openCache opens the configured cache backend. The file backend lives in
// cacheDir; if that cannot be determined caching is disabled.
func (c *CLI) openCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	opts := cache.Options{
		Backend:  c.Config.Cache.Backend,
		RedisURL: c.Config.Cache.RedisURL,
	}
	if dir, err := cacheDir(); err == nil {
		opts.Dir = dir
	}
	return cache.Open(ctx, opts)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/docsink/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice. An
// empty string yields fallback.
func parseFormats(s string, fallback []string) []string {
	if s == "" {
		return fallback
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// mergeAttributes layers "-a key=value" assignments over base. Setting
// "key!" drops any "key" inherited from base, and the other way round.
func mergeAttributes(base map[string]string, assignments []string) (map[string]string, error) {
	out := make(map[string]string, len(base)+len(assignments))
	for k, v := range base {
		out[k] = v
	}
	for _, a := range assignments {
		key, value, err := errs.ParseAttribute(a)
		if err != nil {
			return nil, err
		}
		if name, unset := strings.CutSuffix(key, "!"); unset {
			delete(out, name)
		} else {
			delete(out, key+"!")
		}
		out[key] = value
	}
	return out, nil
}
