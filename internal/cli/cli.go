// Package cli implements the sbom-analyzer command-line interface.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/paritytech-secops/sbom-analyzer/pkg/buildinfo"
	"github.com/paritytech-secops/sbom-analyzer/pkg/cache"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "sbom-analyzer"

	// defaultCacheTTL is how long registry responses stay cached.
	defaultCacheTTL = 24 * time.Hour
)

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
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "sbom-analyzer enriches SBOM packages with registry metadata",
		Long:         `sbom-analyzer reads a Software Bill of Materials, extracts the declared packages, and enriches each entry with metadata from its package registry: repository, maintainers, recent downloads, and latest release.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Cache Backend Selection
// =============================================================================

// cacheSettings holds the cache-related flags shared by commands.
type cacheSettings struct {
	noCache  bool          // disable caching entirely
	dir      string        // file cache directory override
	ttl      time.Duration // how long responses stay cached
	redisURL string        // use Redis instead of the file cache
}

// newCacheBackend selects the cache backend from the flags: Redis when a URL
// is given, otherwise a file cache, or the null cache with --no-cache. A file
// cache that cannot be set up degrades to the null cache rather than failing
// the run.
func (c *CLI) newCacheBackend(opts cacheSettings) cache.Cache {
	if opts.noCache {
		return cache.NewNullCache()
	}
	if opts.redisURL != "" {
		backend, err := cache.NewRedisCache(opts.redisURL)
		if err != nil {
			c.Logger.Warnf("Redis cache unavailable, running uncached: %v", err)
			return cache.NewNullCache()
		}
		return backend
	}
	dir, err := resolveCacheDir(opts.dir)
	if err != nil {
		c.Logger.Warnf("File cache unavailable, running uncached: %v", err)
		return cache.NewNullCache()
	}
	backend, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warnf("File cache unavailable, running uncached: %v", err)
		return cache.NewNullCache()
	}
	return backend
}
