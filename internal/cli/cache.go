package cli

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/matzehuels/docsink/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())
	cmd.AddCommand(c.cacheInfoCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached artifacts and outlines",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ch, err := c.openCache(ctx, false)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer ch.Close()

			clearer, ok := ch.(cache.Clearer)
			if !ok {
				printInfo("Cache backend %q cannot be cleared", c.Config.Cache.Backend)
				return nil
			}

			var freed string
			if fc, ok := ch.(*cache.FileCache); ok {
				if n, size, err := fc.Usage(); err == nil {
					if n == 0 {
						printInfo("Cache is empty")
						return nil
					}
					freed = fmt.Sprintf("%d entries, %s", n, humanize.Bytes(uint64(size)))
				}
			}

			if err := clearer.Clear(ctx); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			if freed != "" {
				printSuccess("Cleared %s", freed)
			} else {
				printSuccess("Cache cleared")
			}
			if fc, ok := ch.(*cache.FileCache); ok {
				printDetail("Directory: %s", fc.Dir())
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}

// cacheInfoCommand creates the "cache info" subcommand.
func (c *CLI) cacheInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the cache backend and its size",
		RunE: func(cmd *cobra.Command, args []string) error {
			backend := c.Config.Cache.Backend
			if backend == "" {
				backend = cache.BackendFile
			}
			printKeyValue("Backend", backend)

			switch backend {
			case cache.BackendRedis:
				printKeyValue("URL", StyleLink.Render(c.Config.Cache.RedisURL))
			case cache.BackendFile:
				dir, err := cacheDir()
				if err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
				printKeyValue("Directory", dir)

				fc, err := cache.NewFileCache(dir)
				if err != nil {
					return fmt.Errorf("open cache: %w", err)
				}
				n, size, err := fc.Usage()
				if err != nil {
					return fmt.Errorf("read cache: %w", err)
				}
				printKeyValue("Entries", StyleNumber.Render(strconv.Itoa(n)))
				printKeyValue("Size", StyleNumber.Render(humanize.Bytes(uint64(size))))
			}

			if ttl, err := c.Config.CacheTTL(); err == nil {
				printKeyValue("TTL", ttl.String())
			}
			return nil
		},
	}
}
