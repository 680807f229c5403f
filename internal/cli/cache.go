package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skillfield/skillfield/internal/config"
	"github.com/skillfield/skillfield/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage cached artifacts of seeded runs",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached layouts and artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			var (
				count int
				where string
				err   error
			)
			switch c.Config.Cache.Backend {
			case config.BackendFile:
				fc, ferr := cache.NewFileCache(c.Config.Cache.Dir)
				if ferr != nil {
					return fmt.Errorf("open cache: %w", ferr)
				}
				count, err = fc.Clear()
				where = fc.Dir()
			case config.BackendRedis:
				rc, rerr := cache.NewRedisCache(cmd.Context(), cache.RedisOptions{
					URL:      c.Config.Redis.URL,
					Addr:     c.Config.Redis.Addr,
					Password: c.Config.Redis.Password,
					DB:       c.Config.Redis.DB,
					Prefix:   c.Config.Redis.Prefix,
				})
				if rerr != nil {
					return fmt.Errorf("open cache: %w", rerr)
				}
				defer rc.Close()
				count, err = rc.Clear(cmd.Context())
				where = "redis " + c.Config.Redis.Prefix + "*"
			default:
				printInfo(out, "Caching is disabled (cache.backend = %s)", c.Config.Cache.Backend)
				return nil
			}
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			printSuccess(out, "Cleared %d cached entries", count)
			printDetail(out, "Location: %s", where)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the file cache directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), c.Config.Cache.Dir)
			return nil
		},
	}
}
