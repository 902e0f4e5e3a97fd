package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cratesort/internal/lookup"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Lookup cache utilities",
	}

	cacheCmd.AddCommand(newCacheClearCommand(ctx))

	return cacheCmd
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached lookup results",
		Long: `Clear deletes every cached external lookup result, including cached
misses. The cache is repopulated as files are cataloged.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cache := lookup.NewCache(cfg.Paths.CachePath, nil)

			count := cache.Count()
			if count == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Lookup cache is already empty")
				return nil
			}

			if err := cache.Clear(); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached lookup results\n", count)
			return nil
		},
	}
}
