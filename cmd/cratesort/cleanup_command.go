package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cratesort/internal/config"
	"cratesort/internal/relocate"
)

func newCleanupCommand(ctx *commandContext) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "cleanup <directory>",
		Short: "Remove empty genre folders",
		Long: `Cleanup deletes subfolders of the given directory that match a genre
name and contain no files. Folders with content and folders that are not
genre names are left alone.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			root, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve directory: %w", err)
			}

			env, err := newRunEnvironment(cfg, verbose)
			if err != nil {
				return err
			}
			defer env.release()

			removed, err := relocate.CleanupEmptyDirs(root, env.logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(removed) == 0 {
				fmt.Fprintln(out, "No empty genre folders found")
				return nil
			}
			for _, dir := range removed {
				fmt.Fprintf(out, "Removed %s\n", dir)
			}
			fmt.Fprintf(out, "%d empty genre folders removed\n", len(removed))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log at debug level")

	return cmd
}
