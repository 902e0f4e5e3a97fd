package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cratesort/internal/config"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	modes := runModes{analyzeOnly: true}

	cmd := &cobra.Command{
		Use:   "analyze <directory>",
		Short: "Classify MP3 files without changing anything",
		Long: `Analyze runs the same metadata resolution as catalog but never writes
tags or moves files. It prints the genre each file would land in, which
metadata fields are still missing, and how the existing genre folders
are populated. A JSON report is written like in a real run.`,
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
			_, err = runCatalog(cmd, cfg, root, modes)
			return err
		},
	}

	cmd.Flags().BoolVar(&modes.noExternal, "no-external", false, "Skip external metadata lookups")
	cmd.Flags().BoolVarP(&modes.verbose, "verbose", "v", false, "Log at debug level")

	return cmd
}
