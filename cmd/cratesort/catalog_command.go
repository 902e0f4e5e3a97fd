package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"cratesort/internal/catalog"
	"cratesort/internal/config"
	"cratesort/internal/logging"
	"cratesort/internal/preflight"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	var modes runModes

	cmd := &cobra.Command{
		Use:   "catalog <directory>",
		Short: "Tag and sort MP3 files into genre folders",
		Long: `Catalog scans the given directory for MP3 files, resolves metadata from
existing tags, external databases, and filename patterns, updates the ID3
tags, and moves each file into a subfolder named after its genre. Files
whose genre cannot be determined stay where they are and appear in the
run report.`,
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

	cmd.Flags().BoolVar(&modes.dryRun, "dry-run", false, "Report every change without writing tags or moving files")
	cmd.Flags().BoolVar(&modes.noExternal, "no-external", false, "Skip external metadata lookups")
	cmd.Flags().BoolVar(&modes.cleanup, "cleanup", false, "Remove empty genre folders after the run")
	cmd.Flags().BoolVarP(&modes.verbose, "verbose", "v", false, "Log at debug level")

	return cmd
}

type runModes struct {
	dryRun      bool
	analyzeOnly bool
	noExternal  bool
	cleanup     bool
	verbose     bool
}

// runCatalog is the shared flow behind the catalog and analyze
// commands: lock, preflight, pipeline, rendered summary.
func runCatalog(cmd *cobra.Command, cfg *config.Config, root string, modes runModes) (*catalog.Summary, error) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	env, err := newRunEnvironment(cfg, modes.verbose)
	if err != nil {
		return nil, err
	}
	defer env.release()

	env.logger.Info("run starting",
		logging.String(logging.FieldRunID, env.runID),
		logging.String("directory", root),
		logging.Bool(logging.FieldDryRun, modes.dryRun),
		logging.Bool("analyze_only", modes.analyzeOnly),
		logging.Bool("no_external", modes.noExternal),
	)

	access := preflight.AccessReadWrite
	if modes.dryRun || modes.analyzeOnly {
		access = preflight.AccessRead
	}
	lookupActive := cfg.Lookup.Enabled && !modes.noExternal
	results := preflight.RunAll(cmd.Context(), cfg, root, access, lookupActive)
	printPreflight(out, results, colorize)
	for _, res := range preflight.Failed(results) {
		env.logger.Warn("preflight check failed",
			logging.String("check", res.Name),
			logging.String("detail", res.Detail),
			logging.Bool("optional", res.Optional),
		)
	}
	if preflight.Fatal(results) {
		return nil, errors.New("preflight checks failed")
	}

	pipeline, err := catalog.New(catalog.Options{
		Config:      cfg,
		Root:        root,
		RunID:       env.runID,
		DryRun:      modes.dryRun,
		AnalyzeOnly: modes.analyzeOnly,
		NoExternal:  modes.noExternal,
		Cleanup:     modes.cleanup,
		Logger:      env.logger,
	})
	if err != nil {
		return nil, err
	}
	summary, err := pipeline.Run(cmd.Context())
	if err != nil {
		return nil, err
	}

	if modes.analyzeOnly {
		existing, err := catalog.AnalyzeCollection(root)
		if err != nil {
			env.logger.Warn("unable to inspect existing genre folders", logging.Error(err))
		}
		printAnalysis(out, summary, existing, colorize)
	} else {
		printRunSummary(out, summary, colorize)
	}
	fmt.Fprintf(out, "Log: %s\n", env.logPath)
	return summary, nil
}
