package main

import (
	"github.com/spf13/cobra"

	"github.com/toyz/ibcompose/internal/cli"
)

func newCleanCmd(a *app) *cobra.Command {
	v := cli.NewViper()

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Delete the generated file and its fingerprint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			diagnostics := a.diagnostics()
			reporter := a.reporter()

			cfg, err := a.loadConfig(v, nil)
			if err == nil {
				err = cfg.ValidateOutput()
			}
			if err != nil {
				reporter.ReportError(err)
				return reportedError{err}
			}

			diagnostics.Info("Starting cleanup operation...")
			removed, err := cli.NewCleaner().Clean(cfg)
			if err != nil {
				reporter.ReportError(err)
				return reportedError{err}
			}

			if len(removed) == 0 {
				diagnostics.Success("Nothing to clean")
				return nil
			}
			for _, path := range removed {
				diagnostics.List("removed %s", path)
			}
			diagnostics.Success("Generated files have been removed")
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", "", "Generated Objective-C file")
	bind(v, cmd, map[string]string{"output": "output"})
	return cmd
}
