package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/toyz/ibcompose/internal/annotations"
	"github.com/toyz/ibcompose/internal/cli"
	"github.com/toyz/ibcompose/internal/errors"
)

func newInspectCmd(a *app) *cobra.Command {
	v := cli.NewViper()

	cmd := &cobra.Command{
		Use:   "inspect [inputs...]",
		Short: "Print the binding metadata scanned from the inputs as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			reporter := a.reporter()

			cfg, err := a.loadConfig(v, args)
			if err == nil {
				err = cfg.ValidateInputs()
			}
			if err != nil {
				reporter.ReportError(err)
				return reportedError{err}
			}

			// inspect output is data; keep progress messages off stdout
			diagnostics := a.diagnostics()
			diagnostics.SetOutput(a.stderr(), a.stderr())

			records, err := cli.NewGenerator(diagnostics, reporter).Inspect(cmd.Context(), cfg)
			if err != nil {
				reporter.ReportError(err)
				return reportedError{err}
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(records); err != nil {
				return errors.WrapGenerationError("encode records", err)
			}
			return enc.Close()
		},
	}

	f := cmd.Flags()
	f.String("selector-rule", annotations.DefaultSelectorRule, "Selector rule for unannotated methods (derived, explicit)")
	f.IntP("jobs", "j", 0, "Parallel scan workers (0 uses GOMAXPROCS)")
	bind(v, cmd, map[string]string{
		"selector-rule": "selector_rule",
		"jobs":          "jobs",
	})
	return cmd
}
