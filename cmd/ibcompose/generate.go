package main

import (
	"github.com/spf13/cobra"

	"github.com/toyz/ibcompose/internal/annotations"
	"github.com/toyz/ibcompose/internal/cli"
)

func newGenerateCmd(a *app) *cobra.Command {
	v := cli.NewViper()

	cmd := &cobra.Command{
		Use:   "generate [inputs...]",
		Short: "Scan inputs and write the Interface Builder header",
		Example: `  ibcompose generate build/classes -o ios/Generated/IBBindings.m
  ibcompose generate app.jar --include 'Main.*' --exclude-library UIKit
  ibcompose generate --config ibcompose.yaml --no-cache`,
		RunE: func(cmd *cobra.Command, args []string) error {
			diagnostics := a.diagnostics()
			reporter := a.reporter()
			diagnostics.Section("IB Interface Composer")

			cfg, err := a.loadConfig(v, args)
			if err != nil {
				reporter.ReportError(err)
				return reportedError{err}
			}
			if noCache, _ := cmd.Flags().GetBool("no-cache"); noCache {
				cfg.Cache = false
			}

			if cfg.Verbose {
				diagnostics.List("Inputs: %v", cfg.Inputs)
				diagnostics.List("Output: %s", cfg.Output)
				diagnostics.List("Selector rule: %s", cfg.SelectorRule)
				diagnostics.List("Workers: %d", cfg.Workers())
			}

			generator := cli.NewGenerator(diagnostics, reporter)
			summary, err := generator.Run(cmd.Context(), cfg)
			if err != nil {
				reporter.ReportError(err)
				return reportedError{err}
			}

			reporter.ReportSuccess(*summary)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringP("output", "o", "", "Generated Objective-C file")
	f.StringArray("include", nil, "Regular expression selecting the classes to generate (whole-name match, repeatable)")
	f.StringSlice("exclude-library", nil, "Libraries to leave out of the @import list")
	f.StringArray("additional-code", nil, "Lines inserted verbatim after the imports")
	f.String("selector-rule", annotations.DefaultSelectorRule, "Selector rule for unannotated methods (derived, explicit)")
	f.IntP("jobs", "j", 0, "Parallel scan workers (0 uses GOMAXPROCS)")
	f.Bool("no-cache", false, "Regenerate even when inputs and options are unchanged")

	bind(v, cmd, map[string]string{
		"output":          "output",
		"include":         "includes",
		"exclude-library": "exclude_libraries",
		"additional-code": "additional_code",
		"selector-rule":   "selector_rule",
		"jobs":            "jobs",
	})
	return cmd
}
