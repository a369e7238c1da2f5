package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/toyz/ibcompose/internal/cli"
	"github.com/toyz/ibcompose/internal/utils"
)

// app carries the persistent flags and the output streams shared by all commands
type app struct {
	configFile string
	verbose    bool
	quiet      bool
	logLevel   string

	// out and errOut replace the process streams when set
	out    io.Writer
	errOut io.Writer
}

// reportedError marks an error that was already rendered by the reporter
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "ibcompose",
		Short: "Generate Interface Builder interfaces from compiled Java bindings",
		Long: `ibcompose scans compiled Java classes carrying native binding annotations
and writes an Objective-C header declaring every bound controller, its outlets
and its actions, so Interface Builder can connect storyboards to them.

Inputs may be .class files, directories, or .jar/.zip archives. Settings are
read from ibcompose.yaml, IBCOMPOSE_* environment variables, and flags, in
increasing order of precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default ./ibcompose.yaml)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose output and detailed error reporting")
	flags.BoolVarP(&a.quiet, "quiet", "q", false, "Only show errors and final results")
	flags.StringVar(&a.logLevel, "log-level", "", "Diagnostic level (silent, error, warn, info, verbose, debug); overrides --quiet and --verbose")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if a.logLevel == "" {
			return nil
		}
		_, err := utils.ParseDiagnosticLevel(a.logLevel)
		return err
	}

	root.AddCommand(
		newGenerateCmd(a),
		newInspectCmd(a),
		newCleanCmd(a),
	)

	root.SetOut(a.stdout())
	root.SetErr(a.stderr())
	return root
}

// execute runs the command tree and prints errors the reporter has not seen
func (a *app) execute(root *cobra.Command) error {
	err := root.Execute()
	var reported reportedError
	if err != nil && !stderrors.As(err, &reported) {
		fmt.Fprintf(a.stderr(), "Error: %v\n", err)
	}
	return err
}

func (a *app) stdout() io.Writer {
	if a.out != nil {
		return a.out
	}
	return os.Stdout
}

func (a *app) stderr() io.Writer {
	if a.errOut != nil {
		return a.errOut
	}
	return os.Stderr
}

// diagnostics creates the diagnostic system selected by --log-level, --quiet
// and --verbose
func (a *app) diagnostics() *utils.DiagnosticSystem {
	var d *utils.DiagnosticSystem
	switch {
	case a.logLevel != "":
		// validated by PersistentPreRunE
		level, _ := utils.ParseDiagnosticLevel(a.logLevel)
		d = utils.NewDiagnosticSystem(level)
	case a.quiet:
		d = utils.NewQuietDiagnostics()
	case a.verbose:
		d = utils.NewVerboseDiagnostics()
	default:
		d = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}
	if a.out != nil {
		d.SetOutput(a.stdout(), a.stderr())
	}
	return d
}

func (a *app) reporter() *cli.DiagnosticReporter {
	r := cli.NewDiagnosticReporter(a.verbose)
	r.SetOutput(a.stdout(), a.stderr())
	return r
}

// loadConfig merges the config file, environment, and the flags bound on v
func (a *app) loadConfig(v *viper.Viper, inputs []string) (*cli.Config, error) {
	if len(inputs) > 0 {
		v.Set("inputs", inputs)
	}
	cfg, err := cli.LoadConfig(v, a.configFile)
	if err != nil {
		return nil, err
	}
	cfg.Verbose = cfg.Verbose || a.verbose
	return cfg, nil
}

// bind maps flag names to config keys
func bind(v *viper.Viper, cmd *cobra.Command, keys map[string]string) {
	for flag, key := range keys {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", flag, err))
		}
	}
}
