package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/toyz/ibcompose/internal/errors"
	"github.com/toyz/ibcompose/internal/utils"
)

// DiagnosticReporter provides user-friendly error reporting and run summaries
type DiagnosticReporter struct {
	verbose bool
	out     io.Writer
	errOut  io.Writer
}

// NewDiagnosticReporter creates a new diagnostic reporter
func NewDiagnosticReporter(verbose bool) *DiagnosticReporter {
	return &DiagnosticReporter{
		verbose: verbose,
		out:     os.Stdout,
		errOut:  os.Stderr,
	}
}

// SetOutput redirects the reporter
func (r *DiagnosticReporter) SetOutput(out, errOut io.Writer) {
	r.out = out
	r.errOut = errOut
}

// ReportWarning provides user-friendly warning reporting
func (r *DiagnosticReporter) ReportWarning(message string) {
	orange := color.New(color.FgYellow, color.Bold)
	orange.Fprint(r.errOut, "! ")
	fmt.Fprintf(r.errOut, "%s\n", message)
}

// ReportError provides comprehensive error reporting with user-friendly output
func (r *DiagnosticReporter) ReportError(err error) {
	fmt.Fprintf(r.errOut, "\nERROR: Generation Failed\n")
	fmt.Fprintf(r.errOut, "========================\n\n")

	var ibErr errors.IBError
	if stderrors.As(err, &ibErr) {
		r.reportIBError(ibErr)
	} else {
		fmt.Fprintf(r.errOut, "Message: %s\n\n", err.Error())
	}

	var multi *errors.MultipleErrors
	if stderrors.As(err, &multi) && len(multi.Errors) > 1 {
		fmt.Fprintf(r.errOut, "All errors:\n%s\n\n", multi.Error())
	}

	fmt.Fprintf(r.errOut, "For more help, run with --verbose for more detailed output\n\n")
}

// reportIBError reports an error with full context and suggestions
func (r *DiagnosticReporter) reportIBError(ibErr errors.IBError) {
	r.printErrorHeader(ibErr.ErrorCode())

	fmt.Fprintf(r.errOut, "Message: %s\n\n", ibErr.Error())

	if loc := ibErr.Location(); !loc.IsEmpty() {
		fmt.Fprintf(r.errOut, "Input: %s\n\n", loc.String())
	}

	if ctx := ibErr.Context(); len(ctx) > 0 {
		r.printContext(ctx)
	}

	if suggestions := ibErr.Suggestions(); len(suggestions) > 0 {
		r.printSuggestions(suggestions)
	}

	if r.verbose && ibErr.Unwrap() != nil {
		fmt.Fprintf(r.errOut, "Error Chain:\n")
		level := 1
		for err := ibErr.Unwrap(); err != nil; err = stderrors.Unwrap(err) {
			fmt.Fprintf(r.errOut, "    %d. %s\n", level, err.Error())
			level++
		}
		fmt.Fprintf(r.errOut, "\n")
	}
}

// printErrorHeader prints a formatted error header based on error code
func (r *DiagnosticReporter) printErrorHeader(code errors.ErrorCode) {
	var errorTypeStr string

	switch code {
	case errors.MalformedClassErrorCode:
		errorTypeStr = "Malformed Class File"
	case errors.ConfigurationErrorCode:
		errorTypeStr = "Configuration Error"
	case errors.FileSystemErrorCode:
		errorTypeStr = "File System Error"
	case errors.GenerationErrorCode:
		errorTypeStr = "Generation Error"
	default:
		errorTypeStr = "Unknown Error"
	}

	fmt.Fprintf(r.errOut, "Type: %s\n", errorTypeStr)
	fmt.Fprintf(r.errOut, "%s\n\n", strings.Repeat("-", len(errorTypeStr)+6))
}

// printContext prints context information sorted by key
func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	keys := make([]string, 0, len(context))
	for key := range context {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fmt.Fprintf(r.errOut, "Context:\n")
	for _, key := range keys {
		fmt.Fprintf(r.errOut, "   %s: %v\n", formatContextKey(key), context[key])
	}
	fmt.Fprintf(r.errOut, "\n")
}

// formatContextKey converts snake_case keys to Title Case
func formatContextKey(key string) string {
	parts := strings.Split(key, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}

// printSuggestions prints actionable suggestions
func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	fmt.Fprintf(r.errOut, "Suggestions:\n")
	for i, suggestion := range suggestions {
		fmt.Fprintf(r.errOut, "   %d. %s\n", i+1, suggestion)
	}
	fmt.Fprintf(r.errOut, "\n")
}

// ReportSuccess reports a completed run with summary information
func (r *DiagnosticReporter) ReportSuccess(summary GenerationSummary) {
	if summary.Cached {
		fmt.Fprintf(r.out, "\n%s is up to date (run %s)\n", summary.Output, summary.RunID)
		return
	}

	fmt.Fprintf(r.out, "\nGeneration Completed Successfully!\n")
	fmt.Fprintf(r.out, "==================================\n\n")
	fmt.Fprintf(r.out, "Run: %s\n", summary.RunID)
	fmt.Fprintf(r.out, "Scanned %d class files into %d registered classes\n", summary.InputsScanned, summary.ClassesRegistered)
	fmt.Fprintf(r.out, "Generated %d interfaces with %d members\n", summary.InterfacesGenerated, summary.MembersEmitted)
	if len(summary.Imports) > 0 {
		fmt.Fprintf(r.out, "Imports: %s\n", strings.Join(summary.Imports, ", "))
	}

	levels := []utils.DiagnosticLevel{utils.DiagnosticWarn, utils.DiagnosticInfo, utils.DiagnosticDebug}
	var skips []string
	for _, level := range levels {
		if n := summary.Skips[level]; n > 0 {
			skips = append(skips, fmt.Sprintf("%d %s", n, level))
		}
	}
	if len(skips) > 0 {
		fmt.Fprintf(r.out, "Skipped: %s\n", strings.Join(skips, ", "))
	}

	fmt.Fprintf(r.out, "\nGenerated file:\n  - %s\n", summary.Output)
	if r.verbose {
		fmt.Fprintf(r.out, "\nCompleted in %s\n", summary.Duration.Round(time.Millisecond))
	}
}

// GenerationSummary contains information about one generation run
type GenerationSummary struct {
	RunID               string
	Output              string
	Cached              bool
	InputsScanned       int
	ClassesRegistered   int
	InterfacesGenerated int
	MembersEmitted      int
	Imports             []string
	Skips               map[utils.DiagnosticLevel]int
	Duration            time.Duration
}
