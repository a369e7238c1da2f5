package cli

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/toyz/ibcompose/internal/annotations"
	"github.com/toyz/ibcompose/internal/composer"
	"github.com/toyz/ibcompose/internal/errors"
	"github.com/toyz/ibcompose/internal/models"
	"github.com/toyz/ibcompose/internal/registry"
	"github.com/toyz/ibcompose/internal/scanner"
	"github.com/toyz/ibcompose/internal/utils"
)

// Generator coordinates the CLI generation process
type Generator struct {
	collector   *InputCollector
	diagnostics *utils.DiagnosticSystem
	reporter    *DiagnosticReporter
}

// NewGenerator creates a new CLI generator
func NewGenerator(diagnostics *utils.DiagnosticSystem, reporter *DiagnosticReporter) *Generator {
	if diagnostics == nil {
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}
	if reporter == nil {
		reporter = NewDiagnosticReporter(diagnostics.Level() >= utils.DiagnosticVerbose)
	}
	return &Generator{
		collector:   NewInputCollector(),
		diagnostics: diagnostics,
		reporter:    reporter,
	}
}

// Reporter returns the reporter used for errors and summaries
func (g *Generator) Reporter() *DiagnosticReporter {
	return g.reporter
}

// Run executes the complete generation process
func (g *Generator) Run(ctx context.Context, cfg *Config) (*GenerationSummary, error) {
	start := time.Now()
	summary := &GenerationSummary{
		RunID:  uuid.NewString(),
		Output: cfg.Output,
	}
	g.diagnostics.Verbose("Starting run %s", summary.RunID)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	set, err := g.collector.Collect(cfg.Inputs)
	if err != nil {
		return nil, err
	}
	defer set.Close()
	g.diagnostics.Progress("Collected %d class files from %d sources", len(set.Inputs), len(set.Sources))

	var fingerprint string
	if cfg.Cache {
		fingerprint, err = Fingerprint(cfg, set.Sources)
		if err != nil {
			return nil, err
		}
		g.diagnostics.Debug("Input fingerprint %s", fingerprint)
		if CacheHit(cfg, fingerprint) {
			summary.Cached = true
			summary.Duration = time.Since(start)
			g.diagnostics.Info("Inputs unchanged, keeping %s", cfg.Output)
			return summary, nil
		}
	}

	records, err := g.scan(ctx, cfg, set)
	if err != nil {
		return nil, err
	}
	summary.InputsScanned = len(set.Inputs)

	reg := registry.New()
	reg.AddAll(records)
	summary.ClassesRegistered = reg.Len()
	g.diagnostics.Progress("Registered %d classes", reg.Len())

	result, err := composer.New(reg, composer.WithLogger(g.diagnostics)).Compose(cfg.ComposerOptions())
	if err != nil {
		return nil, err
	}
	summary.InterfacesGenerated = len(result.Interfaces)
	summary.MembersEmitted = result.MemberCount()
	summary.Imports = result.Imports
	summary.Skips = result.CountByLevel()

	if err := outputFiles.WriteFile(cfg.Output, []byte(result.Text)); err != nil {
		return nil, err
	}
	g.diagnostics.Progress("Wrote %s", cfg.Output)

	if cfg.Cache {
		if err := WriteCache(cfg, fingerprint); err != nil {
			return nil, err
		}
	}

	summary.Duration = time.Since(start)
	return summary, nil
}

// Inspect scans the configured inputs without composing
func (g *Generator) Inspect(ctx context.Context, cfg *Config) ([]*models.ClassRecord, error) {
	set, err := g.collector.Collect(cfg.Inputs)
	if err != nil {
		return nil, err
	}
	defer set.Close()
	return g.scan(ctx, cfg, set)
}

func (g *Generator) scan(ctx context.Context, cfg *Config, set *InputSet) ([]*models.ClassRecord, error) {
	rule, err := annotations.SelectorRuleByName(cfg.SelectorRule)
	if err != nil {
		return nil, errors.WrapConfigurationError("selector_rule", err)
	}

	s := scanner.New(
		scanner.WithExtractor(annotations.NewExtractor(nil, rule)),
		scanner.WithJobs(cfg.Workers()),
	)
	g.diagnostics.Verbose("Scanning %d class files with %d workers", len(set.Inputs), cfg.Workers())
	return s.ScanAll(ctx, set.Inputs)
}
