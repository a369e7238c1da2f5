// Package composer renders the Objective-C interface declarations that
// Interface Builder reads for classes with native outlets and actions.
//
// A Compose call visits every registered class once. Classes and members
// that cannot be declared are skipped with a Diagnostic; nothing short of an
// invalid option aborts the run.
package composer

import (
	"bytes"
	"regexp"

	"github.com/toyz/ibcompose/internal/errors"
	"github.com/toyz/ibcompose/internal/registry"
	"github.com/toyz/ibcompose/internal/utils"
)

const (
	// DefaultLibrary is always imported unless excluded
	DefaultLibrary = "UIKit"
	// EventTypeName is the binding name required of an action's second argument
	EventTypeName = "UIEvent"
	// Banner opens every generated file
	Banner = "/** THIS FILE IS GENERATED AND MAY BE OVERWRITTEN! DO NOT EDIT. **/"
)

// Options controls which classes are emitted and what surrounds them
type Options struct {
	// IncludePatterns are whole-string regular expressions matched against
	// dotted class names. Empty means every class.
	IncludePatterns  []string
	ExcludeLibraries []string
	AdditionalCode   []string
}

// Logger receives every skip at its diagnostic level
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}

// Interface is one generated @interface block
type Interface struct {
	ClassName  string // internal JVM name
	NativeName string
	SuperName  string
	Protocols  []string
	Members    []string
}

// Result is the outcome of one Compose call
type Result struct {
	Text        string
	Imports     []string
	Interfaces  []Interface
	Diagnostics []Diagnostic
}

// MemberCount returns the number of emitted member declarations
func (r *Result) MemberCount() int {
	n := 0
	for _, itf := range r.Interfaces {
		n += len(itf.Members)
	}
	return n
}

// CountByLevel tallies diagnostics per level
func (r *Result) CountByLevel() map[utils.DiagnosticLevel]int {
	counts := make(map[utils.DiagnosticLevel]int)
	for _, d := range r.Diagnostics {
		counts[d.Level]++
	}
	return counts
}

// Composer turns a resolved registry into generated source
type Composer struct {
	lookup registry.ClassLookup
	logger Logger
}

// Option configures a Composer
type Option func(*Composer)

// WithLogger sets the logger that receives skip diagnostics
func WithLogger(logger Logger) Option {
	return func(c *Composer) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a composer over a populated registry
func New(lookup registry.ClassLookup, opts ...Option) *Composer {
	c := &Composer{lookup: lookup, logger: nopLogger{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose visits every registered class and assembles the output text
func (c *Composer) Compose(opts Options) (*Result, error) {
	includes, err := compileIncludes(opts.IncludePatterns)
	if err != nil {
		return nil, err
	}

	r := &run{
		Composer: c,
		includes: includes,
		imports:  NewImportSet(DefaultLibrary),
		result:   &Result{},
	}
	c.lookup.Resolve(r.visit)

	r.result.Imports = r.imports.Without(opts.ExcludeLibraries)

	var forward []string
	for _, itf := range r.result.Interfaces {
		forward = append(forward, itf.NativeName)
	}

	var buf bytes.Buffer
	err = outputTemplate.Execute(&buf, fileData{
		Banner:         Banner,
		Forward:        forward,
		Imports:        r.result.Imports,
		AdditionalCode: opts.AdditionalCode,
		Interfaces:     r.result.Interfaces,
	})
	if err != nil {
		return nil, errors.WrapGenerationError("render output", err)
	}
	r.result.Text = buf.String()
	return r.result, nil
}

func compileIncludes(patterns []string) ([]*regexp.Regexp, error) {
	if len(patterns) == 0 {
		patterns = []string{".*"}
	}
	includes := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile("^(?:" + p + ")$")
		if err != nil {
			return nil, errors.WrapConfigurationError("includes", err).
				WithContext("pattern", p).
				WithSuggestions("Include patterns are Go regular expressions matched against dotted class names, e.g. 'com\\.acme\\..*'")
		}
		includes = append(includes, re)
	}
	return includes, nil
}

// run holds the state of one Compose call
type run struct {
	*Composer
	includes []*regexp.Regexp
	imports  *ImportSet
	result   *Result
}

func (r *run) visit(_ string, rc *registry.ResolvedClass) {
	if s := r.filter(rc); s != nil {
		r.report(rc.PrettyName(), s)
		return
	}

	itf, s := r.class(rc)
	if s != nil {
		r.report(rc.PrettyName(), s)
		return
	}
	r.result.Interfaces = append(r.result.Interfaces, *itf)
}

// filter decides whether a class is slated for generation at all
func (r *run) filter(rc *registry.ResolvedClass) *Skip {
	rec := rc.Record
	if !rec.HasNativeClassName() {
		return skip(NotGenerated, "no native class name")
	}
	if !rc.IsValidNativeType() {
		return skip(NotGenerated, "not a valid native type")
	}
	if rec.HasNativeClassBinding() {
		return skip(NotGenerated, "already bound to native class %s", rec.NativeClassBinding)
	}

	name := rc.PrettyName()
	for _, re := range r.includes {
		if re.MatchString(name) {
			return nil
		}
	}
	return skip(IncludeMismatch, "not found in include list")
}

// class builds the interface block of a class that passed the filter
func (r *run) class(rc *registry.ResolvedClass) (*Interface, *Skip) {
	rec := rc.Record
	r.logger.Debug("Generating interface for %s", rec.NativeClassName)

	if !rec.HasSuper() {
		return nil, skip(MissingSuperclass, "superclass is missing for %s", rec.NativeClassName)
	}
	res := rc.SuperNativeName()
	superName, ok := res.Found()
	if !ok {
		if res.Missing != "" {
			return nil, skip(UnresolvedSuperclass, "failed to locate superclass for %s, %s is not registered",
				rec.NativeClassName, res.Missing)
		}
		return nil, skip(UnresolvedSuperclass, "failed to locate superclass for %s", rec.NativeClassName)
	}

	itf := &Interface{
		ClassName:  rec.Name,
		NativeName: rec.NativeClassName,
		SuperName:  superName,
		Protocols:  r.lookup.Protocols(rc),
	}
	r.imports.Add(r.lookup.Libraries(rc)...)

	for _, m := range rec.SortedMethods() {
		line, s := r.member(m)
		if s != nil {
			r.report(m.Signature(rec.Name), s)
			continue
		}
		itf.Members = append(itf.Members, line)
	}
	return itf, nil
}

func (r *run) report(subject string, s *Skip) {
	d := Diagnostic{
		Level:   s.Reason.Level(),
		Reason:  s.Reason,
		Subject: subject,
		Message: s.Message,
	}
	r.result.Diagnostics = append(r.result.Diagnostics, d)

	switch d.Level {
	case utils.DiagnosticWarn:
		r.logger.Warn("%s", d)
	case utils.DiagnosticInfo:
		r.logger.Info("%s", d)
	default:
		r.logger.Debug("%s", d)
	}
}
