// Package scanner turns class files into ClassRecords. Scanning is pure: it
// never touches the registry, so many inputs can be scanned in parallel.
package scanner

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/toyz/ibcompose/internal/annotations"
	"github.com/toyz/ibcompose/internal/classfile"
	"github.com/toyz/ibcompose/internal/descriptor"
	"github.com/toyz/ibcompose/internal/errors"
	"github.com/toyz/ibcompose/internal/models"
)

// Input is one named class file byte stream
type Input struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// BytesInput wraps an in-memory class file
func BytesInput(name string, data []byte) Input {
	return Input{
		Name: name,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// Scanner extracts ClassRecords from class files
type Scanner struct {
	extractor *annotations.Extractor
	jobs      int
}

// Option configures a Scanner
type Option func(*Scanner)

// WithExtractor replaces the default NatJ extractor
func WithExtractor(e *annotations.Extractor) Option {
	return func(s *Scanner) {
		s.extractor = e
	}
}

// WithJobs bounds the number of inputs scanned concurrently by ScanAll
func WithJobs(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.jobs = n
		}
	}
}

// New creates a scanner
func New(opts ...Option) *Scanner {
	s := &Scanner{
		extractor: annotations.NewExtractor(nil, nil),
		jobs:      runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan reads one class file. It returns a nil record for module descriptors.
func (s *Scanner) Scan(r io.Reader) (*models.ClassRecord, error) {
	cf, err := classfile.Read(r)
	if err != nil {
		return nil, err
	}
	return s.record(cf)
}

// ScanBytes scans an in-memory class file
func (s *Scanner) ScanBytes(data []byte) (*models.ClassRecord, error) {
	cf, err := classfile.Parse(data)
	if err != nil {
		return nil, err
	}
	return s.record(cf)
}

// ScanInput opens and scans one input, attaching its name to any error
func (s *Scanner) ScanInput(in Input) (*models.ClassRecord, error) {
	rc, err := in.Open()
	if err != nil {
		return nil, errors.WrapFileSystemError("open", in.Name, err)
	}
	defer rc.Close()

	rec, err := s.Scan(rc)
	if err != nil {
		var malformed *errors.MalformedClassError
		if stderrors.As(err, &malformed) {
			return nil, malformed.WithInput(in.Name)
		}
		var base *errors.BaseError
		if stderrors.As(err, &base) && base.Loc.IsEmpty() {
			base.Loc.Input = in.Name
		}
		return nil, err
	}
	return rec, nil
}

// ScanAll scans inputs concurrently and returns their records in input
// order, without the nil records of module descriptors. The first failing
// input aborts the whole scan.
func (s *Scanner) ScanAll(ctx context.Context, inputs []Input) ([]*models.ClassRecord, error) {
	results := make([]*models.ClassRecord, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.jobs)
	for i, in := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rec, err := s.ScanInput(in)
			if err != nil {
				return err
			}
			results[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := make([]*models.ClassRecord, 0, len(results))
	for _, rec := range results {
		if rec != nil {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (s *Scanner) record(cf *classfile.ClassFile) (*models.ClassRecord, error) {
	if cf.IsModule() {
		return nil, nil
	}

	meta := s.extractor.Class(cf.Name, cf.Annotations)
	rec := &models.ClassRecord{
		Name:                     cf.Name,
		SuperName:                cf.SuperName,
		SuperInterfaces:          cf.Interfaces,
		NativeClassName:          meta.NativeClassName,
		NativeClassBinding:       meta.NativeClassBinding,
		NativeProtocolName:       meta.NativeProtocolName,
		NativeProtocolSourceName: meta.NativeProtocolSourceName,
		Library:                  meta.Library,
	}

	// Only classes that are or will be native types carry members worth keeping
	if !meta.IsNative() {
		return rec, nil
	}

	for _, m := range cf.Methods {
		typ, err := descriptor.ParseMethod(m.Descriptor)
		if err != nil {
			return nil, errors.NewMalformedClassError("", -1, err.Error())
		}

		md := s.extractor.Method(annotations.MethodInfo{
			Name:        m.Name,
			Descriptor:  m.Descriptor,
			NumArgs:     typ.NumArgs(),
			IsStatic:    m.IsStatic(),
			Annotations: m.Annotations,
		})
		if !md.IsBinding() {
			continue
		}

		rec.Methods = append(rec.Methods, models.MethodRecord{
			Name:       m.Name,
			Descriptor: m.Descriptor,
			Type:       typ,
			IsStatic:   m.IsStatic(),
			Selector:   md.Selector,
			IsProperty: md.IsProperty,
			IsAction:   md.IsAction,
			IsOutlet:   md.IsOutlet,
		})
	}
	return rec, nil
}
