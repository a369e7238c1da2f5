package cli

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/toyz/ibcompose/internal/errors"
	"github.com/toyz/ibcompose/internal/scanner"
	"github.com/toyz/ibcompose/internal/utils"
)

const classExt = ".class"

var archiveExts = []string{".jar", ".zip"}

// InputSet is the ordered list of class files of one run. Archives stay open
// until Close.
type InputSet struct {
	Inputs []scanner.Input
	// Sources are the files the inputs were read from, in order
	Sources []string

	closers []io.Closer
}

// Close releases any open archives
func (s *InputSet) Close() error {
	var firstErr error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	s.closers = nil
	return firstErr
}

// InputCollector expands input paths into class file inputs
type InputCollector struct {
	files *utils.FileProcessor
}

// NewInputCollector creates a new input collector
func NewInputCollector() *InputCollector {
	return &InputCollector{files: utils.NewFileProcessor()}
}

// Collect expands paths in order. Directories are walked in lexical order;
// archives contribute their class entries in archive order.
func (c *InputCollector) Collect(paths []string) (*InputSet, error) {
	set := &InputSet{}
	for _, path := range paths {
		if err := c.collect(set, path); err != nil {
			set.Close()
			return nil, err
		}
	}
	return set, nil
}

func (c *InputCollector) collect(set *InputSet, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.WrapFileSystemError("stat", path, err)
	}

	if info.IsDir() {
		files, err := c.files.WalkFiles(path, utils.FileWalkOptions{
			FileFilter:      utils.ExtensionFilter(append([]string{classExt}, archiveExts...)...),
			DirectoryFilter: utils.DefaultDirectoryFilter(),
		})
		if err != nil {
			return errors.WrapFileSystemError("walk", path, err)
		}
		for _, f := range files {
			if err := c.collectFile(set, f); err != nil {
				return err
			}
		}
		return nil
	}

	return c.collectFile(set, path)
}

func (c *InputCollector) collectFile(set *InputSet, path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case ext == classExt:
		set.Inputs = append(set.Inputs, fileInput(path))
		set.Sources = append(set.Sources, path)
		return nil
	case isArchive(ext):
		return c.collectArchive(set, path)
	default:
		return errors.ConfigurationError("inputs", "unsupported input '"+path+"'").
			WithContext("path", path).
			WithSuggestions("Inputs must be .class files, directories, or .jar/.zip archives")
	}
}

func (c *InputCollector) collectArchive(set *InputSet, path string) error {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return errors.WrapFileSystemError("open archive", path, err)
	}
	set.closers = append(set.closers, zr)
	set.Sources = append(set.Sources, path)

	for _, f := range zr.File {
		if !isClassEntry(f) {
			continue
		}
		entry := f
		set.Inputs = append(set.Inputs, scanner.Input{
			Name: path + "!" + entry.Name,
			Open: func() (io.ReadCloser, error) { return entry.Open() },
		})
	}
	return nil
}

// isClassEntry skips directories and the versioned copies under META-INF
func isClassEntry(f *zip.File) bool {
	if f.FileInfo().IsDir() || strings.HasPrefix(f.Name, "META-INF/") {
		return false
	}
	return strings.HasSuffix(f.Name, classExt)
}

func isArchive(ext string) bool {
	for _, a := range archiveExts {
		if ext == a {
			return true
		}
	}
	return false
}

func fileInput(path string) scanner.Input {
	return scanner.Input{
		Name: path,
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
}
