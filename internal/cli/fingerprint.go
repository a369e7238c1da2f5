package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/mod/sumdb/dirhash"
	"gopkg.in/yaml.v3"

	"github.com/toyz/ibcompose/internal/errors"
	"github.com/toyz/ibcompose/internal/utils/fileops"
)

// optionsEntry names the pseudo-file holding the run options in the fingerprint
const optionsEntry = "@options"

var outputFiles = fileops.NewFileOps()

// Fingerprint hashes the ordered input sources together with the options
// that influence the output. Identical inputs in identical order give
// identical fingerprints.
func Fingerprint(cfg *Config, sources []string) (string, error) {
	opts, err := yaml.Marshal(struct {
		Includes         []string `yaml:"includes"`
		ExcludeLibraries []string `yaml:"exclude_libraries"`
		AdditionalCode   []string `yaml:"additional_code"`
		SelectorRule     string   `yaml:"selector_rule"`
		Sources          []string `yaml:"sources"`
	}{cfg.Includes, cfg.ExcludeLibraries, cfg.AdditionalCode, cfg.SelectorRule, sources})
	if err != nil {
		return "", errors.WrapGenerationError("encode options", err)
	}

	// dirhash sorts its file list, so the position of each source is folded
	// into the entry name to keep input order significant
	files := make([]string, 0, len(sources)+1)
	files = append(files, optionsEntry)
	index := make(map[string]string, len(sources))
	for i, src := range sources {
		name := orderedName(i, src)
		files = append(files, name)
		index[name] = src
	}

	sum, err := dirhash.Hash1(files, func(name string) (io.ReadCloser, error) {
		if name == optionsEntry {
			return io.NopCloser(bytes.NewReader(opts)), nil
		}
		return os.Open(index[name])
	})
	if err != nil {
		return "", errors.WrapFileSystemError("hash", "inputs", err)
	}
	return sum, nil
}

func orderedName(i int, src string) string {
	// dirhash rejects names containing newlines
	return fmt.Sprintf("%08d#%s", i, strings.ReplaceAll(src, "\n", "?"))
}

// CacheHit reports whether the cache file holds fingerprint and the output exists
func CacheHit(cfg *Config, fingerprint string) bool {
	if !outputFiles.IsFile(cfg.Output) {
		return false
	}
	data, err := outputFiles.ReadFile(cfg.CachePath())
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(data)) == fingerprint
}

// WriteCache records the fingerprint of a completed run
func WriteCache(cfg *Config, fingerprint string) error {
	return outputFiles.WriteFile(cfg.CachePath(), []byte(fingerprint+"\n"))
}
