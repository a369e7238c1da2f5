package cli

import (
	"github.com/toyz/ibcompose/internal/utils/fileops"
)

// Cleaner handles cleaning up generated files
type Cleaner struct {
	files *fileops.FileOps
}

// NewCleaner creates a new cleaner
func NewCleaner() *Cleaner {
	return &Cleaner{files: fileops.NewFileOps()}
}

// Clean removes the generated output and its fingerprint file. It returns the
// files that were actually removed.
func (c *Cleaner) Clean(cfg *Config) ([]string, error) {
	var removed []string
	for _, path := range []string{cfg.Output, cfg.CachePath()} {
		ok, err := c.files.RemoveIfExists(path)
		if err != nil {
			return removed, err
		}
		if ok {
			removed = append(removed, path)
		}
	}
	return removed, nil
}
