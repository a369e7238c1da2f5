package fileops

import (
	"os"
	"path/filepath"

	"github.com/toyz/ibcompose/internal/errors"
)

// FileOps writes and removes generated files. Paths are cleaned before use
// and failures are reported as file system errors naming the path.
type FileOps struct {
	dirPerm  os.FileMode
	filePerm os.FileMode
}

// NewFileOps creates a FileOps with the usual 0755/0644 permissions
func NewFileOps() *FileOps {
	return &FileOps{dirPerm: 0o755, filePerm: 0o644}
}

// WriteFile replaces filePath with content, creating parent directories.
// The content is written to a temporary sibling first and renamed into
// place, so readers never observe a partial file.
func (fo *FileOps) WriteFile(filePath string, content []byte) error {
	cleanPath, err := cleanPath(filePath)
	if err != nil {
		return err
	}

	dir := filepath.Dir(cleanPath)
	if err := os.MkdirAll(dir, fo.dirPerm); err != nil {
		return errors.WrapFileSystemError("create directory", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(cleanPath)+".*")
	if err != nil {
		return errors.WrapFileSystemError("write", cleanPath, err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return errors.WrapFileSystemError("write", cleanPath, err)
	}
	if err := tmp.Chmod(fo.filePerm); err != nil {
		tmp.Close()
		return errors.WrapFileSystemError("write", cleanPath, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapFileSystemError("write", cleanPath, err)
	}
	if err := os.Rename(tmp.Name(), cleanPath); err != nil {
		return errors.WrapFileSystemError("write", cleanPath, err)
	}
	return nil
}

// ReadFile reads the whole file
func (fo *FileOps) ReadFile(filePath string) ([]byte, error) {
	cleanPath, err := cleanPath(filePath)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, errors.WrapFileSystemError("read", cleanPath, err)
	}
	return data, nil
}

// RemoveIfExists deletes filePath and reports whether there was anything to delete
func (fo *FileOps) RemoveIfExists(filePath string) (bool, error) {
	cleanPath, err := cleanPath(filePath)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(cleanPath); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.WrapFileSystemError("check", cleanPath, err)
	}
	if err := os.Remove(cleanPath); err != nil {
		return false, errors.WrapFileSystemError("remove", cleanPath, err)
	}
	return true, nil
}

// IsFile checks if a path exists and is a regular file
func (fo *FileOps) IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func cleanPath(filePath string) (string, error) {
	if filePath == "" {
		return "", errors.ConfigurationError("path", "file path cannot be empty")
	}
	return filepath.Clean(filePath), nil
}
