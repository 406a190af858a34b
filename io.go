// FILE: lixenwraith/iniconf/io.go
package iniconf

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// readTree reads and decodes the file at path.
func readTree(path string, format Format) (*Tree, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrSourceNotFound)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("%w: '%s': %w", ErrSourceUnreadable, path, err)
	}

	tree, err := decodeTree(data, format)
	if err != nil {
		return nil, fmt.Errorf("config file '%s': %w", path, err)
	}
	return tree, nil
}

// atomicWriteFile writes data through a temporary file in the target
// directory which is then renamed over path.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: failed to create directory '%s': %w", ErrDestinationUnwritable, dir, err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: failed to create temporary file in '%s': %w", ErrDestinationUnwritable, dir, err)
	}

	tempPath := tempFile.Name()
	removed := false
	defer func() {
		if !removed {
			os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("%w: failed to write '%s': %w", ErrDestinationUnwritable, tempPath, err)
	}

	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("%w: failed to sync '%s': %w", ErrDestinationUnwritable, tempPath, err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("%w: failed to close '%s': %w", ErrDestinationUnwritable, tempPath, err)
	}

	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("%w: failed to set permissions on '%s': %w", ErrDestinationUnwritable, tempPath, err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("%w: failed to rename '%s' to '%s': %w", ErrDestinationUnwritable, tempPath, path, err)
	}
	removed = true

	return nil
}
