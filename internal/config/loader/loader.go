// Package loader reads configuration sources into flat key/value maps.
//
// File loaders parse TOML or YAML documents. The environment loader maps
// prefixed variables such as KEYSEQ_HELP_TIMEOUT to keys such as
// help_timeout. Sources are combined with Merge, later sources winning.
package loader

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Loader is the interface for configuration loaders.
type Loader interface {
	// Load reads configuration from the source and returns a map.
	// Returns nil, nil if the source doesn't exist (not an error).
	Load() (map[string]any, error)
}

// ReaderLoader is the interface for loaders that read from io.Reader.
type ReaderLoader interface {
	LoadFromReader(r io.Reader) (map[string]any, error)
}

// FileSystem is an abstraction for file system operations.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// MapFS is an in-memory FileSystem keyed by path.
type MapFS map[string][]byte

// ReadFile returns the file at path or fs.ErrNotExist.
func (m MapFS) ReadFile(path string) ([]byte, error) {
	data, ok := m[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return data, nil
}

// ForPath returns the file loader for path, chosen by extension.
func ForPath(fsys FileSystem, path string) (Loader, error) {
	if fsys == nil {
		fsys = OSFS{}
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return &TOMLLoader{fs: fsys, path: path}, nil
	case ".yaml", ".yml":
		return &YAMLLoader{fs: fsys, path: path}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// readFile reads path, mapping a missing file to nil data.
func readFile(fsys FileSystem, path string) ([]byte, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return data, nil
}

// Merge returns a new map holding every key of maps, later maps winning.
func Merge(maps ...map[string]any) map[string]any {
	out := make(map[string]any)
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}
