// Package schema owns the single cached SDL document: durable local storage,
// the remote introspection fetch, and the freshness-aware cache manager that
// decides between the two.
package schema

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrNoDocument is returned by Store reads when no usable schema copy exists
// on disk. A zero-length file counts as absent: an empty document cannot be
// distinguished from a failed write, and search over it is useless anyway.
var ErrNoDocument = stderrors.New("no schema document stored")

// Store holds the last-known schema text in a single plain-text file.
// The file's modification time is the sole freshness signal; there is no
// sidecar metadata.
type Store struct {
	path string
}

// NewStore creates a Store for the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the storage location.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether a non-empty schema copy is stored.
func (s *Store) Exists() bool {
	info, err := os.Stat(s.path)
	return err == nil && info.Size() > 0
}

// Read returns the stored schema text, or ErrNoDocument if the file is
// missing or empty.
func (s *Store) Read() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return "", ErrNoDocument
		}
		return "", fmt.Errorf("reading schema copy: %w", err)
	}
	if len(data) == 0 {
		return "", ErrNoDocument
	}
	return string(data), nil
}

// Write replaces the stored schema text wholesale. Parent directories are
// created as needed. The write goes to a temp file first and is renamed into
// place so concurrent readers never observe a torn document.
func (s *Store) Write(content string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating schema cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".schema-*")
	if err != nil {
		return fmt.Errorf("creating temp schema file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing schema copy: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing schema copy: %w", err)
	}
	_ = os.Chmod(tmpPath, 0600)

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replacing schema copy: %w", err)
	}
	return nil
}

// Age returns how long ago the stored copy was written, derived from the
// file's modification time. Costs a metadata stat, no content read.
func (s *Store) Age(now time.Time) (time.Duration, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return 0, ErrNoDocument
		}
		return 0, fmt.Errorf("checking schema copy age: %w", err)
	}
	if info.Size() == 0 {
		return 0, ErrNoDocument
	}
	return now.Sub(info.ModTime()), nil
}

// ModTime returns the stored copy's last-written time.
func (s *Store) ModTime() (time.Time, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return time.Time{}, ErrNoDocument
		}
		return time.Time{}, fmt.Errorf("checking schema copy: %w", err)
	}
	return info.ModTime(), nil
}
