// Package blob stores raw ingested event payloads as uniquely named
// objects organized by arrival date. Two backends exist: a plain directory
// tree and a Pebble database.
package blob

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DateLayout is the per-day object prefix.
const DateLayout = "2006-01-02"

// Store persists one payload per object. Implementations must keep the
// payload verbatim; ingestion does no validation or transformation.
type Store interface {
	Put(arrival time.Time, name string, payload []byte) error
	Close() error
}

// FilesystemStore writes one file per object under baseDir/<date>/<name>.
type FilesystemStore struct {
	baseDir string
}

func NewFilesystemStore(baseDir string) *FilesystemStore {
	return &FilesystemStore{baseDir: baseDir}
}

func (s *FilesystemStore) Put(arrival time.Time, name string, payload []byte) error {
	dir := filepath.Join(s.baseDir, arrival.UTC().Format(DateLayout))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (s *FilesystemStore) Close() error { return nil }
