package blob

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/cockroachdb/pebble"
)

// PebbleStore keeps objects in a PebbleDB keyed by <date>/<name>.
type PebbleStore struct {
	db *pebble.DB
}

func NewPebbleStore(dir string) (*PebbleStore, error) {
	db, err := pebble.Open(filepath.Clean(dir), &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("pebble open: %w", err)
	}
	return &PebbleStore{db: db}, nil
}

func (s *PebbleStore) Put(arrival time.Time, name string, payload []byte) error {
	key := objectKey(arrival, name)
	// Sync: an acknowledged event must survive a crash.
	if err := s.db.Set(key, payload, pebble.Sync); err != nil {
		return fmt.Errorf("pebble set %s: %w", key, err)
	}
	return nil
}

// Get returns one stored payload. Used by tests and ad-hoc inspection.
func (s *PebbleStore) Get(arrival time.Time, name string) ([]byte, bool) {
	v, closer, err := s.db.Get(objectKey(arrival, name))
	if err != nil {
		return nil, false
	}
	defer closer.Close()
	out := append([]byte(nil), v...)
	return out, true
}

func (s *PebbleStore) Close() error { return s.db.Close() }

func objectKey(arrival time.Time, name string) []byte {
	return []byte(arrival.UTC().Format(DateLayout) + "/" + name)
}
