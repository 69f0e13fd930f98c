package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store persists catalog snapshots between runs, keyed by dimension name.
// There is no expiry policy: staleness is uncontrolled and cleared only by
// an explicit refresh. Writes are not locked; concurrent runs against the
// same directory must be serialized by the caller.
type Store interface {
	// Load decodes the named entry into v. A missing or malformed entry is
	// reported as a miss (false), not an error.
	Load(name string, v any) (bool, error)
	Save(name string, v any) error
}

type fsStore struct {
	dir string
}

// NewFSStore returns a Store backed by JSON files under dir.
func NewFSStore(dir string) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: failed to create directory %s: %w", dir, err)
	}
	return &fsStore{dir: dir}, nil
}

func (s *fsStore) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

func (s *fsStore) Load(name string, v any) (bool, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("cache: failed to read %s: %w", name, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		// A corrupt cache file behaves like a miss so the caller refetches.
		return false, nil
	}
	return true, nil
}

func (s *fsStore) Save(name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache: failed to encode %s: %w", name, err)
	}
	if err := os.WriteFile(s.path(name), data, 0o644); err != nil {
		return fmt.Errorf("cache: failed to write %s: %w", name, err)
	}
	return nil
}
