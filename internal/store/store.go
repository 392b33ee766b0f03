package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Adapter is a key/value store for JSON-serializable documents. Load
// returns false when no usable value exists under the key; the caller
// falls back to its own default. Save persists synchronously.
type Adapter interface {
	Load(key string, dst interface{}) bool
	Save(key string, value interface{}) error
}

// FileStore persists each key as a pretty-printed <key>.json file
// under a base directory.
type FileStore struct {
	baseDir string
}

// NewFileStore creates a file-backed store rooted at baseDir.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("store base directory must not be empty")
	}
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

// BaseDir returns the directory backing the store.
func (s *FileStore) BaseDir() string {
	return s.baseDir
}

// Load reads the value stored under key into dst. A missing file or
// unparsable JSON yields false without surfacing an error; the seed
// default is the recovery path.
func (s *FileStore) Load(key string, dst interface{}) bool {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return false
	}

	if err := json.Unmarshal(data, dst); err != nil {
		// Corrupt document. Warn and let the caller reseed.
		fmt.Fprintf(os.Stderr, "Warning: ignoring corrupt store entry %q: %v\n", key, err)
		return false
	}

	return true
}

// Save writes the value under key, replacing any previous document.
func (s *FileStore) Save(key string, value interface{}) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal store entry %q: %w", key, err)
	}

	if err := os.WriteFile(s.path(key), data, 0644); err != nil {
		return fmt.Errorf("failed to write store entry %q: %w", key, err)
	}

	return nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.baseDir, key+".json")
}

// MemoryStore keeps documents in a map. It backs tests and any caller
// that wants repository semantics without touching the file system.
type MemoryStore struct {
	entries map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]byte)}
}

// Load reads the value stored under key into dst.
func (s *MemoryStore) Load(key string, dst interface{}) bool {
	data, ok := s.entries[key]
	if !ok {
		return false
	}
	return json.Unmarshal(data, dst) == nil
}

// Save stores the value under key.
func (s *MemoryStore) Save(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal store entry %q: %w", key, err)
	}
	s.entries[key] = data
	return nil
}

// Delete removes the value stored under key, if any.
func (s *MemoryStore) Delete(key string) {
	delete(s.entries, key)
}
