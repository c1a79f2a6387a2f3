// Package devstore is a file-backed key-value store for device-local
// state: the pastor list, the session profile and the bearer token.
// Nothing in it is ever transmitted or reconciled against the server.
package devstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Store keeps a JSON object on disk, one value per key. A missing or
// corrupt file degrades to an empty store; reads never fail.
type Store struct {
	path string
	mu   sync.Mutex
	data map[string]json.RawMessage
}

// Open loads the store at path, tolerating absent or malformed content.
func Open(path string) *Store {
	s := &Store{path: path, data: map[string]json.RawMessage{}}

	raw, err := os.ReadFile(path)
	if err != nil {
		return s
	}

	var parsed map[string]json.RawMessage
	if err := json.Unmarshal(raw, &parsed); err != nil || parsed == nil {
		return s
	}
	s.data = parsed
	return s
}

// DefaultPath places the state file under the user config dir.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "rede-guti", "state.json")
}

// Get unmarshals the value stored under key into out. It reports false
// when the key is absent or the stored value doesn't fit out.
func (s *Store) Get(key string, out interface{}) bool {
	s.mu.Lock()
	raw, ok := s.data[key]
	s.mu.Unlock()
	if !ok {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

// Set stores the value under key and rewrites the whole file.
func (s *Store) Set(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = raw
	return s.persist()
}

// Delete removes the key and rewrites the file.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return s.persist()
}

func (s *Store) persist() error {
	raw, err := json.Marshal(s.data)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o600)
}
