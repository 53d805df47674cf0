// Package settings persists user preferences as a single flat JSON object in
// settings.json under the per-user config directory. The file is shared with
// earlier builds of the app, so its shape is fixed.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const fileName = "settings.json"

// DefaultServerKey is the settings key holding the server URL the UI
// connects to by default. Absence of the key is a valid state.
const DefaultServerKey = "defaultServerUrl"

// Store reads and writes the settings file. Every mutation rewrites the
// whole file; the provider owns no in-memory state between calls.
type Store struct {
	path string
}

// NewStore creates a store rooted at the per-user config directory
// (e.g. ~/Library/Application Support/Porthole on macOS).
func NewStore(appDir string) (*Store, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("settings store: resolve config dir: %w", err)
	}
	return &Store{path: filepath.Join(base, appDir, fileName)}, nil
}

// NewStoreAt creates a store backed by an explicit file path.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// Path returns the location of the backing file.
func (s *Store) Path() string {
	return s.path
}

// Get returns the string value for key. The second return is false when the
// key is unset or holds a non-string value; neither case is an error.
func (s *Store) Get(key string) (string, bool, error) {
	values, err := s.load()
	if err != nil {
		return "", false, err
	}
	raw, ok := values[key]
	if !ok {
		return "", false, nil
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", false, nil
	}
	return v, true, nil
}

// Set writes value under key and persists the store to disk.
func (s *Store) Set(key, value string) error {
	values, err := s.load()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("settings store: encode value: %w", err)
	}
	values[key] = raw
	return s.save(values)
}

// Delete removes key and persists the store. Deleting an absent key still
// rewrites the file and is not an error.
func (s *Store) Delete(key string) error {
	values, err := s.load()
	if err != nil {
		return err
	}
	delete(values, key)
	return s.save(values)
}

func (s *Store) load() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("settings store: read %s: %w", fileName, err)
	}

	values := map[string]json.RawMessage{}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("settings store: parse %s: %w", fileName, err)
	}
	return values, nil
}

// save writes the full object via a temp file and rename so a crash mid-write
// never leaves a truncated settings file behind.
func (s *Store) save(values map[string]json.RawMessage) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("settings store: create config dir: %w", err)
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("settings store: encode %s: %w", fileName, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), fileName+".*")
	if err != nil {
		return fmt.Errorf("settings store: create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("settings store: write %s: %w", fileName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("settings store: close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("settings store: replace %s: %w", fileName, err)
	}
	return nil
}
