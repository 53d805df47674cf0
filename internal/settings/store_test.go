package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStoreAt(filepath.Join(t.TempDir(), "settings.json"))
}

func TestGetUnsetKeyIsAbsent(t *testing.T) {
	store := newTestStore(t)

	value, ok, err := store.Get(DefaultServerKey)
	if err != nil {
		t.Fatalf("Get on missing file failed: %v", err)
	}
	if ok {
		t.Errorf("Get on missing file reported present, value %q", value)
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	store := newTestStore(t)

	if err := store.Set(DefaultServerKey, "https://porthole.example.com"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	value, ok, err := store.Get(DefaultServerKey)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok {
		t.Fatal("Get reported absent after Set")
	}
	if value != "https://porthole.example.com" {
		t.Errorf("Get = %q, want %q", value, "https://porthole.example.com")
	}
}

func TestLastWriteWins(t *testing.T) {
	store := newTestStore(t)

	urls := []string{
		"https://first.example.com",
		"https://second.example.com",
		"https://third.example.com",
	}
	for _, u := range urls {
		if err := store.Set(DefaultServerKey, u); err != nil {
			t.Fatalf("Set(%q) failed: %v", u, err)
		}
	}

	value, ok, _ := store.Get(DefaultServerKey)
	if !ok || value != urls[len(urls)-1] {
		t.Errorf("Get = %q (present=%v), want last written %q", value, ok, urls[len(urls)-1])
	}

	// The file holds exactly one object with one key, no history.
	data, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("reading settings file: %v", err)
	}
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("settings file is not a JSON object: %v", err)
	}
	if len(raw) != 1 {
		t.Errorf("settings file has %d keys, want 1: %v", len(raw), raw)
	}
}

func TestDeleteClearsKey(t *testing.T) {
	store := newTestStore(t)

	if err := store.Set(DefaultServerKey, "https://porthole.example.com"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Delete(DefaultServerKey); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	_, ok, err := store.Get(DefaultServerKey)
	if err != nil {
		t.Fatalf("Get after Delete failed: %v", err)
	}
	if ok {
		t.Error("Get reported present after Delete")
	}
}

func TestDeleteAbsentKeyIsNotAnError(t *testing.T) {
	store := newTestStore(t)

	if err := store.Delete(DefaultServerKey); err != nil {
		t.Errorf("Delete on empty store failed: %v", err)
	}
}

func TestSetPreservesOtherKeys(t *testing.T) {
	store := newTestStore(t)

	if err := store.Set("theme", "dark"); err != nil {
		t.Fatalf("Set(theme) failed: %v", err)
	}
	if err := store.Set(DefaultServerKey, "https://porthole.example.com"); err != nil {
		t.Fatalf("Set(%s) failed: %v", DefaultServerKey, err)
	}

	theme, ok, _ := store.Get("theme")
	if !ok || theme != "dark" {
		t.Errorf("Get(theme) = %q (present=%v), want \"dark\"", theme, ok)
	}
}

func TestCorruptFileSurfacesError(t *testing.T) {
	store := newTestStore(t)
	if err := os.WriteFile(store.Path(), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, _, err := store.Get(DefaultServerKey); err == nil {
		t.Error("Get on corrupt file returned nil error")
	}
	if err := store.Set(DefaultServerKey, "x"); err == nil {
		t.Error("Set on corrupt file returned nil error")
	}
}

func TestNonStringValueIsAbsent(t *testing.T) {
	store := newTestStore(t)
	if err := os.WriteFile(store.Path(), []byte(`{"defaultServerUrl": 42}`), 0o600); err != nil {
		t.Fatal(err)
	}

	_, ok, err := store.Get(DefaultServerKey)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Error("non-string value reported as present string")
	}
}
