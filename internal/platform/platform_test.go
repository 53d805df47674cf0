package platform

import (
	"runtime"
	"testing"
)

func TestOSNameIsKnownValue(t *testing.T) {
	valid := map[string]bool{
		"macos":   true,
		"windows": true,
		"linux":   true,
		"unknown": true,
	}

	name := OSName()
	if name == "" {
		t.Fatal("OSName() returned empty string")
	}
	if !valid[name] {
		t.Errorf("OSName() = %q, not a member of the OS enum", name)
	}
}

func TestOSNameMatchesGOOS(t *testing.T) {
	want := map[string]string{
		"darwin":  "macos",
		"windows": "windows",
		"linux":   "linux",
	}

	expected, ok := want[runtime.GOOS]
	if !ok {
		expected = "unknown"
	}
	if got := OSName(); got != expected {
		t.Errorf("OSName() = %q on GOOS=%s, want %q", got, runtime.GOOS, expected)
	}
}
