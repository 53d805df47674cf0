// Package config loads the app-level config.toml. These are operator knobs
// (update feed, log level), distinct from the UI-driven settings.json store.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const fileName = "config.toml"

// DefaultManifestURL is the release manifest queried for updates when
// config.toml does not override it.
const DefaultManifestURL = "https://releases.porthole.app/desktop/latest.json"

// Config represents config.toml.
type Config struct {
	Update UpdateConfig `toml:"update"`
	Log    LogConfig    `toml:"log"`
}

// UpdateConfig controls the update checker.
type UpdateConfig struct {
	ManifestURL    string `toml:"manifest_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"` // manifest fetch timeout, 1-300, default 30
}

// LogConfig controls the application logger.
type LogConfig struct {
	Level string `toml:"level"` // trace|debug|info|warn|error, default "info"
}

func defaults() Config {
	return Config{
		Update: UpdateConfig{
			ManifestURL:    DefaultManifestURL,
			TimeoutSeconds: 30,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads config.toml from dir. A missing file yields the defaults; a
// malformed file also yields the defaults so a bad edit never bricks startup.
func Load(dir string) Config {
	return loadFile(filepath.Join(dir, fileName))
}

func loadFile(path string) Config {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return defaults()
	}

	// Fall back per field rather than rejecting the whole file.
	if cfg.Update.ManifestURL == "" {
		cfg.Update.ManifestURL = DefaultManifestURL
	}
	if cfg.Update.TimeoutSeconds < 1 || cfg.Update.TimeoutSeconds > 300 {
		cfg.Update.TimeoutSeconds = 30
	}
	switch cfg.Log.Level {
	case "trace", "debug", "info", "warn", "warning", "error":
	default:
		cfg.Log.Level = "info"
	}

	return cfg
}
