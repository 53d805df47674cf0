package update

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Manifest is the release descriptor served by the update feed. Platform
// keys are "<goos>-<goarch>", e.g. "darwin-arm64".
type Manifest struct {
	Version   string           `json:"version"`
	PubDate   time.Time        `json:"pub_date"`
	Notes     string           `json:"notes,omitempty"`
	Platforms map[string]Asset `json:"platforms"`
}

// Asset is one downloadable build inside a manifest.
type Asset struct {
	URL    string `json:"url"`
	SHA256 string `json:"sha256,omitempty"`
}

func (s *Service) fetchManifest(ctx context.Context) (*Manifest, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.manifestURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create manifest request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "PortholeDesktop/"+s.currentVersion)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch manifest: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("manifest endpoint returned status %d", resp.StatusCode)
	}

	var m Manifest
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if m.Version == "" {
		return nil, fmt.Errorf("manifest has no version")
	}
	return &m, nil
}
