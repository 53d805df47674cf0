// Package update checks the release manifest for newer builds and applies
// them in place. Progress is reported through a callback; the UI currently
// installs a no-op.
package update

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrNoUpdateAvailable is returned by Install when the manifest does not
// advertise a version newer than the running build.
var ErrNoUpdateAvailable = errors.New("no update available")

// Info is the result of an update check, as surfaced to the UI.
type Info struct {
	Available bool   `json:"available"`
	Version   string `json:"version,omitempty"`
}

// ProgressFunc receives download progress. total is -1 when the size is
// unknown. May be nil.
type ProgressFunc func(downloaded, total int64)

// Service talks to the release manifest endpoint and swaps the running
// executable for a downloaded build.
type Service struct {
	logger         zerolog.Logger
	manifestURL    string
	currentVersion string
	client         *http.Client
	downloadClient *http.Client
	platformKey    string // "<goos>-<goarch>", overridden in tests
}

// NewService creates an update service for the given manifest endpoint.
// currentVersion is the build version injected via ldflags.
func NewService(logger *zerolog.Logger, manifestURL, currentVersion string, timeout time.Duration) *Service {
	return &Service{
		logger:         logger.With().Str("service", "update").Logger(),
		manifestURL:    manifestURL,
		currentVersion: currentVersion,
		client:         &http.Client{Timeout: timeout},
		// Asset downloads can be large; cancellation flows through context.
		downloadClient: &http.Client{},
		platformKey:    runtime.GOOS + "-" + runtime.GOARCH,
	}
}

// Check fetches the manifest and compares it against the running version.
// Development builds never see updates.
func (s *Service) Check(ctx context.Context) (Info, error) {
	if isDevVersion(s.currentVersion) {
		s.logger.Debug().Str("version", s.currentVersion).Msg("development build, skipping update check")
		return Info{Available: false}, nil
	}

	m, err := s.fetchManifest(ctx)
	if err != nil {
		return Info{}, fmt.Errorf("update check: %w", err)
	}

	newer, err := IsNewer(m.Version, s.currentVersion)
	if err != nil {
		return Info{}, fmt.Errorf("update check: %w", err)
	}
	if !newer {
		s.logger.Debug().Str("latest", m.Version).Msg("already up to date")
		return Info{Available: false}, nil
	}

	s.logger.Info().Str("current", s.currentVersion).Str("latest", m.Version).Msg("update available")
	return Info{Available: true, Version: strings.TrimPrefix(m.Version, "v")}, nil
}

// Install re-checks the manifest and, if a newer build exists, downloads and
// applies it. Returns ErrNoUpdateAvailable when nothing is pending; no
// download is attempted in that case. The app must be restarted afterwards
// for the new build to take effect.
func (s *Service) Install(ctx context.Context, progress ProgressFunc) error {
	if isDevVersion(s.currentVersion) {
		return ErrNoUpdateAvailable
	}

	m, err := s.fetchManifest(ctx)
	if err != nil {
		return fmt.Errorf("update check: %w", err)
	}
	newer, err := IsNewer(m.Version, s.currentVersion)
	if err != nil {
		return fmt.Errorf("update check: %w", err)
	}
	if !newer {
		return ErrNoUpdateAvailable
	}

	asset, ok := m.Platforms[s.platformKey]
	if !ok || asset.URL == "" {
		return fmt.Errorf("install update: no asset for platform %s", s.platformKey)
	}

	archive, err := s.download(ctx, asset, progress)
	if err != nil {
		return fmt.Errorf("install update: %w", err)
	}
	defer os.RemoveAll(filepath.Dir(archive))

	binary, err := extractBinary(archive, binaryName())
	if err != nil {
		return fmt.Errorf("install update: %w", err)
	}

	target, err := executablePath()
	if err != nil {
		return fmt.Errorf("install update: %w", err)
	}
	if err := replaceExecutable(binary, target); err != nil {
		return fmt.Errorf("install update: %w", err)
	}

	s.logger.Info().Str("version", m.Version).Str("target", target).Msg("update installed, restart required")
	return nil
}

// download fetches the asset into a fresh staging directory under the OS
// temp dir and verifies its checksum when the manifest carries one.
func (s *Service) download(ctx context.Context, asset Asset, progress ProgressFunc) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, asset.URL, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create download request: %w", err)
	}

	resp, err := s.downloadClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download asset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("asset download returned status %d", resp.StatusCode)
	}

	stagingDir := filepath.Join(os.TempDir(), "porthole-update-"+uuid.NewString())
	if err := os.MkdirAll(stagingDir, 0o700); err != nil {
		return "", fmt.Errorf("create staging dir: %w", err)
	}

	name := path.Base(req.URL.Path)
	if name == "." || name == "/" {
		name = "update-asset"
	}
	archivePath := filepath.Join(stagingDir, name)

	file, err := os.Create(archivePath)
	if err != nil {
		os.RemoveAll(stagingDir)
		return "", fmt.Errorf("create asset file: %w", err)
	}

	hasher := sha256.New()
	written, err := copyWithProgress(ctx, io.MultiWriter(file, hasher), resp.Body, resp.ContentLength, progress)
	closeErr := file.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.RemoveAll(stagingDir)
		return "", fmt.Errorf("write asset: %w", err)
	}
	s.logger.Debug().Int64("bytes", written).Str("path", archivePath).Msg("asset downloaded")

	if asset.SHA256 != "" {
		sum := hex.EncodeToString(hasher.Sum(nil))
		if !strings.EqualFold(sum, asset.SHA256) {
			os.RemoveAll(stagingDir)
			return "", fmt.Errorf("asset checksum mismatch: got %s, manifest says %s", sum, asset.SHA256)
		}
	}

	return archivePath, nil
}

// copyWithProgress copies src to dst in chunks, honoring ctx cancellation and
// reporting progress after each chunk.
func copyWithProgress(ctx context.Context, dst io.Writer, src io.Reader, total int64, progress ProgressFunc) (int64, error) {
	buf := make([]byte, 32*1024)
	var written int64

	for {
		select {
		case <-ctx.Done():
			return written, ctx.Err()
		default:
		}

		n, err := src.Read(buf)
		if n > 0 {
			if _, werr := dst.Write(buf[:n]); werr != nil {
				return written, werr
			}
			written += int64(n)
			if progress != nil {
				progress(written, total)
			}
		}
		if errors.Is(err, io.EOF) {
			return written, nil
		}
		if err != nil {
			return written, err
		}
	}
}

func isDevVersion(v string) bool {
	return v == "" || v == "dev" || strings.HasSuffix(v, "-dev")
}

func binaryName() string {
	if runtime.GOOS == "windows" {
		return "porthole-desktop.exe"
	}
	return "porthole-desktop"
}

func executablePath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("resolve executable: %w", err)
	}
	return exe, nil
}
