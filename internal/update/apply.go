package update

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// extractBinary pulls the named executable out of a .zip or .tar.gz release
// archive into the archive's directory and returns its path.
func extractBinary(archivePath, name string) (string, error) {
	switch {
	case strings.HasSuffix(archivePath, ".zip"):
		return extractFromZip(archivePath, name)
	case strings.HasSuffix(archivePath, ".tar.gz"), strings.HasSuffix(archivePath, ".tgz"):
		return extractFromTarGz(archivePath, name)
	default:
		return "", fmt.Errorf("unsupported archive format: %s", filepath.Base(archivePath))
	}
}

func extractFromZip(archivePath, name string) (string, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return "", fmt.Errorf("open archive: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if filepath.Base(f.Name) != name || f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("open %s in archive: %w", name, err)
		}
		out, err := writeBinary(filepath.Dir(archivePath), name, rc)
		rc.Close()
		return out, err
	}
	return "", fmt.Errorf("%s not found in archive", name)
}

func extractFromTarGz(archivePath, name string) (string, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return "", fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return "", fmt.Errorf("read gzip stream: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("read archive: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg || filepath.Base(hdr.Name) != name {
			continue
		}
		return writeBinary(filepath.Dir(archivePath), name, tr)
	}
	return "", fmt.Errorf("%s not found in archive", name)
}

func writeBinary(dir, name string, src io.Reader) (string, error) {
	outPath := filepath.Join(dir, name)
	out, err := os.OpenFile(outPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o755)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return "", fmt.Errorf("extract %s: %w", name, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", name, err)
	}
	return outPath, nil
}

// replaceExecutable swaps target for the freshly extracted binary. The old
// binary is moved aside first because Windows cannot unlink a running
// executable; renaming it is allowed.
func replaceExecutable(newBinary, target string) error {
	old := target + ".old"
	os.Remove(old)

	if err := os.Rename(target, old); err != nil {
		return fmt.Errorf("move current executable aside: %w", err)
	}
	if err := moveFile(newBinary, target); err != nil {
		// Roll the original back so the install fails closed.
		if rbErr := os.Rename(old, target); rbErr != nil {
			return fmt.Errorf("install new executable: %w (rollback also failed: %v)", err, rbErr)
		}
		return fmt.Errorf("install new executable: %w", err)
	}

	// Best effort; on Windows the old binary stays until the next run.
	os.Remove(old)
	return nil
}

// moveFile renames src to dst, falling back to copy+remove when the staging
// dir is on a different filesystem than the install dir.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o755)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}
