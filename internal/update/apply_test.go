package update

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeZip(t *testing.T, dir string, entries map[string][]byte) string {
	t.Helper()
	path := filepath.Join(dir, "release.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	w := zip.NewWriter(f)
	for name, data := range entries {
		fw, err := w.Create(name)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
	return path
}

func writeTarGz(t *testing.T, dir string, entries map[string][]byte) string {
	t.Helper()
	path := filepath.Join(dir, "release.tar.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)
	for name, data := range entries {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     name,
			Mode:     0o755,
			Size:     int64(len(data)),
			Typeflag: tar.TypeReg,
		}))
		_, err = tw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())
	return path
}

func TestExtractBinaryFromZip(t *testing.T) {
	dir := t.TempDir()
	archive := writeZip(t, dir, map[string][]byte{
		"README.md":                   []byte("docs"),
		"porthole-desktop/app-binary": []byte("new build"),
	})

	out, err := extractBinary(archive, "app-binary")
	require.NoError(t, err)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "new build", string(data))
}

func TestExtractBinaryFromTarGz(t *testing.T) {
	dir := t.TempDir()
	archive := writeTarGz(t, dir, map[string][]byte{
		"bundle/app-binary": []byte("new build"),
	})

	out, err := extractBinary(archive, "app-binary")
	require.NoError(t, err)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "new build", string(data))
}

func TestExtractBinaryMissingEntry(t *testing.T) {
	dir := t.TempDir()
	archive := writeZip(t, dir, map[string][]byte{"other": []byte("x")})

	_, err := extractBinary(archive, "app-binary")
	assert.Error(t, err)
}

func TestExtractBinaryUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "release.dmg")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	_, err := extractBinary(path, "app-binary")
	assert.Error(t, err)
}

func TestReplaceExecutableSwapsContent(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "app")
	require.NoError(t, os.WriteFile(target, []byte("old build"), 0o755))
	staged := filepath.Join(dir, "staging", "app")
	require.NoError(t, os.MkdirAll(filepath.Dir(staged), 0o700))
	require.NoError(t, os.WriteFile(staged, []byte("new build"), 0o755))

	require.NoError(t, replaceExecutable(staged, target))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "new build", string(data))
}

func TestReplaceExecutableMissingTarget(t *testing.T) {
	dir := t.TempDir()
	staged := filepath.Join(dir, "app-new")
	require.NoError(t, os.WriteFile(staged, []byte("new build"), 0o755))

	err := replaceExecutable(staged, filepath.Join(dir, "does-not-exist"))
	assert.Error(t, err)
}
