package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestWriteFileCreatesParentsAndOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "scene.vox")
	fw := NewFileWriter(Options{})

	res, err := fw.WriteFile(path, []byte("first"))
	require.NoError(t, err)
	assert.Equal(t, path, res.Path)
	assert.Equal(t, 5, res.Bytes)
	assert.Empty(t, res.ArchivePath)

	_, err = fw.WriteFile(path, []byte("second"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	// временные файлы не остаются
	assert.Equal(t, []string{"scene.vox"}, listDir(t, filepath.Join(dir, "out")))
}

func TestWriteFileCompressed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.vox")
	payload := make([]byte, 4096)
	for i := range payload {
		payload[i] = byte(i % 7)
	}

	res, err := NewFileWriter(Options{Compress: true}).WriteFile(path, payload)
	require.NoError(t, err)
	assert.Equal(t, path+ArchiveExt, res.ArchivePath)
	assert.Less(t, res.ArchiveBytes, len(payload))

	restored, err := ReadArchive(res.ArchivePath)
	require.NoError(t, err)
	assert.Equal(t, payload, restored)

	assert.ElementsMatch(t, []string{"scene.vox", "scene.vox.zst"}, listDir(t, dir))
}

func TestWriteFileInvalidPath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	// родитель - обычный файл, каталог создать нельзя
	_, err := NewFileWriter(Options{}).WriteFile(filepath.Join(blocker, "scene.vox"), []byte("data"))
	assert.Error(t, err)
	assert.Equal(t, []string{"file"}, listDir(t, dir))
}
