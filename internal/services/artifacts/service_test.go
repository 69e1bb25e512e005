package artifacts

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadBytesWritesFileAndReturnsURL(t *testing.T) {
	base := t.TempDir()
	backend, err := NewFilesystemStorage(base)
	require.NoError(t, err)

	store := NewService(backend, "http://localhost:8080/artifacts/")

	url, err := store.UploadBytes(context.Background(), []byte("audio-bytes"), "runs/abc/final.mp3")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/artifacts/runs/abc/final.mp3", url)

	data, err := os.ReadFile(filepath.Join(base, "runs", "abc", "final.mp3"))
	require.NoError(t, err)
	assert.Equal(t, []byte("audio-bytes"), data)
}

func TestUploadRejectsEmptyPath(t *testing.T) {
	backend, err := NewFilesystemStorage(t.TempDir())
	require.NoError(t, err)

	store := NewService(backend, "http://localhost:8080/artifacts")
	_, err = store.UploadBytes(context.Background(), []byte("x"), "")
	assert.Error(t, err)
}

func TestFilesystemStorageCreatesNestedDirectories(t *testing.T) {
	base := t.TempDir()
	backend, err := NewFilesystemStorage(base)
	require.NoError(t, err)

	path, err := backend.Save(context.Background(), strings.NewReader("hello"), "a/b/c.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "a", "b", "c.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}
