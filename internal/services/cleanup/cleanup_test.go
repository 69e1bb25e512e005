package cleanup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepRemovesOnlyOldRunDirs(t *testing.T) {
	tempDir := t.TempDir()

	oldRun := filepath.Join(tempDir, "run_aaaa")
	require.NoError(t, os.MkdirAll(oldRun, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(oldRun, "audio.mp3"), []byte("x"), 0644))
	past := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(oldRun, past, past))

	freshRun := filepath.Join(tempDir, "run_bbbb")
	require.NoError(t, os.MkdirAll(freshRun, 0755))

	unrelated := filepath.Join(tempDir, "keep.mp3")
	require.NoError(t, os.WriteFile(unrelated, []byte("x"), 0644))
	require.NoError(t, os.Chtimes(unrelated, past, past))

	s := NewSweeper(tempDir, time.Hour, time.Hour)
	s.sweep()

	assert.NoDirExists(t, oldRun)
	assert.DirExists(t, freshRun)
	assert.FileExists(t, unrelated)
}

func TestSweepMissingTempDirIsNoop(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "absent")
	s := NewSweeper(dir, time.Hour, time.Hour)
	s.sweep() // must not panic or create the directory
	assert.NoDirExists(t, dir)
}
