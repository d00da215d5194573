package writer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adyam-logistics/trackseed/pkg/trackseed"
)

func TestWriteContent_CreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db", "migrations", "0001_initial_data.sql")

	require.NoError(t, WriteContent(path, Render([]string{trackseed.HeaderComment, "SELECT 1;"})))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "-- Auto-generated from DataSet.xlsx\nSELECT 1;", string(content))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestWriteContent_OverwritesExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.sql")
	require.NoError(t, os.WriteFile(path, []byte("old content that is much longer than the new one"), 0o600))

	require.NoError(t, WriteContent(path, Render([]string{trackseed.HeaderComment})))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, trackseed.HeaderComment, string(content))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file must not be left behind")
}

func TestWriteContent_FailsWhenParentIsAFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "db")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	err := WriteContent(filepath.Join(blocker, "migrations", "0001.sql"), []byte("x"))
	require.Error(t, err)
	assert.ErrorIs(t, err, trackseed.ErrWriteFailed)
}

func TestWriteContent_FailsWhenTargetIsADirectory(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "0001_initial_data.sql")
	require.NoError(t, os.MkdirAll(filepath.Join(target, "child"), 0o755))

	err := WriteContent(target, []byte("x"))
	require.Error(t, err)
	assert.ErrorIs(t, err, trackseed.ErrWriteFailed)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file must be removed on failure")
}

func TestRender(t *testing.T) {
	assert.Equal(t, "", string(Render(nil)))
	assert.Equal(t, "a", string(Render([]string{"a"})))
	assert.Equal(t, "a\nb", string(Render([]string{"a", "b"})))
}
