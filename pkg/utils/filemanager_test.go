package utils

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveTargetCopiesExistingFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "resources.json")
	require.NoError(t, os.WriteFile(target, []byte(`[]`), 0644))

	fm := NewFileManager(filepath.Join(dir, "archive"))
	archived, err := fm.ArchiveTarget(target)
	require.NoError(t, err)
	require.NotEmpty(t, archived)

	data, err := os.ReadFile(archived)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	// The target itself is left in place.
	assert.True(t, FileExists(target))
	assert.Equal(t, filepath.Join(dir, "archive"), filepath.Dir(archived))
}

func TestArchiveTargetMissingTarget(t *testing.T) {
	dir := t.TempDir()
	fm := NewFileManager(filepath.Join(dir, "archive"))

	archived, err := fm.ArchiveTarget(filepath.Join(dir, "resources.json"))
	require.NoError(t, err)
	assert.Empty(t, archived)
	assert.False(t, FileExists(filepath.Join(dir, "archive")))
}

func TestArchiveTargetDisabled(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "resources.json")
	require.NoError(t, os.WriteFile(target, []byte(`[]`), 0644))

	archived, err := NewFileManager("").ArchiveTarget(target)
	require.NoError(t, err)
	assert.Empty(t, archived)
}

func TestArchiveTargetRepeatedRunsKeepEveryCopy(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "resources.json")
	fm := NewFileManager(filepath.Join(dir, "archive"))

	var archives []string
	for _, content := range []string{"first", "second"} {
		require.NoError(t, os.WriteFile(target, []byte(content), 0644))
		archived, err := fm.ArchiveTarget(target)
		require.NoError(t, err)
		archives = append(archives, archived)
	}

	assert.NotEqual(t, archives[0], archives[1])
	entries, err := os.ReadDir(filepath.Join(dir, "archive"))
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestArchiveTargetTimestampSubdirs(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "resources.json")
	require.NoError(t, os.WriteFile(target, []byte(`[]`), 0644))

	fm := NewFileManager(filepath.Join(dir, "archive"))
	fm.UseTimestampSubdirs = true
	fm.now = func() time.Time { return time.Date(2024, 1, 15, 14, 30, 22, 0, time.UTC) }

	archived, err := fm.ArchiveTarget(target)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "archive", "2024", "01", "15"), filepath.Dir(archived))
	assert.Regexp(t, `^resources_20240115_143022_[0-9a-f-]{36}\.json$`, filepath.Base(archived))
}

func TestGenerateArchiveFileName(t *testing.T) {
	now := time.Date(2024, 1, 15, 14, 30, 22, 0, time.UTC)

	name := generateArchiveFileName("", "out/resources.json", now)
	assert.Regexp(t, regexp.MustCompile(`^resources_20240115_143022_[0-9a-f-]{36}\.json$`), name)

	name = generateArchiveFileName("{date}-{time}-{original}{ext}", "resources.yaml", now)
	assert.Equal(t, "20240115-143022-resources.yaml", name)
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	assert.True(t, FileExists(dir))
	assert.False(t, FileExists(filepath.Join(dir, "missing.csv")))
}

func TestEnsureDirectories(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, NewFileManager(dir).EnsureDirectories())
	assert.True(t, FileExists(dir))

	assert.NoError(t, NewFileManager("").EnsureDirectories())
}
