package quiz

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TerranMechworks/mech3doc/pkg/fixture"
)

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func TestWriteAllEmptyDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteAll(dir))

	require.Equal(t, []string{"quiz001.bin", "quiz002.bin", "quiz003.bin", "quiz004.bin"}, listDir(t, dir))

	for _, name := range listDir(t, dir) {
		got, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		golden, err := os.ReadFile(filepath.Join("testdata", name))
		require.NoError(t, err)
		require.Equal(t, golden, got, name)
	}
}

func TestWriteAllIdempotent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteAll(dir))
	first, err := os.ReadFile(filepath.Join(dir, "quiz003.bin"))
	require.NoError(t, err)

	require.NoError(t, WriteAll(dir))
	second, err := os.ReadFile(filepath.Join(dir, "quiz003.bin"))
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Len(t, listDir(t, dir), 4)
}

func TestWriteAllRestoresDeletedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteAll(dir))

	path := filepath.Join(dir, "quiz002.bin")
	want, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.Remove(path))

	require.NoError(t, WriteAll(dir))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestWriteFileTruncates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quiz004.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 4096), 0644))

	f, ok := Lookup("quiz004")
	require.True(t, ok)
	require.NoError(t, WriteFile(dir, f))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.EqualValues(t, 24, info.Size())
}

func TestWriteFileMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "does-not-exist")
	f, _ := Lookup("quiz001")

	err := WriteFile(dir, f)
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
	require.Contains(t, err.Error(), "quiz001.bin")
}

func TestWriteStopsAtBuildError(t *testing.T) {
	dir := t.TempDir()
	bad := Fixture{
		Name: "broken.bin",
		Build: func(e *fixture.Encoder) {
			e.Put("<i", "not an int")
		},
	}
	fixtures := []Fixture{Fixtures()[0], bad, Fixtures()[1]}

	err := Write(dir, fixtures)
	require.ErrorIs(t, err, fixture.ErrArgType)
	require.Contains(t, err.Error(), "broken.bin")
	require.Equal(t, []string{"quiz001.bin"}, listDir(t, dir))
}
