package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/xcstrings/pkg/catalog"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	t.Run("creates directories and default mode", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "a", "b", "Localizable.xcstrings")

		require.NoError(t, writeFileAtomic(path, []byte("one")))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, "one", string(data))

		info, err := os.Stat(path)
		require.NoError(t, err)
		require.Equal(t, defaultFileMode, info.Mode().Perm())
	})

	t.Run("replaces and keeps mode", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, "Localizable.xcstrings")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0o640))

		require.NoError(t, writeFileAtomic(path, []byte("new")))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, "new", string(data))

		info, err := os.Stat(path)
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0o640), info.Mode().Perm())

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
	})

	t.Run("rename failure removes temp file", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		// A non-empty directory at the target makes the rename fail.
		path := filepath.Join(dir, "Localizable.xcstrings")
		require.NoError(t, os.MkdirAll(filepath.Join(path, "child"), 0o755))

		require.Error(t, writeFileAtomic(path, []byte("x")))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		require.Equal(t, "Localizable.xcstrings", entries[0].Name())
	})
}

func TestUpdateWriteFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "Localizable.xcstrings")
	s, err := Open(path)
	require.NoError(t, err)

	text := "Hello"
	_, err = s.UpsertTranslation(ctx, "greeting", "en", catalog.Patch{Text: &text})
	require.NoError(t, err)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	hooked := false
	s.hooks = append(s.hooks, func(context.Context, string, []byte) error {
		hooked = true
		return nil
	})
	s.write = func(string, []byte) error { return errors.New("disk full") }

	_, err = s.AddLanguage(ctx, "uk")
	require.ErrorIs(t, err, catalog.ErrIO)
	require.NotContains(t, err.(*catalog.Error).Public(), "disk full")
	require.False(t, hooked)

	langs, err := s.ListLanguages(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"en"}, langs)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, before, after)
}
