package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiscoverCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	app := writeCatalog(t, dir, "App/Localizable.xcstrings")
	widget := writeCatalog(t, dir, "Widget/InfoPlist.xcstrings")
	writeCatalog(t, dir, "node_modules/pkg/Ignored.xcstrings")
	writeCatalog(t, dir, "Extras/Extra.xcstrings")

	resolve := func(p string) string {
		r, err := filepath.EvalSymlinks(p)
		require.NoError(t, err)
		return r
	}

	t.Run("argument", func(t *testing.T) {
		t.Parallel()
		out := mustRun[discoverResponse](t, "discover", dir)
		require.Equal(t, dir, out.Root)
		require.Len(t, out.Catalogs, 3)
		require.Contains(t, out.Catalogs, resolve(app))
		require.Contains(t, out.Catalogs, resolve(widget))
	})

	t.Run("root flag and extra skip", func(t *testing.T) {
		t.Parallel()
		out := mustRun[discoverResponse](t, "discover", "--root", dir, "--skip", "extras")
		require.Equal(t, []string{resolve(app), resolve(widget)}, out.Catalogs)
	})

	t.Run("missing root", func(t *testing.T) {
		t.Parallel()
		out := mustRun[discoverResponse](t, "discover", filepath.Join(dir, "nope"))
		require.Empty(t, out.Catalogs)
	})
}

func TestRestoreWithoutMirror(t *testing.T) {
	t.Parallel()

	path := writeCatalog(t, t.TempDir(), "Localizable.xcstrings")
	body := failed(t, exitFailure, "restore", "--path", path)
	require.Contains(t, body.Message, "mirror is not configured")
}
