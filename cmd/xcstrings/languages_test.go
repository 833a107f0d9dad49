package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/xcstrings/pkg/catalog"
)

func TestLanguageCommands(t *testing.T) {
	t.Parallel()

	path := writeCatalog(t, t.TempDir(), "Localizable.xcstrings")

	langs := mustRun[languagesResponse](t, "languages", "list", "--path", path)
	require.Equal(t, languagesResponse{SourceLanguage: "en", Languages: []string{"en", "fr"}}, langs)

	added := mustRun[addLanguageResponse](t, "languages", "add", "de", "--path", path)
	require.Equal(t, addLanguageResponse{Code: "de", Added: 2}, added)

	again := mustRun[addLanguageResponse](t, "languages", "add", "de", "--path", path)
	require.Zero(t, again.Added)

	mustRun[statusResponse](t, "languages", "rename", "de", "it", "--path", path)
	langs = mustRun[languagesResponse](t, "languages", "list", "--path", path)
	require.Equal(t, []string{"en", "fr", "it"}, langs.Languages)

	mustRun[statusResponse](t, "languages", "remove", "it", "--path", path)
	require.Equal(t, []string{"en", "fr"}, readBack(t, path).Languages())

	body := failed(t, exitFailure, "languages", "remove", "en", "--path", path)
	require.Equal(t, "conflict", body.Code)

	body = failed(t, exitFailure, "languages", "add", "not a language", "--path", path)
	require.Equal(t, "validation_error", body.Code)
}

func TestReportCommands(t *testing.T) {
	t.Parallel()

	path := writeCatalog(t, t.TempDir(), "Localizable.xcstrings")

	t.Run("untranslated", func(t *testing.T) {
		t.Parallel()
		out := mustRun[untranslatedResponse](t, "untranslated", "fr", "--path", path)
		require.Equal(t, untranslatedResponse{Language: "fr", Keys: []string{"items"}}, out)
	})

	t.Run("progress of one language", func(t *testing.T) {
		t.Parallel()
		p := mustRun[catalog.Progress](t, "progress", "fr", "--path", path)
		require.Equal(t, 1, p.Total)
		require.Equal(t, 1, p.Complete)
		require.Equal(t, 100, p.Percent)
		require.Equal(t, []string{"items"}, p.Untranslated)
	})

	t.Run("progress overview", func(t *testing.T) {
		t.Parallel()
		out := mustRun[overviewResponse](t, "progress", "--path", path)
		require.Len(t, out.Languages, 2)
		require.Equal(t, "en", out.Languages[0].Language)
		require.Equal(t, "fr", out.Languages[1].Language)
	})

	t.Run("export json", func(t *testing.T) {
		t.Parallel()
		out := mustRun[map[string]any](t, "export", "en", "--path", path)
		require.Equal(t, "Hello", out["greeting"])
		require.Equal(t, map[string]any{"one": "%lld item", "other": "%lld items"}, out["items"])
	})

	t.Run("export yaml", func(t *testing.T) {
		t.Parallel()
		res := execute(t, "export", "fr", "--format", "yaml", "--path", path)
		require.Equal(t, 0, res.code, res.stderr)
		require.Equal(t, "greeting: Bonjour\n", res.stdout)
	})

	t.Run("export unknown format", func(t *testing.T) {
		t.Parallel()
		body := failed(t, exitFailure, "export", "fr", "--format", "csv", "--path", path)
		require.Contains(t, body.Message, "want json or yaml")
	})

	t.Run("export unknown language", func(t *testing.T) {
		t.Parallel()
		body := failed(t, exitFailure, "export", "ja", "--path", path)
		require.Equal(t, "not_found", body.Code)
	})

	t.Run("preview plural", func(t *testing.T) {
		t.Parallel()
		one := mustRun[previewResponse](t, "preview", "items", "en", "--count", "1", "--path", path)
		require.Equal(t, "%lld item", one.Text)
		many := mustRun[previewResponse](t, "preview", "items", "en", "--path", path)
		require.Equal(t, "%lld items", many.Text)
	})
}
