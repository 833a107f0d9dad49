package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/xcstrings/pkg/catalog"
)

func TestLanguages(t *testing.T) {
	t.Parallel()

	c := loadSample(t)
	require.Equal(t, []string{"en", "uk"}, c.Languages())
	require.True(t, c.HasLanguage("uk"))
	require.False(t, c.HasLanguage("de"))

	empty := catalog.New("de")
	require.Equal(t, []string{"de"}, empty.Languages())
}

func TestAddLanguage(t *testing.T) {
	t.Parallel()

	c := loadSample(t)

	added, err := c.AddLanguage("uk")
	require.NoError(t, err)
	require.Equal(t, 3, added, "files_left, internal_id and settings_title lack uk")

	requireValue(t, c.Entries["internal_id"].Localizations["uk"], catalog.StateNew, "")
	requireValue(t, c.Entries["greeting"].Localizations["uk"], catalog.StateTranslated, "Привіт")

	added, err = c.AddLanguage("uk")
	require.NoError(t, err)
	require.Zero(t, added)

	added, err = c.AddLanguage("zh-Hans")
	require.NoError(t, err)
	require.Equal(t, 5, added)
	require.Contains(t, c.Languages(), "zh-Hans")

	_, err = c.AddLanguage("")
	require.ErrorIs(t, err, catalog.ErrValidation)
	_, err = c.AddLanguage("xx yy")
	require.ErrorIs(t, err, catalog.ErrValidation)
}

func TestRemoveLanguage(t *testing.T) {
	t.Parallel()

	c := loadSample(t)

	require.NoError(t, c.RemoveLanguage("uk"))
	require.Equal(t, []string{"en"}, c.Languages())
	require.Len(t, c.Entries, 5, "entries stay")

	require.NoError(t, c.RemoveLanguage("uk"), "removing an absent language is a no-op")
	requireKind(t, c.RemoveLanguage("en"), catalog.ErrConflict, "en")
	require.ErrorIs(t, c.RemoveLanguage("xx yy"), catalog.ErrValidation)
}

func TestLanguageRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		catalog func(t *testing.T) *catalog.Catalog
	}{
		{"sample", loadSample},
		{"no keys", func(*testing.T) *catalog.Catalog { return catalog.New("en") }},
		{"entry without languages", func(t *testing.T) *catalog.Catalog {
			c := catalog.New("en")
			require.NoError(t, c.SetComment("orphan", ptr("No translations yet")))
			return c
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := tt.catalog(t)
			before, err := catalog.Marshal(c)
			require.NoError(t, err)

			_, err = c.AddLanguage("fr")
			require.NoError(t, err)
			require.NoError(t, c.RemoveLanguage("fr"))

			after, err := catalog.Marshal(c)
			require.NoError(t, err)
			require.Equal(t, string(before), string(after))
		})
	}
}

func TestSourceLanguageIsProtected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		run  func(c *catalog.Catalog) error
	}{
		{"remove", func(c *catalog.Catalog) error { return c.RemoveLanguage("en") }},
		{"rename", func(c *catalog.Catalog) error { return c.UpdateLanguage("en", "fr") }},
		{"rename to existing", func(c *catalog.Catalog) error { return c.UpdateLanguage("en", "uk") }},
		{"overwrite", func(c *catalog.Catalog) error { return c.UpdateLanguage("uk", "en") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := loadSample(t)
			before, err := catalog.Marshal(c)
			require.NoError(t, err)

			require.ErrorIs(t, tt.run(c), catalog.ErrConflict)

			after, err := catalog.Marshal(c)
			require.NoError(t, err)
			require.Equal(t, string(before), string(after))
		})
	}
}

func TestUpdateLanguage(t *testing.T) {
	t.Parallel()

	t.Run("moves units", func(t *testing.T) {
		t.Parallel()
		c := loadSample(t)

		require.NoError(t, c.UpdateLanguage("uk", "uk-UA"))
		require.Equal(t, []string{"en", "uk-UA"}, c.Languages())
		requireValue(t, c.Entries["greeting"].Localizations["uk-UA"], catalog.StateTranslated, "Привіт")
		require.Equal(t, "en", c.SourceLanguage)
	})

	t.Run("overwrites collisions", func(t *testing.T) {
		t.Parallel()
		c := loadSample(t)
		_, err := c.Upsert("greeting", "de", catalog.Patch{Text: ptr("Hallo")})
		require.NoError(t, err)
		_, err = c.Upsert("items_count", "de", catalog.Patch{Text: ptr("Elemente")})
		require.NoError(t, err)

		require.NoError(t, c.UpdateLanguage("uk", "de"))
		requireValue(t, c.Entries["greeting"].Localizations["de"], catalog.StateTranslated, "Привіт")
		_, ok := c.Entries["greeting"].Localizations["uk"]
		require.False(t, ok)
		require.False(t, c.Entries["items_count"].Localizations["de"].IsValue())
	})

	t.Run("same code", func(t *testing.T) {
		t.Parallel()
		c := loadSample(t)
		require.NoError(t, c.UpdateLanguage("uk", "uk"))
		require.Equal(t, []string{"en", "uk"}, c.Languages())
	})

	t.Run("rejections", func(t *testing.T) {
		t.Parallel()
		c := loadSample(t)
		requireKind(t, c.UpdateLanguage("en", "en-US"), catalog.ErrConflict, "en")
		requireKind(t, c.UpdateLanguage("uk", "en"), catalog.ErrConflict, "en")
		requireKind(t, c.UpdateLanguage("fr", "fr-CA"), catalog.ErrNotFound, "fr")
		require.ErrorIs(t, c.UpdateLanguage("uk", ""), catalog.ErrValidation)
	})
}
