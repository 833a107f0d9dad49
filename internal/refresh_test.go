package internal_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/xcstrings/internal"
	"github.com/dmitrymomot/xcstrings/pkg/store"
)

func TestParseSchedule(t *testing.T) {
	t.Parallel()

	for _, expr := range []string{"@every 5m", "@hourly", "*/10 * * * *", "0 3 * * 1-5"} {
		_, err := internal.ParseSchedule(expr)
		require.NoError(t, err, expr)
	}

	for _, expr := range []string{"", "every minute", "* * * * * *", "61 * * * *"} {
		_, err := internal.ParseSchedule(expr)
		require.Error(t, err, expr)
	}
}

func TestDiscoveryRefresher(t *testing.T) {
	t.Parallel()

	t.Run("invalid schedule", func(t *testing.T) {
		t.Parallel()
		reg, err := store.NewRegistry(store.WithSearchRoot(t.TempDir()))
		require.NoError(t, err)

		_, err = internal.NewDiscoveryRefresher(reg, "whenever", slog.New(slog.DiscardHandler))
		require.Error(t, err)
	})

	t.Run("rescans on schedule", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		first := writeCatalog(t, root, "A.xcstrings", apiFixture)

		reg, err := store.NewRegistry(store.WithSearchRoot(root))
		require.NoError(t, err)
		paths, err := reg.Paths(context.Background())
		require.NoError(t, err)
		require.Equal(t, []string{first}, paths)

		r, err := internal.NewDiscoveryRefresher(reg, "@every 1s", slog.New(slog.DiscardHandler))
		require.NoError(t, err)
		require.NoError(t, r.Start(context.Background()))

		second := writeCatalog(t, root, "B.xcstrings", apiFixture)
		require.Eventually(t, func() bool {
			paths, err := reg.Paths(context.Background())
			return err == nil && len(paths) == 2 && paths[1] == second
		}, 5*time.Second, 50*time.Millisecond)

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		require.NoError(t, r.Stop(ctx))
	})
}
