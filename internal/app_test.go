package internal_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/xcstrings/internal"
	"github.com/dmitrymomot/xcstrings/pkg/store"
)

func TestAppDefaults(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithHandlers(&captureHandler{fn: func(c internal.Context) error {
		return c.NoContent(http.StatusNoContent)
	}}))

	t.Run("unknown route is JSON 404", func(t *testing.T) {
		t.Parallel()
		w := call(t, app, http.MethodGet, "/nope", "")
		body := requireAPIError(t, w, http.StatusNotFound, internal.CodeNotFound)
		require.Equal(t, "route not found", body.Message)
	})

	t.Run("wrong method is JSON 405", func(t *testing.T) {
		t.Parallel()
		w := call(t, app, http.MethodDelete, "/", "")
		requireAPIError(t, w, http.StatusMethodNotAllowed, internal.CodeMethodNotAllowed)
	})

	t.Run("health is off by default", func(t *testing.T) {
		t.Parallel()
		w := call(t, app, http.MethodGet, "/health/live", "")
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAppMiddlewareOrder(t *testing.T) {
	t.Parallel()

	var order []string
	mw := func(name string) internal.Middleware {
		return func(next internal.HandlerFunc) internal.HandlerFunc {
			return func(c internal.Context) error {
				order = append(order, name)
				return next(c)
			}
		}
	}

	app := internal.New(
		internal.WithMiddleware(mw("global-1"), mw("global-2")),
		internal.WithHandlers(&routeMiddlewareHandler{mw: []internal.Middleware{mw("route-1"), mw("route-2")}}),
	)
	w := call(t, app, http.MethodGet, "/scoped", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, []string{"global-1", "global-2", "route-1", "route-2"}, order)
}

type routeMiddlewareHandler struct {
	mw []internal.Middleware
}

func (h *routeMiddlewareHandler) Routes(r internal.Router) {
	r.GET("/scoped", func(c internal.Context) error {
		return c.JSON(http.StatusOK, map[string]bool{"ok": true})
	}, h.mw...)
}

func TestAppHealth(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithHealthChecks(
		internal.WithLivenessPath("/livez"),
		internal.WithReadinessCheck("mirror", func(context.Context) error {
			return errors.New("bucket unreachable")
		}),
	))

	w := call(t, app, http.MethodGet, "/livez", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "OK", w.Body.String())

	w = call(t, app, http.MethodGet, "/health/ready?format=json", "")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.JSONEq(t, `{
		"status": "unhealthy",
		"checks": {"mirror": {"status": "unhealthy", "error": "internal server error"}}
	}`, w.Body.String())
}

func TestAppCustomErrorHandler(t *testing.T) {
	t.Parallel()

	app := internal.New(
		internal.WithErrorHandler(func(c internal.Context, err error) error {
			return c.Blob(http.StatusTeapot, "text/plain", []byte(err.Error()))
		}),
		internal.WithHandlers(&captureHandler{fn: func(internal.Context) error {
			return errors.New("boom")
		}}),
	)

	w := call(t, app, http.MethodGet, "/", "")
	require.Equal(t, http.StatusTeapot, w.Code)
	require.Equal(t, "boom", w.Body.String())
}

func TestAppRun(t *testing.T) {
	t.Parallel()

	t.Run("serves until the context ends", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeCatalog(t, root, "App/Localizable.xcstrings", apiFixture)
		reg, err := store.NewRegistry(store.WithSearchRoot(root))
		require.NoError(t, err)

		app := internal.New(
			internal.WithCatalogs(reg),
			internal.WithHealthChecks(),
			internal.WithDiscoveryRefresh("@every 1m"),
		)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		addrCh := make(chan string, 1)
		var hookRan bool
		errCh := make(chan error, 1)
		go func() {
			errCh <- app.Run("127.0.0.1:0",
				internal.WithContext(ctx),
				internal.OnListen(func(addr string) { addrCh <- addr }),
				internal.ShutdownTimeout(5*time.Second),
				internal.ShutdownHook(func(context.Context) error {
					hookRan = true
					return nil
				}),
			)
		}()

		var addr string
		select {
		case addr = <-addrCh:
		case err := <-errCh:
			t.Fatalf("run failed: %v", err)
		case <-time.After(5 * time.Second):
			t.Fatal("server did not start")
		}

		resp, err := http.Get(fmt.Sprintf("http://%s/api/catalogs", addr))
		require.NoError(t, err)
		require.NoError(t, resp.Body.Close())
		require.Equal(t, http.StatusOK, resp.StatusCode)

		cancel()
		select {
		case err := <-errCh:
			require.NoError(t, err)
		case <-time.After(10 * time.Second):
			t.Fatal("server did not stop")
		}
		require.True(t, hookRan)

		_, err = reg.Store(context.Background(), "App/Localizable.xcstrings")
		require.ErrorIs(t, err, store.ErrClosed)
	})

	t.Run("failing startup hook aborts", func(t *testing.T) {
		t.Parallel()

		app := internal.New()
		errBoom := errors.New("mirror bucket missing")
		var listened bool
		err := app.Run("127.0.0.1:0",
			internal.StartupHook(func(context.Context) error { return errBoom }),
			internal.OnListen(func(string) { listened = true }),
		)
		require.ErrorIs(t, err, errBoom)
		require.False(t, listened)
	})

	t.Run("listen error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()

		err := internal.New().Run(srv.Listener.Addr().String())
		require.Error(t, err)
	})
}

func TestInvalidRefreshSchedulePanics(t *testing.T) {
	t.Parallel()

	reg, err := store.NewRegistry(store.WithSearchRoot(t.TempDir()))
	require.NoError(t, err)

	require.Panics(t, func() {
		internal.New(internal.WithCatalogs(reg), internal.WithDiscoveryRefresh("sometimes"))
	})
}
