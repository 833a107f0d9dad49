package middlewares_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/xcstrings/internal"
	"github.com/dmitrymomot/xcstrings/middlewares"
)

func TestTimeout(t *testing.T) {
	t.Parallel()

	t.Run("passes through when handler completes in time", func(t *testing.T) {
		t.Parallel()

		errBoom := errors.New("boom")
		ctx := newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		handler := middlewares.Timeout(time.Second)(func(c internal.Context) error {
			return errBoom
		})
		require.ErrorIs(t, handler(ctx), errBoom)
	})

	t.Run("handler context carries the deadline", func(t *testing.T) {
		t.Parallel()

		ctx := newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		handler := middlewares.Timeout(time.Minute)(func(c internal.Context) error {
			deadline, ok := c.Context().Deadline()
			if !ok || time.Until(deadline) > time.Minute {
				return errors.New("missing deadline")
			}
			return nil
		})
		require.NoError(t, handler(ctx))
	})

	t.Run("returns TimeoutError when handler exceeds timeout", func(t *testing.T) {
		t.Parallel()

		ctx := newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		release := make(chan struct{})
		defer close(release)

		handler := middlewares.Timeout(10 * time.Millisecond)(func(c internal.Context) error {
			<-release
			return nil
		})

		err := handler(ctx)
		te, ok := middlewares.AsTimeoutError(err)
		require.True(t, ok)
		require.Equal(t, 10*time.Millisecond, te.Duration)
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("parent cancellation is not a timeout", func(t *testing.T) {
		t.Parallel()

		parent, cancel := context.WithCancel(context.Background())
		req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(parent)
		ctx := newTestContext(httptest.NewRecorder(), req)

		handler := middlewares.Timeout(time.Minute)(func(c internal.Context) error {
			cancel()
			<-c.Context().Done()
			time.Sleep(10 * time.Millisecond)
			return c.Context().Err()
		})

		err := handler(ctx)
		require.ErrorIs(t, err, context.Canceled)
		require.False(t, middlewares.IsTimeoutError(err))
	})

	t.Run("uses default timeout when zero provided", func(t *testing.T) {
		t.Parallel()

		ctx := newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		handler := middlewares.Timeout(0)(func(c internal.Context) error {
			deadline, ok := c.Context().Deadline()
			if !ok || time.Until(deadline) < middlewares.DefaultTimeout-time.Second {
				return errors.New("unexpected deadline")
			}
			return nil
		})
		require.NoError(t, handler(ctx))
	})
}

func TestTimeoutInApp(t *testing.T) {
	t.Parallel()

	app := internal.New(
		internal.WithMiddleware(middlewares.Timeout(10*time.Millisecond)),
		internal.WithHandlers(slowHandler{}),
	)

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/slow", nil))

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.Contains(t, w.Body.String(), `"code":"timeout"`)
}

type slowHandler struct{}

func (slowHandler) Routes(r internal.Router) {
	r.GET("/slow", func(c internal.Context) error {
		<-c.Done()
		time.Sleep(50 * time.Millisecond)
		return c.Err()
	})
}
