package middlewares_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/xcstrings/internal"
	"github.com/dmitrymomot/xcstrings/middlewares"
)

func runRequestID(t *testing.T, req *http.Request, opts ...middlewares.RequestIDOption) (*httptest.ResponseRecorder, string) {
	t.Helper()

	rec := httptest.NewRecorder()
	ctx := newTestContext(rec, req)

	var captured string
	handler := middlewares.RequestID(opts...)(func(c internal.Context) error {
		captured = middlewares.GetRequestID(c)
		return nil
	})
	require.NoError(t, handler(ctx))
	return rec, captured
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("generates a UUIDv7 when not present", func(t *testing.T) {
		t.Parallel()

		rec, id := runRequestID(t, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NotEmpty(t, id)
		require.Equal(t, id, rec.Header().Get("X-Request-ID"))

		parsed, err := uuid.Parse(id)
		require.NoError(t, err)
		require.Equal(t, uuid.Version(7), parsed.Version())
	})

	t.Run("uses existing request ID from header", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Correlation-ID", "upstream-123")

		rec, id := runRequestID(t, req)
		require.Equal(t, "upstream-123", id)
		require.Equal(t, "upstream-123", rec.Header().Get("X-Request-ID"))
	})

	t.Run("rejects unsafe header values", func(t *testing.T) {
		t.Parallel()

		for _, bad := range []string{"has space", strings.Repeat("a", 129), "tab\tvalue"} {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("X-Request-ID", bad)

			_, id := runRequestID(t, req, middlewares.WithRequestIDGenerator(func() string { return "generated" }))
			require.Equal(t, "generated", id, bad)
		}
	})

	t.Run("custom headers in priority order", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Trace-ID", "trace-456")
		req.Header.Set("X-Custom-ID", "custom-123")

		_, id := runRequestID(t, req, middlewares.WithRequestIDHeaders("X-Custom-ID", "X-Trace-ID"))
		require.Equal(t, "custom-123", id)
	})

	t.Run("custom response header", func(t *testing.T) {
		t.Parallel()

		rec, id := runRequestID(t, httptest.NewRequest(http.MethodGet, "/", nil),
			middlewares.WithRequestIDResponseHeader("X-Trace"),
		)
		require.Equal(t, id, rec.Header().Get("X-Trace"))
		require.Empty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("stored under the shared key", func(t *testing.T) {
		t.Parallel()

		ctx := newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		handler := middlewares.RequestID()(func(c internal.Context) error { return nil })
		require.NoError(t, handler(ctx))

		require.Equal(t, middlewares.GetRequestID(ctx), ctx.Context().Value(internal.RequestIDKey{}))
	})
}

func TestRequestIDExtractor(t *testing.T) {
	t.Parallel()

	extractor := middlewares.RequestIDExtractor()

	t.Run("returns attribute when present", func(t *testing.T) {
		t.Parallel()
		ctx := context.WithValue(context.Background(), internal.RequestIDKey{}, "abc")
		attr, ok := extractor(ctx)
		require.True(t, ok)
		require.Equal(t, "request_id", attr.Key)
		require.Equal(t, "abc", attr.Value.String())
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()
		_, ok := extractor(context.Background())
		require.False(t, ok)
	})
}

func TestNewRequestID(t *testing.T) {
	t.Parallel()

	a, b := middlewares.NewRequestID(), middlewares.NewRequestID()
	require.NotEqual(t, a, b)
	require.Len(t, a, 36)
}
