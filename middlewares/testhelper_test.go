package middlewares_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrymomot/xcstrings/internal"
)

// testContext is a minimal internal.Context for exercising middleware
// without an App.
type testContext struct {
	response *internal.ResponseWriter
	request  *http.Request
	logger   *slog.Logger
	mu       sync.Mutex
	values   map[any]any
}

func newTestContext(w http.ResponseWriter, r *http.Request) *testContext {
	return &testContext{
		response: internal.NewResponseWriter(w),
		request:  r,
		logger:   slog.New(slog.DiscardHandler),
		values:   make(map[any]any),
	}
}

// slogJSON logs into buf as JSON lines at debug level.
func slogJSON(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// withLogger makes the context log into buf.
func (c *testContext) withLogger(buf *bytes.Buffer) *testContext {
	c.logger = slogJSON(buf)
	return c
}

func (c *testContext) Request() *http.Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.request
}

func (c *testContext) Response() http.ResponseWriter { return c.response }
func (c *testContext) Context() context.Context      { return c.Request().Context() }
func (c *testContext) Param(string) string           { return "" }
func (c *testContext) Query(name string) string      { return c.Request().URL.Query().Get(name) }

func (c *testContext) QueryDefault(name, defaultValue string) string {
	if v := c.Query(name); v != "" {
		return v
	}
	return defaultValue
}

func (c *testContext) Header(name string) string    { return c.Request().Header.Get(name) }
func (c *testContext) SetHeader(name, value string) { c.response.Header().Set(name, value) }

func (c *testContext) JSON(code int, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Blob(code, "application/json", data)
}

func (c *testContext) Blob(code int, contentType string, data []byte) error {
	c.response.Header().Set("Content-Type", contentType)
	c.response.WriteHeader(code)
	_, err := c.response.Write(data)
	return err
}

func (c *testContext) NoContent(code int) error { c.response.WriteHeader(code); return nil }

func (c *testContext) Error(code int, message string, opts ...internal.HTTPErrorOption) *internal.HTTPError {
	err := internal.NewHTTPError(code, message)
	for _, opt := range opts {
		opt(err)
	}
	return err
}

func (c *testContext) BindJSON(v any) error                    { return json.NewDecoder(c.Request().Body).Decode(v) }
func (c *testContext) Written() bool                           { return c.response.Written() }
func (c *testContext) ResponseWriter() *internal.ResponseWriter { return c.response }
func (c *testContext) Logger() *slog.Logger                    { return c.logger }

func (c *testContext) LogDebug(msg string, attrs ...any) { c.logger.DebugContext(c, msg, attrs...) }
func (c *testContext) LogInfo(msg string, attrs ...any)  { c.logger.InfoContext(c, msg, attrs...) }
func (c *testContext) LogWarn(msg string, attrs ...any)  { c.logger.WarnContext(c, msg, attrs...) }
func (c *testContext) LogError(msg string, attrs ...any) { c.logger.ErrorContext(c, msg, attrs...) }

func (c *testContext) Set(key, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	c.request = c.request.WithContext(context.WithValue(c.request.Context(), key, value))
}

func (c *testContext) Get(key any) any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values[key]
}

func (c *testContext) SetContext(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.request = c.request.WithContext(ctx)
}

func (c *testContext) Deadline() (time.Time, bool) { return c.Context().Deadline() }
func (c *testContext) Done() <-chan struct{}       { return c.Context().Done() }
func (c *testContext) Err() error                  { return c.Context().Err() }
func (c *testContext) Value(key any) any           { return c.Context().Value(key) }
