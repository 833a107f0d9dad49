package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// syncBuffer is a bytes.Buffer safe for the server goroutine and the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestServe(t *testing.T) {
	t.Parallel()

	path := writeCatalog(t, t.TempDir(), "Localizable.xcstrings")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var stdout, stderr syncBuffer
	done := make(chan int, 1)
	go func() {
		done <- run(ctx, []string{"serve", "--path", path, "--port", "0", "--log-level", "error"}, &stdout, &stderr)
	}()

	var base string
	require.Eventually(t, func() bool {
		line := stdout.String()
		if !strings.HasPrefix(line, "listening on ") {
			return false
		}
		base = strings.TrimSpace(strings.TrimPrefix(line, "listening on "))
		return true
	}, 5*time.Second, 10*time.Millisecond)

	resp, err := http.Get(base + "/api/translations/greeting/fr")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), `"text":"Bonjour"`)
	require.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	resp, err = http.Get(base + "/health/ready")
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case code := <-done:
		require.Equal(t, 0, code, stderr.String())
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServeRejectsBadConfig(t *testing.T) {
	t.Parallel()

	path := writeCatalog(t, t.TempDir(), "Localizable.xcstrings")

	t.Run("refresh schedule", func(t *testing.T) {
		t.Parallel()
		body := failed(t, exitFailure, "serve", "--root", t.TempDir(), "--refresh", "sometimes", "--port", "0")
		require.Contains(t, body.Message, "invalid refresh schedule")
	})

	t.Run("port", func(t *testing.T) {
		t.Parallel()
		body := failed(t, exitFailure, "serve", "--path", path, "--port", "70000")
		require.Contains(t, body.Message, "invalid port")
	})

	t.Run("malformed catalog fails the start", func(t *testing.T) {
		t.Parallel()
		bad := writeCatalog(t, t.TempDir(), "Bad.xcstrings")
		require.NoError(t, writeFile(bad, "{"))
		body := failed(t, exitFailure, "serve", "--path", bad, "--port", "0")
		require.Equal(t, "parse_error", body.Code)
	})
}
