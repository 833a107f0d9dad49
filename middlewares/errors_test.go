package middlewares_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/xcstrings/internal"
	"github.com/dmitrymomot/xcstrings/middlewares"
)

func TestPanicError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"string value", "something went wrong", "panic: something went wrong"},
		{"int value", 42, "panic: 42"},
		{"nil value", nil, "panic: <nil>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := &middlewares.PanicError{Value: tt.value}
			require.Equal(t, tt.want, err.Error())
		})
	}
}

func TestTimeoutError(t *testing.T) {
	t.Parallel()

	t.Run("formats duration", func(t *testing.T) {
		t.Parallel()
		err := &middlewares.TimeoutError{Duration: 100 * time.Millisecond}
		require.Equal(t, "request timeout after 100ms", err.Error())
	})

	t.Run("unwraps to deadline exceeded", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("handler: %w", &middlewares.TimeoutError{Duration: time.Second})
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("renders as 503 timeout", func(t *testing.T) {
		t.Parallel()
		httpErr := internal.ToHTTPError(&middlewares.TimeoutError{Duration: time.Second})
		require.Equal(t, http.StatusServiceUnavailable, httpErr.Code)
		require.Equal(t, internal.CodeTimeout, httpErr.ErrorCode)
	})
}

func TestErrorHelpers(t *testing.T) {
	t.Parallel()

	panicErr := &middlewares.PanicError{Value: "test", Stack: []byte("stack")}
	timeoutErr := &middlewares.TimeoutError{Duration: 5 * time.Second}
	other := errors.New("regular error")

	t.Run("Is helpers", func(t *testing.T) {
		t.Parallel()
		require.True(t, middlewares.IsPanicError(panicErr))
		require.True(t, middlewares.IsPanicError(errors.Join(panicErr, other)))
		require.False(t, middlewares.IsPanicError(other))
		require.False(t, middlewares.IsPanicError(nil))

		require.True(t, middlewares.IsTimeoutError(timeoutErr))
		require.True(t, middlewares.IsTimeoutError(fmt.Errorf("wrapped: %w", timeoutErr)))
		require.False(t, middlewares.IsTimeoutError(other))
		require.False(t, middlewares.IsTimeoutError(nil))
	})

	t.Run("As helpers", func(t *testing.T) {
		t.Parallel()
		pe, ok := middlewares.AsPanicError(errors.Join(panicErr, other))
		require.True(t, ok)
		require.Same(t, panicErr, pe)

		te, ok := middlewares.AsTimeoutError(timeoutErr)
		require.True(t, ok)
		require.Equal(t, 5*time.Second, te.Duration)

		pe, ok = middlewares.AsPanicError(nil)
		require.False(t, ok)
		require.Nil(t, pe)

		te, ok = middlewares.AsTimeoutError(other)
		require.False(t, ok)
		require.Nil(t, te)
	})
}
