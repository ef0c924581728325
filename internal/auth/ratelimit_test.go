package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginLimiterBlocksAfterMaxAttempts(t *testing.T) {
	l := NewLoginLimiter(3, time.Minute, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("10.0.0.1"), "attempt %d should pass", i+1)
	}
	assert.False(t, l.Allow("10.0.0.1"))

	// Other clients are unaffected.
	assert.True(t, l.Allow("10.0.0.2"))
}

func TestRecordSuccessResetsBudget(t *testing.T) {
	l := NewLoginLimiter(2, time.Minute, time.Minute)

	// Repeated successful logins never exhaust the budget.
	for i := 0; i < 5; i++ {
		require.True(t, l.Allow("10.0.0.1"), "attempt %d should pass", i+1)
		l.RecordSuccess("10.0.0.1")
	}

	// A success mid-streak also clears accumulated failures.
	require.True(t, l.Allow("10.0.0.1"))
	require.True(t, l.Allow("10.0.0.1"))
	l.RecordSuccess("10.0.0.1")
	assert.True(t, l.Allow("10.0.0.1"))
}

func TestLoginLimiterUnblocksAfterBlockTime(t *testing.T) {
	l := NewLoginLimiter(1, time.Minute, 10*time.Millisecond)

	require.True(t, l.Allow("10.0.0.1"))
	require.False(t, l.Allow("10.0.0.1"))

	time.Sleep(20 * time.Millisecond)
	assert.True(t, l.Allow("10.0.0.1"))
}

func TestLoginLimiterMiddlewareReturns429(t *testing.T) {
	l := NewLoginLimiter(1, time.Minute, time.Minute)
	e := echo.New()

	handler := l.Middleware()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	first := e.NewContext(httptest.NewRequest(http.MethodPost, "/users/login", nil), httptest.NewRecorder())
	require.NoError(t, handler(first))

	rec := httptest.NewRecorder()
	second := e.NewContext(httptest.NewRequest(http.MethodPost, "/users/login", nil), rec)
	require.NoError(t, handler(second))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
