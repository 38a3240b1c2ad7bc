package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRateLimit(t *testing.T) {
	t.Parallel()

	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("auth endpoints use the tighter budget", func(t *testing.T) {
		handler := NewRateLimitMiddleware(1000, 1).Handler(okHandler)

		first := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, first)
		require.Equal(t, http.StatusOK, rec.Code)

		second := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, second)
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
		require.Equal(t, "60", rec.Header().Get("Retry-After"))
	})

	t.Run("exhausted auth budget leaves general traffic alone", func(t *testing.T) {
		handler := NewRateLimitMiddleware(1000, 1).Handler(okHandler)

		login := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		handler.ServeHTTP(httptest.NewRecorder(), login)
		handler.ServeHTTP(httptest.NewRecorder(), login)

		for i := 0; i < 5; i++ {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			require.Equal(t, http.StatusOK, rec.Code)
		}
	})

	t.Run("clients are limited independently", func(t *testing.T) {
		handler := NewRateLimitMiddleware(1000, 1).Handler(okHandler)

		first := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		first.Header.Set("X-Forwarded-For", "10.0.0.1")
		handler.ServeHTTP(httptest.NewRecorder(), first)

		blocked := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		blocked.Header.Set("X-Forwarded-For", "10.0.0.1")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, blocked)
		require.Equal(t, http.StatusTooManyRequests, rec.Code)

		other := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		other.Header.Set("X-Forwarded-For", "10.0.0.2")
		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, other)
		require.Equal(t, http.StatusOK, rec.Code)
	})
}
