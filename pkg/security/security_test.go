package security

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(handlers...)
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	return router
}

func get(router http.Handler, method, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/ok", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCORS(t *testing.T) {
	router := newRouter(CORS([]string{"http://localhost:5173/"}))

	w := get(router, http.MethodGet, "http://localhost:5173")
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "X-Request-ID", w.Header().Get("Access-Control-Expose-Headers"))

	w = get(router, http.MethodGet, "http://evil.example")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	w = get(router, http.MethodOptions, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCORS_Wildcard(t *testing.T) {
	router := newRouter(CORS([]string{"*"}))

	w := get(router, http.MethodGet, "http://192.168.1.20:3000")
	assert.Equal(t, "http://192.168.1.20:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSecure(t *testing.T) {
	w := get(newRouter(Secure()), http.MethodGet, "")
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
}

func TestRateLimiter(t *testing.T) {
	limiter := NewIPRateLimiter(2, time.Minute)
	require.NotNil(t, limiter)
	router := newRouter(limiter.Middleware())

	codes := make([]int, 0, 3)
	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		last = get(router, http.MethodGet, "")
		codes = append(codes, last.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.Equal(t, "30", last.Header().Get("Retry-After"))
}

func TestRateLimiter_Disabled(t *testing.T) {
	limiter := NewIPRateLimiter(0, time.Minute)
	assert.Nil(t, limiter)
	limiter.Stop()

	router := newRouter(limiter.Middleware())
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, get(router, http.MethodGet, "").Code)
	}
}

func TestRateLimiter_Sweep(t *testing.T) {
	limiter := NewIPRateLimiter(1, time.Minute)
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"))
	assert.Zero(t, limiter.Sweep())

	now = now.Add(4 * time.Minute)
	assert.Equal(t, 1, limiter.Sweep())
	assert.True(t, limiter.Allow("10.0.0.1"))
}
