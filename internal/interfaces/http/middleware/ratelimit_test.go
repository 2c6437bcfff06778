package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Allow(t *testing.T) {
	limiter := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow("203.0.113.1"), "request %d", i+1)
	}
	assert.False(t, limiter.Allow("203.0.113.1"))

	// other keys have their own window
	assert.True(t, limiter.Allow("203.0.113.2"))
}

func TestRateLimiter_WindowRollover(t *testing.T) {
	limiter := NewRateLimiter(2, 50*time.Millisecond)

	assert.True(t, limiter.Allow("k"))
	assert.True(t, limiter.Allow("k"))
	assert.False(t, limiter.Allow("k"))

	time.Sleep(60 * time.Millisecond)
	assert.True(t, limiter.Allow("k"))
}

func TestRateLimiter_Remaining(t *testing.T) {
	limiter := NewRateLimiter(5, time.Minute)

	assert.Equal(t, 5, limiter.Remaining("fresh"))

	limiter.Allow("fresh")
	limiter.Allow("fresh")
	assert.Equal(t, 3, limiter.Remaining("fresh"))
}

func TestRateLimiter_Concurrent(t *testing.T) {
	limiter := NewRateLimiter(100, time.Minute)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 150; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if limiter.Allow("shared") {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, allowed)
}

func serveFrom(router *gin.Engine, method, target, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimit_BlocksAfterLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RateLimit(NewRateLimiter(2, time.Minute)))
	router.GET("/dashboard", okHandler)

	for i := 0; i < 2; i++ {
		w := serveFrom(router, http.MethodGet, "/dashboard", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get("X-RateLimit-Remaining"))
	}

	w := serveFrom(router, http.MethodGet, "/dashboard", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_RATE_LIMITED")
}

func TestRateLimit_ScopesByAuthenticatedUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		if userID := c.GetHeader("X-Test-User"); userID != "" {
			c.Set(JWTUserIDKey, userID)
		}
		c.Next()
	})
	router.Use(RateLimit(NewRateLimiter(1, time.Minute)))
	router.GET("/dashboard", okHandler)

	serve := func(user string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.Header.Set("X-Test-User", user)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, serve("owner-1").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve("owner-1").Code)

	// a different user behind the same IP is not starved
	assert.Equal(t, http.StatusOK, serve("owner-2").Code)
}

func TestRateLimitByKey(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RateLimitByKey(NewRateLimiter(1, time.Minute), func(c *gin.Context) string {
		return c.GetHeader("X-Device-ID")
	}))
	router.GET("/balance", okHandler)

	serve := func(device string) int {
		req := httptest.NewRequest(http.MethodGet, "/balance", nil)
		req.Header.Set("X-Device-ID", device)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, serve("device-a"))
	assert.Equal(t, http.StatusTooManyRequests, serve("device-a"))
	assert.Equal(t, http.StatusOK, serve("device-b"))
}

func TestDonationRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newDonateRouter := func(limit int) *gin.Engine {
		router := gin.New()
		router.Use(DonationRateLimit(NewRateLimiter(limit, time.Minute)))
		router.POST("/donate", okHandler)
		return router
	}

	t.Run("allows within limit and sets headers", func(t *testing.T) {
		router := newDonateRouter(5)

		w := serveFrom(router, http.MethodPost, "/donate", "192.0.2.10:4000")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("blocks with Retry-After", func(t *testing.T) {
		router := newDonateRouter(1)

		assert.Equal(t, http.StatusOK, serveFrom(router, http.MethodPost, "/donate", "192.0.2.10:4000").Code)

		w := serveFrom(router, http.MethodPost, "/donate", "192.0.2.10:4000")
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "60", w.Header().Get("Retry-After"))
		assert.Contains(t, w.Body.String(), "Too many donation attempts")
	})

	t.Run("limits each IP separately", func(t *testing.T) {
		router := newDonateRouter(2)

		for i := 0; i < 2; i++ {
			assert.Equal(t, http.StatusOK, serveFrom(router, http.MethodPost, "/donate", "192.0.2.1:4000").Code)
		}
		assert.Equal(t, http.StatusTooManyRequests, serveFrom(router, http.MethodPost, "/donate", "192.0.2.1:4000").Code)
		assert.Equal(t, http.StatusOK, serveFrom(router, http.MethodPost, "/donate", "192.0.2.2:4000").Code)
	})

	t.Run("state is isolated from the global limiter", func(t *testing.T) {
		router := gin.New()

		public := router.Group("/public")
		public.Use(DonationRateLimit(NewRateLimiter(1, time.Minute)))
		public.POST("/donate", okHandler)

		router.Use(RateLimit(NewRateLimiter(100, time.Minute)))
		router.GET("/fundraisers", okHandler)

		addr := "192.0.2.50:4000"
		assert.Equal(t, http.StatusOK, serveFrom(router, http.MethodPost, "/public/donate", addr).Code)
		assert.Equal(t, http.StatusTooManyRequests, serveFrom(router, http.MethodPost, "/public/donate", addr).Code)

		// the exhausted donation window does not affect other routes
		assert.Equal(t, http.StatusOK, serveFrom(router, http.MethodGet, "/fundraisers", addr).Code)
	})
}
