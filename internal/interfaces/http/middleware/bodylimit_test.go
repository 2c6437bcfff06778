package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newBodyLimitRouter(maxBytes int64, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(BodyLimit(maxBytes))
	router.POST("/donations", handler)
	router.GET("/fundraisers", handler)
	return router
}

func okHandler(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func TestBodyLimit_AllowsSmallBody(t *testing.T) {
	router := newBodyLimitRouter(1024, okHandler)

	req := httptest.NewRequest(http.MethodPost, "/donations", strings.NewReader(`{"amount":"500"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBodyLimit_RejectsDeclaredOversizedBody(t *testing.T) {
	router := newBodyLimitRouter(100, okHandler)

	req := httptest.NewRequest(http.MethodPost, "/donations", strings.NewReader(strings.Repeat("x", 200)))
	req.ContentLength = 200
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_PAYLOAD_TOO_LARGE")
}

func TestBodyLimit_IgnoresBodylessRequests(t *testing.T) {
	router := newBodyLimitRouter(10, okHandler)

	req := httptest.NewRequest(http.MethodGet, "/fundraisers", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBodyLimit_CapsStreamedBody(t *testing.T) {
	// chunked uploads carry no Content-Length, so the limit must be
	// enforced while the handler reads
	router := newBodyLimitRouter(50, func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.String(http.StatusBadRequest, "body too large")
			return
		}
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodPost, "/donations", strings.NewReader(strings.Repeat("x", 100)))
	req.ContentLength = -1
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
