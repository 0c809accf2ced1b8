package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.InfoLevel)

	var seen any
	r := gin.New()
	r.Use(RequestLogger(zap.New(core)))
	r.GET("/ping", func(c *gin.Context) {
		seen, _ = c.Get("logger")
		c.Status(http.StatusNoContent)
	})

	t.Run("generates request id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
		assert.IsType(t, &zap.Logger{}, seen)
	})

	t.Run("echoes caller request id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(RequestIDHeader, "req-7")
		r.ServeHTTP(w, req)

		assert.Equal(t, "req-7", w.Header().Get(RequestIDHeader))
		entries := logs.FilterField(zap.String("requestId", "req-7")).All()
		require.Len(t, entries, 1)
		assert.Equal(t, "request", entries[0].Message)
		assert.Equal(t, int64(http.StatusNoContent), entries[0].ContextMap()["status"])
	})
}
