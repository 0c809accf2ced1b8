package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"nhap/handlers"
	"nhap/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func ok(c *gin.Context) { c.Status(http.StatusOK) }

func TestRegisterRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, &handlers.HandlerBundle{
		BookingEventHandler:     ok,
		RunReminderSweepHandler: ok,
		HealthHandler:           ok,
		TriggerAuth:             middleware.BearerAuth(middleware.SharedSecretValidator("s3cret")),
	})

	call := func(method, path, auth string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(method, path, nil)
		if auth != "" {
			req.Header.Set("Authorization", "Bearer "+auth)
		}
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusUnauthorized, call(http.MethodPost, "/events/bookings", ""))
	assert.Equal(t, http.StatusOK, call(http.MethodPost, "/events/bookings", "s3cret"))
	assert.Equal(t, http.StatusUnauthorized, call(http.MethodPost, "/tasks/reminders", ""))
	assert.Equal(t, http.StatusOK, call(http.MethodPost, "/tasks/reminders", "s3cret"))
	assert.Equal(t, http.StatusOK, call(http.MethodGet, "/health", ""), "health stays open")
	assert.Equal(t, http.StatusNotFound, call(http.MethodGet, "/metrics", ""), "metrics only when configured")
}
