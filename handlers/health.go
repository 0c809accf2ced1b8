package handlers

import (
	"net/http"

	"nhap/utils"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	Monitor *utils.HealthMonitor
}

// GetHealth reports the last dependency snapshot; 503 when any is down.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	status := h.Monitor.GetHealthStatus()
	if status.CheckedAt.IsZero() {
		status = h.Monitor.Check(c.Request.Context())
	}
	code := http.StatusOK
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}
