package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle aggregates the HTTP handlers routes are registered with.
type HandlerBundle struct {
	// Trigger endpoints.
	BookingEventHandler gin.HandlerFunc

	// Task endpoints.
	RunReminderSweepHandler gin.HandlerFunc

	// Operational endpoints.
	HealthHandler  gin.HandlerFunc
	MetricsHandler gin.HandlerFunc

	// Optional middleware; nil entries are skipped.
	TriggerAuth   gin.HandlerFunc
	TaskRateLimit gin.HandlerFunc
}
