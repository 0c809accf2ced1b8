package routes

import (
	"nhap/handlers"

	"github.com/gin-gonic/gin"
)

func use(g *gin.RouterGroup, mws ...gin.HandlerFunc) {
	for _, mw := range mws {
		if mw != nil {
			g.Use(mw)
		}
	}
}

// RegisterEventRoutes registers the Firestore trigger endpoints.
func RegisterEventRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/events")
	use(api, hb.TriggerAuth)
	{
		api.POST("/bookings", hb.BookingEventHandler)
	}
}

// RegisterTaskRoutes registers manual task triggers.
func RegisterTaskRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/tasks")
	use(api, hb.TaskRateLimit, hb.TriggerAuth)
	{
		api.POST("/reminders", hb.RunReminderSweepHandler)
	}
}

// RegisterRoutes sets up all routes.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	RegisterEventRoutes(r, hb)
	RegisterTaskRoutes(r, hb)

	if hb.HealthHandler != nil {
		r.GET("/health", hb.HealthHandler)
	}
	if hb.MetricsHandler != nil {
		r.GET("/metrics", hb.MetricsHandler)
	}
}
