package routes

import (
	"time"

	"citaflow/handlers"
	"citaflow/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAgendaRoutes registers the scheduling endpoints. Everything under
// the group requires a session and agenda access.
func RegisterAgendaRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/agenda")
	{
		api.Use(middleware.SessionAuthMiddleware(hb.StaffRepo))
		api.Use(middleware.RequireAgendaAccess())

		api.GET("/staff", hb.ListAgendaStaffHandler)
		api.GET("/availability", hb.GetAvailabilityHandler)
		api.GET("/appointments", hb.ListAppointmentsHandler)
		api.POST("/appointments", hb.CreateAppointmentHandler)
		api.POST("/appointments/cancel", hb.CancelAppointmentHandler)
	}
}

// RegisterNotificationRoutes registers the in-app notification endpoints.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notifications")
	{
		api.Use(middleware.SessionAuthMiddleware(hb.StaffRepo))

		api.GET("", hb.ListNotificationsHandler)
		api.POST("/mark-all-read", hb.MarkAllNotificationsReadHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterAgendaRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
}
