package routes

import (
	"net/http"
	"time"

	"bookify/handlers"
	"bookify/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterProviderRoutes registers the provider-facing slot and calendar
// endpoints.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/provider")
	{
		api.Use(middleware.JWTAuthProviderMiddleware())
		api.POST("/slots", hb.Slots.CreateSlotHandler)
		api.PATCH("/slots/:slotID", hb.Slots.UpdateSlotHandler)
		api.DELETE("/slots/:slotID", hb.Slots.DeleteSlotHandler)
		api.GET("/slots", hb.Slots.ListProviderSlotsHandler)

		api.GET("/appointments", hb.Bookings.ListProviderAppointmentsHandler)
		api.PUT("/appointments/:appointmentID/complete", hb.Bookings.CompleteAppointmentHandler)

		api.GET("/notifications", hb.Notifications.ListProviderNotificationsHandler)
		api.PUT("/notifications/:notificationID/read", hb.Notifications.MarkProviderNotificationReadHandler)
	}
}

// RegisterBookingRoutes registers the customer-facing booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/booking")
	{
		api.Use(middleware.JWTAuthUserMiddleware())
		api.POST("/appointments", hb.Bookings.BookAppointmentHandler)
		api.GET("/appointments", hb.Bookings.ListMyAppointmentsHandler)
		api.GET("/appointments/:appointmentID", hb.Bookings.GetAppointmentHandler)
		api.PUT("/appointments/:appointmentID/reschedule", hb.Bookings.RescheduleAppointmentHandler)
		api.PUT("/appointments/:appointmentID/cancel", hb.Bookings.CancelAppointmentHandler)
		api.PUT("/appointments/:appointmentID/confirm", hb.Bookings.ConfirmAppointmentHandler)

		api.POST("/reviews", hb.Reviews.SubmitReviewHandler)

		api.GET("/notifications", hb.Notifications.ListUserNotificationsHandler)
		api.PUT("/notifications/:notificationID/read", hb.Notifications.MarkUserNotificationReadHandler)
	}
}

// RegisterPublicRoutes registers endpoints that need no authentication:
// browsing a provider's availability and reviews.
func RegisterPublicRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/public")
	{
		api.GET("/providers/:providerID/slots", hb.Slots.ListAvailableSlotsHandler)
		api.GET("/providers/:providerID/reviews", hb.Reviews.ListProviderReviewsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Bookify"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterPublicRoutes(r, hb)
	RegisterProviderRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
}
