package routes

import (
	"salonbook/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers the customer-facing booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/bookings")
	api.Use(middleware.JWTAuthUserMiddleware())
	{
		api.POST("", hb.Booking.CreateBooking)
		api.GET("/ongoing", hb.Booking.GetOngoingBookings)
		api.GET("/history", hb.Booking.GetBookingHistory)
		api.GET("/:id", hb.Booking.GetBooking)
		api.PUT("/:id/cancel", hb.Booking.CancelBooking)
		api.PUT("/:id/reschedule", hb.Booking.RescheduleBooking)
		api.PATCH("/:id", hb.Booking.UpdateBooking)
	}
}

// RegisterAdminRoutes registers admin-only booking endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/admin")
	api.Use(middleware.AdminAuthMiddleware())
	{
		api.POST("/bookings", hb.AdminBooking.CreateWalkInBooking)
		api.PUT("/bookings/:id/status", hb.AdminBooking.TransitionBookingStatus)
	}
}
