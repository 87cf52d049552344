package routes

import (
	"github.com/gin-gonic/gin"

	"bookify/handlers"
	"bookify/middleware"
)

// RegisterBookingRoutes sets up the endpoints for the booking wizard.
func RegisterBookingRoutes(r *gin.Engine, bh *handlers.BookingHandler, ah *handlers.AvailabilityHandler) {
	bookingGroup := r.Group("/api/booking")
	{
		bookingGroup.Use(middleware.AdminAuthMiddleware())

		bookingGroup.POST("/session", bh.StartSession)
		bookingGroup.GET("/session/:id", bh.GetSession)
		bookingGroup.PUT("/session/:id/property", bh.SetProperty)
		bookingGroup.POST("/session/:id/next", bh.NextStep)
		bookingGroup.POST("/session/:id/back", bh.PreviousStep)
		bookingGroup.POST("/session/:id/new", bh.NewItem)
		bookingGroup.POST("/session/:id/reset", bh.ResetSession)
		bookingGroup.POST("/session/:id/submit", bh.SubmitStep)
		bookingGroup.DELETE("/session/:id/item/:itemId", bh.RemoveItem)
		bookingGroup.POST("/session/:id/coupon", bh.ApplyCoupon)
		bookingGroup.DELETE("/session/:id/coupon", bh.RemoveCoupon)
		bookingGroup.POST("/session/:id/checkout", bh.Checkout)

		bookingGroup.GET("/availability", ah.GetAvailability)
		bookingGroup.GET("/slots", ah.GetSlots)
	}
}
