package routes

import (
	"time"

	"slotbook/handlers"
	"slotbook/middleware"
	"slotbook/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterProviderRoutes registers the provider's schedule endpoints.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/providers")
	{
		api.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole(utils.RoleProvider))
		api.PUT("/availability", hb.Availability.SetAvailabilityHandler)
		api.GET("/availability/:date", hb.Availability.GetDayHandler)
		api.GET("/appointments/:date", hb.Booking.ProviderDayHandler)
	}
}

// RegisterAppointmentRoutes registers discovery, booking and appointment
// lifecycle endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	api.Use(middleware.JWTAuthMiddleware())

	consumer := api.Group("")
	{
		consumer.Use(middleware.RequireRole(utils.RoleConsumer))
		consumer.GET("/providers", hb.Booking.AvailableProvidersHandler)
		consumer.GET("/providers/:providerID/slots", hb.Booking.AvailableSlotsHandler)
		consumer.POST("/hold", hb.Booking.HoldHandler)
		consumer.DELETE("/hold/:slotID", hb.Booking.ReleaseHandler)
		consumer.POST("/confirm", hb.Booking.ConfirmHandler)
		consumer.GET("/mine", hb.Booking.ListMineHandler)
	}

	// Ownership is checked by the service.
	api.POST("/:id/cancel",
		middleware.RequireRole(utils.RoleConsumer, utils.RoleProvider, utils.RoleAdmin),
		hb.Booking.CancelHandler)

	provider := api.Group("")
	{
		provider.Use(middleware.RequireRole(utils.RoleProvider, utils.RoleAdmin))
		provider.POST("/:id/attend", hb.Booking.AttendHandler)
		provider.POST("/:id/no-show", hb.Booking.NoShowHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole(utils.RoleAdmin))
		adminGroup.PUT("/providers/:providerID/approval", hb.Admin.SetApprovalHandler)
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
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterProviderRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
