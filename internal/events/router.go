package events

import (
	"ticketapp/internal/shared/config"
	"ticketapp/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupEventRoutes(router *gin.RouterGroup, cfg *config.Config, controller Controller) {
	// Public routes - anyone can browse events and resolve seat prices
	public := router.Group("/events")
	{
		public.GET("", controller.GetAllEvents)
		public.GET("/upcoming", controller.GetUpcomingEvents)
		public.GET("/:eventId", controller.GetEvent)
		public.GET("/:eventId/seat-price/:sectionId/:row/:seat", controller.GetSeatPrice)
	}

	// Admin routes - event management
	admin := router.Group("/admin/events")
	admin.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireAdmin())
	{
		admin.POST("", controller.CreateEvent)
		admin.PUT("/:eventId", controller.UpdateEvent)
		admin.DELETE("/:eventId", controller.DeleteEvent)
		admin.POST("/:eventId/cancel", controller.CancelEvent)
		admin.PUT("/:eventId/seat-blocks", controller.UpdateSeatBlocks)
		admin.POST("/update-states", controller.UpdateEventStates)
	}
}
