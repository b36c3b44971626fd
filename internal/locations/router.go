package locations

import (
	"ticketapp/internal/shared/config"
	"ticketapp/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupLocationRoutes(router *gin.RouterGroup, cfg *config.Config, controller Controller) {
	// Public routes - anyone can browse locations
	public := router.Group("/locations")
	{
		public.GET("", controller.GetAllLocations)
		public.GET("/:locationId", controller.GetLocation)
	}

	// Admin routes - location management
	admin := router.Group("/admin/locations")
	admin.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireAdmin())
	{
		admin.POST("", controller.CreateLocation)
		admin.PUT("/:locationId", controller.UpdateLocation)
		admin.DELETE("/:locationId", controller.DeleteLocation)
	}
}
