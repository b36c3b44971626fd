package users

import (
	"ticketapp/internal/shared/config"
	"ticketapp/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupUserRoutes(router *gin.RouterGroup, cfg *config.Config, controller Controller) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", controller.Register) // POST /api/v1/auth/register
		auth.POST("/login", controller.Login)       // POST /api/v1/auth/login
	}

	profile := router.Group("/users")
	profile.Use(middleware.JWTAuthWithConfig(cfg))
	{
		profile.GET("/me", controller.GetProfile) // GET /api/v1/users/me
	}
}
