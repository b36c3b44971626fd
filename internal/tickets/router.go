package tickets

import (
	"ticketapp/internal/shared/config"
	"ticketapp/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupTicketRoutes(router *gin.RouterGroup, cfg *config.Config, controller Controller) {
	// Public route - seat pickers poll the occupied set without auth
	router.GET("/tickets/occupied/:eventId", controller.GetOccupiedSeats)

	authed := router.Group("/tickets")
	authed.Use(middleware.JWTAuthWithConfig(cfg))
	{
		authed.POST("", controller.PurchaseTicket)
		authed.GET("/me", controller.GetMyTickets)
		authed.GET("/:ticketId", controller.GetTicket)
		authed.POST("/:ticketId/pay", controller.PayTicket)
		authed.POST("/:ticketId/cancel", controller.CancelTicket)
	}
}
