// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"ticketapp/internal/events"
	"ticketapp/internal/locations"
	"ticketapp/internal/shared/config"
	"ticketapp/internal/shared/database"
	"ticketapp/internal/tickets"
	"ticketapp/internal/users"
	"ticketapp/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config       *config.Config
	db           *database.DB
	cacheService cache.Service
	notifier     Notifier

	// Shared across route groups for dependency injection
	locationService locations.Service
	eventService    events.Service
}

// Notifier is injected into the event and ticket services when Kafka
// is enabled. A nil Notifier disables publishing.
type Notifier interface {
	events.Notifier
	tickets.Notifier
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, notifier Notifier) *Router {
	return &Router{
		config:       cfg,
		db:           db,
		cacheService: cache.NewService(db.GetRedisClient()),
		notifier:     notifier,
	}
}

// EventService exposes the wired events service so the scheduler can
// share the same debounce state as the HTTP sweep endpoint.
func (r *Router) EventService() events.Service {
	return r.eventService
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupUserRoutes(api)

		// Locations before events: the event service checks locations
		r.setupLocationRoutes(api)
		r.setupEventRoutes(api)
		r.setupTicketRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "ticketapp-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "ticketapp-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupUserRoutes configures authentication and profile routes
func (r *Router) setupUserRoutes(rg *gin.RouterGroup) {
	userRepo := users.NewRepository(r.db.GetPostgreSQL())
	userService := users.NewService(userRepo, r.config)
	userController := users.NewController(userService)

	users.SetupUserRoutes(rg, r.config, userController)
}

// setupLocationRoutes configures location management routes
func (r *Router) setupLocationRoutes(rg *gin.RouterGroup) {
	locationRepo := locations.NewRepository(r.db.GetPostgreSQL())
	locationService := locations.NewService(locationRepo)
	locationService.SetCacheService(r.cacheService)
	locationController := locations.NewController(locationService)

	r.locationService = locationService

	locations.SetupLocationRoutes(rg, r.config, locationController)
}

// setupEventRoutes configures event management routes
func (r *Router) setupEventRoutes(rg *gin.RouterGroup) {
	eventRepo := events.NewRepository(r.db.GetPostgreSQL())
	eventService := events.NewService(eventRepo, r.config)
	eventService.SetCacheService(r.cacheService)
	eventService.SetLocationService(r.locationService)
	if r.notifier != nil {
		eventService.SetNotifier(r.notifier)
	}
	eventController := events.NewController(eventService)

	r.eventService = eventService

	events.SetupEventRoutes(rg, r.config, eventController)
}

// setupTicketRoutes configures ticket sales routes
func (r *Router) setupTicketRoutes(rg *gin.RouterGroup) {
	ticketRepo := tickets.NewRepository(r.db.GetPostgreSQL())
	ticketService := tickets.NewService(ticketRepo, r.config)
	ticketService.SetCacheService(r.cacheService)
	ticketService.SetEventService(r.eventService)
	if r.notifier != nil {
		ticketService.SetNotifier(r.notifier)
	}
	ticketController := tickets.NewController(ticketService)

	tickets.SetupTicketRoutes(rg, r.config, ticketController)
}
