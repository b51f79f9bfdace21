package routes

import (
	"xconfess_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the HTTP API.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.ConfessionHandler.RegisterRoutes(api)
		appHandlers.ReactionHandler.RegisterRoutes(api)
	}
}
