package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler, apiAccessKey string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())

	// Read-only endpoints
	r.GET("/health", handler.GetHealth)
	r.GET("/feeds", handler.ListFeeds)
	r.GET("/feeds/:id", handler.GetFeed)
	r.GET("/feeds/:id/entries", handler.GetFeedEntries)
	r.GET("/entries/:id", handler.GetEntry)
	r.GET("/next", handler.GetNext)
	r.GET("/categories", handler.GetCategories)

	// Mutating endpoints, enabled only when a key is configured
	if apiAccessKey != "" {
		api := r.Group("/api")
		api.Use(authMiddleware(apiAccessKey))
		{
			api.POST("/refresh", handler.TriggerRefresh)
			api.PATCH("/entries/:id/progress", handler.SetProgress)
			api.PATCH("/entries/:id/important", handler.SetImportant)
		}
		slog.Info("API mutation endpoints enabled with authentication")
	} else {
		slog.Info("API mutation endpoints disabled (no access key configured)")
	}

	return r
}

func authMiddleware(apiAccessKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("X-API-Key") != apiAccessKey {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}
