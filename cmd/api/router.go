package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	catalogHandler "bookstore-catalog/internal/domains/catalog/handler"
	"bookstore-catalog/internal/shared/middleware"
	"bookstore-catalog/internal/shared/response"
	"bookstore-catalog/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		catalogHandler.RegisterRoutes(v1, c.AuthorHandler, c.GenreHandler, c.BookHandler)
	}

	return router
}

// healthCheckHandler reports 503 when any dependency fails to answer.
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checks := gin.H{}
		healthy := true
		for name, err := range c.HealthCheck(ctx.Request.Context()) {
			if err != nil {
				healthy = false
				checks[name] = "unhealthy"
				continue
			}
			checks[name] = "healthy"
		}

		stats := c.DB.Stats()
		data := gin.H{
			"status":    "ok",
			"version":   c.Config.App.Version,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"checks":    checks,
			"database": gin.H{
				"open_connections": stats.OpenConnections,
				"in_use":           stats.InUse,
				"idle":             stats.Idle,
			},
		}

		if !healthy {
			data["status"] = "degraded"
			response.ErrorWithDetails(ctx, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "dependency check failed", data)
			return
		}
		response.Success(ctx, http.StatusOK, data)
	}
}
