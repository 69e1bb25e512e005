package api

import (
	"sync"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/authorityshow/editor-api/api/credits"
	"github.com/authorityshow/editor-api/api/edits"
	"github.com/authorityshow/editor-api/api/health"
	"github.com/authorityshow/editor-api/api/pipeline"
	"github.com/authorityshow/editor-api/api/types"
	"github.com/authorityshow/editor-api/api/version"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	if deps == nil {
		deps = &types.Dependencies{}
	}

	// Public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	// Swagger documentation
	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(301, "/docs/index.html")
	})
	docsGroup := engine.Group("/docs")
	docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	engine.NoRoute(NotFoundHandler())

	// API v1 routes
	v1 := engine.Group("/api/v1")

	// Pipeline runs are expensive: 2 req/s with a burst of 4 per client
	pipelineGroup := v1.Group("/pipeline")
	pipelineGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 2, 4))
	pipeline.RegisterRoutes(pipelineGroup, deps)

	// Read-only account surfaces get general limits (10 req/s, burst of 20)
	creditsGroup := v1.Group("/credits")
	creditsGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 10, 20))
	credits.RegisterRoutes(creditsGroup, deps)

	editsGroup := v1.Group("/edits")
	editsGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 10, 20))
	edits.RegisterRoutes(editsGroup, deps)

	return nil
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(404, gin.H{
			"status":  "error",
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}
