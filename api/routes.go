package api

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/killallgit/scribe-api/api/health"
	"github.com/killallgit/scribe-api/api/history"
	"github.com/killallgit/scribe-api/api/transcription"
	"github.com/killallgit/scribe-api/api/translation"
	"github.com/killallgit/scribe-api/api/types"
	"github.com/killallgit/scribe-api/api/version"
	_ "github.com/killallgit/scribe-api/docs/swagger"
	"github.com/killallgit/scribe-api/pkg/config"
)

// Fallback limits when an endpoint has no rate_limiting entry
const (
	defaultRPS   = 10
	defaultBurst = 20
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, cfg *config.Config, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	// Register public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	if cfg.Monitoring.Enabled {
		path := cfg.Monitoring.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		engine.GET(path, gin.WrapH(deps.Metrics.Handler()))
	}

	// Register Swagger documentation route
	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/docs/index.html")
	})
	docsGroup := engine.Group("/docs")
	docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Setup 404 handler
	engine.NoRoute(NotFoundHandler())

	api := engine.Group("/api")

	limit := func(name string) gin.HandlerFunc {
		if !cfg.RateLimiting.Enabled {
			return func(c *gin.Context) { c.Next() }
		}
		rl, ok := cfg.RateLimiting.Endpoints[name]
		if !ok {
			rl, ok = cfg.RateLimiting.Endpoints["default"]
		}
		if !ok {
			rl = config.RateLimit{RPS: defaultRPS, Burst: defaultBurst}
		}
		return PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, name, rl.RPS, rl.Burst)
	}

	// Transcription holds a provider job open for minutes; keep it tight
	transcribeGroup := api.Group("/transcribe")
	transcribeGroup.Use(limit("transcribe"))
	transcription.RegisterRoutes(transcribeGroup, deps)

	translateGroup := api.Group("/translate")
	translateGroup.Use(limit("translate"))
	translation.RegisterRoutes(translateGroup, deps)

	historyGroup := api.Group("/history")
	historyGroup.Use(limit("default"))
	history.RegisterRoutes(historyGroup, deps)

	return nil
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}
