package health

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/scribe-api/api/types"
)

// Get handles health check requests
// @Summary      Health check
// @Description  Reports service status and the state of optional dependencies
// @Tags         health
// @Produce      json
// @Success      200 {object} types.HealthResponse
// @Failure      503 {object} types.HealthResponse "A configured dependency is unhealthy"
// @Router       /health [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		response := types.HealthResponse{
			Status:    types.StatusOK,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Checks:    map[string]string{},
		}

		dbStatus := getDatabaseStatus(c, deps)
		response.Checks["database"] = dbStatus
		response.Checks["cache"] = getCacheStatus(deps)

		code := http.StatusOK
		if dbStatus != "healthy" && dbStatus != "not configured" {
			response.Status = types.StatusUnhealthy
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, response)
	}
}

// getDatabaseStatus returns the database connection status
func getDatabaseStatus(c *gin.Context, deps *types.Dependencies) string {
	if deps == nil || deps.DB == nil || deps.DB.DB == nil {
		return "not configured"
	}

	if err := deps.DB.HealthCheck(c.Request.Context()); err != nil {
		return "unhealthy: " + err.Error()
	}

	return "healthy"
}

func getCacheStatus(deps *types.Dependencies) string {
	if deps == nil || deps.Cache == nil {
		return "disabled"
	}
	s := deps.Cache.Stats()
	return fmt.Sprintf("enabled (%d entries, %d hits, %d misses)", s.Entries, s.Hits, s.Misses)
}
