package version

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/scribe-api/api/types"
)

// Get handles version requests
// @Summary      Service information
// @Tags         version
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /version [get]
func Get(build types.BuildInfo) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        "Scribe API",
			"version":     build.Version,
			"git_commit":  build.GitCommit,
			"build_time":  build.BuildTime,
			"description": "Audio transcription and segmented translation",
			"status":      "running",
		})
	}
}
