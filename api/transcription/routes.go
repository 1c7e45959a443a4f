package transcription

import (
	"github.com/gin-gonic/gin"

	"github.com/killallgit/scribe-api/api/types"
)

// RegisterRoutes registers transcription routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	// POST /api/transcribe (router already includes /transcribe prefix)
	router.POST("", Post(deps))
}
