package history

import (
	"github.com/gin-gonic/gin"

	"github.com/killallgit/scribe-api/api/types"
)

// RegisterRoutes registers history routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("", List(deps))
	router.GET("/:id", GetByID(deps))
}
