package generate

import (
	"github.com/gin-gonic/gin"

	"github.com/waveforge/generator-api/api/types"
)

// RegisterRoutes registers generation routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.POST("", Post(deps))
	router.GET("/:id", GetByID(deps))
}
