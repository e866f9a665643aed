package tracks

import (
	"github.com/gin-gonic/gin"

	"github.com/waveforge/generator-api/api/types"
)

// RegisterRoutes registers track routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("", GetAll(deps))
	router.GET("/:id", GetByID(deps))
	router.POST("/:id/counters", PostCounter(deps))
}
