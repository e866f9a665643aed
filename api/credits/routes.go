package credits

import (
	"github.com/gin-gonic/gin"

	"github.com/waveforge/generator-api/api/types"
)

// RegisterRoutes registers credits routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("", Get(deps))
}
