package generate

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/waveforge/generator-api/api/types"
	"github.com/waveforge/generator-api/internal/services/generation"
)

// GetByID handles generation status requests
// @Summary      Get generation status
// @Description  Return the current status and unified metadata for a submitted generation task
// @Tags         generate
// @Produce      json
// @Param        id path string true "Track ID"
// @Success      200 {object} types.SingleTrackResponse "Track status"
// @Failure      404 {object} types.ErrorResponse "Track not found"
// @Router       /api/v1/generate/{id} [get]
func GetByID(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		track, err := deps.GenerationService.GetTrack(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, generation.ErrTrackNotFound) {
				c.JSON(http.StatusNotFound, types.ErrorResponse{
					Status:  types.StatusError,
					Message: "Track not found",
					Details: id,
				})
				return
			}
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Failed to load track",
				Details: err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, types.SingleTrackResponse{
			BaseResponse: types.BaseResponse{
				Status:  types.StatusOK,
				Message: "Track retrieved successfully",
			},
			Track: types.FromTrack(track),
		})
	}
}
