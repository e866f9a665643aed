package tracks

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/waveforge/generator-api/api/types"
	"github.com/waveforge/generator-api/internal/services/generation"
)

// PostCounter handles usage counter increments
// @Summary      Increment a usage counter
// @Description  Increment the play, download, or share counter for a track
// @Tags         tracks
// @Accept       json
// @Produce      json
// @Param        id path string true "Track ID"
// @Param        request body types.CounterRequest true "Counter to increment"
// @Success      200 {object} types.BaseResponse "Counter incremented"
// @Failure      400 {object} types.ErrorResponse "Bad request - unknown counter"
// @Failure      404 {object} types.ErrorResponse "Track not found"
// @Router       /api/v1/tracks/{id}/counters [post]
func PostCounter(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var req types.CounterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Invalid request format",
				Details: err.Error(),
			})
			return
		}

		counter := generation.Counter(req.Counter)
		switch counter {
		case generation.CounterPlay, generation.CounterDownload, generation.CounterShare:
		default:
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Unknown counter",
				Details: req.Counter,
			})
			return
		}

		if err := deps.GenerationService.IncrementCounter(c.Request.Context(), id, counter); err != nil {
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
				Message: "Failed to increment counter",
				Details: err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, types.BaseResponse{
			Status:  types.StatusOK,
			Message: "Counter incremented",
		})
	}
}
