package tracks

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/waveforge/generator-api/api/types"
)

// GetAll handles track list requests
// @Summary      List tracks
// @Description  List the caller's tracks, newest first, with pagination
// @Tags         tracks
// @Produce      json
// @Param        page query int false "Page number (default 1)"
// @Param        limit query int false "Page size (default 20, max 100)"
// @Success      200 {object} types.TracksResponse "Track list"
// @Router       /api/v1/tracks [get]
func GetAll(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			userID = "anonymous"
		}

		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

		list, total, err := deps.GenerationService.ListTracks(c.Request.Context(), userID, page, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Failed to list tracks",
				Details: err.Error(),
			})
			return
		}

		transformed := types.FromTrackList(list)
		c.JSON(http.StatusOK, types.TracksResponse{
			BaseResponse: types.BaseResponse{
				Status:  types.StatusOK,
				Message: "Tracks retrieved successfully",
			},
			Tracks: transformed,
			Count:  len(transformed),
			Total:  total,
			Page:   page,
			Limit:  limit,
		})
	}
}
