package generate

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/waveforge/generator-api/api/types"
	"github.com/waveforge/generator-api/internal/models"
	"github.com/waveforge/generator-api/internal/services/providers"
)

// Post handles music generation requests
// @Summary      Submit a music generation task
// @Description  Submit a prompt to one of the configured generation providers. The response returns immediately with a track ID; generation continues in the background.
// @Tags         generate
// @Accept       json
// @Produce      json
// @Param        request body types.GenerateRequest true "Generation parameters"
// @Success      202 {object} types.GenerateResponse "Task accepted"
// @Failure      400 {object} types.ErrorResponse "Bad request - invalid parameters"
// @Failure      502 {object} types.ErrorResponse "Provider unavailable"
// @Router       /api/v1/generate [post]
func Post(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.GenerateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Invalid request format",
				Details: err.Error(),
			})
			return
		}

		if req.Prompt == "" && req.Lyrics == "" {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Either prompt or lyrics is required",
			})
			return
		}

		preference := models.Provider(req.Provider)
		if req.Provider != "" && !preference.Valid() {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Unknown provider",
				Details: req.Provider,
			})
			return
		}

		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			userID = "anonymous"
		}

		handle, err := deps.GenerationService.Submit(c.Request.Context(), userID, providers.GenerationRequest{
			Prompt:       req.Prompt,
			Tags:         req.Tags,
			Title:        req.Title,
			Lyrics:       req.Lyrics,
			ModelVersion: req.ModelVersion,
			Instrumental: req.Instrumental,
		}, preference)
		if err != nil {
			status := http.StatusBadGateway
			message := "Failed to submit generation task"

			var provErr *providers.Error
			if errors.As(err, &provErr) && provErr.Kind == providers.KindInvalidRequest {
				status = http.StatusBadRequest
				message = "Provider rejected the request"
			}
			if errors.Is(err, providers.ErrNoProviderAvailable) {
				status = http.StatusServiceUnavailable
				message = "No provider with available credits"
			}

			c.JSON(status, types.ErrorResponse{
				Status:  types.StatusError,
				Message: message,
				Details: err.Error(),
			})
			return
		}

		// Watch for completion in the background. The request context ends
		// when this handler returns, so the watcher gets its own.
		go func() {
			_, err := deps.GenerationService.AwaitCompletion(
				context.Background(), *handle, deps.MaxPollAttempts, deps.PollInterval)
			if err != nil {
				log.Printf("[WARN] background completion watch for track %s: %v", handle.TrackID, err)
			}
		}()

		c.JSON(http.StatusAccepted, types.GenerateResponse{
			BaseResponse: types.BaseResponse{
				Status:  types.StatusQueued,
				Message: "Generation task submitted",
			},
			TrackID:   handle.TrackID,
			Provider:  string(handle.Provider),
			APITaskID: handle.APITaskID,
		})
	}
}
