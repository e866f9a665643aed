package credits

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/waveforge/generator-api/api/types"
)

const cacheKey = "credits:combined"

// Get handles combined credits requests
// @Summary      Get combined credits
// @Description  Query every configured provider for its remaining credits. Providers that fail to answer are reported individually without failing the whole request.
// @Tags         credits
// @Produce      json
// @Success      200 {object} types.CreditsResponse "Combined credit balances"
// @Router       /api/v1/credits [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if deps.CreditsCache != nil {
			if cached, ok := deps.CreditsCache.Get(c.Request.Context(), cacheKey); ok {
				var response types.CreditsResponse
				if err := json.Unmarshal(cached, &response); err == nil {
					c.JSON(http.StatusOK, response)
					return
				}
				log.Printf("[WARN] discarding undecodable cached credits entry")
			}
		}

		summary := deps.CreditsService.GetCombinedCredits(c.Request.Context())

		infos := make([]types.ProviderCreditsInfo, 0, len(summary.Providers))
		for _, p := range summary.Providers {
			infos = append(infos, types.ProviderCreditsInfo{
				Provider:     string(p.Provider),
				Success:      p.Success,
				Error:        p.Error,
				Remaining:    p.Remaining,
				MonthlyLimit: p.MonthlyLimit,
				MonthlyUsage: p.MonthlyUsage,
			})
		}

		message := "Credits retrieved successfully"
		if !summary.AllAvailable() {
			message = "Credits retrieved with partial provider failures"
		}

		response := types.CreditsResponse{
			BaseResponse: types.BaseResponse{
				Status:  types.StatusOK,
				Message: message,
			},
			Providers:      infos,
			TotalRemaining: summary.TotalRemaining,
			CheckedAt:      summary.CheckedAt,
		}

		// Only fully successful summaries are cached; a partial outage should
		// be re-checked on the next request
		if deps.CreditsCache != nil && summary.AllAvailable() {
			if encoded, err := json.Marshal(response); err == nil {
				ttl := deps.CreditsCacheTTL
				if ttl <= 0 {
					ttl = 30 * time.Second
				}
				_ = deps.CreditsCache.Set(c.Request.Context(), cacheKey, encoded, ttl)
			}
		}

		c.JSON(http.StatusOK, response)
	}
}
