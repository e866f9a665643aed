package api

import (
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/waveforge/generator-api/api/credits"
	"github.com/waveforge/generator-api/api/generate"
	"github.com/waveforge/generator-api/api/health"
	"github.com/waveforge/generator-api/api/tracks"
	"github.com/waveforge/generator-api/api/types"
	"github.com/waveforge/generator-api/api/version"
	"github.com/waveforge/generator-api/internal/models"
	"github.com/waveforge/generator-api/internal/services/cache"
	creditsService "github.com/waveforge/generator-api/internal/services/credits"
	"github.com/waveforge/generator-api/internal/services/generation"
	"github.com/waveforge/generator-api/internal/services/metadata"
	"github.com/waveforge/generator-api/internal/services/mureka"
	"github.com/waveforge/generator-api/internal/services/providers"
	"github.com/waveforge/generator-api/internal/services/suno"
	"github.com/waveforge/generator-api/pkg/config"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	// Register public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	// Setup 404 handler
	engine.NoRoute(NotFoundHandler())

	// API v1 routes
	v1 := engine.Group("/api/v1")

	// Load config for API routes
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	// Initialize services if not already set
	if deps == nil {
		deps = &types.Dependencies{}
	}

	if deps.GenerationService == nil || deps.CreditsService == nil {
		if err := initializeGenerationServices(deps, cfg); err != nil {
			return err
		}
	}

	if deps.PollInterval <= 0 {
		deps.PollInterval = cfg.Generation.PollInterval
	}
	if deps.MaxPollAttempts <= 0 {
		deps.MaxPollAttempts = cfg.Generation.MaxPollAttempts
	}

	// Register generation routes with tight rate limiting (2 req/s, burst of 5):
	// each submission spends provider credits
	generateGroup := v1.Group("/generate")
	generateGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 2, 5))
	generate.RegisterRoutes(generateGroup, deps)

	// Register track routes with general rate limiting (10 req/s, burst of 20)
	tracksGroup := v1.Group("/tracks")
	tracksGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 10, 20))
	tracks.RegisterRoutes(tracksGroup, deps)

	// Register credits routes with general rate limiting (5 req/s, burst of 10)
	creditsGroup := v1.Group("/credits")
	creditsGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 5, 10))
	credits.RegisterRoutes(creditsGroup, deps)

	return nil
}

// initializeGenerationServices creates the provider adapters, selector, and
// the generation and credits services from configuration
func initializeGenerationServices(deps *types.Dependencies, cfg *config.Config) error {
	if deps.DB == nil || deps.DB.DB == nil {
		return fmt.Errorf("database required for generation services")
	}

	var adapters []providers.Adapter
	selectorOpts := []providers.SelectorOption{}

	if cfg.Suno.Enabled {
		adapters = append(adapters, suno.NewClient(suno.Config{
			APIToken:          cfg.Suno.APIToken,
			BaseURL:           cfg.Suno.BaseURL,
			UserAgent:         cfg.Suno.UserAgent,
			Timeout:           cfg.Suno.Timeout,
			RequestsPerMinute: cfg.Suno.RequestsPerMinute,
			BurstSize:         cfg.Suno.BurstSize,
		}))
		selectorOpts = append(selectorOpts, providers.WithWeight(models.ProviderSuno, cfg.Suno.Weight))
	}

	if cfg.Mureka.Enabled {
		adapters = append(adapters, mureka.NewClient(mureka.Config{
			APIKey:            cfg.Mureka.APIToken,
			BaseURL:           cfg.Mureka.BaseURL,
			UserAgent:         cfg.Mureka.UserAgent,
			Timeout:           cfg.Mureka.Timeout,
			RequestsPerMinute: cfg.Mureka.RequestsPerMinute,
			BurstSize:         cfg.Mureka.BurstSize,
		}))
		selectorOpts = append(selectorOpts, providers.WithWeight(models.ProviderMureka, cfg.Mureka.Weight))
	}

	if len(adapters) == 0 {
		return fmt.Errorf("no providers enabled")
	}

	if cfg.Generation.SelectionSeed != 0 {
		selectorOpts = append(selectorOpts, providers.WithSeed(cfg.Generation.SelectionSeed))
	}

	selector := providers.NewSelector(adapters, selectorOpts...)
	mapper := metadata.NewMapper()
	repo := generation.NewRepository(deps.DB.DB)

	deps.GenerationService = generation.NewService(repo, adapters, selector, mapper,
		generation.WithTransientRetries(cfg.Generation.TransientRetries))
	deps.CreditsService = creditsService.NewService(adapters,
		creditsService.WithQueryTimeout(cfg.Generation.CreditsTimeout))

	if deps.CreditsCache == nil {
		deps.CreditsCache = cache.NewMemoryCache(time.Minute)
		deps.CreditsCacheTTL = 30 * time.Second
	}

	return nil
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(404, gin.H{
			"status":  "error",
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}
