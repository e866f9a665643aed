package types

import (
	"time"

	"github.com/waveforge/generator-api/internal/database"
	"github.com/waveforge/generator-api/internal/services/cache"
	"github.com/waveforge/generator-api/internal/services/credits"
	"github.com/waveforge/generator-api/internal/services/generation"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB                *database.DB
	GenerationService generation.Service
	CreditsService    *credits.Service

	// CreditsCache absorbs repeated credits reads so each request does not
	// fan out to every provider. A nil cache disables caching.
	CreditsCache    cache.Cache
	CreditsCacheTTL time.Duration

	// Polling settings handed to background completion watchers
	PollInterval    time.Duration
	MaxPollAttempts int
}
