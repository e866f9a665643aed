package credits

import (
	"time"

	"github.com/waveforge/generator-api/internal/models"
)

// ProviderCredits is one provider's balance as seen during an aggregate
// check. A failed query still produces an entry with Success=false so the
// caller can tell "provider down" apart from "zero balance".
type ProviderCredits struct {
	Provider     models.Provider `json:"provider"`
	Success      bool            `json:"success"`
	Error        string          `json:"error,omitempty"`
	Remaining    float64         `json:"remaining"`
	MonthlyLimit float64         `json:"monthly_limit,omitempty"`
	MonthlyUsage float64         `json:"monthly_usage,omitempty"`
}

// Summary combines every provider's balance into one report. TotalRemaining
// sums only the providers whose query succeeded.
type Summary struct {
	Providers      []ProviderCredits `json:"providers"`
	TotalRemaining float64           `json:"total_remaining"`
	CheckedAt      time.Time         `json:"checked_at"`
}

// AllAvailable returns true if every provider reported successfully
func (s *Summary) AllAvailable() bool {
	for _, p := range s.Providers {
		if !p.Success {
			return false
		}
	}
	return len(s.Providers) > 0
}
