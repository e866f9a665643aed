package credits

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/waveforge/generator-api/internal/services/providers"
)

const defaultQueryTimeout = 10 * time.Second

// Service aggregates credit balances across all configured providers
type Service struct {
	adapters     []providers.Adapter
	queryTimeout time.Duration
	now          func() time.Time
}

// Option configures the credits service
type Option func(*Service)

// WithQueryTimeout sets the per-provider query timeout
func WithQueryTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.queryTimeout = d
		}
	}
}

// WithClock fixes the service clock
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a credits aggregation service
func NewService(adapters []providers.Adapter, opts ...Option) *Service {
	s := &Service{
		adapters:     adapters,
		queryTimeout: defaultQueryTimeout,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetCombinedCredits queries every provider concurrently, each under its own
// timeout. One provider failing never fails the aggregate: its entry carries
// success=false and the error message while the combined total is computed
// from the providers that answered.
func (s *Service) GetCombinedCredits(ctx context.Context) *Summary {
	results := make([]ProviderCredits, len(s.adapters))

	var wg sync.WaitGroup
	for i, adapter := range s.adapters {
		wg.Add(1)
		go func(i int, adapter providers.Adapter) {
			defer wg.Done()

			queryCtx, cancel := context.WithTimeout(ctx, s.queryTimeout)
			defer cancel()

			entry := ProviderCredits{Provider: adapter.Name()}
			balance, err := adapter.GetCredits(queryCtx)
			if err != nil {
				entry.Error = err.Error()
				log.Printf("[WARN] provider=%s credits query failed: %v", adapter.Name(), err)
			} else {
				entry.Success = true
				entry.Remaining = balance.Remaining
				entry.MonthlyLimit = balance.MonthlyLimit
				entry.MonthlyUsage = balance.MonthlyUsage
			}
			results[i] = entry
		}(i, adapter)
	}
	wg.Wait()

	sort.Slice(results, func(i, j int) bool {
		return results[i].Provider < results[j].Provider
	})

	summary := &Summary{
		Providers: results,
		CheckedAt: s.now().UTC(),
	}
	for _, entry := range results {
		if entry.Success {
			summary.TotalRemaining += entry.Remaining
		}
	}

	return summary
}
