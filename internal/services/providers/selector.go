package providers

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/waveforge/generator-api/internal/models"
)

// ErrNoProviderAvailable is returned when no provider can accept a task
var ErrNoProviderAvailable = errors.New("no provider with available credits")

// Selector chooses which provider receives a new generation task. Selection
// is weighted random across providers that report remaining credits; the
// random source is injectable so tests can force deterministic choices.
type Selector struct {
	adapters []Adapter
	weights  map[models.Provider]int

	mu  sync.Mutex
	rng *rand.Rand
}

// SelectorOption configures a Selector
type SelectorOption func(*Selector)

// WithSeed fixes the random source for deterministic selection
func WithSeed(seed int64) SelectorOption {
	return func(s *Selector) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithWeight sets the selection weight for a provider (default 1)
func WithWeight(provider models.Provider, weight int) SelectorOption {
	return func(s *Selector) {
		if weight > 0 {
			s.weights[provider] = weight
		}
	}
}

// NewSelector creates a selector over the given adapters
func NewSelector(adapters []Adapter, opts ...SelectorOption) *Selector {
	s := &Selector{
		adapters: adapters,
		weights:  make(map[models.Provider]int),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Pick returns the adapter for an explicit preference, or a weighted random
// choice across providers with available credits. Credits checks are
// advisory only; a provider may still reject the task if two concurrent
// submissions race past the same balance.
func (s *Selector) Pick(ctx context.Context, preference models.Provider) (Adapter, error) {
	if preference != "" {
		for _, a := range s.adapters {
			if a.Name() == preference {
				return a, nil
			}
		}
		return nil, &Error{Kind: KindInvalidRequest, Provider: preference, Message: "unknown provider"}
	}

	candidates := make([]Adapter, 0, len(s.adapters))
	for _, a := range s.adapters {
		balance, err := a.GetCredits(ctx)
		if err != nil {
			log.Printf("[WARN] provider=%s credits check failed, excluding from selection: %v", a.Name(), err)
			continue
		}
		if balance.HasCredits() {
			candidates = append(candidates, a)
		}
	}

	if len(candidates) == 0 {
		return nil, ErrNoProviderAvailable
	}

	return s.weightedPick(candidates), nil
}

func (s *Selector) weightedPick(candidates []Adapter) Adapter {
	total := 0
	for _, a := range candidates {
		total += s.weightFor(a.Name())
	}

	s.mu.Lock()
	n := s.rng.Intn(total)
	s.mu.Unlock()

	for _, a := range candidates {
		n -= s.weightFor(a.Name())
		if n < 0 {
			return a
		}
	}
	return candidates[len(candidates)-1]
}

func (s *Selector) weightFor(provider models.Provider) int {
	if w, ok := s.weights[provider]; ok {
		return w
	}
	return 1
}
