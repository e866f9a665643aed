package providers

import (
	"context"
	"encoding/json"

	"github.com/waveforge/generator-api/internal/models"
)

// GenerationRequest is the provider-agnostic input for a generation task.
// Each adapter translates it into its own wire format.
type GenerationRequest struct {
	Prompt       string `json:"prompt"`
	Tags         string `json:"tags,omitempty"`
	Title        string `json:"title,omitempty"`
	Lyrics       string `json:"lyrics,omitempty"`
	ModelVersion string `json:"model_version,omitempty"`
	Instrumental bool   `json:"instrumental"`
}

// CreditsBalance is a provider's reported remaining balance. Units differ
// between providers; the aggregator reports them side by side rather than
// converting.
type CreditsBalance struct {
	Remaining    float64 `json:"remaining"`
	MonthlyLimit float64 `json:"monthly_limit,omitempty"`
	MonthlyUsage float64 `json:"monthly_usage,omitempty"`
}

// HasCredits returns true if the provider reports a positive balance
func (b *CreditsBalance) HasCredits() bool {
	return b != nil && b.Remaining > 0
}

// Adapter wraps one external music generation API behind a common contract.
// Implementations are stateless and safe for concurrent use; each call makes
// exactly one outbound request (plus internal retries for rate limiting).
type Adapter interface {
	// Name identifies which provider this adapter talks to
	Name() models.Provider

	// CreateTask submits a generation request and returns the provider's task
	// ID along with the raw response body for audit storage
	CreateTask(ctx context.Context, req GenerationRequest) (string, json.RawMessage, error)

	// PollStatus performs a single status check for a previously created task
	PollStatus(ctx context.Context, taskID string) (json.RawMessage, error)

	// GetCredits queries the remaining account balance
	GetCredits(ctx context.Context) (*CreditsBalance, error)
}
