package metadata

import (
	"log"
	"strings"

	"github.com/waveforge/generator-api/internal/models"
)

// Per-provider status vocabularies. Every token a provider is documented to
// emit appears here exactly once; lookups are case-insensitive.
var sunoStatuses = map[string]models.TrackStatus{
	"submitted": models.TrackStatusPending,
	"queued":    models.TrackStatusPending,
	"streaming": models.TrackStatusProcessing,
	"complete":  models.TrackStatusCompleted,
	"error":     models.TrackStatusFailed,
}

var murekaStatuses = map[string]models.TrackStatus{
	"preparing": models.TrackStatusPending,
	"queued":    models.TrackStatusPending,
	"running":   models.TrackStatusProcessing,
	"streaming": models.TrackStatusProcessing,
	"succeeded": models.TrackStatusCompleted,
	"failed":    models.TrackStatusFailed,
	"timeouted": models.TrackStatusFailed,
	"cancelled": models.TrackStatusFailed,
}

// MapStatus translates a provider's raw status token into the unified
// status. Unknown tokens map to Pending with a logged warning: treating
// "unknown" as "not yet terminal" keeps the poller going instead of
// abandoning a task the provider may still finish.
func MapStatus(provider models.Provider, raw string) models.TrackStatus {
	token := strings.ToLower(strings.TrimSpace(raw))

	var table map[string]models.TrackStatus
	switch provider {
	case models.ProviderSuno:
		table = sunoStatuses
	case models.ProviderMureka:
		table = murekaStatuses
	default:
		log.Printf("[WARN] status mapping for unknown provider %q, treating %q as pending", provider, raw)
		return models.TrackStatusPending
	}

	if status, ok := table[token]; ok {
		return status
	}

	log.Printf("[WARN] provider=%s unknown status token %q, treating as pending", provider, raw)
	return models.TrackStatusPending
}
