package generation

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/waveforge/generator-api/internal/models"
	"github.com/waveforge/generator-api/internal/services/metadata"
	"github.com/waveforge/generator-api/internal/services/providers"
)

// AwaitCompletion polls the provider for the task behind the handle until a
// terminal state or the attempt budget runs out. The loop sleeps first, so a
// freshly submitted task gets one interval of grace before its first check.
//
// Exhausting the budget returns ErrPollTimeout without touching the
// persisted record: the task may still complete provider-side, and a later
// call with the same handle resumes cleanly. A track that is already
// terminal is returned frozen without any polling.
func (s *service) AwaitCompletion(ctx context.Context, handle TaskHandle, maxAttempts int, interval time.Duration) (*models.Track, error) {
	if maxAttempts <= 0 {
		maxAttempts = 60
	}
	if interval <= 0 {
		interval = 5 * time.Second
	}

	adapter, ok := s.adapters[handle.Provider]
	if !ok {
		return nil, fmt.Errorf("no adapter for provider %q", handle.Provider)
	}

	stored, err := s.repo.GetByID(ctx, handle.TrackID)
	if err != nil {
		return nil, err
	}
	if stored.IsTerminal() {
		return stored, nil
	}

	transientFailures := 0
	for attempt := 0; attempt < maxAttempts; {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(interval):
		}

		raw, err := adapter.PollStatus(ctx, handle.APITaskID)
		if err != nil {
			if providers.IsRetryable(err) {
				// Transient failures have their own sub-budget and do not
				// consume polling attempts.
				transientFailures++
				if transientFailures >= s.transientRetries {
					return nil, fmt.Errorf("provider %s unavailable after %d consecutive failures: %w",
						handle.Provider, transientFailures, err)
				}
				log.Printf("[WARN] provider=%s taskID=%s transient poll failure %d/%d: %v",
					handle.Provider, handle.APITaskID, transientFailures, s.transientRetries, err)
				continue
			}
			// InvalidRequest and NotFound escalate immediately
			return nil, err
		}
		transientFailures = 0
		attempt++

		mapped, warnings, mapErr := s.mapper.MapResponse(handle.Provider, raw, stored.UserID, handle.APITaskID, nil)
		for _, w := range warnings {
			log.Printf("[WARN] provider=%s taskID=%s mapping: %s", handle.Provider, handle.APITaskID, w)
		}
		if mapErr != nil {
			// The envelope did not decode. Whatever identity was extracted is
			// kept, the problem is logged, and polling continues: the next
			// response may be well formed.
			log.Printf("[WARN] provider=%s taskID=%s undecodable response, continuing: %v",
				handle.Provider, handle.APITaskID, mapErr)
			continue
		}

		merged := s.adopt(mapped, stored)

		if !merged.IsTerminal() {
			// Persist the status transition (pending -> processing) and any
			// newly streamed fields, then keep polling.
			if merged.Status != stored.Status || merged.MetadataCoverageScore != stored.MetadataCoverageScore {
				if err := s.repo.Update(ctx, merged); err != nil {
					log.Printf("[ERROR] provider=%s taskID=%s persisting interim state: %v",
						handle.Provider, handle.APITaskID, err)
				} else {
					stored = merged
				}
			}
			continue
		}

		result := metadata.Validate(merged, handle.Provider)
		merged.MetadataCoverageScore = result.CoverageScore
		if !result.IsValid {
			log.Printf("[WARN] provider=%s taskID=%s terminal record invalid: missing=%v errors=%v",
				handle.Provider, handle.APITaskID, result.MissingRequired, result.Errors)
		}

		if merged.GenerationEndTime == nil {
			end := s.now().UTC()
			merged.GenerationEndTime = &end
		}

		if err := s.repo.Update(ctx, merged); err != nil {
			return nil, fmt.Errorf("persisting terminal track: %w", err)
		}

		log.Printf("[DEBUG] completed provider=%s taskID=%s status=%s coverageScore=%d",
			handle.Provider, handle.APITaskID, merged.Status, merged.MetadataCoverageScore)

		return merged, nil
	}

	return nil, ErrPollTimeout
}

// adopt merges a freshly mapped record over the stored one. The new poll is
// the primary (most recent write wins); the stored record backfills gaps and
// contributes identity, creation time, and usage counters, which mapping
// never produces.
func (s *service) adopt(mapped, stored *models.Track) *models.Track {
	mapped.ID = stored.ID
	mapped.CreatedAt = stored.CreatedAt
	mapped.IsInstrumental = stored.IsInstrumental || mapped.IsInstrumental
	mapped.PlayCount = stored.PlayCount
	mapped.DownloadCount = stored.DownloadCount
	mapped.ShareCount = stored.ShareCount

	return metadata.Merge(mapped, stored)
}
