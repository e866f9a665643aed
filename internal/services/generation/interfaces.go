package generation

import (
	"context"
	"errors"
	"time"

	"github.com/waveforge/generator-api/internal/models"
	"github.com/waveforge/generator-api/internal/services/providers"
)

var (
	// ErrTrackNotFound is returned when no track matches the lookup
	ErrTrackNotFound = errors.New("track not found")

	// ErrPollTimeout is returned when the polling budget is exhausted while
	// the provider still reports a non-terminal status. This is a local
	// give-up, not proof of provider failure; the same handle can be
	// re-polled later.
	ErrPollTimeout = errors.New("polling budget exhausted before task completed")
)

// Counter names a usage counter on a track
type Counter string

const (
	CounterPlay     Counter = "play_count"
	CounterDownload Counter = "download_count"
	CounterShare    Counter = "share_count"
)

// TaskHandle identifies one in-flight generation task to callers. It is
// returned by Submit and accepted by AwaitCompletion; holding only IDs, it
// survives process restarts.
type TaskHandle struct {
	TrackID   string          `json:"track_id"`
	Provider  models.Provider `json:"provider"`
	APITaskID string          `json:"api_task_id"`
}

// TrackRepository defines the interface for track persistence. All
// operations are atomic at the single-record level; the orchestration layer
// never needs cross-record transactions.
type TrackRepository interface {
	Create(ctx context.Context, track *models.Track) error
	GetByID(ctx context.Context, id string) (*models.Track, error)
	GetByProviderTask(ctx context.Context, provider models.Provider, taskID string) (*models.Track, error)
	Update(ctx context.Context, track *models.Track) error
	ListByUser(ctx context.Context, userID string, page, limit int) ([]models.Track, int64, error)
	IncrementCounter(ctx context.Context, id string, counter Counter) error
}

// Service defines the generation orchestration interface exposed to callers
type Service interface {
	// Submit selects a provider, creates the task, persists the initial
	// pending record, and returns a handle. Never blocks on generation.
	Submit(ctx context.Context, userID string, req providers.GenerationRequest, preference models.Provider) (*TaskHandle, error)

	// AwaitCompletion polls the provider until the task reaches a terminal
	// state or the attempt budget runs out
	AwaitCompletion(ctx context.Context, handle TaskHandle, maxAttempts int, interval time.Duration) (*models.Track, error)

	GetTrack(ctx context.Context, id string) (*models.Track, error)
	ListTracks(ctx context.Context, userID string, page, limit int) ([]models.Track, int64, error)
	IncrementCounter(ctx context.Context, id string, counter Counter) error
}
