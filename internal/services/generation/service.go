package generation

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/waveforge/generator-api/internal/models"
	"github.com/waveforge/generator-api/internal/services/metadata"
	"github.com/waveforge/generator-api/internal/services/providers"
)

const (
	// DefaultTransientRetries is how many consecutive transient adapter
	// failures the poller absorbs before escalating. Transient failures do
	// not consume polling attempts.
	DefaultTransientRetries = 3
)

type service struct {
	repo             TrackRepository
	adapters         map[models.Provider]providers.Adapter
	selector         *providers.Selector
	mapper           *metadata.Mapper
	transientRetries int
	now              func() time.Time
	newID            func() string
}

// ServiceOption configures the generation service
type ServiceOption func(*service)

// WithTransientRetries overrides the transient failure sub-budget
func WithTransientRetries(n int) ServiceOption {
	return func(s *service) {
		if n > 0 {
			s.transientRetries = n
		}
	}
}

// WithClock fixes the service clock
func WithClock(now func() time.Time) ServiceOption {
	return func(s *service) {
		s.now = now
	}
}

// WithIDGenerator replaces the internal ID generator
func WithIDGenerator(gen func() string) ServiceOption {
	return func(s *service) {
		s.newID = gen
	}
}

// NewService creates the generation orchestration service
func NewService(repo TrackRepository, adapters []providers.Adapter, selector *providers.Selector, mapper *metadata.Mapper, opts ...ServiceOption) Service {
	s := &service{
		repo:             repo,
		adapters:         make(map[models.Provider]providers.Adapter, len(adapters)),
		selector:         selector,
		mapper:           mapper,
		transientRetries: DefaultTransientRetries,
		now:              time.Now,
		newID:            func() string { return uuid.NewString() },
	}
	for _, a := range adapters {
		s.adapters[a.Name()] = a
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit selects a provider, creates the generation task, and persists the
// initial pending record. The returned handle is available immediately;
// generation itself continues provider-side.
func (s *service) Submit(ctx context.Context, userID string, req providers.GenerationRequest, preference models.Provider) (*TaskHandle, error) {
	if req.Prompt == "" && req.Lyrics == "" {
		return nil, providers.NewInvalidRequest(preference, "prompt or lyrics required", nil)
	}

	adapter, err := s.selector.Pick(ctx, preference)
	if err != nil {
		return nil, fmt.Errorf("selecting provider: %w", err)
	}
	provider := adapter.Name()

	now := s.now().UTC()
	track := &models.Track{
		ID:                  s.newID(),
		UserID:              userID,
		APIProvider:         provider,
		Status:              models.TrackStatusPending,
		Title:               req.Title,
		Prompt:              req.Prompt,
		Tags:                req.Tags,
		Lyrics:              req.Lyrics,
		IsInstrumental:      req.Instrumental,
		ModelVersion:        req.ModelVersion,
		GenerationStartTime: &now,
	}

	taskID, raw, err := adapter.CreateTask(ctx, req)
	if err != nil {
		// A failed create is terminal immediately: persist the failure so the
		// caller has a record, and never schedule polling for it. The
		// internal ID doubles as the task key to keep the provider/task
		// uniqueness index satisfied.
		track.APITaskID = track.ID
		track.MarkFailed(err.Error(), now)
		track.MetadataCoverageScore = metadata.CoverageScore(track)
		if saveErr := s.repo.Create(ctx, track); saveErr != nil {
			log.Printf("[ERROR] provider=%s persisting failed submission: %v", provider, saveErr)
		}
		return nil, fmt.Errorf("creating task with %s: %w", provider, err)
	}

	track.APITaskID = taskID
	track.RawResponse = models.NewRawPayload(provider, raw)
	track.MetadataCoverageScore = metadata.CoverageScore(track)
	track.LastMetadataUpdate = &now

	if err := s.repo.Create(ctx, track); err != nil {
		return nil, fmt.Errorf("persisting track: %w", err)
	}

	log.Printf("[DEBUG] submitted provider=%s taskID=%s trackID=%s user=%s", provider, taskID, track.ID, userID)

	return &TaskHandle{
		TrackID:   track.ID,
		Provider:  provider,
		APITaskID: taskID,
	}, nil
}

func (s *service) GetTrack(ctx context.Context, id string) (*models.Track, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListTracks(ctx context.Context, userID string, page, limit int) ([]models.Track, int64, error) {
	return s.repo.ListByUser(ctx, userID, page, limit)
}

func (s *service) IncrementCounter(ctx context.Context, id string, counter Counter) error {
	return s.repo.IncrementCounter(ctx, id, counter)
}
