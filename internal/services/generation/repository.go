package generation

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/waveforge/generator-api/internal/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new GORM-backed track repository
func NewRepository(db *gorm.DB) TrackRepository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, track *models.Track) error {
	if err := r.db.WithContext(ctx).Create(track).Error; err != nil {
		return fmt.Errorf("creating track: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*models.Track, error) {
	var track models.Track
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&track).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrackNotFound
		}
		return nil, fmt.Errorf("getting track by id: %w", err)
	}
	return &track, nil
}

func (r *repository) GetByProviderTask(ctx context.Context, provider models.Provider, taskID string) (*models.Track, error) {
	var track models.Track
	err := r.db.WithContext(ctx).
		Where("api_provider = ? AND api_task_id = ?", provider, taskID).
		First(&track).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrackNotFound
		}
		return nil, fmt.Errorf("getting track by provider task: %w", err)
	}
	return &track, nil
}

func (r *repository) Update(ctx context.Context, track *models.Track) error {
	result := r.db.WithContext(ctx).Save(track)
	if result.Error != nil {
		return fmt.Errorf("updating track: %w", result.Error)
	}
	return nil
}

func (r *repository) ListByUser(ctx context.Context, userID string, page, limit int) ([]models.Track, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var total int64
	query := r.db.WithContext(ctx).Model(&models.Track{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting tracks: %w", err)
	}

	var tracks []models.Track
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&tracks).Error
	if err != nil {
		return nil, 0, fmt.Errorf("listing tracks: %w", err)
	}

	return tracks, total, nil
}

func (r *repository) IncrementCounter(ctx context.Context, id string, counter Counter) error {
	column := string(counter)
	switch counter {
	case CounterPlay, CounterDownload, CounterShare:
	default:
		return fmt.Errorf("unknown counter %q", counter)
	}

	result := r.db.WithContext(ctx).
		Model(&models.Track{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + 1"))
	if result.Error != nil {
		return fmt.Errorf("incrementing %s: %w", column, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTrackNotFound
	}
	return nil
}
