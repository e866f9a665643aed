package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Provider identifies which external music generation service produced a track
type Provider string

const (
	ProviderSuno   Provider = "suno"
	ProviderMureka Provider = "mureka"
)

// Valid returns true if the provider is one of the known services
func (p Provider) Valid() bool {
	return p == ProviderSuno || p == ProviderMureka
}

// TrackStatus represents the lifecycle state of a generation task
type TrackStatus string

const (
	TrackStatusPending    TrackStatus = "pending"
	TrackStatusProcessing TrackStatus = "processing"
	TrackStatusCompleted  TrackStatus = "completed"
	TrackStatusFailed     TrackStatus = "failed"
)

// IsTerminal returns true if no further polling should occur for this status
func (s TrackStatus) IsTerminal() bool {
	return s == TrackStatusCompleted || s == TrackStatusFailed
}

// rawPayloadSchemaVersion is bumped whenever the envelope layout changes
const rawPayloadSchemaVersion = 1

// RawPayload wraps the unmodified provider response for audit and replay.
// The body is kept as opaque JSON and only decoded when debugging; the hot
// path never reaches into it.
type RawPayload struct {
	Provider      Provider        `json:"provider"`
	SchemaVersion int             `json:"schema_version"`
	Body          json.RawMessage `json:"body"`
}

// NewRawPayload builds a versioned envelope around a raw provider response
func NewRawPayload(provider Provider, body json.RawMessage) RawPayload {
	return RawPayload{
		Provider:      provider,
		SchemaVersion: rawPayloadSchemaVersion,
		Body:          body,
	}
}

// IsZero reports whether the payload holds no captured response
func (r RawPayload) IsZero() bool {
	return r.Provider == "" && len(r.Body) == 0
}

// Value implements driver.Valuer interface for RawPayload
func (r RawPayload) Value() (driver.Value, error) {
	if r.IsZero() {
		return nil, nil
	}
	return json.Marshal(r)
}

// Scan implements sql.Scanner interface for RawPayload
func (r *RawPayload) Scan(value interface{}) error {
	if value == nil {
		*r = RawPayload{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(bytes, r)
}

// Track is the canonical record for one generated song, regardless of which
// provider produced it. Uniqueness of the originating request is guaranteed
// by (api_provider, api_task_id); the internal ID is stable once assigned.
type Track struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	UserID    string    `json:"user_id" gorm:"index;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Provenance
	APIProvider Provider   `json:"api_provider" gorm:"not null;uniqueIndex:idx_tracks_provider_task"`
	APITaskID   string     `json:"api_task_id" gorm:"not null;uniqueIndex:idx_tracks_provider_task"`
	APIClipID   string     `json:"api_clip_id,omitempty"`
	RawResponse RawPayload `json:"-" gorm:"type:json"`

	// Generation inputs
	Title          string `json:"title"`
	Prompt         string `json:"prompt"`
	Tags           string `json:"tags"`
	Lyrics         string `json:"lyrics"`
	IsInstrumental bool   `json:"is_instrumental"`
	ModelVersion   string `json:"model_version"`

	// Generation outputs
	DurationSeconds float64 `json:"duration_seconds"`
	AudioURL        string  `json:"audio_url"`
	ImageURL        string  `json:"image_url"`
	VideoURL        string  `json:"video_url"`

	// Derived audio analysis. These values come from tag keyword heuristics,
	// not from signal analysis; consumers must not treat them as authoritative.
	Tempo       int     `json:"tempo"`
	Key         string  `json:"key"`
	EnergyLevel float64 `json:"energy_level"`
	Mood        string  `json:"mood"`
	Genre       string  `json:"genre"`

	// Lifecycle
	Status              TrackStatus `json:"status" gorm:"default:'pending';index"`
	GenerationStartTime *time.Time  `json:"generation_start_time,omitempty"`
	GenerationEndTime   *time.Time  `json:"generation_end_time,omitempty"`
	ErrorMessage        string      `json:"error_message,omitempty"`

	// Quality metadata
	MetadataCoverageScore int        `json:"metadata_coverage_score"` // 0-100
	LastMetadataUpdate    *time.Time `json:"last_metadata_update,omitempty"`

	// Usage counters
	PlayCount     int `json:"play_count" gorm:"default:0"`
	DownloadCount int `json:"download_count" gorm:"default:0"`
	ShareCount    int `json:"share_count" gorm:"default:0"`
}

// IsTerminal returns true if the track has reached a final state
func (t *Track) IsTerminal() bool {
	return t.Status.IsTerminal()
}

// CanPoll returns true if the track's provider task should still be polled
func (t *Track) CanPoll() bool {
	return !t.IsTerminal() && t.APITaskID != ""
}

// MarkFailed transitions the track to its terminal failed state. Terminal
// states never revert, so a completed track is left untouched.
func (t *Track) MarkFailed(message string, at time.Time) {
	if t.IsTerminal() {
		return
	}
	t.Status = TrackStatusFailed
	t.ErrorMessage = message
	t.GenerationEndTime = &at
}

// TableName specifies the table name for GORM
func (Track) TableName() string {
	return "tracks"
}
