package metadata

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/waveforge/generator-api/internal/models"
	"github.com/waveforge/generator-api/internal/services/mureka"
	"github.com/waveforge/generator-api/internal/services/providers"
	"github.com/waveforge/generator-api/internal/services/suno"
)

// Field names used by mapping configs and the validator checklist
const (
	FieldTitle           = "title"
	FieldPrompt          = "prompt"
	FieldTags            = "tags"
	FieldLyrics          = "lyrics"
	FieldModelVersion    = "model_version"
	FieldDurationSeconds = "duration_seconds"
	FieldAudioURL        = "audio_url"
	FieldImageURL        = "image_url"
	FieldVideoURL        = "video_url"
	FieldTempo           = "tempo"
	FieldKey             = "key"
	FieldEnergyLevel     = "energy_level"
	FieldMood            = "mood"
	FieldGenre           = "genre"
	FieldAPITaskID       = "api_task_id"
	FieldAPIClipID       = "api_clip_id"
	FieldGenStartTime    = "generation_start_time"
	FieldGenEndTime      = "generation_end_time"
)

// Config describes how one provider's raw responses map onto the unified
// track record. Each provider gets its own typed implementation selected by
// the provider enum; there is no runtime field-name dispatch.
type Config interface {
	Provider() models.Provider

	// RequiredFields lists fields that must be populated for a record from
	// this provider to be considered valid
	RequiredFields() []string

	// OptionalFields lists fields this provider can populate but may omit
	OptionalFields() []string

	// Extract decodes a raw status response into the track, applying the
	// provider's field transformations. Shape problems on individual fields
	// are reported as warnings; only an undecodable envelope is an error.
	Extract(raw json.RawMessage, track *models.Track) ([]string, error)

	// ApplyDefaults fills provider defaults into any field still unset
	ApplyDefaults(track *models.Track)
}

// ConfigFor returns the mapping config for a provider
func ConfigFor(provider models.Provider) (Config, error) {
	switch provider {
	case models.ProviderSuno:
		return sunoConfig{}, nil
	case models.ProviderMureka:
		return murekaConfig{}, nil
	default:
		return nil, fmt.Errorf("no mapping config for provider %q", provider)
	}
}

// sunoConfig maps Suno's flat clip-list responses
type sunoConfig struct{}

func (sunoConfig) Provider() models.Provider {
	return models.ProviderSuno
}

func (sunoConfig) RequiredFields() []string {
	return []string{FieldAPITaskID, FieldAudioURL, FieldDurationSeconds}
}

func (sunoConfig) OptionalFields() []string {
	return []string{
		FieldTitle, FieldPrompt, FieldTags, FieldLyrics, FieldModelVersion,
		FieldImageURL, FieldVideoURL, FieldTempo, FieldKey, FieldEnergyLevel,
		FieldMood, FieldGenre, FieldAPIClipID, FieldGenStartTime, FieldGenEndTime,
	}
}

func (sunoConfig) Extract(raw json.RawMessage, track *models.Track) ([]string, error) {
	var clips []suno.Clip
	if err := json.Unmarshal(raw, &clips); err != nil {
		return nil, providers.NewMappingError(models.ProviderSuno, "decoding clip list", err)
	}
	if len(clips) == 0 {
		return nil, providers.NewMappingError(models.ProviderSuno, "empty clip list", nil)
	}

	// Prefer the first clip that finished with audio; fall back to the first
	clip := clips[0]
	for i := range clips {
		if clips[i].AudioURL != "" {
			clip = clips[i]
			break
		}
	}

	var warnings []string

	track.APIClipID = clip.ID
	track.Status = MapStatus(models.ProviderSuno, clip.Status)
	track.Title = clip.Title
	track.Lyrics = clip.Lyric
	track.AudioURL = clip.AudioURL
	track.ImageURL = clip.ImageURL
	track.VideoURL = clip.VideoURL
	track.ModelVersion = clip.ModelName
	track.Tags = clip.Metadata.Tags
	track.Prompt = clip.Metadata.Prompt
	track.DurationSeconds = clip.Metadata.Duration

	if clip.Metadata.ErrorMessage != "" {
		track.ErrorMessage = clip.Metadata.ErrorMessage
	}

	if clip.CreatedAt != "" {
		if ts, err := time.Parse(time.RFC3339, clip.CreatedAt); err == nil {
			track.GenerationStartTime = &ts
		} else {
			warnings = append(warnings, fmt.Sprintf("unparseable created_at %q", clip.CreatedAt))
		}
	}

	if track.Status == models.TrackStatusCompleted && clip.AudioURL == "" {
		warnings = append(warnings, "clip reported complete without audio_url")
	}

	return warnings, nil
}

func (sunoConfig) ApplyDefaults(track *models.Track) {
	if track.ModelVersion == "" {
		track.ModelVersion = "chirp-v3-5"
	}
	if track.Title == "" {
		track.Title = "Untitled"
	}
}

// murekaConfig maps Mureka's task-object responses
type murekaConfig struct{}

func (murekaConfig) Provider() models.Provider {
	return models.ProviderMureka
}

func (murekaConfig) RequiredFields() []string {
	return []string{FieldAPITaskID, FieldAudioURL, FieldDurationSeconds}
}

func (murekaConfig) OptionalFields() []string {
	return []string{
		FieldTitle, FieldPrompt, FieldTags, FieldLyrics, FieldModelVersion,
		FieldImageURL, FieldVideoURL, FieldTempo, FieldKey, FieldEnergyLevel,
		FieldMood, FieldGenre, FieldAPIClipID, FieldGenStartTime, FieldGenEndTime,
	}
}

func (murekaConfig) Extract(raw json.RawMessage, track *models.Track) ([]string, error) {
	var task mureka.Task
	if err := json.Unmarshal(raw, &task); err != nil {
		return nil, providers.NewMappingError(models.ProviderMureka, "decoding task", err)
	}
	if task.ID == "" {
		return nil, providers.NewMappingError(models.ProviderMureka, "task missing id", nil)
	}

	var warnings []string

	track.Status = MapStatus(models.ProviderMureka, task.Status)
	track.ModelVersion = task.Model

	if task.FailedMsg != "" {
		track.ErrorMessage = task.FailedMsg
	}
	if task.CreatedAt > 0 {
		ts := time.Unix(task.CreatedAt, 0).UTC()
		track.GenerationStartTime = &ts
	}
	if task.FinishedAt > 0 {
		ts := time.Unix(task.FinishedAt, 0).UTC()
		track.GenerationEndTime = &ts
	}

	if len(task.Choices) > 0 {
		choice := task.Choices[0]
		track.APIClipID = fmt.Sprintf("%s-%d", task.ID, choice.Index)
		track.AudioURL = choice.URL
		track.ImageURL = choice.ImageURL
		track.VideoURL = choice.VideoURL
		track.Title = choice.Title
		track.Tags = choice.Tags
		track.Lyrics = choice.Lyrics
		// Mureka reports duration in milliseconds
		track.DurationSeconds = float64(choice.Duration) / 1000.0
	} else if track.Status == models.TrackStatusCompleted {
		warnings = append(warnings, "task reported succeeded without choices")
	}

	return warnings, nil
}

func (murekaConfig) ApplyDefaults(track *models.Track) {
	if track.ModelVersion == "" {
		track.ModelVersion = "mureka-6"
	}
	if track.Title == "" {
		track.Title = "Untitled"
	}
}
