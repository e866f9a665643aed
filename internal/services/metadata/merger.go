package metadata

import (
	"log"
	"time"

	"github.com/waveforge/generator-api/internal/models"
)

// Merge combines two partial track records field by field. The primary's
// value always wins when populated; the secondary only backfills empty or
// zero fields. Identity and provenance are taken from the primary
// unconditionally. The merged result gets a recomputed coverage score and a
// fresh metadata timestamp.
//
// The usual call site is a later poll backfilling gaps in an earlier
// persisted record without discarding already-confirmed values.
func Merge(primary, secondary *models.Track) *models.Track {
	if primary == nil && secondary == nil {
		return nil
	}
	if primary == nil {
		merged := *secondary
		return &merged
	}

	merged := *primary
	if secondary == nil {
		return &merged
	}

	if merged.Title == "" {
		merged.Title = secondary.Title
	}
	if merged.Prompt == "" {
		merged.Prompt = secondary.Prompt
	}
	if merged.Tags == "" {
		merged.Tags = secondary.Tags
	}
	if merged.Lyrics == "" {
		merged.Lyrics = secondary.Lyrics
	}
	if merged.ModelVersion == "" {
		merged.ModelVersion = secondary.ModelVersion
	}
	if merged.DurationSeconds == 0 {
		merged.DurationSeconds = secondary.DurationSeconds
	}
	if merged.AudioURL == "" {
		merged.AudioURL = secondary.AudioURL
	}
	if merged.ImageURL == "" {
		merged.ImageURL = secondary.ImageURL
	}
	if merged.VideoURL == "" {
		merged.VideoURL = secondary.VideoURL
	}
	if merged.Tempo == 0 {
		merged.Tempo = secondary.Tempo
	}
	if merged.Key == "" {
		merged.Key = secondary.Key
	}
	if merged.EnergyLevel == 0 {
		merged.EnergyLevel = secondary.EnergyLevel
	}
	if merged.Mood == "" {
		merged.Mood = secondary.Mood
	}
	if merged.Genre == "" {
		merged.Genre = secondary.Genre
	}
	if merged.APIClipID == "" {
		merged.APIClipID = secondary.APIClipID
	}
	if merged.ErrorMessage == "" {
		merged.ErrorMessage = secondary.ErrorMessage
	}
	if merged.GenerationStartTime == nil {
		merged.GenerationStartTime = secondary.GenerationStartTime
	}
	if merged.GenerationEndTime == nil {
		merged.GenerationEndTime = secondary.GenerationEndTime
	}
	if merged.RawResponse.IsZero() {
		merged.RawResponse = secondary.RawResponse
	}

	merged.MetadataCoverageScore = CoverageScore(&merged)
	stamp := time.Now().UTC()
	merged.LastMetadataUpdate = &stamp

	log.Printf("[DEBUG] merged provider=%s taskID=%s coverageScore=%d",
		merged.APIProvider, merged.APITaskID, merged.MetadataCoverageScore)

	return &merged
}
