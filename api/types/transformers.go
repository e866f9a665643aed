package types

import (
	"github.com/waveforge/generator-api/internal/models"
)

// FromTrack transforms a stored track to its API representation
func FromTrack(t *models.Track) *Track {
	if t == nil {
		return nil
	}

	return &Track{
		ID:           t.ID,
		UserID:       t.UserID,
		Provider:     string(t.APIProvider),
		APITaskID:    t.APITaskID,
		APIClipID:    t.APIClipID,
		Status:       string(t.Status),
		ErrorMessage: t.ErrorMessage,

		Title:        t.Title,
		Prompt:       t.Prompt,
		Tags:         t.Tags,
		Lyrics:       t.Lyrics,
		Instrumental: t.IsInstrumental,
		ModelVersion: t.ModelVersion,

		DurationSeconds: t.DurationSeconds,
		AudioURL:        t.AudioURL,
		ImageURL:        t.ImageURL,
		VideoURL:        t.VideoURL,

		Tempo:       t.Tempo,
		Key:         t.Key,
		EnergyLevel: t.EnergyLevel,
		Mood:        t.Mood,
		Genre:       t.Genre,

		CoverageScore:       t.MetadataCoverageScore,
		GenerationStartTime: t.GenerationStartTime,
		GenerationEndTime:   t.GenerationEndTime,
		LastMetadataUpdate:  t.LastMetadataUpdate,
		CreatedAt:           t.CreatedAt,

		PlayCount:     t.PlayCount,
		DownloadCount: t.DownloadCount,
		ShareCount:    t.ShareCount,
	}
}

// FromTrackList transforms a list of stored tracks
func FromTrackList(tracks []models.Track) []Track {
	result := make([]Track, 0, len(tracks))
	for i := range tracks {
		if transformed := FromTrack(&tracks[i]); transformed != nil {
			result = append(result, *transformed)
		}
	}
	return result
}
