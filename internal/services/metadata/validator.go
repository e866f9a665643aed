package metadata

import (
	"fmt"
	"log"
	"math"

	"github.com/waveforge/generator-api/internal/models"
)

// coverageChecklist is the fixed set of fields counted toward the coverage
// score. The score is populated/len rounded to the nearest percent.
var coverageChecklist = []string{
	FieldTitle,
	FieldPrompt,
	FieldTags,
	FieldLyrics,
	FieldModelVersion,
	FieldDurationSeconds,
	FieldAudioURL,
	FieldImageURL,
	FieldVideoURL,
	FieldTempo,
	FieldKey,
	FieldEnergyLevel,
	FieldMood,
	FieldGenre,
	FieldAPITaskID,
	FieldAPIClipID,
	FieldGenStartTime,
	FieldGenEndTime,
}

const lowCoverageThreshold = 60

// fieldPopulated reports whether a checklist field holds a usable value.
// Empty strings and zeroes count as unpopulated.
func fieldPopulated(track *models.Track, field string) bool {
	switch field {
	case FieldTitle:
		return track.Title != ""
	case FieldPrompt:
		return track.Prompt != ""
	case FieldTags:
		return track.Tags != ""
	case FieldLyrics:
		return track.Lyrics != ""
	case FieldModelVersion:
		return track.ModelVersion != ""
	case FieldDurationSeconds:
		return track.DurationSeconds != 0
	case FieldAudioURL:
		return track.AudioURL != ""
	case FieldImageURL:
		return track.ImageURL != ""
	case FieldVideoURL:
		return track.VideoURL != ""
	case FieldTempo:
		return track.Tempo != 0
	case FieldKey:
		return track.Key != ""
	case FieldEnergyLevel:
		return track.EnergyLevel != 0
	case FieldMood:
		return track.Mood != ""
	case FieldGenre:
		return track.Genre != ""
	case FieldAPITaskID:
		return track.APITaskID != ""
	case FieldAPIClipID:
		return track.APIClipID != ""
	case FieldGenStartTime:
		return track.GenerationStartTime != nil && !track.GenerationStartTime.IsZero()
	case FieldGenEndTime:
		return track.GenerationEndTime != nil && !track.GenerationEndTime.IsZero()
	default:
		return false
	}
}

// Validate scores a track's metadata completeness against the fixed
// checklist and the provider's required fields. Validation never fails
// outright; problems are expressed as data so a partial record stays usable.
func Validate(track *models.Track, provider models.Provider) models.ValidationResult {
	result := models.ValidationResult{IsValid: true}

	cfg, err := ConfigFor(provider)
	if err != nil {
		result.IsValid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	populated := 0
	populatedSet := make(map[string]bool, len(coverageChecklist))
	for _, field := range coverageChecklist {
		if fieldPopulated(track, field) {
			populated++
			populatedSet[field] = true
		}
	}
	result.CoverageScore = int(math.Round(float64(populated) / float64(len(coverageChecklist)) * 100))

	for _, field := range cfg.RequiredFields() {
		if !fieldPopulated(track, field) {
			result.MissingRequired = append(result.MissingRequired, field)
			result.IsValid = false
		}
	}
	for _, field := range cfg.OptionalFields() {
		if !populatedSet[field] && !fieldPopulated(track, field) {
			result.MissingOptional = append(result.MissingOptional, field)
		}
	}

	// A record without playable audio is unusable downstream no matter how
	// complete the rest of its metadata is.
	if track.AudioURL == "" {
		result.Errors = append(result.Errors, "audio_url is empty: record has no playable audio")
	}

	if result.CoverageScore < lowCoverageThreshold {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("coverage score %d%% is below %d%%", result.CoverageScore, lowCoverageThreshold))
	}

	// Zero duration is plausible for edge cases but usually means the
	// generation never finished, so it warns rather than errors.
	if track.DurationSeconds == 0 {
		result.Warnings = append(result.Warnings, "duration is zero: generation may be incomplete")
	}

	log.Printf("[DEBUG] validated provider=%s taskID=%s coverageScore=%d valid=%t errors=%d warnings=%d",
		provider, track.APITaskID, result.CoverageScore, result.IsValid, len(result.Errors), len(result.Warnings))

	return result
}

// CoverageScore computes just the score without the full validation pass
func CoverageScore(track *models.Track) int {
	populated := 0
	for _, field := range coverageChecklist {
		if fieldPopulated(track, field) {
			populated++
		}
	}
	return int(math.Round(float64(populated) / float64(len(coverageChecklist)) * 100))
}
