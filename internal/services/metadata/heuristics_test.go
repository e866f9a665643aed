package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeTags_TempoAndEnergy(t *testing.T) {
	analyzer := NewAnalyzer()

	tests := []struct {
		name           string
		tags           string
		expectedTempo  int
		expectedEnergy float64
	}{
		{"fast", "fast electronic", 140, 0.8},
		{"upbeat", "upbeat pop", 140, 0.8},
		{"energetic", "energetic dance", 140, 0.8},
		{"slow", "slow acoustic", 80, 0.3},
		{"ballad", "piano ballad", 80, 0.3},
		{"chill", "chill vibes", 90, 0.4},
		{"no cues", "experimental noise", 120, 0.5},
		{"empty tags", "", 120, 0.5},
		{"case insensitive", "UPBEAT Synthwave", 140, 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := analyzer.AnalyzeTags(tt.tags)
			assert.Equal(t, tt.expectedTempo, analysis.Tempo)
			assert.Equal(t, tt.expectedEnergy, analysis.Energy)
		})
	}
}

func TestAnalyzeTags_FirstMatchWins(t *testing.T) {
	analyzer := NewAnalyzer()

	// "fast" precedes "slow" in the cue list, so a tags string containing
	// both resolves to the fast values
	analysis := analyzer.AnalyzeTags("fast intro, slow outro")
	assert.Equal(t, 140, analysis.Tempo)
	assert.Equal(t, 0.8, analysis.Energy)
}

func TestAnalyzeTags_GenreMoodKey(t *testing.T) {
	analyzer := NewAnalyzer()

	analysis := analyzer.AnalyzeTags("dreamy lofi in a minor")
	assert.Equal(t, "lofi", analysis.Genre)
	assert.Equal(t, "dreamy", analysis.Mood)
	assert.Equal(t, "a minor", analysis.Key)
}

func TestAnalyzeTags_UnmatchedAttributesStayEmpty(t *testing.T) {
	analyzer := NewAnalyzer()

	analysis := analyzer.AnalyzeTags("something unusual")
	assert.Empty(t, analysis.Genre)
	assert.Empty(t, analysis.Mood)
	assert.Empty(t, analysis.Key)
}

func TestAnalyzeTags_Deterministic(t *testing.T) {
	analyzer := NewAnalyzer()

	first := analyzer.AnalyzeTags("upbeat jazz, happy, d minor")
	second := analyzer.AnalyzeTags("upbeat jazz, happy, d minor")
	assert.Equal(t, first, second)
}
