package metadata

import "strings"

// Tag heuristic defaults applied when no keyword matches
const (
	defaultTempo  = 120
	defaultEnergy = 0.5
)

// tempoCue pairs a tag keyword with the tempo and energy it implies
type tempoCue struct {
	keyword string
	tempo   int
	energy  float64
}

// Cue lists are scanned in declaration order and the first match wins, so
// the outcome is deterministic for a given tags string. Tests may swap the
// vocabularies on an Analyzer to force specific outcomes.
var defaultTempoCues = []tempoCue{
	{"fast", 140, 0.8},
	{"upbeat", 140, 0.8},
	{"energetic", 140, 0.8},
	{"slow", 80, 0.3},
	{"ballad", 80, 0.3},
	{"chill", 90, 0.4},
	{"relaxed", 90, 0.4},
}

var defaultGenres = []string{
	"pop", "rock", "hip hop", "rap", "jazz", "blues", "classical",
	"electronic", "edm", "house", "techno", "country", "folk", "metal",
	"r&b", "soul", "funk", "reggae", "ambient", "lofi", "indie", "punk",
}

var defaultMoods = []string{
	"happy", "sad", "melancholic", "uplifting", "dark", "dreamy",
	"romantic", "angry", "peaceful", "nostalgic", "epic", "playful",
}

var defaultKeys = []string{
	"c major", "c minor", "d major", "d minor", "e major", "e minor",
	"f major", "f minor", "g major", "g minor", "a major", "a minor",
	"b major", "b minor",
}

// Analysis holds the attributes extracted from a tags string
type Analysis struct {
	Tempo  int
	Energy float64
	Genre  string
	Mood   string
	Key    string
}

// Analyzer extracts approximate audio attributes from free-text tags by
// scanning fixed keyword vocabularies. The results are heuristic guesses,
// not measurements; downstream consumers must treat them as advisory.
type Analyzer struct {
	tempoCues []tempoCue
	genres    []string
	moods     []string
	keys      []string
}

// NewAnalyzer creates an analyzer with the default vocabularies
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		tempoCues: defaultTempoCues,
		genres:    defaultGenres,
		moods:     defaultMoods,
		keys:      defaultKeys,
	}
}

// AnalyzeTags scans a tags string case-insensitively against each
// vocabulary. First keyword match wins per attribute; unmatched attributes
// fall back to tempo 120 / energy 0.5 and empty strings.
func (a *Analyzer) AnalyzeTags(tags string) Analysis {
	result := Analysis{
		Tempo:  defaultTempo,
		Energy: defaultEnergy,
	}

	if tags == "" {
		return result
	}
	lower := strings.ToLower(tags)

	for _, cue := range a.tempoCues {
		if strings.Contains(lower, cue.keyword) {
			result.Tempo = cue.tempo
			result.Energy = cue.energy
			break
		}
	}

	for _, genre := range a.genres {
		if strings.Contains(lower, genre) {
			result.Genre = genre
			break
		}
	}

	for _, mood := range a.moods {
		if strings.Contains(lower, mood) {
			result.Mood = mood
			break
		}
	}

	for _, key := range a.keys {
		if strings.Contains(lower, key) {
			result.Key = key
			break
		}
	}

	return result
}
