package metadata

import (
	"encoding/json"
	"log"
	"time"

	"github.com/waveforge/generator-api/internal/models"
)

// Overrides are caller-supplied values applied after mapping with the
// highest precedence. Nil fields leave the mapped value alone.
type Overrides struct {
	Title  *string
	Prompt *string
	Tags   *string
	Lyrics *string
}

// Mapper normalizes raw provider responses into unified track records.
// Mapping is a pure function of its inputs: identical raw response and
// config always produce identical output, which is what makes re-polling
// idempotent. The clock is injectable so tests can pin timestamps.
type Mapper struct {
	analyzer *Analyzer
	now      func() time.Time
}

// MapperOption configures a Mapper
type MapperOption func(*Mapper)

// WithClock fixes the mapper's clock
func WithClock(now func() time.Time) MapperOption {
	return func(m *Mapper) {
		m.now = now
	}
}

// WithAnalyzer replaces the tag heuristics analyzer
func WithAnalyzer(a *Analyzer) MapperOption {
	return func(m *Mapper) {
		m.analyzer = a
	}
}

// NewMapper creates a mapper with default heuristics and clock
func NewMapper(opts ...MapperOption) *Mapper {
	m := &Mapper{
		analyzer: NewAnalyzer(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// MapResponse converts one provider's raw response into a unified track.
// Steps: extract identity and per-field values via the provider's mapping
// config, run tag heuristics for the audio-analysis attributes, fill
// provider defaults, apply caller overrides last, then compute the coverage
// score and stamp the metadata update time. Shape problems surface as
// warnings on the returned slice; the record is still produced with
// whatever was extracted.
func (m *Mapper) MapResponse(provider models.Provider, raw json.RawMessage, userID, taskID string, overrides *Overrides) (*models.Track, []string, error) {
	cfg, err := ConfigFor(provider)
	if err != nil {
		return nil, nil, err
	}

	track := &models.Track{
		UserID:      userID,
		APIProvider: provider,
		APITaskID:   taskID,
		RawResponse: models.NewRawPayload(provider, raw),
	}

	warnings, err := cfg.Extract(raw, track)
	if err != nil {
		// The envelope itself was undecodable; persistable fields are
		// whatever identity we already have. Callers decide whether to keep
		// the partial record.
		return track, warnings, err
	}

	// Heuristic audio analysis from tags. Advisory values only.
	analysis := m.analyzer.AnalyzeTags(track.Tags)
	track.Tempo = analysis.Tempo
	track.EnergyLevel = analysis.Energy
	if track.Genre == "" {
		track.Genre = analysis.Genre
	}
	if track.Mood == "" {
		track.Mood = analysis.Mood
	}
	if track.Key == "" {
		track.Key = analysis.Key
	}

	cfg.ApplyDefaults(track)

	if overrides != nil {
		if overrides.Title != nil {
			track.Title = *overrides.Title
		}
		if overrides.Prompt != nil {
			track.Prompt = *overrides.Prompt
		}
		if overrides.Tags != nil {
			track.Tags = *overrides.Tags
		}
		if overrides.Lyrics != nil {
			track.Lyrics = *overrides.Lyrics
		}
	}

	track.MetadataCoverageScore = CoverageScore(track)
	stamp := m.now().UTC()
	track.LastMetadataUpdate = &stamp

	log.Printf("[DEBUG] mapped provider=%s taskID=%s coverageScore=%d status=%s",
		provider, taskID, track.MetadataCoverageScore, track.Status)

	return track, warnings, nil
}
