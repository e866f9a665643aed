package types

import "time"

// Core data types used across API responses

// Track represents a generated track with unified metadata
type Track struct {
	ID           string `json:"id"`
	UserID       string `json:"userId,omitempty"`
	Provider     string `json:"provider"`
	APITaskID    string `json:"apiTaskId,omitempty"`
	APIClipID    string `json:"apiClipId,omitempty"`
	Status       string `json:"status"`
	ErrorMessage string `json:"errorMessage,omitempty"`

	Title        string `json:"title,omitempty"`
	Prompt       string `json:"prompt,omitempty"`
	Tags         string `json:"tags,omitempty"`
	Lyrics       string `json:"lyrics,omitempty"`
	Instrumental bool   `json:"instrumental"`
	ModelVersion string `json:"modelVersion,omitempty"`

	DurationSeconds float64 `json:"durationSeconds,omitempty"`
	AudioURL        string  `json:"audioUrl,omitempty"`
	ImageURL        string  `json:"imageUrl,omitempty"`
	VideoURL        string  `json:"videoUrl,omitempty"`

	Tempo       int     `json:"tempo,omitempty"`
	Key         string  `json:"key,omitempty"`
	EnergyLevel float64 `json:"energyLevel,omitempty"`
	Mood        string  `json:"mood,omitempty"`
	Genre       string  `json:"genre,omitempty"`

	CoverageScore       int        `json:"coverageScore"`
	GenerationStartTime *time.Time `json:"generationStartTime,omitempty"`
	GenerationEndTime   *time.Time `json:"generationEndTime,omitempty"`
	LastMetadataUpdate  *time.Time `json:"lastMetadataUpdate,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`

	PlayCount     int `json:"playCount"`
	DownloadCount int `json:"downloadCount"`
	ShareCount    int `json:"shareCount"`
}
