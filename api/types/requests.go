package types

// GenerateRequest represents a music generation request
type GenerateRequest struct {
	Prompt       string `json:"prompt,omitempty" example:"an upbeat synthwave track about summer"`
	Tags         string `json:"tags,omitempty" example:"synthwave, upbeat, retro"`
	Title        string `json:"title,omitempty" example:"Neon Summer"`
	Lyrics       string `json:"lyrics,omitempty"`
	Instrumental bool   `json:"instrumental,omitempty" example:"false"`
	ModelVersion string `json:"model_version,omitempty" example:"chirp-v3-5"`
	Provider     string `json:"provider,omitempty" example:"suno"` // Optional explicit provider; empty means automatic selection
}

// CounterRequest represents a usage counter increment request
type CounterRequest struct {
	Counter string `json:"counter" binding:"required" example:"play_count"` // One of play_count, download_count, share_count
}
