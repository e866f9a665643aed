package suno

// generateRequest is the payload for the Suno generate endpoint
type generateRequest struct {
	Prompt           string `json:"prompt"`
	Tags             string `json:"tags,omitempty"`
	Title            string `json:"title,omitempty"`
	MV               string `json:"mv,omitempty"` // model version, e.g. "chirp-v3-5"
	MakeInstrumental bool   `json:"make_instrumental"`
	WaitAudio        bool   `json:"wait_audio"`
}

// Clip is one generated audio clip as Suno reports it. A single generate
// call usually yields two clips; the first clip's ID doubles as the task ID
// for later polling.
type Clip struct {
	ID        string       `json:"id"`
	Status    string       `json:"status"` // submitted, queued, streaming, complete, error
	Title     string       `json:"title"`
	Lyric     string       `json:"lyric"`
	AudioURL  string       `json:"audio_url"`
	ImageURL  string       `json:"image_url"`
	VideoURL  string       `json:"video_url"`
	ModelName string       `json:"model_name"`
	CreatedAt string       `json:"created_at"`
	Metadata  ClipMetadata `json:"metadata"`
}

// ClipMetadata carries the generation parameters Suno echoes back
type ClipMetadata struct {
	Tags         string  `json:"tags"`
	Prompt       string  `json:"prompt"`
	GPTPrompt    string  `json:"gpt_description_prompt"`
	Duration     float64 `json:"duration"`
	ErrorMessage string  `json:"error_message"`
}

// limitResponse is the credits endpoint payload
type limitResponse struct {
	CreditsLeft  float64 `json:"credits_left"`
	Period       string  `json:"period"`
	MonthlyLimit float64 `json:"monthly_limit"`
	MonthlyUsage float64 `json:"monthly_usage"`
}
