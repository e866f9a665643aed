package mureka

// generateRequest is the payload for the Mureka song generation endpoint
type generateRequest struct {
	Lyrics string `json:"lyrics,omitempty"`
	Prompt string `json:"prompt,omitempty"`
	Model  string `json:"model,omitempty"` // e.g. "mureka-6"
}

// Task is Mureka's view of a generation task. Unlike Suno's flat clip list,
// Mureka wraps everything in a single task object with a choices array that
// fills in as generation progresses. Durations are reported in milliseconds.
type Task struct {
	ID         string   `json:"id"`
	Status     string   `json:"status"` // preparing, queued, running, streaming, succeeded, failed, timeouted, cancelled
	Model      string   `json:"model"`
	CreatedAt  int64    `json:"created_at"` // unix seconds
	FinishedAt int64    `json:"finished_at,omitempty"`
	FailedMsg  string   `json:"failed_reason,omitempty"`
	Choices    []Choice `json:"choices,omitempty"`
}

// Choice is one candidate song within a Mureka task
type Choice struct {
	Index      int    `json:"index"`
	URL        string `json:"url"`
	FlacURL    string `json:"flac_url,omitempty"`
	VideoURL   string `json:"video_url,omitempty"`
	ImageURL   string `json:"image_url,omitempty"`
	Duration   int64  `json:"duration"` // milliseconds
	Lyrics     string `json:"lyrics_sections,omitempty"`
	Title      string `json:"title,omitempty"`
	Tags       string `json:"tags,omitempty"`
}

// billingResponse is the account balance payload. Amounts are in cents.
type billingResponse struct {
	AccountID     int64   `json:"account_id"`
	Balance       float64 `json:"balance"`
	TotalRecharge float64 `json:"total_recharge"`
	TotalSpending float64 `json:"total_spending"`
}
