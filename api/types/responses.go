package types

import "time"

// Status constants for API responses
const (
	StatusOK         = "ok"
	StatusError      = "error"
	StatusProcessing = "processing"
	StatusFailed     = "failed"
	StatusQueued     = "queued"
)

// BaseResponse contains fields common to all API responses
type BaseResponse struct {
	Status  string `json:"status"`  // One of the Status constants above
	Message string `json:"message"` // Human-readable message
}

// GenerateResponse for generation submissions
type GenerateResponse struct {
	BaseResponse
	TrackID   string `json:"trackId"`
	Provider  string `json:"provider"`
	APITaskID string `json:"apiTaskId"`
}

// SingleTrackResponse for getting a single track
type SingleTrackResponse struct {
	BaseResponse
	Track *Track `json:"track"`
}

// TracksResponse for track lists
type TracksResponse struct {
	BaseResponse
	Tracks []Track `json:"tracks"`
	Count  int     `json:"count"`           // Number of results in this response
	Total  int64   `json:"total,omitempty"` // Total available results (if known)
	Page   int     `json:"page,omitempty"`
	Limit  int     `json:"limit,omitempty"`
}

// ProviderCreditsInfo is one provider's balance within a credits response
type ProviderCreditsInfo struct {
	Provider     string  `json:"provider"`
	Success      bool    `json:"success"`
	Error        string  `json:"error,omitempty"`
	Remaining    float64 `json:"remaining"`
	MonthlyLimit float64 `json:"monthlyLimit,omitempty"`
	MonthlyUsage float64 `json:"monthlyUsage,omitempty"`
}

// CreditsResponse for the combined credits endpoint
type CreditsResponse struct {
	BaseResponse
	Providers      []ProviderCreditsInfo `json:"providers"`
	TotalRemaining float64               `json:"totalRemaining"`
	CheckedAt      time.Time             `json:"checkedAt"`
}

// ErrorResponse for detailed error information
type ErrorResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`   // Error code/type
	Details interface{} `json:"details,omitempty"` // Additional error details
}

// HealthResponse for health check endpoint
type HealthResponse struct {
	BaseResponse
	Version  string                 `json:"version,omitempty"`
	Services map[string]interface{} `json:"services,omitempty"`
}
