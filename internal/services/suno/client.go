package suno

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/waveforge/generator-api/internal/models"
	"github.com/waveforge/generator-api/internal/services/providers"
)

// Config holds configuration for the Suno client
type Config struct {
	APIToken          string
	BaseURL           string
	UserAgent         string
	Timeout           time.Duration
	RequestsPerMinute int
	BurstSize         int
}

// Client handles communication with the Suno API
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	baseURL     string
	apiToken    string
	userAgent   string
}

// Ensure Client implements the provider adapter contract
var _ providers.Adapter = (*Client)(nil)

// NewClient creates a new Suno API client
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://studio-api.suno.ai"
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "WaveforgeGeneratorAPI/1.0"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RequestsPerMinute == 0 {
		cfg.RequestsPerMinute = 60
	}
	if cfg.BurstSize == 0 {
		cfg.BurstSize = 5
	}

	limiter := rate.NewLimiter(
		rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)),
		cfg.BurstSize,
	)

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		rateLimiter: limiter,
		baseURL:     cfg.BaseURL,
		apiToken:    cfg.APIToken,
		userAgent:   cfg.UserAgent,
	}
}

// Name identifies this adapter's provider
func (c *Client) Name() models.Provider {
	return models.ProviderSuno
}

// CreateTask submits a generation request. Suno responds with the initial
// clip list; the first clip ID becomes the task ID for polling.
func (c *Client) CreateTask(ctx context.Context, req providers.GenerationRequest) (string, json.RawMessage, error) {
	payload := generateRequest{
		Prompt:           req.Prompt,
		Tags:             req.Tags,
		Title:            req.Title,
		MV:               req.ModelVersion,
		MakeInstrumental: req.Instrumental,
		WaitAudio:        false,
	}

	body, err := c.doRequest(ctx, http.MethodPost, "/api/generate", payload)
	if err != nil {
		return "", nil, err
	}

	var clips []Clip
	if err := json.Unmarshal(body, &clips); err != nil {
		return "", nil, providers.NewMappingError(models.ProviderSuno, "decoding generate response", err)
	}
	if len(clips) == 0 || clips[0].ID == "" {
		return "", nil, providers.NewMappingError(models.ProviderSuno, "generate response contained no clips", nil)
	}

	return clips[0].ID, body, nil
}

// PollStatus performs a single status check for a task
func (c *Client) PollStatus(ctx context.Context, taskID string) (json.RawMessage, error) {
	if taskID == "" {
		return nil, providers.NewInvalidRequest(models.ProviderSuno, "task ID cannot be empty", nil)
	}

	endpoint := fmt.Sprintf("/api/get?ids=%s", taskID)
	body, err := c.doRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	// An empty clip list means Suno no longer knows the task
	var clips []Clip
	if err := json.Unmarshal(body, &clips); err != nil {
		return nil, providers.NewMappingError(models.ProviderSuno, "decoding status response", err)
	}
	if len(clips) == 0 {
		return nil, providers.NewNotFound(models.ProviderSuno, taskID)
	}

	return body, nil
}

// GetCredits queries the remaining account balance
func (c *Client) GetCredits(ctx context.Context) (*providers.CreditsBalance, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/api/get_limit", nil)
	if err != nil {
		return nil, err
	}

	var limits limitResponse
	if err := json.Unmarshal(body, &limits); err != nil {
		return nil, providers.NewMappingError(models.ProviderSuno, "decoding credits response", err)
	}

	return &providers.CreditsBalance{
		Remaining:    limits.CreditsLeft,
		MonthlyLimit: limits.MonthlyLimit,
		MonthlyUsage: limits.MonthlyUsage,
	}, nil
}

// doRequest performs a single HTTP request and classifies failures into the
// provider error taxonomy
func (c *Client) doRequest(ctx context.Context, method, endpoint string, payload any) (json.RawMessage, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, providers.NewUnavailable(models.ProviderSuno, "rate limiter wait", err)
	}

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, providers.NewUnavailable(models.ProviderSuno, "executing request", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, providers.NewUnavailable(models.ProviderSuno, "reading response body", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &providers.Error{
			Kind:     providers.KindNotFound,
			Provider: models.ProviderSuno,
			Message:  fmt.Sprintf("%s %s returned 404", method, endpoint),
		}
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, providers.NewInvalidRequest(models.ProviderSuno,
			fmt.Sprintf("API returned status %d: %s", resp.StatusCode, truncate(body, 200)), nil)
	case resp.StatusCode >= 500:
		return nil, providers.NewUnavailable(models.ProviderSuno,
			fmt.Sprintf("API returned status %d", resp.StatusCode), nil)
	}

	return body, nil
}

// truncate caps an error body snippet so logs stay readable
func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
