package mureka

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

// Config holds configuration for the Mureka client
type Config struct {
	APIKey            string
	BaseURL           string
	UserAgent         string
	Timeout           time.Duration
	RequestsPerMinute int
	BurstSize         int
}

// Client handles communication with the Mureka API
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	baseURL     string
	apiKey      string
	userAgent   string
}

var _ providers.Adapter = (*Client)(nil)

// NewClient creates a new Mureka API client
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.mureka.ai"
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

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		rateLimiter: rate.NewLimiter(
			rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)),
			cfg.BurstSize,
		),
		baseURL:   cfg.BaseURL,
		apiKey:    cfg.APIKey,
		userAgent: cfg.UserAgent,
	}
}

// Name identifies this adapter's provider
func (c *Client) Name() models.Provider {
	return models.ProviderMureka
}

// CreateTask submits a generation request and returns Mureka's task ID
func (c *Client) CreateTask(ctx context.Context, req providers.GenerationRequest) (string, json.RawMessage, error) {
	// Mureka drives generation from lyrics plus a style prompt; an
	// instrumental request sends the marker lyric it documents for that case.
	lyrics := req.Lyrics
	if req.Instrumental {
		lyrics = "[Instrumental]"
	}

	prompt := req.Prompt
	if req.Tags != "" {
		prompt = fmt.Sprintf("%s, %s", req.Prompt, req.Tags)
	}

	payload := generateRequest{
		Lyrics: lyrics,
		Prompt: prompt,
		Model:  req.ModelVersion,
	}

	body, err := c.doRequest(ctx, http.MethodPost, "/v1/song/generate", payload)
	if err != nil {
		return "", nil, err
	}

	var task Task
	if err := json.Unmarshal(body, &task); err != nil {
		return "", nil, providers.NewMappingError(models.ProviderMureka, "decoding generate response", err)
	}
	if task.ID == "" {
		return "", nil, providers.NewMappingError(models.ProviderMureka, "generate response missing task id", nil)
	}

	return task.ID, body, nil
}

// PollStatus performs a single status check for a task
func (c *Client) PollStatus(ctx context.Context, taskID string) (json.RawMessage, error) {
	if taskID == "" {
		return nil, providers.NewInvalidRequest(models.ProviderMureka, "task ID cannot be empty", nil)
	}

	endpoint := fmt.Sprintf("/v1/song/query/%s", taskID)
	return c.doRequest(ctx, http.MethodGet, endpoint, nil)
}

// GetCredits queries the remaining account balance
func (c *Client) GetCredits(ctx context.Context) (*providers.CreditsBalance, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/v1/account/billing", nil)
	if err != nil {
		return nil, err
	}

	var billing billingResponse
	if err := json.Unmarshal(body, &billing); err != nil {
		return nil, providers.NewMappingError(models.ProviderMureka, "decoding billing response", err)
	}

	return &providers.CreditsBalance{
		Remaining: billing.Balance,
	}, nil
}

// doRequest performs a single HTTP request and classifies failures into the
// provider error taxonomy
func (c *Client) doRequest(ctx context.Context, method, endpoint string, payload any) (json.RawMessage, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, providers.NewUnavailable(models.ProviderMureka, "rate limiter wait", err)
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

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, providers.NewUnavailable(models.ProviderMureka, "executing request", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, providers.NewUnavailable(models.ProviderMureka, "reading response body", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &providers.Error{
			Kind:     providers.KindNotFound,
			Provider: models.ProviderMureka,
			Message:  fmt.Sprintf("%s %s returned 404", method, endpoint),
		}
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, providers.NewInvalidRequest(models.ProviderMureka,
			fmt.Sprintf("API returned status %d: %s", resp.StatusCode, truncate(body, 200)), nil)
	case resp.StatusCode >= 500:
		return nil, providers.NewUnavailable(models.ProviderMureka,
			fmt.Sprintf("API returned status %d", resp.StatusCode), nil)
	}

	return body, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
