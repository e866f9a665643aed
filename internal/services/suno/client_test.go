package suno

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/waveforge/generator-api/internal/services/providers"
)

func TestNewClient(t *testing.T) {
	cfg := Config{
		APIToken:  "test-token",
		BaseURL:   "https://api.example.com",
		UserAgent: "TestAgent/1.0",
		Timeout:   10 * time.Second,
	}

	client := NewClient(cfg)

	if client.apiToken != cfg.APIToken {
		t.Errorf("Expected apiToken %s, got %s", cfg.APIToken, client.apiToken)
	}
	if client.baseURL != cfg.BaseURL {
		t.Errorf("Expected baseURL %s, got %s", cfg.BaseURL, client.baseURL)
	}
	if client.userAgent != cfg.UserAgent {
		t.Errorf("Expected userAgent %s, got %s", cfg.UserAgent, client.userAgent)
	}
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(Config{APIToken: "test-token"})

	expectedBaseURL := "https://studio-api.suno.ai"
	if client.baseURL != expectedBaseURL {
		t.Errorf("Expected default baseURL %s, got %s", expectedBaseURL, client.baseURL)
	}

	expectedUserAgent := "WaveforgeGeneratorAPI/1.0"
	if client.userAgent != expectedUserAgent {
		t.Errorf("Expected default userAgent %s, got %s", expectedUserAgent, client.userAgent)
	}
}

func newTestClient(serverURL string) *Client {
	return NewClient(Config{
		APIToken:          "test-token",
		BaseURL:           serverURL,
		UserAgent:         "TestAgent/1.0",
		Timeout:           5 * time.Second,
		RequestsPerMinute: 600,
		BurstSize:         10,
	})
}

func TestCreateTask(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("Expected path /api/generate, got %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("Expected bearer auth header, got %s", r.Header.Get("Authorization"))
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Expected JSON content type, got %s", r.Header.Get("Content-Type"))
		}

		response := `[
			{"id": "clip-1", "status": "submitted", "title": ""},
			{"id": "clip-2", "status": "submitted", "title": ""}
		]`
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(response))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	taskID, raw, err := client.CreateTask(context.Background(), providers.GenerationRequest{
		Prompt: "an upbeat pop track",
		Tags:   "upbeat pop",
	})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if taskID != "clip-1" {
		t.Errorf("Expected task ID clip-1, got %s", taskID)
	}
	if len(raw) == 0 {
		t.Error("Expected raw response to be preserved")
	}
}

func TestCreateTaskEmptyClipList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, _, err := client.CreateTask(context.Background(), providers.GenerationRequest{Prompt: "x"})
	if err == nil {
		t.Fatal("Expected error for empty clip list, got nil")
	}
	if providers.KindOf(err) != providers.KindMapping {
		t.Errorf("Expected mapping error, got %v", err)
	}
}

func TestPollStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/get" {
			t.Errorf("Expected path /api/get, got %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("ids"); got != "clip-1" {
			t.Errorf("Expected ids=clip-1, got %s", got)
		}

		response := `[{"id": "clip-1", "status": "streaming", "audio_url": "https://cdn.suno.ai/clip-1.mp3"}]`
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(response))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	raw, err := client.PollStatus(context.Background(), "clip-1")
	if err != nil {
		t.Fatalf("PollStatus failed: %v", err)
	}
	if len(raw) == 0 {
		t.Error("Expected a non-empty status payload")
	}
}

func TestPollStatusEmptyTaskID(t *testing.T) {
	client := newTestClient("http://localhost:1")

	_, err := client.PollStatus(context.Background(), "")
	if err == nil {
		t.Fatal("Expected error for empty task ID, got nil")
	}
	if providers.KindOf(err) != providers.KindInvalidRequest {
		t.Errorf("Expected invalid request error, got %v", err)
	}
}

func TestPollStatusEmptyClipListIsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.PollStatus(context.Background(), "clip-gone")
	if err == nil {
		t.Fatal("Expected error for unknown task, got nil")
	}
	if providers.KindOf(err) != providers.KindNotFound {
		t.Errorf("Expected not found error, got %v", err)
	}
}

func TestGetCredits(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/get_limit" {
			t.Errorf("Expected path /api/get_limit, got %s", r.URL.Path)
		}

		response := `{"credits_left": 42.5, "period": "month", "monthly_limit": 500, "monthly_usage": 457.5}`
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(response))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	balance, err := client.GetCredits(context.Background())
	if err != nil {
		t.Fatalf("GetCredits failed: %v", err)
	}
	if balance.Remaining != 42.5 {
		t.Errorf("Expected 42.5 credits remaining, got %f", balance.Remaining)
	}
	if balance.MonthlyLimit != 500 {
		t.Errorf("Expected monthly limit 500, got %f", balance.MonthlyLimit)
	}
	if !balance.HasCredits() {
		t.Error("Expected HasCredits to be true")
	}
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantKind   providers.ErrorKind
		retryable  bool
	}{
		{"bad request", http.StatusBadRequest, providers.KindInvalidRequest, false},
		{"unauthorized", http.StatusUnauthorized, providers.KindInvalidRequest, false},
		{"not found", http.StatusNotFound, providers.KindNotFound, false},
		{"rate limited upstream", http.StatusTooManyRequests, providers.KindInvalidRequest, false},
		{"server error", http.StatusInternalServerError, providers.KindUnavailable, true},
		{"bad gateway", http.StatusBadGateway, providers.KindUnavailable, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(`{"detail": "nope"}`))
			}))
			defer server.Close()

			client := newTestClient(server.URL)

			_, err := client.GetCredits(context.Background())
			if err == nil {
				t.Fatalf("Expected error for status %d, got nil", tt.statusCode)
			}

			var provErr *providers.Error
			if !errors.As(err, &provErr) {
				t.Fatalf("Expected a provider error, got %T: %v", err, err)
			}
			if provErr.Kind != tt.wantKind {
				t.Errorf("Expected kind %s, got %s", tt.wantKind, provErr.Kind)
			}
			if providers.IsRetryable(err) != tt.retryable {
				t.Errorf("Expected retryable=%v for status %d", tt.retryable, tt.statusCode)
			}
		})
	}
}

func TestConnectionFailureIsUnavailable(t *testing.T) {
	// Nothing listens on this port
	client := newTestClient("http://127.0.0.1:1")

	_, err := client.GetCredits(context.Background())
	if err == nil {
		t.Fatal("Expected connection error, got nil")
	}
	if providers.KindOf(err) != providers.KindUnavailable {
		t.Errorf("Expected unavailable error, got %v", err)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate([]byte("short"), 200); got != "short" {
		t.Errorf("Expected untouched string, got %s", got)
	}
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'a'
	}
	if got := truncate(long, 200); len(got) != 203 {
		t.Errorf("Expected 203 characters including ellipsis, got %d", len(got))
	}
}
