package mureka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/waveforge/generator-api/internal/services/providers"
)

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(Config{APIKey: "test-key"})

	expectedBaseURL := "https://api.mureka.ai"
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
		APIKey:            "test-key",
		BaseURL:           serverURL,
		UserAgent:         "TestAgent/1.0",
		Timeout:           5 * time.Second,
		RequestsPerMinute: 600,
		BurstSize:         10,
	})
}

func TestCreateTask(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/song/generate" {
			t.Errorf("Expected path /v1/song/generate, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("Expected bearer auth header, got %s", r.Header.Get("Authorization"))
		}

		body, _ := io.ReadAll(r.Body)
		var payload map[string]any
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Fatalf("Request body was not JSON: %v", err)
		}
		if payload["lyrics"] != "verse one" {
			t.Errorf("Expected lyrics in payload, got %v", payload["lyrics"])
		}

		response := `{"id": "task-9", "status": "preparing", "model": "mureka-6", "created_at": 1748779200}`
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(response))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	taskID, raw, err := client.CreateTask(context.Background(), providers.GenerationRequest{
		Prompt: "a slow ballad",
		Lyrics: "verse one",
	})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if taskID != "task-9" {
		t.Errorf("Expected task ID task-9, got %s", taskID)
	}
	if len(raw) == 0 {
		t.Error("Expected raw response to be preserved")
	}
}

func TestCreateTaskInstrumentalMarker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var payload map[string]any
		_ = json.Unmarshal(body, &payload)
		if payload["lyrics"] != "[Instrumental]" {
			t.Errorf("Expected instrumental marker lyric, got %v", payload["lyrics"])
		}

		_, _ = w.Write([]byte(`{"id": "task-10", "status": "preparing"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, _, err := client.CreateTask(context.Background(), providers.GenerationRequest{
		Prompt:       "ambient piece",
		Lyrics:       "ignored",
		Instrumental: true,
	})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
}

func TestCreateTaskMissingTaskID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "preparing"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, _, err := client.CreateTask(context.Background(), providers.GenerationRequest{Prompt: "x"})
	if err == nil {
		t.Fatal("Expected error for missing task id, got nil")
	}
	if providers.KindOf(err) != providers.KindMapping {
		t.Errorf("Expected mapping error, got %v", err)
	}
}

func TestPollStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/song/query/task-9" {
			t.Errorf("Expected path /v1/song/query/task-9, got %s", r.URL.Path)
		}

		response := `{
			"id": "task-9",
			"status": "succeeded",
			"model": "mureka-6",
			"created_at": 1748779200,
			"finished_at": 1748779320,
			"choices": [{"index": 0, "url": "https://cdn.mureka.ai/task-9-0.mp3", "duration": 182000}]
		}`
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(response))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	raw, err := client.PollStatus(context.Background(), "task-9")
	if err != nil {
		t.Fatalf("PollStatus failed: %v", err)
	}

	var task Task
	if err := json.Unmarshal(raw, &task); err != nil {
		t.Fatalf("Status payload was not a task object: %v", err)
	}
	if task.Status != "succeeded" {
		t.Errorf("Expected status succeeded, got %s", task.Status)
	}
	if len(task.Choices) != 1 || task.Choices[0].Duration != 182000 {
		t.Errorf("Expected one choice with millisecond duration, got %+v", task.Choices)
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

func TestGetCredits(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/account/billing" {
			t.Errorf("Expected path /v1/account/billing, got %s", r.URL.Path)
		}

		response := `{"account_id": 77, "balance": 1250, "total_recharge": 5000, "total_spending": 3750}`
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(response))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	balance, err := client.GetCredits(context.Background())
	if err != nil {
		t.Fatalf("GetCredits failed: %v", err)
	}
	if balance.Remaining != 1250 {
		t.Errorf("Expected balance 1250, got %f", balance.Remaining)
	}
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantKind   providers.ErrorKind
	}{
		{"bad request", http.StatusBadRequest, providers.KindInvalidRequest},
		{"not found", http.StatusNotFound, providers.KindNotFound},
		{"server error", http.StatusInternalServerError, providers.KindUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(`{"error": "nope"}`))
			}))
			defer server.Close()

			client := newTestClient(server.URL)

			_, err := client.PollStatus(context.Background(), "task-9")
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
		})
	}
}
