package tracks

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waveforge/generator-api/api/types"
	"github.com/waveforge/generator-api/internal/models"
	"github.com/waveforge/generator-api/internal/services/generation"
	"github.com/waveforge/generator-api/internal/services/providers"
)

// stubService serves canned track data for handler tests
type stubService struct {
	track    *models.Track
	trackErr error

	list      []models.Track
	listTotal int64
	listUser  string
	listPage  int
	listLimit int

	counterName generation.Counter
	counterErr  error
}

func (s *stubService) Submit(ctx context.Context, userID string, req providers.GenerationRequest, preference models.Provider) (*generation.TaskHandle, error) {
	return nil, nil
}

func (s *stubService) AwaitCompletion(ctx context.Context, handle generation.TaskHandle, maxAttempts int, interval time.Duration) (*models.Track, error) {
	return nil, nil
}

func (s *stubService) GetTrack(ctx context.Context, id string) (*models.Track, error) {
	if s.trackErr != nil {
		return nil, s.trackErr
	}
	return s.track, nil
}

func (s *stubService) ListTracks(ctx context.Context, userID string, page, limit int) ([]models.Track, int64, error) {
	s.listUser = userID
	s.listPage = page
	s.listLimit = limit
	return s.list, s.listTotal, nil
}

func (s *stubService) IncrementCounter(ctx context.Context, id string, counter generation.Counter) error {
	s.counterName = counter
	return s.counterErr
}

func setupRouter(svc generation.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router.Group("/api/v1/tracks"), &types.Dependencies{GenerationService: svc})
	return router
}

func TestGetAll(t *testing.T) {
	svc := &stubService{
		list: []models.Track{
			{ID: "trk-2", UserID: "user-1", APIProvider: models.ProviderMureka, Status: models.TrackStatusCompleted},
			{ID: "trk-1", UserID: "user-1", APIProvider: models.ProviderSuno, Status: models.TrackStatusFailed},
		},
		listTotal: 42,
	}
	router := setupRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tracks?page=2&limit=10", nil)
	req.Header.Set("X-User-ID", "user-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response types.TracksResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 2, response.Count)
	assert.Equal(t, int64(42), response.Total)
	assert.Equal(t, 2, response.Page)
	assert.Equal(t, 10, response.Limit)
	require.Len(t, response.Tracks, 2)
	assert.Equal(t, "trk-2", response.Tracks[0].ID)
	assert.Equal(t, "mureka", response.Tracks[0].Provider)

	assert.Equal(t, "user-1", svc.listUser)
	assert.Equal(t, 2, svc.listPage)
	assert.Equal(t, 10, svc.listLimit)
}

func TestGetAll_Defaults(t *testing.T) {
	svc := &stubService{}
	router := setupRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tracks", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anonymous", svc.listUser)
	assert.Equal(t, 1, svc.listPage)
	assert.Equal(t, 20, svc.listLimit)
}

func TestGetByID(t *testing.T) {
	svc := &stubService{
		track: &models.Track{
			ID:          "trk-1",
			APIProvider: models.ProviderSuno,
			Status:      models.TrackStatusCompleted,
			Title:       "Neon Summer",
			PlayCount:   3,
		},
	}
	router := setupRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tracks/trk-1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response types.SingleTrackResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotNil(t, response.Track)
	assert.Equal(t, "Neon Summer", response.Track.Title)
	assert.Equal(t, 3, response.Track.PlayCount)
}

func TestGetByID_NotFound(t *testing.T) {
	router := setupRouter(&stubService{trackErr: generation.ErrTrackNotFound})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tracks/missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPostCounter(t *testing.T) {
	svc := &stubService{}
	router := setupRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tracks/trk-1/counters",
		strings.NewReader(`{"counter": "play_count"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, generation.CounterPlay, svc.counterName)
}

func TestPostCounter_UnknownCounter(t *testing.T) {
	router := setupRouter(&stubService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tracks/trk-1/counters",
		strings.NewReader(`{"counter": "view_count"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Unknown counter")
}

func TestPostCounter_MissingBody(t *testing.T) {
	router := setupRouter(&stubService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tracks/trk-1/counters", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPostCounter_TrackNotFound(t *testing.T) {
	router := setupRouter(&stubService{counterErr: generation.ErrTrackNotFound})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tracks/missing/counters",
		strings.NewReader(`{"counter": "share_count"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
