package providers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waveforge/generator-api/internal/models"
)

// fakeAdapter is a minimal in-memory Adapter for selector tests
type fakeAdapter struct {
	name       models.Provider
	credits    float64
	creditsErr error
}

func (f *fakeAdapter) Name() models.Provider { return f.name }

func (f *fakeAdapter) CreateTask(ctx context.Context, req GenerationRequest) (string, json.RawMessage, error) {
	return "task-1", json.RawMessage(`{}`), nil
}

func (f *fakeAdapter) PollStatus(ctx context.Context, taskID string) (json.RawMessage, error) {
	return json.RawMessage(`{}`), nil
}

func (f *fakeAdapter) GetCredits(ctx context.Context) (*CreditsBalance, error) {
	if f.creditsErr != nil {
		return nil, f.creditsErr
	}
	return &CreditsBalance{Remaining: f.credits}, nil
}

func TestPick_ExplicitPreference(t *testing.T) {
	sunoAdapter := &fakeAdapter{name: models.ProviderSuno, credits: 10}
	murekaAdapter := &fakeAdapter{name: models.ProviderMureka, credits: 10}
	selector := NewSelector([]Adapter{sunoAdapter, murekaAdapter})

	picked, err := selector.Pick(context.Background(), models.ProviderMureka)
	require.NoError(t, err)
	assert.Equal(t, models.ProviderMureka, picked.Name())
}

func TestPick_ExplicitPreferenceSkipsCreditsCheck(t *testing.T) {
	// An explicit preference is honored even when that provider reports
	// no credits; the provider itself rejects if it must
	broke := &fakeAdapter{name: models.ProviderSuno, credits: 0}
	selector := NewSelector([]Adapter{broke})

	picked, err := selector.Pick(context.Background(), models.ProviderSuno)
	require.NoError(t, err)
	assert.Equal(t, models.ProviderSuno, picked.Name())
}

func TestPick_UnknownPreference(t *testing.T) {
	selector := NewSelector([]Adapter{&fakeAdapter{name: models.ProviderSuno, credits: 10}})

	_, err := selector.Pick(context.Background(), models.Provider("other"))
	require.Error(t, err)

	var provErr *Error
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, KindInvalidRequest, provErr.Kind)
}

func TestPick_ExcludesProvidersWithoutCredits(t *testing.T) {
	broke := &fakeAdapter{name: models.ProviderSuno, credits: 0}
	funded := &fakeAdapter{name: models.ProviderMureka, credits: 25}
	selector := NewSelector([]Adapter{broke, funded}, WithSeed(1))

	for i := 0; i < 10; i++ {
		picked, err := selector.Pick(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, models.ProviderMureka, picked.Name())
	}
}

func TestPick_ExcludesProvidersWithFailingCreditsCheck(t *testing.T) {
	down := &fakeAdapter{name: models.ProviderSuno, creditsErr: errors.New("connection refused")}
	funded := &fakeAdapter{name: models.ProviderMureka, credits: 25}
	selector := NewSelector([]Adapter{down, funded}, WithSeed(1))

	picked, err := selector.Pick(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, models.ProviderMureka, picked.Name())
}

func TestPick_NoProviderAvailable(t *testing.T) {
	selector := NewSelector([]Adapter{
		&fakeAdapter{name: models.ProviderSuno, credits: 0},
		&fakeAdapter{name: models.ProviderMureka, creditsErr: errors.New("down")},
	})

	_, err := selector.Pick(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoProviderAvailable)
}

func TestPick_WeightedSelectionIsDeterministicWithSeed(t *testing.T) {
	adapters := []Adapter{
		&fakeAdapter{name: models.ProviderSuno, credits: 10},
		&fakeAdapter{name: models.ProviderMureka, credits: 10},
	}

	first := NewSelector(adapters, WithSeed(42))
	second := NewSelector(adapters, WithSeed(42))

	for i := 0; i < 20; i++ {
		a, err := first.Pick(context.Background(), "")
		require.NoError(t, err)
		b, err := second.Pick(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, a.Name(), b.Name())
	}
}

func TestPick_WeightsShiftDistribution(t *testing.T) {
	adapters := []Adapter{
		&fakeAdapter{name: models.ProviderSuno, credits: 10},
		&fakeAdapter{name: models.ProviderMureka, credits: 10},
	}
	selector := NewSelector(adapters, WithSeed(7), WithWeight(models.ProviderSuno, 9))

	counts := map[models.Provider]int{}
	for i := 0; i < 200; i++ {
		picked, err := selector.Pick(context.Background(), "")
		require.NoError(t, err)
		counts[picked.Name()]++
	}

	assert.Greater(t, counts[models.ProviderSuno], counts[models.ProviderMureka])
}
