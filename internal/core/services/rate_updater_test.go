package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mytechsolutions09/artistic-pro-admin/internal/core/ports"
	"github.com/mytechsolutions09/artistic-pro-admin/internal/core/services"
	"github.com/mytechsolutions09/artistic-pro-admin/internal/repositories/kvstore"
)

// --- Mock RateProvider ---

type MockRateProvider struct {
	mock.Mock
	name string
}

func (m *MockRateProvider) Name() string { return m.name }

func (m *MockRateProvider) FetchRates(ctx context.Context, base string) (map[string]float64, error) {
	args := m.Called(ctx, base)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]float64), args.Error(1)
}

func newUpdaterFixture(providers ...ports.RateProvider) (*services.RateUpdater, *services.RateCache, *services.SettingsService) {
	store := kvstore.NewMemoryStore()
	registry := services.NewRegistry()
	cache := services.NewRateCache(store, registry, nil)
	settings := services.NewSettingsService(store, registry)
	return services.NewRateUpdater(providers, cache, settings, nil), cache, settings
}

func TestRateUpdater_FirstProviderWins(t *testing.T) {
	ctx := context.Background()
	want := map[string]float64{"INR": 1, "USD": 0.0121}

	first := &MockRateProvider{name: "live"}
	first.On("FetchRates", ctx, "INR").Return(want, nil).Once()
	second := &MockRateProvider{name: "simulated"}

	updater, cache, settings := newUpdaterFixture(first, second)

	require.True(t, updater.Refresh(ctx))
	assert.Equal(t, want, cache.Get(ctx))

	current, err := settings.Get(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, current.LastUpdated)

	first.AssertExpectations(t)
	second.AssertNotCalled(t, "FetchRates", mock.Anything, mock.Anything)
}

func TestRateUpdater_FallsThroughFailures(t *testing.T) {
	ctx := context.Background()
	want := map[string]float64{"INR": 1, "USD": 0.012}

	failing := &MockRateProvider{name: "live"}
	failing.On("FetchRates", ctx, "INR").Return(nil, errors.New("connection refused")).Once()
	empty := &MockRateProvider{name: "simulated"}
	empty.On("FetchRates", ctx, "INR").Return(map[string]float64{}, nil).Once()
	static := &MockRateProvider{name: "static"}
	static.On("FetchRates", ctx, "INR").Return(want, nil).Once()

	updater, cache, _ := newUpdaterFixture(failing, empty, static)

	require.True(t, updater.Refresh(ctx), "refresh succeeds as long as one provider yields rates")
	assert.Equal(t, want, cache.Get(ctx))

	failing.AssertExpectations(t)
	empty.AssertExpectations(t)
	static.AssertExpectations(t)
}

func TestRateUpdater_AllProvidersFail(t *testing.T) {
	ctx := context.Background()

	broken := &MockRateProvider{name: "live"}
	broken.On("FetchRates", ctx, "INR").Return(nil, errors.New("boom")).Once()

	updater, cache, _ := newUpdaterFixture(broken)

	assert.False(t, updater.Refresh(ctx))
	assert.Equal(t, services.NewRegistry().DefaultRates(), cache.Get(ctx),
		"a failed refresh leaves the effective map on defaults")
}

func TestRateUpdater_UsesConfiguredBase(t *testing.T) {
	ctx := context.Background()

	provider := &MockRateProvider{name: "live"}
	provider.On("FetchRates", ctx, "USD").Return(map[string]float64{"USD": 1, "INR": 83.1}, nil).Once()

	updater, _, settings := newUpdaterFixture(provider)

	res, err := settings.SetBase(ctx, "USD")
	require.NoError(t, err)
	require.True(t, res.Success)

	require.True(t, updater.Refresh(ctx))
	provider.AssertExpectations(t)
}

func TestRateUpdater_ReplacesSnapshotWholesale(t *testing.T) {
	ctx := context.Background()

	first := &MockRateProvider{name: "live"}
	first.On("FetchRates", ctx, "INR").
		Return(map[string]float64{"INR": 1, "USD": 0.012, "EUR": 0.011}, nil).Once()
	first.On("FetchRates", ctx, "INR").
		Return(map[string]float64{"INR": 1, "USD": 0.013}, nil).Once()

	updater, cache, _ := newUpdaterFixture(first)

	require.True(t, updater.Refresh(ctx))
	require.True(t, updater.Refresh(ctx))

	rates := cache.Get(ctx)
	_, hasEUR := rates["EUR"]
	assert.False(t, hasEUR, "snapshots never mix rate epochs")
}
