package rates_test

import (
	"context"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mytechsolutions09/artistic-pro-admin/internal/adapters/rates"
	"github.com/mytechsolutions09/artistic-pro-admin/internal/core/services"
)

func TestLiveProvider_RebasesAgainstRequestedBase(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"base": "USD",
			"date": "2026-08-29",
			"rates": {"USD": 1, "INR": 83.0, "EUR": 0.92, "XYZ": 4.2}
		}`))
	}))
	defer srv.Close()

	provider := rates.NewLiveProvider(srv.URL, srv.Client(), services.NewRegistry())

	got, err := provider.FetchRates(context.Background(), "INR")
	require.NoError(t, err)

	assert.InDelta(t, 1.0, got["INR"], 1e-12)
	assert.InDelta(t, 1.0/83.0, got["USD"], 1e-12)
	assert.InDelta(t, 0.92/83.0, got["EUR"], 1e-12)

	// Codes outside the catalog never leak into the result.
	_, ok := got["XYZ"]
	assert.False(t, ok)
}

func TestLiveProvider_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	provider := rates.NewLiveProvider(srv.URL, srv.Client(), services.NewRegistry())

	_, err := provider.FetchRates(context.Background(), "INR")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestLiveProvider_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"rates": "not-a-map"`))
	}))
	defer srv.Close()

	provider := rates.NewLiveProvider(srv.URL, srv.Client(), services.NewRegistry())

	_, err := provider.FetchRates(context.Background(), "INR")
	require.Error(t, err)
}

func TestLiveProvider_MissingBaseRate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"rates": {"USD": 1, "EUR": 0.92}}`))
	}))
	defer srv.Close()

	provider := rates.NewLiveProvider(srv.URL, srv.Client(), services.NewRegistry())

	_, err := provider.FetchRates(context.Background(), "INR")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INR")
}

func TestLiveProvider_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	provider := rates.NewLiveProvider(srv.URL, srv.Client(), services.NewRegistry())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := provider.FetchRates(ctx, "INR")
	require.Error(t, err)
}

func TestSimulatedProvider_JitterStaysInBounds(t *testing.T) {
	registry := services.NewRegistry()
	provider := rates.NewSimulatedProvider(registry, rand.New(rand.NewSource(1)))
	defaults := registry.DefaultRatesRebased("INR")

	for i := 0; i < 50; i++ {
		got, err := provider.FetchRates(context.Background(), "INR")
		require.NoError(t, err)

		assert.Equal(t, 1.0, got["INR"], "base is never jittered")
		for code, rate := range got {
			if code == "INR" {
				continue
			}
			base := defaults[code]
			assert.GreaterOrEqual(t, rate, base*0.95, code)
			assert.LessOrEqual(t, rate, base*1.05, code)
		}
	}
}

func TestSimulatedProvider_RespectsBase(t *testing.T) {
	provider := rates.NewSimulatedProvider(services.NewRegistry(), rand.New(rand.NewSource(7)))

	got, err := provider.FetchRates(context.Background(), "USD")
	require.NoError(t, err)
	assert.Equal(t, 1.0, got["USD"])
}

func TestStaticProvider_ReturnsCatalogDefaults(t *testing.T) {
	registry := services.NewRegistry()
	provider := rates.NewStaticProvider(registry)

	got, err := provider.FetchRates(context.Background(), "INR")
	require.NoError(t, err)
	assert.Equal(t, registry.DefaultRates(), got)

	rebased, err := provider.FetchRates(context.Background(), "EUR")
	require.NoError(t, err)
	assert.Equal(t, registry.DefaultRatesRebased("EUR"), rebased)
}
