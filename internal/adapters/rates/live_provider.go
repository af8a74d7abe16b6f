package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mytechsolutions09/artistic-pro-admin/internal/core/services"
)

// defaultRatesURL is a public, unauthenticated exchange-rate endpoint
// pivoted on USD. Overridable via configuration.
const defaultRatesURL = "https://open.er-api.com/v6/latest/USD"

// liveResponse is the provider's wire format.
type liveResponse struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// LiveProvider fetches real exchange rates over HTTP. The provider's USD
// pivot is re-expressed against the caller's base currency, and only codes
// present in the catalog are kept. Any transport, status, or decoding
// failure is returned to the caller, which falls through to the next
// provider in the chain.
type LiveProvider struct {
	url        string
	httpClient *http.Client
	registry   *services.Registry
}

// NewLiveProvider builds the live provider. An empty url selects the
// default endpoint; a nil client gets a timeout-bounded default so a hung
// upstream cannot stall the fallback chain.
func NewLiveProvider(url string, httpClient *http.Client, registry *services.Registry) *LiveProvider {
	if url == "" {
		url = defaultRatesURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 8 * time.Second}
	}
	return &LiveProvider{url: url, httpClient: httpClient, registry: registry}
}

func (p *LiveProvider) Name() string { return "live" }

func (p *LiveProvider) FetchRates(ctx context.Context, base string) (map[string]float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var body liveResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(body.Rates) == 0 {
		return nil, fmt.Errorf("response contained no rates")
	}

	// The endpoint reports units-per-USD; dividing by the base currency's
	// own USD rate re-pivots everything so rates[base] == 1.
	pivot, ok := body.Rates[base]
	if !ok || pivot <= 0 {
		return nil, fmt.Errorf("response has no usable rate for base %s", base)
	}

	rates := make(map[string]float64)
	for _, c := range p.registry.ListAll() {
		if r, ok := body.Rates[c.Code]; ok && r > 0 {
			rates[c.Code] = r / pivot
		}
	}
	if len(rates) == 0 {
		return nil, fmt.Errorf("no catalog currencies in response")
	}
	rates[base] = 1

	return rates, nil
}
