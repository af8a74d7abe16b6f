package rates

import (
	"context"
	"math/rand"

	"github.com/mytechsolutions09/artistic-pro-admin/internal/core/services"
)

// SimulatedProvider serves catalog default rates with a bounded random
// jitter, so degraded environments (no network, blocked egress) still see
// live-looking movement in the dashboard. The base currency stays pinned at
// exactly 1 to preserve the pivot convention.
type SimulatedProvider struct {
	registry *services.Registry
	rng      *rand.Rand
}

// jitterSpread is the maximum relative deviation applied per rate (±5%).
const jitterSpread = 0.05

func NewSimulatedProvider(registry *services.Registry, rng *rand.Rand) *SimulatedProvider {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &SimulatedProvider{registry: registry, rng: rng}
}

func (p *SimulatedProvider) Name() string { return "simulated" }

func (p *SimulatedProvider) FetchRates(ctx context.Context, base string) (map[string]float64, error) {
	rates := p.registry.DefaultRatesRebased(base)
	for code, rate := range rates {
		if code == base {
			continue
		}
		jitter := 1 + (p.rng.Float64()*2-1)*jitterSpread
		rates[code] = rate * jitter
	}
	return rates, nil
}
