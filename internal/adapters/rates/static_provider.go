package rates

import (
	"context"

	"github.com/mytechsolutions09/artistic-pro-admin/internal/core/services"
)

// StaticProvider returns catalog default rates verbatim. It is the terminal
// link of the fallback chain and cannot fail while the catalog is non-empty.
type StaticProvider struct {
	registry *services.Registry
}

func NewStaticProvider(registry *services.Registry) *StaticProvider {
	return &StaticProvider{registry: registry}
}

func (p *StaticProvider) Name() string { return "static" }

func (p *StaticProvider) FetchRates(ctx context.Context, base string) (map[string]float64, error) {
	return p.registry.DefaultRatesRebased(base), nil
}
