package services

import (
	"context"
	"fmt"
	"math"

	"github.com/mytechsolutions09/artistic-pro-admin/internal/apperrors"
	"github.com/mytechsolutions09/artistic-pro-admin/internal/utils"
)

// Converter performs amount conversion and display formatting on top of the
// effective rate map. It holds no state of its own and is safe to call at
// render frequency.
type Converter struct {
	cache    *RateCache
	registry *Registry
}

func NewConverter(cache *RateCache, registry *Registry) *Converter {
	return &Converter{cache: cache, registry: registry}
}

// Convert converts amount between two currencies using pivot-relative
// rates, so any cross-currency conversion is a single ratio. Identical
// codes short-circuit to the amount unchanged. Unknown codes convert at
// rate 1 rather than failing; callers that need fail-fast behavior use
// ConvertStrict.
func (c *Converter) Convert(ctx context.Context, amount float64, from, to string) float64 {
	if from == to {
		return amount
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}

	rates := c.cache.Get(ctx)
	return amount * rateOrOne(rates, to) / rateOrOne(rates, from)
}

// ConvertStrict is the fail-fast variant: unknown codes return an error
// instead of silently converting 1:1.
func (c *Converter) ConvertStrict(ctx context.Context, amount float64, from, to string) (float64, error) {
	if c.registry.Find(from) == nil {
		return 0, fmt.Errorf("%w: %s", apperrors.ErrUnknownCurrency, from)
	}
	if c.registry.Find(to) == nil {
		return 0, fmt.Errorf("%w: %s", apperrors.ErrUnknownCurrency, to)
	}
	return c.Convert(ctx, amount, from, to), nil
}

// Format renders amount as a display string: currency symbol followed by a
// locale-grouped number at the requested precision. NaN and infinite
// amounts coerce to 0; unknown codes render a bare numeral without a
// symbol. Admin screens typically request 0 decimals, customer-facing
// displays 2.
func (c *Converter) Format(ctx context.Context, amount float64, code string, decimals int) string {
	symbol := ""
	if entry := c.registry.Find(code); entry != nil {
		symbol = entry.Symbol
	}
	return utils.FormatAmount(amount, symbol, decimals)
}

func rateOrOne(rates map[string]float64, code string) float64 {
	if r, ok := rates[code]; ok && r > 0 {
		return r
	}
	return 1
}
