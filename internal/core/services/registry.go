package services

import "github.com/mytechsolutions09/artistic-pro-admin/internal/core/domain"

// BaseCurrencyCode is the pivot the default catalog rates are expressed
// against: every Rate below is units of that currency per 1 INR.
const BaseCurrencyCode = "INR"

// catalog is the fixed set of currencies the store can sell in. Codes are
// unique and immutable for the process lifetime; activation state lives in
// the settings blob, never here.
var catalog = []domain.Currency{
	{Code: "INR", Name: "Indian Rupee", Symbol: "₹", Flag: "🇮🇳", Rate: 1, EnabledByDefault: true},
	{Code: "USD", Name: "US Dollar", Symbol: "$", Flag: "🇺🇸", Rate: 0.012, EnabledByDefault: true},
	{Code: "EUR", Name: "Euro", Symbol: "€", Flag: "🇪🇺", Rate: 0.011, EnabledByDefault: true},
	{Code: "GBP", Name: "British Pound", Symbol: "£", Flag: "🇬🇧", Rate: 0.0095, EnabledByDefault: true},
	{Code: "JPY", Name: "Japanese Yen", Symbol: "¥", Flag: "🇯🇵", Rate: 1.8, EnabledByDefault: false},
	{Code: "AUD", Name: "Australian Dollar", Symbol: "A$", Flag: "🇦🇺", Rate: 0.018, EnabledByDefault: false},
	{Code: "CAD", Name: "Canadian Dollar", Symbol: "C$", Flag: "🇨🇦", Rate: 0.016, EnabledByDefault: false},
	{Code: "SGD", Name: "Singapore Dollar", Symbol: "S$", Flag: "🇸🇬", Rate: 0.016, EnabledByDefault: false},
	{Code: "AED", Name: "UAE Dirham", Symbol: "د.إ", Flag: "🇦🇪", Rate: 0.044, EnabledByDefault: false},
	{Code: "CNY", Name: "Chinese Yuan", Symbol: "¥", Flag: "🇨🇳", Rate: 0.085, EnabledByDefault: false},
}

// Registry exposes the static currency catalog. It has no mutable state and
// is safe for concurrent use.
type Registry struct {
	entries []domain.Currency
	index   map[string]int
}

// NewRegistry returns the registry backed by the default catalog.
func NewRegistry() *Registry {
	return newRegistryWith(catalog)
}

func newRegistryWith(entries []domain.Currency) *Registry {
	index := make(map[string]int, len(entries))
	for i, c := range entries {
		index[c.Code] = i
	}
	return &Registry{entries: entries, index: index}
}

// ListAll returns the catalog in declaration order.
func (r *Registry) ListAll() []domain.Currency {
	out := make([]domain.Currency, len(r.entries))
	copy(out, r.entries)
	return out
}

// Find returns the catalog entry for code, or nil for unknown codes.
func (r *Registry) Find(code string) *domain.Currency {
	i, ok := r.index[code]
	if !ok {
		return nil
	}
	c := r.entries[i]
	return &c
}

// DefaultRates returns the catalog's default rate map, keyed by code.
func (r *Registry) DefaultRates() map[string]float64 {
	rates := make(map[string]float64, len(r.entries))
	for _, c := range r.entries {
		rates[c.Code] = c.Rate
	}
	return rates
}

// DefaultRatesRebased returns the default rates re-expressed against the
// given pivot, so that rates[base] == 1. An unknown base falls back to the
// catalog's native pivot.
func (r *Registry) DefaultRatesRebased(base string) map[string]float64 {
	rates := r.DefaultRates()
	pivot, ok := rates[base]
	if !ok || pivot <= 0 {
		return rates
	}
	for code, rate := range rates {
		rates[code] = rate / pivot
	}
	return rates
}

// DefaultEnabled returns the codes seeded as enabled, in declaration order.
func (r *Registry) DefaultEnabled() []string {
	var codes []string
	for _, c := range r.entries {
		if c.EnabledByDefault {
			codes = append(codes, c.Code)
		}
	}
	return codes
}
