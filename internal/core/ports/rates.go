package ports

import "context"

// RateProvider is a single source of exchange rates in the fallback chain.
// FetchRates returns rates keyed by currency code, expressed as units of
// that currency per 1 unit of the requested base. Providers signal failure
// by returning an error or an empty map; the caller advances to the next
// provider in either case.
type RateProvider interface {
	// Name identifies the provider in logs.
	Name() string
	FetchRates(ctx context.Context, base string) (map[string]float64, error)
}
