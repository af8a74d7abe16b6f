package services

import (
	"context"

	"github.com/mytechsolutions09/artistic-pro-admin/internal/core/domain"
)

// CurrencySvcFacade is the full surface of the currency engine as consumed
// by the HTTP layer. Mutating operations return a MutationResult for
// business-rule outcomes; the error slot is reserved for storage faults.
type CurrencySvcFacade interface {
	// Read surface
	Snapshot(ctx context.Context) domain.Snapshot
	Subscribe() (<-chan domain.Snapshot, func())
	ListDetails(ctx context.Context) ([]domain.CurrencyDetails, error)
	Details(ctx context.Context, code string) (*domain.CurrencyDetails, error)
	Settings(ctx context.Context) (domain.CurrencySettings, error)
	Rates(ctx context.Context) map[string]float64

	// Activation and configuration
	Activate(ctx context.Context, code string) (domain.MutationResult, error)
	Deactivate(ctx context.Context, code string) (domain.MutationResult, error)
	Toggle(ctx context.Context, code string) (domain.MutationResult, error)
	ActivateMany(ctx context.Context, codes []string) (domain.MutationResult, error)
	SetDefault(ctx context.Context, code string) (domain.MutationResult, error)
	SetBase(ctx context.Context, code string) (domain.MutationResult, error)
	SetAutoUpdate(ctx context.Context, enabled bool) (domain.MutationResult, error)
	SetPreferred(ctx context.Context, code string) (domain.MutationResult, error)

	// Rate management
	SetRate(ctx context.Context, code string, rate float64) (domain.MutationResult, error)
	ResetRates(ctx context.Context) error
	RefreshRates(ctx context.Context) bool

	// Conversion and display
	Convert(ctx context.Context, amount float64, from, to string) float64
	ConvertStrict(ctx context.Context, amount float64, from, to string) (float64, error)
	Format(ctx context.Context, amount float64, code string, decimals int) string
}
