package services

import (
	"context"
	"log/slog"

	"github.com/mytechsolutions09/artistic-pro-admin/internal/core/ports"
)

// RateUpdater runs the fetch pipeline: an ordered provider chain where the
// first non-empty rate map wins and replaces the cached snapshot wholesale.
// Provider failures never reach the caller; they are logged and the chain
// advances.
type RateUpdater struct {
	providers []ports.RateProvider
	cache     *RateCache
	settings  *SettingsService
	logger    *slog.Logger
}

func NewRateUpdater(providers []ports.RateProvider, cache *RateCache, settings *SettingsService, logger *slog.Logger) *RateUpdater {
	if logger == nil {
		logger = slog.Default()
	}
	return &RateUpdater{
		providers: providers,
		cache:     cache,
		settings:  settings,
		logger:    logger,
	}
}

// Refresh tries each provider in order and reports whether any produced a
// usable rate map. On success the cache is overwritten and the settings'
// lastUpdated stamp is persisted.
func (u *RateUpdater) Refresh(ctx context.Context) bool {
	base := BaseCurrencyCode
	if settings, err := u.settings.Get(ctx); err == nil {
		base = settings.BaseCurrency
	} else {
		u.logger.Warn("settings unavailable for refresh, using catalog base",
			slog.String("error", err.Error()))
	}

	for _, provider := range u.providers {
		rates, err := provider.FetchRates(ctx, base)
		if err != nil {
			u.logger.Warn("rate provider failed",
				slog.String("provider", provider.Name()),
				slog.String("error", err.Error()))
			continue
		}
		if len(rates) == 0 {
			u.logger.Warn("rate provider returned no rates",
				slog.String("provider", provider.Name()))
			continue
		}

		if err := u.cache.Set(ctx, rates); err != nil {
			u.logger.Error("failed to persist refreshed rates",
				slog.String("provider", provider.Name()),
				slog.String("error", err.Error()))
			return false
		}
		if err := u.settings.StampLastUpdated(ctx, u.cache.now()); err != nil {
			u.logger.Error("failed to stamp lastUpdated",
				slog.String("error", err.Error()))
		}

		u.logger.Info("exchange rates refreshed",
			slog.String("provider", provider.Name()),
			slog.Int("currencies", len(rates)))
		return true
	}

	return false
}
