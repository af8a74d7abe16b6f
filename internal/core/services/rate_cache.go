package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mytechsolutions09/artistic-pro-admin/internal/apperrors"
	"github.com/mytechsolutions09/artistic-pro-admin/internal/core/domain"
	"github.com/mytechsolutions09/artistic-pro-admin/internal/core/ports"
)

// exchangeRatesKey is the KV key holding the persisted rate snapshot.
const exchangeRatesKey = "exchange_rates"

// RateCacheTTL is how long a persisted snapshot stays authoritative.
// Staleness is checked at read time; there is no background eviction.
const RateCacheTTL = time.Hour

// RateCache is a read-through cache over the persisted rate snapshot. A
// fresh snapshot wins; a missing or expired one falls back to the catalog's
// default rates without mutating the stored blob.
type RateCache struct {
	store    ports.KVStore
	registry *Registry
	logger   *slog.Logger
	now      func() time.Time
}

func NewRateCache(store ports.KVStore, registry *Registry, logger *slog.Logger) *RateCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &RateCache{
		store:    store,
		registry: registry,
		logger:   logger,
		now:      time.Now,
	}
}

// Get returns the effective rate map. The read never fails: a miss, an
// expired snapshot, or a corrupt blob all degrade to registry defaults.
// Reading does not extend the snapshot's TTL.
func (c *RateCache) Get(ctx context.Context) map[string]float64 {
	snap, err := c.load(ctx)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			c.logger.Warn("rate snapshot unreadable, serving catalog defaults",
				slog.String("error", err.Error()))
		}
		return c.registry.DefaultRates()
	}

	age := c.now().UnixMilli() - snap.Timestamp
	if age >= RateCacheTTL.Milliseconds() {
		return c.registry.DefaultRates()
	}
	return snap.Rates
}

// Set replaces the stored snapshot wholesale, stamping it with the current
// time. Partial per-currency merges are never persisted here so that a
// snapshot always belongs to a single rate epoch.
func (c *RateCache) Set(ctx context.Context, rates map[string]float64) error {
	snap := domain.RateSnapshot{
		Rates:     rates,
		Timestamp: c.now().UnixMilli(),
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal rate snapshot: %v", apperrors.ErrStorage, err)
	}
	return c.store.Set(ctx, exchangeRatesKey, data)
}

// SetOne merges a manually edited rate into the effective map and persists
// the result. Non-positive rates and unknown codes are rejected.
func (c *RateCache) SetOne(ctx context.Context, code string, rate float64) (domain.MutationResult, error) {
	if c.registry.Find(code) == nil {
		return domain.Rejected(fmt.Sprintf("currency %s is not supported", code)), nil
	}
	if rate <= 0 {
		return domain.Rejected("exchange rate must be greater than zero"), nil
	}

	rates := c.Get(ctx)
	rates[code] = rate
	if err := c.Set(ctx, rates); err != nil {
		return domain.MutationResult{}, err
	}
	return domain.Accepted(fmt.Sprintf("exchange rate for %s updated", code)), nil
}

// Reset deletes the stored snapshot; subsequent reads serve catalog defaults.
func (c *RateCache) Reset(ctx context.Context) error {
	return c.store.Delete(ctx, exchangeRatesKey)
}

// Timestamp returns the stored snapshot's write time in epoch millis, or
// false when no snapshot is persisted.
func (c *RateCache) Timestamp(ctx context.Context) (int64, bool) {
	snap, err := c.load(ctx)
	if err != nil {
		return 0, false
	}
	return snap.Timestamp, true
}

func (c *RateCache) load(ctx context.Context) (domain.RateSnapshot, error) {
	var snap domain.RateSnapshot

	data, err := c.store.Get(ctx, exchangeRatesKey)
	if err != nil {
		return snap, err
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return snap, fmt.Errorf("%w: corrupt rate snapshot: %v", apperrors.ErrStorage, err)
	}
	if snap.Rates == nil {
		snap.Rates = map[string]float64{}
	}
	return snap, nil
}
