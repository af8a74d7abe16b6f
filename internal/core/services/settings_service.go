package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mytechsolutions09/artistic-pro-admin/internal/apperrors"
	"github.com/mytechsolutions09/artistic-pro-admin/internal/core/domain"
	"github.com/mytechsolutions09/artistic-pro-admin/internal/core/ports"
)

// currencySettingsKey is the KV key holding the persisted settings blob.
const currencySettingsKey = "currency_settings"

// SettingsService owns the mutable currency configuration and every
// activation/default-currency invariant. All mutations are atomic
// read-modify-write cycles over the whole blob: a rejected mutation leaves
// no partial write behind.
//
// Invariants held after every successful mutation:
//  1. the enabled set is never empty;
//  2. the default currency is enabled;
//  3. the base currency is enabled.
type SettingsService struct {
	store    ports.KVStore
	registry *Registry
	now      func() time.Time

	mu sync.Mutex

	// onAutoUpdateChange is invoked (outside persistence) when the
	// autoUpdate flag flips, so the owner can start or stop the refresh
	// schedule. Optional.
	onAutoUpdateChange func(enabled bool)
}

func NewSettingsService(store ports.KVStore, registry *Registry) *SettingsService {
	return &SettingsService{
		store:    store,
		registry: registry,
		now:      time.Now,
	}
}

// SetOnAutoUpdateChange registers the scheduler hook. Must be called before
// the service is shared across goroutines.
func (s *SettingsService) SetOnAutoUpdateChange(fn func(enabled bool)) {
	s.onAutoUpdateChange = fn
}

// Get returns the current settings, seeding and persisting hard-coded
// defaults when no blob exists yet.
func (s *SettingsService) Get(ctx context.Context) (domain.CurrencySettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

// Activate adds a currency to the enabled set.
func (s *SettingsService) Activate(ctx context.Context, code string) (domain.MutationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activateLocked(ctx, code)
}

func (s *SettingsService) activateLocked(ctx context.Context, code string) (domain.MutationResult, error) {
	if s.registry.Find(code) == nil {
		return domain.Rejected(fmt.Sprintf("currency %s is not supported", code)), nil
	}

	settings, err := s.loadLocked(ctx)
	if err != nil {
		return domain.MutationResult{}, err
	}
	if settings.IsEnabled(code) {
		return domain.Rejected(fmt.Sprintf("currency %s is already active", code)), nil
	}

	next := settings.Clone()
	next.EnabledCurrencies = append(next.EnabledCurrencies, code)
	if err := s.persistLocked(ctx, next); err != nil {
		return domain.MutationResult{}, err
	}
	return domain.Accepted(fmt.Sprintf("currency %s activated", code)), nil
}

// Deactivate removes a currency from the enabled set, guarded so the set
// never empties and the default/base currencies stay enabled.
func (s *SettingsService) Deactivate(ctx context.Context, code string) (domain.MutationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deactivateLocked(ctx, code)
}

func (s *SettingsService) deactivateLocked(ctx context.Context, code string) (domain.MutationResult, error) {
	if s.registry.Find(code) == nil {
		return domain.Rejected(fmt.Sprintf("currency %s is not supported", code)), nil
	}

	settings, err := s.loadLocked(ctx)
	if err != nil {
		return domain.MutationResult{}, err
	}
	if !settings.IsEnabled(code) {
		return domain.Rejected(fmt.Sprintf("currency %s is already inactive", code)), nil
	}
	if len(settings.EnabledCurrencies) == 1 {
		return domain.Rejected("cannot deactivate the only active currency"), nil
	}
	if code == settings.DefaultCurrency {
		return domain.Rejected(fmt.Sprintf("currency %s is the default currency and cannot be deactivated", code)), nil
	}
	if code == settings.BaseCurrency {
		return domain.Rejected(fmt.Sprintf("currency %s is the base currency and cannot be deactivated", code)), nil
	}

	next := settings.Clone()
	kept := next.EnabledCurrencies[:0]
	for _, c := range next.EnabledCurrencies {
		if c != code {
			kept = append(kept, c)
		}
	}
	next.EnabledCurrencies = kept
	if err := s.persistLocked(ctx, next); err != nil {
		return domain.MutationResult{}, err
	}
	return domain.Accepted(fmt.Sprintf("currency %s deactivated", code)), nil
}

// Toggle flips activation based on current membership.
func (s *SettingsService) Toggle(ctx context.Context, code string) (domain.MutationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.registry.Find(code) == nil {
		return domain.Rejected(fmt.Sprintf("currency %s is not supported", code)), nil
	}
	settings, err := s.loadLocked(ctx)
	if err != nil {
		return domain.MutationResult{}, err
	}
	if settings.IsEnabled(code) {
		return s.deactivateLocked(ctx, code)
	}
	return s.activateLocked(ctx, code)
}

// ActivateMany activates each code in order, collecting per-code failures.
// The bulk call succeeds when at least one code was activated.
func (s *SettingsService) ActivateMany(ctx context.Context, codes []string) (domain.MutationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var failures []string
	activated := 0
	for _, code := range codes {
		res, err := s.activateLocked(ctx, code)
		if err != nil {
			return domain.MutationResult{}, err
		}
		if res.Success {
			activated++
		} else {
			failures = append(failures, res.Message)
		}
	}

	result := domain.MutationResult{
		Success: activated > 0,
		Message: fmt.Sprintf("activated %d of %d currencies", activated, len(codes)),
		Errors:  failures,
	}
	return result, nil
}

// SetDefault designates the default display currency, auto-activating it
// when necessary. The previous default stays enabled.
func (s *SettingsService) SetDefault(ctx context.Context, code string) (domain.MutationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.registry.Find(code) == nil {
		return domain.Rejected(fmt.Sprintf("currency %s is not supported", code)), nil
	}

	settings, err := s.loadLocked(ctx)
	if err != nil {
		return domain.MutationResult{}, err
	}
	if settings.DefaultCurrency == code {
		return domain.Rejected(fmt.Sprintf("currency %s is already the default currency", code)), nil
	}

	next := settings.Clone()
	next.DefaultCurrency = code
	if !next.IsEnabled(code) {
		next.EnabledCurrencies = append(next.EnabledCurrencies, code)
	}
	if err := s.persistLocked(ctx, next); err != nil {
		return domain.MutationResult{}, err
	}
	return domain.Accepted(fmt.Sprintf("default currency set to %s", code)), nil
}

// SetBase designates the conversion pivot, auto-activating it when
// necessary.
func (s *SettingsService) SetBase(ctx context.Context, code string) (domain.MutationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.registry.Find(code) == nil {
		return domain.Rejected(fmt.Sprintf("currency %s is not supported", code)), nil
	}

	settings, err := s.loadLocked(ctx)
	if err != nil {
		return domain.MutationResult{}, err
	}
	if settings.BaseCurrency == code {
		return domain.Rejected(fmt.Sprintf("currency %s is already the base currency", code)), nil
	}

	next := settings.Clone()
	next.BaseCurrency = code
	if !next.IsEnabled(code) {
		next.EnabledCurrencies = append(next.EnabledCurrencies, code)
	}
	if err := s.persistLocked(ctx, next); err != nil {
		return domain.MutationResult{}, err
	}
	return domain.Accepted(fmt.Sprintf("base currency set to %s", code)), nil
}

// SetAutoUpdate flips the periodic-refresh flag. Idempotent: setting the
// current value succeeds without touching the schedule.
//
// The hook runs after the mutex is released: stopping the schedule waits
// for an in-flight refresh, and that refresh reads and stamps settings.
func (s *SettingsService) SetAutoUpdate(ctx context.Context, enabled bool) (domain.MutationResult, error) {
	res, changed, err := s.setAutoUpdateFlag(ctx, enabled)
	if err != nil {
		return res, err
	}
	if changed && s.onAutoUpdateChange != nil {
		s.onAutoUpdateChange(enabled)
	}
	return res, nil
}

func (s *SettingsService) setAutoUpdateFlag(ctx context.Context, enabled bool) (domain.MutationResult, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.loadLocked(ctx)
	if err != nil {
		return domain.MutationResult{}, false, err
	}
	if settings.AutoUpdate == enabled {
		state := "disabled"
		if enabled {
			state = "enabled"
		}
		return domain.Accepted(fmt.Sprintf("auto update is already %s", state)), false, nil
	}

	next := settings.Clone()
	next.AutoUpdate = enabled
	if err := s.persistLocked(ctx, next); err != nil {
		return domain.MutationResult{}, false, err
	}

	if enabled {
		return domain.Accepted("auto update enabled"), true, nil
	}
	return domain.Accepted("auto update disabled"), true, nil
}

// CanDeactivate mirrors the deactivation guards without attempting the
// mutation, so the UI can pre-disable controls.
func (s *SettingsService) CanDeactivate(ctx context.Context, code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.loadLocked(ctx)
	if err != nil {
		return false
	}
	if !settings.IsEnabled(code) {
		return false
	}
	if len(settings.EnabledCurrencies) == 1 {
		return false
	}
	return code != settings.DefaultCurrency && code != settings.BaseCurrency
}

// StampLastUpdated records a successful rate refresh time.
func (s *SettingsService) StampLastUpdated(ctx context.Context, t time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.loadLocked(ctx)
	if err != nil {
		return err
	}
	next := settings.Clone()
	next.LastUpdated = t.UTC().Format(time.RFC3339)
	return s.persistLocked(ctx, next)
}

// loadLocked reads the settings blob, seeding defaults on first use.
// Callers must hold s.mu.
func (s *SettingsService) loadLocked(ctx context.Context) (domain.CurrencySettings, error) {
	data, err := s.store.Get(ctx, currencySettingsKey)
	if errors.Is(err, apperrors.ErrNotFound) {
		seeded := s.defaultSettings()
		if err := s.persistLocked(ctx, seeded); err != nil {
			return domain.CurrencySettings{}, err
		}
		return seeded, nil
	}
	if err != nil {
		return domain.CurrencySettings{}, err
	}

	var settings domain.CurrencySettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return domain.CurrencySettings{}, fmt.Errorf("%w: corrupt settings blob: %v", apperrors.ErrStorage, err)
	}
	return settings, nil
}

func (s *SettingsService) persistLocked(ctx context.Context, settings domain.CurrencySettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal settings: %v", apperrors.ErrStorage, err)
	}
	return s.store.Set(ctx, currencySettingsKey, data)
}

func (s *SettingsService) defaultSettings() domain.CurrencySettings {
	return domain.CurrencySettings{
		DefaultCurrency:   BaseCurrencyCode,
		BaseCurrency:      BaseCurrencyCode,
		EnabledCurrencies: s.registry.DefaultEnabled(),
		AutoUpdate:        false,
		LastUpdated:       s.now().UTC().Format(time.RFC3339),
	}
}
