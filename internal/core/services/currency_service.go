package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mytechsolutions09/artistic-pro-admin/internal/core/domain"
	"github.com/mytechsolutions09/artistic-pro-admin/internal/core/ports"
)

// preferredCurrencyKey stores the end user's sticky display-currency choice
// as a plain string code.
const preferredCurrencyKey = "user_preferred_currency"

// CurrencyService aggregates the registry, settings store, rate cache,
// fetch pipeline, and converter behind the single facade the HTTP layer
// consumes. It also owns the reactive side: a current snapshot that is
// recomputed and republished to subscribers after every mutating call.
type CurrencyService struct {
	registry  *Registry
	settings  *SettingsService
	cache     *RateCache
	updater   *RateUpdater
	converter *Converter
	scheduler *RefreshScheduler
	store     ports.KVStore
	logger    *slog.Logger

	// autoInterval is the period of the auto-update schedule; defaults to
	// the cache TTL so a fresh snapshot lands just as the old one expires.
	autoInterval time.Duration

	mu         sync.Mutex
	current    domain.Snapshot
	isUpdating bool
	subs       map[int]chan domain.Snapshot
	nextSubID  int
}

func NewCurrencyService(
	store ports.KVStore,
	registry *Registry,
	settings *SettingsService,
	cache *RateCache,
	updater *RateUpdater,
	converter *Converter,
	scheduler *RefreshScheduler,
	logger *slog.Logger,
) *CurrencyService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &CurrencyService{
		registry:     registry,
		settings:     settings,
		cache:        cache,
		updater:      updater,
		converter:    converter,
		scheduler:    scheduler,
		store:        store,
		logger:       logger,
		autoInterval: RateCacheTTL,
		subs:         make(map[int]chan domain.Snapshot),
	}
	settings.SetOnAutoUpdateChange(s.handleAutoUpdateChange)
	return s
}

// SetAutoUpdateInterval overrides the refresh period. Call before Init.
func (s *CurrencyService) SetAutoUpdateInterval(interval time.Duration) {
	s.autoInterval = interval
}

// Init seeds settings on first run, restores the auto-update schedule, and
// publishes the initial snapshot.
func (s *CurrencyService) Init(ctx context.Context) error {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize currency settings: %w", err)
	}
	if settings.AutoUpdate {
		s.handleAutoUpdateChange(true)
	}
	s.republish(ctx)
	return nil
}

// Close stops the schedule and detaches all subscribers.
func (s *CurrencyService) Close() {
	s.scheduler.Stop()

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, ch := range s.subs {
		close(ch)
		delete(s.subs, id)
	}
}

// Snapshot returns the last published reactive state.
func (s *CurrencyService) Snapshot(ctx context.Context) domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Subscribe registers a snapshot listener primed with the current state.
// The returned cancel func releases the channel. Slow consumers lose
// intermediate snapshots, never the latest one.
func (s *CurrencyService) Subscribe() (<-chan domain.Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	ch := make(chan domain.Snapshot, 1)
	ch <- s.current
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Settings returns the current persisted settings.
func (s *CurrencyService) Settings(ctx context.Context) (domain.CurrencySettings, error) {
	return s.settings.Get(ctx)
}

// Rates returns the effective rate map.
func (s *CurrencyService) Rates(ctx context.Context) map[string]float64 {
	return s.cache.Get(ctx)
}

// ListDetails returns every catalog entry overlaid with activation state.
func (s *CurrencyService) ListDetails(ctx context.Context) ([]domain.CurrencyDetails, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	rates := s.cache.Get(ctx)

	var details []domain.CurrencyDetails
	for _, c := range s.registry.ListAll() {
		details = append(details, buildDetails(c, settings, rates))
	}
	return details, nil
}

// Details returns the overlay for one code, or nil for unknown codes.
func (s *CurrencyService) Details(ctx context.Context, code string) (*domain.CurrencyDetails, error) {
	entry := s.registry.Find(code)
	if entry == nil {
		return nil, nil
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	d := buildDetails(*entry, settings, s.cache.Get(ctx))
	return &d, nil
}

func buildDetails(c domain.Currency, settings domain.CurrencySettings, rates map[string]float64) domain.CurrencyDetails {
	enabled := settings.IsEnabled(c.Code)
	canDeactivate := enabled &&
		len(settings.EnabledCurrencies) > 1 &&
		c.Code != settings.DefaultCurrency &&
		c.Code != settings.BaseCurrency

	rate := c.Rate
	if r, ok := rates[c.Code]; ok {
		rate = r
	}
	return domain.CurrencyDetails{
		Currency:      c,
		IsEnabled:     enabled,
		IsDefault:     c.Code == settings.DefaultCurrency,
		IsBase:        c.Code == settings.BaseCurrency,
		CanDeactivate: canDeactivate,
		CurrentRate:   rate,
	}
}

// Activate enables a currency for end users.
func (s *CurrencyService) Activate(ctx context.Context, code string) (domain.MutationResult, error) {
	return s.mutate(ctx, func() (domain.MutationResult, error) {
		return s.settings.Activate(ctx, code)
	})
}

// Deactivate disables a currency, subject to the settings guards.
func (s *CurrencyService) Deactivate(ctx context.Context, code string) (domain.MutationResult, error) {
	return s.mutate(ctx, func() (domain.MutationResult, error) {
		return s.settings.Deactivate(ctx, code)
	})
}

// Toggle flips a currency's activation state.
func (s *CurrencyService) Toggle(ctx context.Context, code string) (domain.MutationResult, error) {
	return s.mutate(ctx, func() (domain.MutationResult, error) {
		return s.settings.Toggle(ctx, code)
	})
}

// ActivateMany activates a batch of codes, as used by bulk imports.
func (s *CurrencyService) ActivateMany(ctx context.Context, codes []string) (domain.MutationResult, error) {
	return s.mutate(ctx, func() (domain.MutationResult, error) {
		return s.settings.ActivateMany(ctx, codes)
	})
}

// SetDefault changes the default display currency.
func (s *CurrencyService) SetDefault(ctx context.Context, code string) (domain.MutationResult, error) {
	return s.mutate(ctx, func() (domain.MutationResult, error) {
		return s.settings.SetDefault(ctx, code)
	})
}

// SetBase changes the conversion pivot. Cached rates are expressed against
// the pivot, so a successful change immediately re-runs the fetch pipeline
// rather than leaving stale numbers under the new pivot label.
func (s *CurrencyService) SetBase(ctx context.Context, code string) (domain.MutationResult, error) {
	res, err := s.settings.SetBase(ctx, code)
	if err != nil || !res.Success {
		return res, err
	}
	if !s.updater.Refresh(ctx) {
		s.logger.Warn("rate refresh after base change failed", slog.String("base", code))
	}
	s.republish(ctx)
	return res, nil
}

// SetAutoUpdate turns the periodic refresh schedule on or off.
func (s *CurrencyService) SetAutoUpdate(ctx context.Context, enabled bool) (domain.MutationResult, error) {
	return s.mutate(ctx, func() (domain.MutationResult, error) {
		return s.settings.SetAutoUpdate(ctx, enabled)
	})
}

// SetPreferred persists the end user's sticky display currency. Only
// currently enabled currencies are accepted.
func (s *CurrencyService) SetPreferred(ctx context.Context, code string) (domain.MutationResult, error) {
	if s.registry.Find(code) == nil {
		return domain.Rejected(fmt.Sprintf("currency %s is not supported", code)), nil
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return domain.MutationResult{}, err
	}
	if !settings.IsEnabled(code) {
		return domain.Rejected(fmt.Sprintf("currency %s is not active", code)), nil
	}
	if err := s.store.Set(ctx, preferredCurrencyKey, []byte(code)); err != nil {
		return domain.MutationResult{}, err
	}
	s.republish(ctx)
	return domain.Accepted(fmt.Sprintf("preferred currency set to %s", code)), nil
}

// SetRate manually overrides one exchange rate.
func (s *CurrencyService) SetRate(ctx context.Context, code string, rate float64) (domain.MutationResult, error) {
	return s.mutate(ctx, func() (domain.MutationResult, error) {
		return s.cache.SetOne(ctx, code, rate)
	})
}

// ResetRates clears the cached snapshot back to catalog defaults.
func (s *CurrencyService) ResetRates(ctx context.Context) error {
	if err := s.cache.Reset(ctx); err != nil {
		return err
	}
	s.republish(ctx)
	return nil
}

// RefreshRates runs the fetch pipeline now, flagging the snapshot as
// updating for the duration so the UI can show progress.
func (s *CurrencyService) RefreshRates(ctx context.Context) bool {
	s.setUpdating(true)
	s.republish(ctx)

	ok := s.updater.Refresh(ctx)

	s.setUpdating(false)
	s.republish(ctx)
	return ok
}

// Convert delegates to the lenient converter.
func (s *CurrencyService) Convert(ctx context.Context, amount float64, from, to string) float64 {
	return s.converter.Convert(ctx, amount, from, to)
}

// ConvertStrict delegates to the fail-fast converter.
func (s *CurrencyService) ConvertStrict(ctx context.Context, amount float64, from, to string) (float64, error) {
	return s.converter.ConvertStrict(ctx, amount, from, to)
}

// Format delegates to the display formatter.
func (s *CurrencyService) Format(ctx context.Context, amount float64, code string, decimals int) string {
	return s.converter.Format(ctx, amount, code, decimals)
}

// mutate runs a settings/cache mutation and republishes on success.
func (s *CurrencyService) mutate(ctx context.Context, op func() (domain.MutationResult, error)) (domain.MutationResult, error) {
	res, err := op()
	if err != nil {
		return res, err
	}
	if res.Success {
		s.republish(ctx)
	}
	return res, nil
}

func (s *CurrencyService) handleAutoUpdateChange(enabled bool) {
	if enabled {
		s.scheduler.Start(s.autoInterval, func(ctx context.Context) {
			s.RefreshRates(ctx)
		})
		return
	}
	s.scheduler.Stop()
}

func (s *CurrencyService) setUpdating(updating bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isUpdating = updating
}

// republish recomputes the reactive snapshot and fans it out. Publish
// failures are logged, never surfaced: the mutation that triggered the
// republish has already committed.
func (s *CurrencyService) republish(ctx context.Context) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		s.logger.Error("failed to rebuild snapshot", slog.String("error", err.Error()))
		return
	}

	var enabled []domain.Currency
	for _, code := range settings.EnabledCurrencies {
		if entry := s.registry.Find(code); entry != nil {
			enabled = append(enabled, *entry)
		}
	}

	snap := domain.Snapshot{
		CurrentCurrency:   s.currentCurrency(ctx, settings),
		EnabledCurrencies: enabled,
		Settings:          settings,
		LastUpdated:       settings.LastUpdated,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	snap.IsUpdating = s.isUpdating
	s.current = snap
	for _, ch := range s.subs {
		// Keep only the latest snapshot for slow consumers.
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}

// currentCurrency resolves the display currency: the stored user preference
// when it is still enabled, the configured default otherwise.
func (s *CurrencyService) currentCurrency(ctx context.Context, settings domain.CurrencySettings) string {
	data, err := s.store.Get(ctx, preferredCurrencyKey)
	if err != nil {
		return settings.DefaultCurrency
	}
	preferred := strings.TrimSpace(string(data))
	if preferred == "" || !settings.IsEnabled(preferred) {
		return settings.DefaultCurrency
	}
	return preferred
}
