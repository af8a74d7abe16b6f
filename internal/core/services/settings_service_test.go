package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mytechsolutions09/artistic-pro-admin/internal/core/domain"
	"github.com/mytechsolutions09/artistic-pro-admin/internal/core/services"
	"github.com/mytechsolutions09/artistic-pro-admin/internal/repositories/kvstore"
)

// --- Test Suite ---

type SettingsServiceTestSuite struct {
	suite.Suite
	store   *kvstore.MemoryStore
	service *services.SettingsService
	ctx     context.Context
}

func (s *SettingsServiceTestSuite) SetupTest() {
	s.store = kvstore.NewMemoryStore()
	s.service = services.NewSettingsService(s.store, services.NewRegistry())
	s.ctx = context.Background()
}

// mustSettings reads the current settings, failing the test on storage error.
func (s *SettingsServiceTestSuite) mustSettings() domain.CurrencySettings {
	settings, err := s.service.Get(s.ctx)
	s.Require().NoError(err)
	return settings
}

// assertInvariants checks the properties that must hold after every mutation.
func (s *SettingsServiceTestSuite) assertInvariants() {
	settings := s.mustSettings()
	s.Require().NotEmpty(settings.EnabledCurrencies, "enabled set must never empty")
	s.True(settings.IsEnabled(settings.DefaultCurrency), "default must stay enabled")
	s.True(settings.IsEnabled(settings.BaseCurrency), "base must stay enabled")
}

// --- Fresh install ---

func (s *SettingsServiceTestSuite) TestFreshInstallSeedsDefaults() {
	settings := s.mustSettings()

	s.Equal("INR", settings.DefaultCurrency)
	s.Equal("INR", settings.BaseCurrency)
	s.Contains(settings.EnabledCurrencies, "INR")
	s.Contains(settings.EnabledCurrencies, "USD")
	s.False(settings.AutoUpdate)
	s.assertInvariants()
}

// --- Activate ---

func (s *SettingsServiceTestSuite) TestActivate_Success() {
	res, err := s.service.Activate(s.ctx, "JPY")
	s.Require().NoError(err)
	s.True(res.Success)

	s.True(s.mustSettings().IsEnabled("JPY"))
	s.assertInvariants()
}

func (s *SettingsServiceTestSuite) TestActivate_UnsupportedCode() {
	res, err := s.service.Activate(s.ctx, "XYZ")
	s.Require().NoError(err)
	s.False(res.Success)
	s.Contains(res.Message, "not supported")
}

func (s *SettingsServiceTestSuite) TestActivate_AlreadyActive() {
	res, err := s.service.Activate(s.ctx, "USD")
	s.Require().NoError(err)
	s.False(res.Success)
	s.Contains(res.Message, "already active")
}

func (s *SettingsServiceTestSuite) TestActivate_AppendsInOrder() {
	_, err := s.service.Activate(s.ctx, "JPY")
	s.Require().NoError(err)
	_, err = s.service.Activate(s.ctx, "AED")
	s.Require().NoError(err)

	enabled := s.mustSettings().EnabledCurrencies
	s.Equal("AED", enabled[len(enabled)-1])
	s.Equal("JPY", enabled[len(enabled)-2])
}

// --- Deactivate ---

func (s *SettingsServiceTestSuite) TestDeactivate_DefaultCurrencyRejected() {
	before := s.mustSettings()

	res, err := s.service.Deactivate(s.ctx, "INR")
	s.Require().NoError(err)
	s.False(res.Success)
	s.Contains(res.Message, "default currency")

	s.Equal(before, s.mustSettings(), "rejection leaves state unchanged")
}

func (s *SettingsServiceTestSuite) TestDeactivate_BaseCurrencyRejected() {
	// Move default off INR so the base guard is the one that fires.
	res, err := s.service.SetDefault(s.ctx, "USD")
	s.Require().NoError(err)
	s.Require().True(res.Success)

	res, err = s.service.Deactivate(s.ctx, "INR")
	s.Require().NoError(err)
	s.False(res.Success)
	s.Contains(res.Message, "base currency")
	s.assertInvariants()
}

func (s *SettingsServiceTestSuite) TestDeactivate_PromoteThenRemove() {
	// Promote EUR to default and base, then INR becomes removable.
	res, err := s.service.SetDefault(s.ctx, "EUR")
	s.Require().NoError(err)
	s.Require().True(res.Success)
	res, err = s.service.SetBase(s.ctx, "EUR")
	s.Require().NoError(err)
	s.Require().True(res.Success)

	res, err = s.service.Deactivate(s.ctx, "INR")
	s.Require().NoError(err)
	s.True(res.Success)

	s.False(s.mustSettings().IsEnabled("INR"))
	s.assertInvariants()
}

func (s *SettingsServiceTestSuite) TestDeactivate_AlreadyInactive() {
	res, err := s.service.Deactivate(s.ctx, "JPY")
	s.Require().NoError(err)
	s.False(res.Success)
	s.Contains(res.Message, "already inactive")
}

func (s *SettingsServiceTestSuite) TestDeactivate_LastActiveCurrencyRejected() {
	// Shrink the enabled set down to just INR.
	for _, code := range []string{"USD", "EUR", "GBP"} {
		res, err := s.service.Deactivate(s.ctx, code)
		s.Require().NoError(err)
		s.Require().True(res.Success, "deactivating %s: %s", code, res.Message)
	}

	res, err := s.service.Deactivate(s.ctx, "INR")
	s.Require().NoError(err)
	s.False(res.Success)
	s.Len(s.mustSettings().EnabledCurrencies, 1)
	s.assertInvariants()
}

// --- Toggle ---

func (s *SettingsServiceTestSuite) TestToggle_TwiceRestoresMembership() {
	res, err := s.service.Toggle(s.ctx, "JPY")
	s.Require().NoError(err)
	s.Require().True(res.Success)
	s.True(s.mustSettings().IsEnabled("JPY"))

	res, err = s.service.Toggle(s.ctx, "JPY")
	s.Require().NoError(err)
	s.Require().True(res.Success)
	s.False(s.mustSettings().IsEnabled("JPY"))
	s.assertInvariants()
}

func (s *SettingsServiceTestSuite) TestToggle_UnsupportedCode() {
	res, err := s.service.Toggle(s.ctx, "ZZZ")
	s.Require().NoError(err)
	s.False(res.Success)
}

// --- Defaults and base ---

func (s *SettingsServiceTestSuite) TestSetDefault_AutoActivates() {
	res, err := s.service.SetDefault(s.ctx, "JPY")
	s.Require().NoError(err)
	s.True(res.Success)

	settings := s.mustSettings()
	s.Equal("JPY", settings.DefaultCurrency)
	s.True(settings.IsEnabled("JPY"))
	s.True(settings.IsEnabled("INR"), "previous default stays enabled")
	s.assertInvariants()
}

func (s *SettingsServiceTestSuite) TestSetDefault_AlreadyDefault() {
	res, err := s.service.SetDefault(s.ctx, "INR")
	s.Require().NoError(err)
	s.False(res.Success)
	s.Contains(res.Message, "already the default")
}

func (s *SettingsServiceTestSuite) TestSetBase_AutoActivates() {
	res, err := s.service.SetBase(s.ctx, "SGD")
	s.Require().NoError(err)
	s.True(res.Success)

	settings := s.mustSettings()
	s.Equal("SGD", settings.BaseCurrency)
	s.True(settings.IsEnabled("SGD"))
	s.assertInvariants()
}

// --- Auto update ---

func (s *SettingsServiceTestSuite) TestSetAutoUpdate_TogglesAndNotifies() {
	var notified []bool
	s.service.SetOnAutoUpdateChange(func(enabled bool) {
		notified = append(notified, enabled)
	})

	res, err := s.service.SetAutoUpdate(s.ctx, true)
	s.Require().NoError(err)
	s.True(res.Success)
	s.True(s.mustSettings().AutoUpdate)

	// Idempotent: no state change and no second notification.
	res, err = s.service.SetAutoUpdate(s.ctx, true)
	s.Require().NoError(err)
	s.True(res.Success)
	s.Contains(res.Message, "already")

	res, err = s.service.SetAutoUpdate(s.ctx, false)
	s.Require().NoError(err)
	s.True(res.Success)
	s.False(s.mustSettings().AutoUpdate)

	s.Equal([]bool{true, false}, notified)
}

// --- CanDeactivate mirrors Deactivate ---

func (s *SettingsServiceTestSuite) TestCanDeactivateMatchesDeactivate() {
	_, err := s.service.Activate(s.ctx, "JPY")
	s.Require().NoError(err)
	_, err = s.service.SetDefault(s.ctx, "USD")
	s.Require().NoError(err)

	registry := services.NewRegistry()
	for _, c := range append(registry.ListAll(), domain.Currency{Code: "XYZ"}) {
		predicted := s.service.CanDeactivate(s.ctx, c.Code)

		// Probe on a parallel service over a copy of the persisted state,
		// so the probe cannot disturb the state under test.
		probeStore := kvstore.NewMemoryStore()
		blob, err := s.store.Get(s.ctx, "currency_settings")
		s.Require().NoError(err)
		s.Require().NoError(probeStore.Set(s.ctx, "currency_settings", blob))
		probe := services.NewSettingsService(probeStore, registry)

		res, err := probe.Deactivate(s.ctx, c.Code)
		s.Require().NoError(err)
		s.Equal(res.Success, predicted, "CanDeactivate(%s) must mirror Deactivate", c.Code)
	}
}

// --- Bulk activation ---

func (s *SettingsServiceTestSuite) TestActivateMany_PartialSuccess() {
	res, err := s.service.ActivateMany(s.ctx, []string{"JPY", "USD", "XYZ", "AED"})
	s.Require().NoError(err)

	s.True(res.Success, "at least one activation succeeded")
	s.Len(res.Errors, 2, "already-active and unsupported codes are reported")

	settings := s.mustSettings()
	s.True(settings.IsEnabled("JPY"))
	s.True(settings.IsEnabled("AED"))
}

func (s *SettingsServiceTestSuite) TestActivateMany_AllFail() {
	res, err := s.service.ActivateMany(s.ctx, []string{"USD", "XYZ"})
	s.Require().NoError(err)
	s.False(res.Success)
	s.Len(res.Errors, 2)
}

func TestSettingsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SettingsServiceTestSuite))
}
