package dto

import (
	"github.com/mytechsolutions09/artistic-pro-admin/internal/core/domain"
)

// SetCurrencyRequest selects a currency by its 3-letter code. Used for the
// default, base, and preferred currency endpoints.
type SetCurrencyRequest struct {
	Code string `json:"code" binding:"required,uppercase,len=3"`
}

// BulkActivateRequest activates a batch of currency codes, typically from a
// bulk import.
type BulkActivateRequest struct {
	Codes []string `json:"codes" binding:"required,min=1,dive,uppercase,len=3"`
}

// AutoUpdateRequest flips the periodic rate refresh. A pointer so an
// explicit false is distinguishable from an absent field.
type AutoUpdateRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// SetRateRequest overrides a single exchange rate. A pointer so an explicit
// zero survives binding and reaches the service, which rejects non-positive
// rates with a structured message instead of a binding error.
type SetRateRequest struct {
	Rate *float64 `json:"rate" binding:"required"`
}

// MutationResponse mirrors domain.MutationResult on the wire.
type MutationResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// ToMutationResponse converts a domain.MutationResult to its response DTO.
func ToMutationResponse(res domain.MutationResult) MutationResponse {
	return MutationResponse{
		Success: res.Success,
		Message: res.Message,
		Errors:  res.Errors,
	}
}

// CurrencyDetailsResponse is the per-currency admin view.
type CurrencyDetailsResponse struct {
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	Symbol        string  `json:"symbol"`
	Flag          string  `json:"flag"`
	IsEnabled     bool    `json:"isEnabled"`
	IsDefault     bool    `json:"isDefault"`
	IsBase        bool    `json:"isBase"`
	CanDeactivate bool    `json:"canDeactivate"`
	CurrentRate   float64 `json:"currentRate"`
}

// ToCurrencyDetailsResponse converts a domain.CurrencyDetails to its
// response DTO.
func ToCurrencyDetailsResponse(d domain.CurrencyDetails) CurrencyDetailsResponse {
	return CurrencyDetailsResponse{
		Code:          d.Code,
		Name:          d.Name,
		Symbol:        d.Symbol,
		Flag:          d.Flag,
		IsEnabled:     d.IsEnabled,
		IsDefault:     d.IsDefault,
		IsBase:        d.IsBase,
		CanDeactivate: d.CanDeactivate,
		CurrentRate:   d.CurrentRate,
	}
}

// RatesResponse carries the effective rate map.
type RatesResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// ConvertResponse is the result of a conversion query.
type ConvertResponse struct {
	Amount    float64 `json:"amount"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	Converted float64 `json:"converted"`
	Formatted string  `json:"formatted"`
}

// SettingsResponse mirrors domain.CurrencySettings on the wire.
type SettingsResponse struct {
	DefaultCurrency   string   `json:"defaultCurrency"`
	BaseCurrency      string   `json:"baseCurrency"`
	EnabledCurrencies []string `json:"enabledCurrencies"`
	AutoUpdate        bool     `json:"autoUpdate"`
	LastUpdated       string   `json:"lastUpdated"`
}

// ToSettingsResponse converts domain.CurrencySettings to its response DTO.
func ToSettingsResponse(s domain.CurrencySettings) SettingsResponse {
	return SettingsResponse{
		DefaultCurrency:   s.DefaultCurrency,
		BaseCurrency:      s.BaseCurrency,
		EnabledCurrencies: s.EnabledCurrencies,
		AutoUpdate:        s.AutoUpdate,
		LastUpdated:       s.LastUpdated,
	}
}
