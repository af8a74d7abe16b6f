package domain

// Currency is a catalog entry for a supported currency. Entries are declared
// once at startup and never mutated; activation state lives in CurrencySettings.
type Currency struct {
	Code             string  `json:"code"`   // Primary key (e.g., "USD")
	Name             string  `json:"name"`   // e.g., "US Dollar"
	Symbol           string  `json:"symbol"` // e.g., "$"
	Flag             string  `json:"flag"`   // Flag glyph for the admin UI
	Rate             float64 `json:"rate"`   // Default rate, units of this currency per 1 unit of the base
	EnabledByDefault bool    `json:"enabledByDefault"`
}

// CurrencySettings is the single mutable source of truth for currency
// configuration. It is persisted wholesale as one JSON blob; partial field
// writes are never performed.
type CurrencySettings struct {
	DefaultCurrency   string   `json:"defaultCurrency"`
	BaseCurrency      string   `json:"baseCurrency"`
	EnabledCurrencies []string `json:"enabledCurrencies"` // Insertion order preserved for UI listing
	AutoUpdate        bool     `json:"autoUpdate"`
	LastUpdated       string   `json:"lastUpdated"` // ISO-8601
}

// IsEnabled reports whether code is part of the enabled set.
func (s CurrencySettings) IsEnabled(code string) bool {
	for _, c := range s.EnabledCurrencies {
		if c == code {
			return true
		}
	}
	return false
}

// Clone returns a deep copy, so callers can stage a mutation and only
// persist it once every invariant check has passed.
func (s CurrencySettings) Clone() CurrencySettings {
	out := s
	out.EnabledCurrencies = make([]string, len(s.EnabledCurrencies))
	copy(out.EnabledCurrencies, s.EnabledCurrencies)
	return out
}

// RateSnapshot is the persisted exchange-rate blob. Rates share the pivot
// convention of Currency.Rate. The snapshot expires as a whole; there is no
// per-key expiry.
type RateSnapshot struct {
	Rates     map[string]float64 `json:"rates"`
	Timestamp int64              `json:"timestamp"` // Epoch millis at write time
}

// CurrencyDetails is the per-currency view consumed by the admin UI: catalog
// metadata overlaid with the current activation state and guards.
type CurrencyDetails struct {
	Currency
	IsEnabled     bool    `json:"isEnabled"`
	IsDefault     bool    `json:"isDefault"`
	IsBase        bool    `json:"isBase"`
	CanDeactivate bool    `json:"canDeactivate"`
	CurrentRate   float64 `json:"currentRate"`
}

// Snapshot is the reactive state published to UI subscribers after every
// mutating operation and on initial load.
type Snapshot struct {
	CurrentCurrency   string           `json:"currentCurrency"`
	EnabledCurrencies []Currency       `json:"enabledCurrencies"`
	Settings          CurrencySettings `json:"settings"`
	IsUpdating        bool             `json:"isUpdating"`
	LastUpdated       string           `json:"lastUpdated"`
}
