// Package metadata models the exchange-published trading rules: tradable
// symbol pairs, per-symbol price and quantity filters, and currency
// withdrawal/deposit rules. A Store holds the latest snapshot and swaps
// it atomically on refresh.
package metadata

import (
	"encoding/json"

	"github.com/bytedance/sonic"

	"btcturk/pkg/core"
)

// ExchangeInfo is the raw exchange-info payload, the data field of
// GET /api/v2/server/exchangeinfo.
type ExchangeInfo struct {
	TimeZone                string                   `json:"timeZone"`
	ServerTime              int64                    `json:"serverTime"`
	Symbols                 []Symbol                 `json:"symbols"`
	Currencies              []Currency               `json:"currencies"`
	CurrencyOperationBlocks []CurrencyOperationBlock `json:"currencyOperationBlocks"`
}

// Symbol is a tradable pair and the rules that govern orders on it.
// Symbols are constructed only from a metadata refresh and are immutable
// afterwards; a refresh supersedes them wholesale.
type Symbol struct {
	ID             int64             `json:"id" validate:"required"`
	Name           string            `json:"name" validate:"required"`
	NameNormalized string            `json:"nameNormalized" validate:"required"`
	Status         core.SymbolStatus `json:"status" validate:"required"`

	// Numerator is the traded asset, Denominator the pricing asset.
	Numerator        string `json:"numerator" validate:"required"`
	Denominator      string `json:"denominator" validate:"required"`
	NumeratorScale   int32  `json:"numeratorScale" validate:"min=0"`
	DenominatorScale int32  `json:"denominatorScale" validate:"min=0"`

	// HasFraction reports whether fractional quantities are accepted.
	HasFraction bool `json:"hasFraction"`

	Filters      []Filter           `json:"filters"`
	OrderMethods []core.OrderMethod `json:"orderMethods"`

	DisplayFormat           string `json:"displayFormat"`
	CommissionFromNumerator bool   `json:"commissionFromNumerator"`
	Order                   int64  `json:"order"`
	PriceRounding           bool   `json:"priceRounding"`
	IsNew                   bool   `json:"isNew"`

	// MarketPriceWarningThresholdPercentage drives a soft UI warning for
	// prices far from the market price. It never rejects an order.
	MarketPriceWarningThresholdPercentage core.Decimal  `json:"marketPriceWarningThresholdPercentage"`
	MaximumOrderAmount                    *core.Decimal `json:"maximumOrderAmount"`
}

// PriceFilter returns the symbol's PRICE_FILTER, or nil when it has none.
func (s *Symbol) PriceFilter() *PriceFilter {
	for i := range s.Filters {
		if s.Filters[i].Price != nil {
			return s.Filters[i].Price
		}
	}
	return nil
}

// SupportsMethod reports whether the symbol accepts the order method.
func (s *Symbol) SupportsMethod(m core.OrderMethod) bool {
	for _, om := range s.OrderMethods {
		if om == m {
			return true
		}
	}
	return false
}

// Filter is one validation rule attached to a symbol, polymorphic over
// the filterType discriminator. Known kinds are parsed into typed fields;
// unknown kinds are preserved verbatim for forward compatibility.
type Filter struct {
	// Type is the filterType discriminator, e.g. "PRICE_FILTER".
	Type string
	// Price is set when Type is "PRICE_FILTER".
	Price *PriceFilter

	raw json.RawMessage
}

// Raw returns the original JSON of the filter.
func (f *Filter) Raw() json.RawMessage {
	return f.raw
}

// UnmarshalJSON dispatches on the filterType discriminator.
func (f *Filter) UnmarshalJSON(data []byte) error {
	var head struct {
		FilterType string `json:"filterType"`
	}
	if err := sonic.Unmarshal(data, &head); err != nil {
		return err
	}
	f.Type = head.FilterType
	f.raw = append(json.RawMessage(nil), data...)
	if head.FilterType == "PRICE_FILTER" {
		f.Price = new(PriceFilter)
		return sonic.Unmarshal(data, f.Price)
	}
	return nil
}

// MarshalJSON writes back the original filter JSON.
func (f Filter) MarshalJSON() ([]byte, error) {
	if f.raw == nil {
		return []byte("null"), nil
	}
	return f.raw, nil
}

// PriceFilter bounds prices, defines the tick grain and constrains the
// order's quantity and notional value.
type PriceFilter struct {
	MinPrice core.Decimal `json:"minPrice"`
	MaxPrice core.Decimal `json:"maxPrice"`
	TickSize core.Decimal `json:"tickSize"`

	// MinExchangeValue is the minimum notional (price × quantity).
	MinExchangeValue *core.Decimal `json:"minExchangeValue"`
	MinAmount        *core.Decimal `json:"minAmount"`
	MaxAmount        *core.Decimal `json:"maxAmount"`
}

// Currency describes one asset and its withdrawal/deposit rules.
type Currency struct {
	ID        int64  `json:"id" validate:"required"`
	Symbol    string `json:"symbol" validate:"required"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	Precision int32  `json:"precision" validate:"min=0"`

	CurrencyType core.CurrencyType `json:"currencyType"`

	MinWithdrawal core.Decimal `json:"minWithdrawal"`
	MinDeposit    core.Decimal `json:"minDeposit"`

	Address Address `json:"address"`
	Tag     Tag     `json:"tag"`

	IsAddressRenewable         bool `json:"isAddressRenewable"`
	GetAutoAddressDisabled     bool `json:"getAutoAddressDisabled"`
	IsPartialWithdrawalEnabled bool `json:"isPartialWithdrawalEnabled"`
	IsNew                      bool `json:"isNew"`
}

// Address bounds the length of withdrawal addresses for crypto assets.
type Address struct {
	MinLen *int `json:"minLen"`
	MaxLen *int `json:"maxLen"`
}

// Tag describes the memo/destination-tag requirement of chains that need
// one. When Enable is true, Name must be set.
type Tag struct {
	Enable bool    `json:"enable"`
	Name   *string `json:"name"`
	MinLen *int    `json:"minLen"`
	MaxLen *int    `json:"maxLen"`
}

// CurrencyOperationBlock disables withdrawal and/or deposit for one
// currency. Matching against the currency list is case-insensitive; the
// exchange mixes casings like "Btc" and "BTC".
type CurrencyOperationBlock struct {
	CurrencySymbol     string `json:"currencySymbol" validate:"required"`
	WithdrawalDisabled bool   `json:"withdrawalDisabled"`
	DepositDisabled    bool   `json:"depositDisabled"`
}
