package core

import (
	"fmt"
	"strings"
)

// OrderType represents the direction of an order. The exchange wire
// format calls this field "orderType" with values "buy" and "sell".
type OrderType int

// Order type constants define the direction of a trade.
const (
	// OrderTypeBuy indicates an order to purchase the numerator asset.
	OrderTypeBuy OrderType = iota
	// OrderTypeSell indicates an order to sell the numerator asset.
	OrderTypeSell
)

// String returns the wire representation of the order type ("buy" or "sell").
func (t OrderType) String() string {
	return [...]string{"buy", "sell"}[t]
}

// MarshalJSON implements json.Marshaler for OrderType.
func (t OrderType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler for OrderType.
// It accepts any casing used by the exchange.
func (t *OrderType) UnmarshalJSON(data []byte) error {
	switch strings.ToLower(strings.Trim(string(data), `"`)) {
	case "buy":
		*t = OrderTypeBuy
	case "sell":
		*t = OrderTypeSell
	default:
		return fmt.Errorf("unknown order type %s", data)
	}
	return nil
}

// OrderMethod represents how an order executes. The wire values are
// "market", "limit", "stoplimit" and "stopmarket".
type OrderMethod int

// Order method constants define the supported execution methods.
const (
	// MethodMarket executes immediately at the best available price.
	MethodMarket OrderMethod = iota
	// MethodLimit executes at the given price or better.
	MethodLimit
	// MethodStopLimit places a limit order once the stop price is reached.
	MethodStopLimit
	// MethodStopMarket places a market order once the stop price is reached.
	MethodStopMarket
)

// String returns the wire representation of the order method.
func (m OrderMethod) String() string {
	return [...]string{"market", "limit", "stoplimit", "stopmarket"}[m]
}

// RequiresPrice reports whether orders of this method carry a limit price.
func (m OrderMethod) RequiresPrice() bool {
	return m == MethodLimit || m == MethodStopLimit
}

// IsStop reports whether orders of this method carry a stop price.
func (m OrderMethod) IsStop() bool {
	return m == MethodStopLimit || m == MethodStopMarket
}

// MarshalJSON implements json.Marshaler for OrderMethod.
func (m OrderMethod) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler for OrderMethod.
// It accepts the casings and underscore variants seen in exchange payloads.
func (m *OrderMethod) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	switch strings.ReplaceAll(strings.ToLower(s), "_", "") {
	case "market":
		*m = MethodMarket
	case "limit":
		*m = MethodLimit
	case "stoplimit":
		*m = MethodStopLimit
	case "stopmarket":
		*m = MethodStopMarket
	default:
		return fmt.Errorf("unknown order method %q", s)
	}
	return nil
}

// SymbolStatus is the trading state of a symbol. Unknown statuses are
// preserved as-is so new exchange states do not break metadata loads.
type SymbolStatus string

// Known symbol statuses.
const (
	StatusTrading SymbolStatus = "TRADING"
	StatusHalted  SymbolStatus = "HALTED"
	StatusBreak   SymbolStatus = "BREAK"
)

// IsTrading reports whether orders may be submitted for the symbol.
func (s SymbolStatus) IsTrading() bool {
	return s == StatusTrading
}

// UnmarshalJSON normalizes the status to upper case.
func (s *SymbolStatus) UnmarshalJSON(data []byte) error {
	*s = SymbolStatus(strings.ToUpper(strings.Trim(string(data), `"`)))
	return nil
}

// CurrencyType distinguishes fiat currencies from crypto assets.
type CurrencyType string

// Currency type constants.
const (
	CurrencyCrypto CurrencyType = "CRYPTO"
	CurrencyFiat   CurrencyType = "FIAT"
)

// UnmarshalJSON normalizes the currency type to upper case and rejects
// values outside the known set.
func (c *CurrencyType) UnmarshalJSON(data []byte) error {
	switch v := CurrencyType(strings.ToUpper(strings.Trim(string(data), `"`))); v {
	case CurrencyCrypto, CurrencyFiat:
		*c = v
	default:
		return fmt.Errorf("unknown currency type %s", data)
	}
	return nil
}
