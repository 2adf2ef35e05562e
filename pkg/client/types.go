package client

import (
	"github.com/bytedance/sonic"

	"btcturk/pkg/core"
)

// Ticker is the 24-hour market summary for one pair.
type Ticker struct {
	Pair           string `json:"pair"`
	PairNormalized string `json:"pairNormalized"`
	Timestamp      int64  `json:"timestamp"`

	Last         core.Decimal `json:"last"`
	High         core.Decimal `json:"high"`
	Low          core.Decimal `json:"low"`
	Bid          core.Decimal `json:"bid"`
	Ask          core.Decimal `json:"ask"`
	Open         core.Decimal `json:"open"`
	Volume       core.Decimal `json:"volume"`
	Average      core.Decimal `json:"average"`
	Daily        core.Decimal `json:"daily"`
	DailyPercent core.Decimal `json:"dailyPercent"`

	NumeratorSymbol   string `json:"numeratorSymbol"`
	DenominatorSymbol string `json:"denominatorSymbol"`
	Order             int64  `json:"order"`
}

// PriceLevel is one order book level, serialized by the exchange as a
// ["price", "amount"] string pair.
type PriceLevel struct {
	Price    core.Decimal
	Quantity core.Decimal
}

// UnmarshalJSON decodes the two-element array form.
func (l *PriceLevel) UnmarshalJSON(data []byte) error {
	var pair [2]core.Decimal
	if err := sonic.Unmarshal(data, &pair); err != nil {
		return err
	}
	l.Price, l.Quantity = pair[0], pair[1]
	return nil
}

// OrderBook is the current depth snapshot for one pair.
type OrderBook struct {
	Timestamp int64        `json:"timestamp"`
	Bids      []PriceLevel `json:"bids"`
	Asks      []PriceLevel `json:"asks"`
}

// Trade is one public trade.
type Trade struct {
	Pair              string       `json:"pair"`
	PairNormalized    string       `json:"pairNormalized"`
	NumeratorSymbol   string       `json:"numerator"`
	DenominatorSymbol string       `json:"denominator"`
	Date              int64        `json:"date"`
	TID               string       `json:"tid"`
	Price             core.Decimal `json:"price"`
	Amount            core.Decimal `json:"amount"`
}

// OHLC is one daily candle from the charting API.
type OHLC struct {
	Pair string `json:"pair"`
	Time int64  `json:"time"`

	Open    core.Decimal `json:"open"`
	High    core.Decimal `json:"high"`
	Low     core.Decimal `json:"low"`
	Close   core.Decimal `json:"close"`
	Volume  core.Decimal `json:"volume"`
	Total   core.Decimal `json:"total"`
	Average core.Decimal `json:"average"`

	DailyChangeAmount     core.Decimal `json:"dailyChangeAmount"`
	DailyChangePercentage core.Decimal `json:"dailyChangePercentage"`
}

// AssetBalance is the account balance for a single asset.
type AssetBalance struct {
	Asset     string       `json:"asset"`
	AssetName string       `json:"assetname"`
	Balance   core.Decimal `json:"balance"`
	Locked    core.Decimal `json:"locked"`
	Free      core.Decimal `json:"free"`
}

// Order is an existing order as returned by the open/all orders
// endpoints.
type Order struct {
	ID                   int64            `json:"id"`
	Price                core.Decimal     `json:"price"`
	Amount               core.Decimal     `json:"amount"`
	Quantity             core.Decimal     `json:"quantity"`
	StopPrice            core.Decimal     `json:"stopPrice"`
	PairSymbol           string           `json:"pairSymbol"`
	PairSymbolNormalized string           `json:"pairSymbolNormalized"`
	Type                 core.OrderType   `json:"type"`
	Method               core.OrderMethod `json:"method"`
	OrderClientID        string           `json:"orderClientId"`
	Time                 int64            `json:"time"`
	UpdateTime           int64            `json:"updateTime"`
	Status               string           `json:"status"`
	LeftAmount           core.Decimal     `json:"leftAmount"`
}

// OpenOrders groups the account's resting orders by side.
type OpenOrders struct {
	Asks []Order `json:"asks"`
	Bids []Order `json:"bids"`
}

// NewOrder is the exchange's acknowledgement of a submitted order.
type NewOrder struct {
	ID                   int64            `json:"id"`
	Datetime             int64            `json:"datetime"`
	Type                 core.OrderType   `json:"type"`
	Method               core.OrderMethod `json:"method"`
	Price                *core.Decimal    `json:"price"`
	StopPrice            *core.Decimal    `json:"stopPrice"`
	Quantity             *core.Decimal    `json:"quantity"`
	PairSymbol           string           `json:"pairSymbol"`
	PairSymbolNormalized string           `json:"pairSymbolNormalized"`
	NewOrderClientID     string           `json:"newOrderClientId"`
}
