package client

import (
	"context"
	"fmt"

	"btcturk/internal/transport"
	"btcturk/pkg/core"
	"btcturk/pkg/metadata"
)

// Public market-data endpoints.
const (
	exchangeInfoPath = "/api/v2/server/exchangeinfo"
	tickerPath       = "/api/v2/ticker"
	orderBookPath    = "/api/v2/orderbook"
	tradesPath       = "/api/v2/trades"

	// ohlcPath lives on the charting API host, not the trading API.
	ohlcPath = "/v1/ohlcs"
)

// RefreshExchangeInfo fetches the exchange metadata and installs it as
// the current snapshot. On any error the previous snapshot stays in
// place.
func (c *Client) RefreshExchangeInfo(ctx context.Context) (*metadata.Snapshot, error) {
	info, err := getJSON[metadata.ExchangeInfo](ctx, c, bucketPublic, exchangeInfoPath, nil, false)
	if err != nil {
		return nil, err
	}
	return c.store.LoadInfo(info)
}

// Tickers returns the 24-hour summary for every pair.
func (c *Client) Tickers(ctx context.Context) ([]Ticker, error) {
	list, err := getJSON[[]Ticker](ctx, c, bucketPublic, tickerPath, nil, false)
	if err != nil {
		return nil, err
	}
	return *list, nil
}

// Ticker returns the 24-hour summary for one pair.
func (c *Client) Ticker(ctx context.Context, pairSymbol string) (*Ticker, error) {
	params := core.NewParams().SetString("pairSymbol", pairSymbol)
	list, err := getJSON[[]Ticker](ctx, c, bucketPublic, tickerPath, params, false)
	if err != nil {
		return nil, err
	}
	if len(*list) == 0 {
		return nil, &core.APIError{Code: core.ErrCodeEmptyData, Message: "no ticker for " + pairSymbol}
	}
	return &(*list)[0], nil
}

// OrderBook returns the current depth for one pair. A limit of zero
// requests the exchange default depth.
func (c *Client) OrderBook(ctx context.Context, pairSymbol string, limit int) (*OrderBook, error) {
	params := core.NewParams().SetString("pairSymbol", pairSymbol)
	if limit > 0 {
		params.SetInt64("limit", int64(limit))
	}
	return getJSON[OrderBook](ctx, c, bucketPublic, orderBookPath, params, false)
}

// Trades returns the most recent public trades for one pair. A last of
// zero requests the exchange default count.
func (c *Client) Trades(ctx context.Context, pairSymbol string, last int) ([]Trade, error) {
	params := core.NewParams().SetString("pairSymbol", pairSymbol)
	if last > 0 {
		params.SetInt64("last", int64(last))
	}
	list, err := getJSON[[]Trade](ctx, c, bucketPublic, tradesPath, params, false)
	if err != nil {
		return nil, err
	}
	return *list, nil
}

// OHLC returns daily candles for one pair from the charting API. The
// from/to bounds are UNIX seconds; zero values request the exchange
// default window. Unlike the trading API, the response carries no
// envelope.
func (c *Client) OHLC(ctx context.Context, pair string, from, to int64) ([]OHLC, error) {
	if err := c.admit(ctx, bucketPublic); err != nil {
		return nil, err
	}

	params := core.NewParams().SetString("pair", pair)
	if from > 0 {
		params.SetInt64("from", from)
	}
	if to > 0 {
		params.SetInt64("to", to)
	}

	resp, err := c.graph.Get(ctx, ohlcPath, transport.WithQueryParams(params.Query()))
	if err != nil {
		c.record(false)
		return nil, fmt.Errorf("GET %s: %w", ohlcPath, err)
	}
	list, err := decodeBare[[]OHLC](c, resp)
	if err != nil {
		return nil, err
	}
	return *list, nil
}
