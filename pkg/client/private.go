package client

import (
	"context"
	"fmt"
	"strconv"

	"btcturk/internal/transport"
	"btcturk/pkg/core"
	"btcturk/pkg/order"
)

// Private account endpoints.
const (
	balancesPath   = "/api/v1/users/balances"
	openOrdersPath = "/api/v1/openOrders"
	allOrdersPath  = "/api/v1/allOrders"
)

// Balances returns the account balance for every asset.
func (c *Client) Balances(ctx context.Context) ([]AssetBalance, error) {
	list, err := getJSON[[]AssetBalance](ctx, c, bucketPrivate, balancesPath, nil, true)
	if err != nil {
		return nil, err
	}
	return *list, nil
}

// OpenOrders returns the account's resting orders. An empty pairSymbol
// returns orders for all pairs.
func (c *Client) OpenOrders(ctx context.Context, pairSymbol string) (*OpenOrders, error) {
	params := core.NewParams().SetOptString("pairSymbol", pairSymbol)
	return getJSON[OpenOrders](ctx, c, bucketPrivate, openOrdersPath, params, true)
}

// AllOrdersQuery narrows an order history request. PairSymbol is
// required by the exchange; the remaining fields are optional and their
// zero values are omitted.
type AllOrdersQuery struct {
	PairSymbol string
	// OrderID requests only orders with an id greater than this one.
	OrderID   int64
	StartTime int64
	EndTime   int64
	Page      int
	Limit     int
}

// AllOrders returns the account's order history for one pair.
func (c *Client) AllOrders(ctx context.Context, q AllOrdersQuery) ([]Order, error) {
	params := core.NewParams().SetString("pairSymbol", q.PairSymbol)
	if q.OrderID > 0 {
		params.SetInt64("orderId", q.OrderID)
	}
	if q.StartTime > 0 {
		params.SetInt64("startTime", q.StartTime)
	}
	if q.EndTime > 0 {
		params.SetInt64("endTime", q.EndTime)
	}
	if q.Page > 0 {
		params.SetInt64("page", int64(q.Page))
	}
	if q.Limit > 0 {
		params.SetInt64("limit", int64(q.Limit))
	}
	list, err := getJSON[[]Order](ctx, c, bucketPrivate, allOrdersPath, params, true)
	if err != nil {
		return nil, err
	}
	return *list, nil
}

// PrepareOrder validates, normalizes and signs an order ticket without
// sending it. Useful for inspecting exactly what would go on the wire.
func (c *Client) PrepareOrder(t *order.Ticket) (*order.SignedRequest, error) {
	if c.builder == nil {
		return nil, &core.SigningError{Code: core.ErrCodeAuthRequired, Message: "order submission requires API keys"}
	}
	return c.builder.Prepare(t)
}

// SubmitOrder prepares a signed order request and sends it.
func (c *Client) SubmitOrder(ctx context.Context, t *order.Ticket) (*NewOrder, error) {
	req, err := c.PrepareOrder(t)
	if err != nil {
		return nil, err
	}
	if err := c.admit(ctx, bucketOrder); err != nil {
		return nil, err
	}

	resp, err := c.http.Post(ctx, req.Path, req.Body, transport.WithHeaders(req.Headers))
	if err != nil {
		c.record(false)
		return nil, fmt.Errorf("POST %s: %w", req.Path, err)
	}
	return decode[NewOrder](c, resp)
}

// CancelOrder cancels a resting order by id. The exchange acknowledges
// a cancel with an empty data field, which is not an error here.
func (c *Client) CancelOrder(ctx context.Context, id int64) error {
	if err := c.admit(ctx, bucketOrder); err != nil {
		return err
	}
	headers, err := c.authHeaders()
	if err != nil {
		return err
	}

	resp, err := c.http.Delete(ctx, order.SubmitPath,
		transport.WithQueryParams(map[string]string{"id": strconv.FormatInt(id, 10)}),
		transport.WithHeaders(headers))
	if err != nil {
		c.record(false)
		return fmt.Errorf("DELETE %s: %w", order.SubmitPath, err)
	}

	if _, err := decode[struct{}](c, resp); err != nil && !core.IsErrorCode(err, core.ErrCodeNullData) {
		return err
	}
	return nil
}
