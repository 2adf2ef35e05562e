// Package order turns a raw order intent into a signed, ready-to-send
// request. It composes the metadata store, the filter engine and the
// request signer; no network call is made here.
package order

import (
	"github.com/bytedance/sonic"

	"btcturk/pkg/auth"
	"btcturk/pkg/core"
	"btcturk/pkg/filter"
	"btcturk/pkg/metadata"
)

// SubmitPath is the order submission endpoint.
const SubmitPath = "/api/v1/order"

// Ticket is a raw order intent as supplied by the caller, before
// validation and normalization.
type Ticket struct {
	// Symbol is a pair name ("BTCTRY", "btc_try") or numeric id.
	Symbol string
	Side   core.OrderType
	Method core.OrderMethod

	// Price is required for limit and stop-limit orders and ignored for
	// market orders.
	Price *core.Decimal
	// StopPrice is required for stop orders.
	StopPrice *core.Decimal
	Quantity  core.Decimal

	// ClientID overrides the builder's default client order id.
	ClientID string
}

// SignedRequest is a ready-to-send request envelope. It carries no
// exchange-derived state and is owned by the caller.
type SignedRequest struct {
	Method  string
	Path    string
	Body    []byte
	Headers map[string]string
}

// Builder prepares signed order requests. It is stateless apart from its
// collaborators and safe for concurrent use.
type Builder struct {
	store    *metadata.Store
	keys     *auth.Keys
	nonce    auth.NonceSource
	clientID string
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithClientID sets the default client order id attached to tickets that
// do not carry their own.
func WithClientID(id string) BuilderOption {
	return func(b *Builder) {
		b.clientID = id
	}
}

// NewBuilder creates a Builder from a metadata store, signing keys and a
// nonce source.
func NewBuilder(store *metadata.Store, keys *auth.Keys, nonce auth.NonceSource, opts ...BuilderOption) *Builder {
	b := &Builder{store: store, keys: keys, nonce: nonce}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Prepare resolves the ticket's symbol, validates and normalizes the
// numeric fields, serializes the order body and signs it. The returned
// envelope is ready for the transport; nothing is sent.
func (b *Builder) Prepare(t *Ticket) (*SignedRequest, error) {
	if b.keys == nil {
		return nil, &core.SigningError{Code: core.ErrCodeAuthRequired, Message: "order submission requires API keys"}
	}

	sym, err := b.store.LookupSymbol(t.Symbol)
	if err != nil {
		return nil, err
	}
	if !sym.SupportsMethod(t.Method) {
		return nil, core.NewFilterViolation(core.ErrCodeMethodNotSupported, sym.Name,
			"order method %s not supported", t.Method)
	}

	price := t.Price
	if !t.Method.RequiresPrice() {
		price = nil
	} else if price == nil {
		return nil, core.NewFilterViolation(core.ErrCodePriceRequired, sym.Name,
			"%s orders require a price", t.Method)
	}

	norm, err := filter.ValidateAndNormalize(sym, price, t.Quantity)
	if err != nil {
		return nil, err
	}

	params := core.NewParams().
		SetString("pairSymbol", sym.Name).
		SetStringer("orderType", t.Side).
		SetStringer("orderMethod", t.Method).
		SetString("quantity", norm.QuantityText).
		SetOptString("price", norm.PriceText)

	if t.Method.IsStop() {
		if t.StopPrice == nil {
			return nil, core.NewFilterViolation(core.ErrCodePriceRequired, sym.Name,
				"%s orders require a stop price", t.Method)
		}
		stopText, err := t.StopPrice.FixedString(sym.DenominatorScale)
		if err != nil {
			return nil, core.NewFilterViolation(core.ErrCodePriceRounding, sym.Name,
				"format stop price: %v", err)
		}
		params.SetString("stopPrice", stopText)
	}

	clientID := t.ClientID
	if clientID == "" {
		clientID = b.clientID
	}
	params.SetOptString("newOrderClientId", clientID)

	body, err := sonic.Marshal(params)
	if err != nil {
		return nil, err
	}

	headers := b.keys.Headers(b.nonce.Next())
	headers["Content-Type"] = "application/json"

	return &SignedRequest{
		Method:  "POST",
		Path:    SubmitPath,
		Body:    body,
		Headers: headers,
	}, nil
}
