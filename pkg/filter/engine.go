// Package filter validates and normalizes order prices and quantities
// against a symbol's exchange-published filters. All functions are pure
// and safe for concurrent use.
package filter

import (
	"btcturk/pkg/core"
	"btcturk/pkg/metadata"
)

// NormalizedOrder carries the rounded price and quantity of a validated
// order, plus their fixed-point wire strings at the symbol's declared
// scales.
type NormalizedOrder struct {
	// Price is nil for orders without a limit price.
	Price    *core.Decimal
	Quantity core.Decimal

	// PriceText is empty for orders without a limit price.
	PriceText    string
	QuantityText string
}

// ValidateAndNormalize checks an order's price and quantity against the
// symbol's filters and returns the rounded values ready for wire
// serialization. Checks run in a fixed order and stop at the first
// violation: trading status, price range, tick rounding, quantity
// fraction and bounds, minimum notional, maximum order amount.
//
// The market price warning threshold is deliberately not enforced here;
// it drives a soft warning upstream, never an order rejection.
func ValidateAndNormalize(sym *metadata.Symbol, price *core.Decimal, quantity core.Decimal) (*NormalizedOrder, error) {
	if !sym.Status.IsTrading() {
		return nil, core.NewFilterViolation(core.ErrCodeSymbolNotTradable, sym.Name,
			"symbol status is %s", sym.Status)
	}

	pf := sym.PriceFilter()
	norm := &NormalizedOrder{}

	if price != nil {
		p, text, err := normalizePrice(sym, pf, *price)
		if err != nil {
			return nil, err
		}
		norm.Price = &p
		norm.PriceText = text
	}

	qty, err := normalizeQuantity(sym, quantity)
	if err != nil {
		return nil, err
	}
	norm.Quantity = qty
	if norm.QuantityText, err = qty.FixedString(sym.NumeratorScale); err != nil {
		return nil, core.NewFilterViolation(core.ErrCodeQuantityOutOfRange, sym.Name,
			"format quantity: %v", err)
	}

	if pf != nil {
		if pf.MinAmount != nil && qty.Cmp(*pf.MinAmount) < 0 {
			return nil, core.NewFilterViolation(core.ErrCodeQuantityOutOfRange, sym.Name,
				"quantity %s below minimum %s", qty.Text('f'), pf.MinAmount.Text('f'))
		}
		if pf.MaxAmount != nil && qty.Cmp(*pf.MaxAmount) > 0 {
			return nil, core.NewFilterViolation(core.ErrCodeQuantityOutOfRange, sym.Name,
				"quantity %s above maximum %s", qty.Text('f'), pf.MaxAmount.Text('f'))
		}
		if pf.MinExchangeValue != nil && norm.Price != nil {
			notional, err := norm.Price.Mul(qty)
			if err != nil {
				return nil, core.NewFilterViolation(core.ErrCodePriceRounding, sym.Name,
					"compute notional: %v", err)
			}
			if notional.Cmp(*pf.MinExchangeValue) < 0 {
				return nil, core.NewFilterViolation(core.ErrCodeNotionalTooSmall, sym.Name,
					"notional %s below minimum %s", notional.Text('f'), pf.MinExchangeValue.Text('f'))
			}
		}
	}

	if sym.MaximumOrderAmount != nil && qty.Cmp(*sym.MaximumOrderAmount) > 0 {
		return nil, core.NewFilterViolation(core.ErrCodeOrderAmountTooLarge, sym.Name,
			"quantity %s above maximum order amount %s", qty.Text('f'), sym.MaximumOrderAmount.Text('f'))
	}

	return norm, nil
}

// normalizePrice applies range checks and tick-size rounding, then
// re-derives the wire form. Tick rounding is a floor toward zero of
// price/tickSize; the tick grain is authoritative, so when it is finer
// than the denominator scale the wire form widens to the tick's own
// precision instead of losing resolution.
func normalizePrice(sym *metadata.Symbol, pf *metadata.PriceFilter, p core.Decimal) (core.Decimal, string, error) {
	if pf != nil {
		if p.Cmp(pf.MinPrice) < 0 || p.Cmp(pf.MaxPrice) > 0 {
			return core.Decimal{}, "", core.NewFilterViolation(core.ErrCodePriceOutOfRange, sym.Name,
				"price %s outside [%s, %s]", p.Text('f'), pf.MinPrice.Text('f'), pf.MaxPrice.Text('f'))
		}

		ticks, err := p.QuoInt(pf.TickSize)
		if err != nil {
			return core.Decimal{}, "", core.NewFilterViolation(core.ErrCodePriceRounding, sym.Name,
				"divide by tick size: %v", err)
		}
		if p, err = ticks.Mul(pf.TickSize); err != nil {
			return core.Decimal{}, "", core.NewFilterViolation(core.ErrCodePriceRounding, sym.Name,
				"scale to tick size: %v", err)
		}
	}

	quantized, exact, err := p.Quantize(sym.DenominatorScale)
	if err != nil {
		return core.Decimal{}, "", core.NewFilterViolation(core.ErrCodePriceRounding, sym.Name,
			"round price to scale %d: %v", sym.DenominatorScale, err)
	}
	if exact || pf == nil {
		return quantized, quantized.Text('f'), nil
	}
	// Tick-rounded price needs more fractional digits than the
	// denominator scale allows; keep the tick-exact value.
	return p, p.Text('f'), nil
}

// normalizeQuantity truncates the quantity to the numerator scale. For
// symbols without fractional quantities any fractional part is rejected,
// never silently truncated.
func normalizeQuantity(sym *metadata.Symbol, q core.Decimal) (core.Decimal, error) {
	if !sym.HasFraction {
		if !q.IsInteger() {
			return core.Decimal{}, core.NewFilterViolation(core.ErrCodeFractionalQuantity, sym.Name,
				"quantity %s must be a whole number", q.Text('f'))
		}
		return q, nil
	}
	rounded, _, err := q.Quantize(sym.NumeratorScale)
	if err != nil {
		return core.Decimal{}, core.NewFilterViolation(core.ErrCodeQuantityOutOfRange, sym.Name,
			"round quantity to scale %d: %v", sym.NumeratorScale, err)
	}
	return rounded, nil
}
