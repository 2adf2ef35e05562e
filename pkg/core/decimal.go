package core

import (
	"bytes"
	"fmt"

	"github.com/cockroachdb/apd/v3"
)

// decimalCtx is the shared arithmetic context for all monetary math.
// Truncation (round toward zero) keeps every operation deterministic;
// nothing in this library ever rounds half-even.
var decimalCtx = func() *apd.Context {
	ctx := apd.BaseContext.WithPrecision(50)
	ctx.Rounding = apd.RoundDown
	return ctx
}()

// Decimal is an exact decimal value used for every price, quantity and
// monetary amount. It wraps apd.Decimal and parses JSON numbers directly
// from their textual form, so a price never passes through a binary float.
type Decimal struct {
	apd.Decimal
}

// NewDecimal parses a decimal from its string representation.
func NewDecimal(s string) (Decimal, error) {
	var d Decimal
	if _, _, err := d.SetString(s); err != nil {
		return Decimal{}, fmt.Errorf("parse decimal %q: %w", s, err)
	}
	return d, nil
}

// MustDecimal parses a decimal and panics on failure. Intended for
// constants and tests.
func MustDecimal(s string) Decimal {
	d, err := NewDecimal(s)
	if err != nil {
		panic(err)
	}
	return d
}

// MarshalJSON encodes the decimal as a quoted string to keep the exact
// textual form on the wire.
func (d Decimal) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Text('f') + `"`), nil
}

// UnmarshalJSON accepts both raw JSON numbers and quoted strings.
func (d *Decimal) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		d.Decimal = apd.Decimal{}
		return nil
	}
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
	}
	if _, _, err := d.SetString(string(data)); err != nil {
		return fmt.Errorf("parse decimal %q: %w", data, err)
	}
	return nil
}

// Cmp compares d with o and returns -1, 0 or +1.
func (d Decimal) Cmp(o Decimal) int {
	return d.Decimal.Cmp(&o.Decimal)
}

// IsInteger reports whether the value has no fractional part.
func (d Decimal) IsInteger() bool {
	var integ, frac apd.Decimal
	d.Modf(&integ, &frac)
	return frac.IsZero()
}

// Add returns d + o.
func (d Decimal) Add(o Decimal) (Decimal, error) {
	var res Decimal
	if _, err := decimalCtx.Add(&res.Decimal, &d.Decimal, &o.Decimal); err != nil {
		return Decimal{}, err
	}
	return res, nil
}

// Mul returns d × o.
func (d Decimal) Mul(o Decimal) (Decimal, error) {
	var res Decimal
	if _, err := decimalCtx.Mul(&res.Decimal, &d.Decimal, &o.Decimal); err != nil {
		return Decimal{}, err
	}
	return res, nil
}

// QuoInt returns the integer quotient of d / o, truncated toward zero.
func (d Decimal) QuoInt(o Decimal) (Decimal, error) {
	var res Decimal
	if _, err := decimalCtx.QuoInteger(&res.Decimal, &d.Decimal, &o.Decimal); err != nil {
		return Decimal{}, err
	}
	return res, nil
}

// Quantize truncates d to the given number of fractional digits. The
// second return value reports whether the result still equals d, i.e.
// whether the operation was lossless.
func (d Decimal) Quantize(scale int32) (Decimal, bool, error) {
	var res Decimal
	if _, err := decimalCtx.Quantize(&res.Decimal, &d.Decimal, -scale); err != nil {
		return Decimal{}, false, err
	}
	return res, res.Cmp(d) == 0, nil
}

// FixedString renders d with exactly scale fractional digits, truncating
// any excess precision.
func (d Decimal) FixedString(scale int32) (string, error) {
	q, _, err := d.Quantize(scale)
	if err != nil {
		return "", err
	}
	return q.Text('f'), nil
}
