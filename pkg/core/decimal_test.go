package core

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDecimal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"integer", "100", "100", false},
		{"fractional", "0.001", "0.001", false},
		{"negative", "-12.5", "-12.5", false},
		{"high precision", "0.00000001", "0.00000001", false},
		{"scientific form preserved exactly", "1e2", "100", false},
		{"empty", "", "", true},
		{"garbage", "abc", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDecimal(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Text('f'))
		})
	}
}

func TestMustDecimal_PanicsOnBadInput(t *testing.T) {
	assert.Panics(t, func() { MustDecimal("not a number") })
}

func TestDecimal_JSONRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"raw number", `123456.7`, "123456.7"},
		{"quoted string", `"0.001"`, "0.001"},
		{"raw integer", `99`, "99"},
		{"quoted with trailing zeros kept", `"99.910"`, "99.910"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Decimal
			require.NoError(t, sonic.Unmarshal([]byte(tt.input), &d))
			assert.Equal(t, tt.want, d.Text('f'))
		})
	}
}

func TestDecimal_UnmarshalNull(t *testing.T) {
	d := MustDecimal("42")
	require.NoError(t, d.UnmarshalJSON([]byte("null")))
	assert.True(t, d.IsZero())
}

func TestDecimal_MarshalQuotes(t *testing.T) {
	d := MustDecimal("123450.00")
	data, err := sonic.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"123450.00"`, string(data))
}

func TestDecimal_NoFloatDrift(t *testing.T) {
	// 0.1 is not representable in binary floating point; the textual
	// parse must keep it exact.
	d := MustDecimal("0.1")
	sum := d
	for i := 0; i < 9; i++ {
		var err error
		sum, err = sum.Add(d)
		require.NoError(t, err)
	}
	assert.Equal(t, 0, sum.Cmp(MustDecimal("1")))
}

func TestDecimal_IsInteger(t *testing.T) {
	assert.True(t, MustDecimal("5").IsInteger())
	assert.True(t, MustDecimal("5.000").IsInteger())
	assert.True(t, MustDecimal("-3").IsInteger())
	assert.False(t, MustDecimal("5.5").IsInteger())
	assert.False(t, MustDecimal("0.0001").IsInteger())
}

func TestDecimal_QuoInt(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		quotient string
	}{
		{"exact", "100", "10", "10"},
		{"truncates down", "123456.7", "10", "12345"},
		{"below one tick", "7", "10", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := MustDecimal(tt.a).QuoInt(MustDecimal(tt.b))
			require.NoError(t, err)
			assert.Equal(t, 0, q.Cmp(MustDecimal(tt.quotient)))
		})
	}
}

func TestDecimal_Quantize(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		scale     int32
		want      string
		wantExact bool
	}{
		{"widening is lossless", "123450", 2, "123450.00", true},
		{"same scale", "0.001", 3, "0.001", true},
		{"truncates excess", "0.0015", 3, "0.001", false},
		{"truncates toward zero", "-0.0015", 3, "-0.001", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, exact, err := MustDecimal(tt.input).Quantize(tt.scale)
			require.NoError(t, err)
			assert.Equal(t, tt.want, q.Text('f'))
			assert.Equal(t, tt.wantExact, exact)
		})
	}
}

func TestDecimal_FixedString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		scale int32
		want  string
	}{
		{"pads zeros", "123450", 2, "123450.00"},
		{"full numerator scale", "0.001", 8, "0.00100000"},
		{"truncates", "1.23456789", 2, "1.23"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MustDecimal(tt.input).FixedString(tt.scale)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecimal_Mul(t *testing.T) {
	notional, err := MustDecimal("10").Mul(MustDecimal("5"))
	require.NoError(t, err)
	assert.Equal(t, 0, notional.Cmp(MustDecimal("50")))

	exact, err := MustDecimal("0.1").Mul(MustDecimal("0.2"))
	require.NoError(t, err)
	assert.Equal(t, 0, exact.Cmp(MustDecimal("0.02")))
}
