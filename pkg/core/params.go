package core

import (
	"fmt"
	"strconv"
)

// Params collects request parameters. For POST requests the map is
// serialized as the JSON body; for GET requests it becomes the query
// string. Decimal values are always formatted as fixed-point strings so
// the wire form never depends on float formatting.
type Params map[string]any

// NewParams returns an empty parameter set.
func NewParams() Params {
	return make(Params)
}

// SetString adds a string parameter.
func (p Params) SetString(key, value string) Params {
	p[key] = value
	return p
}

// SetOptString adds a string parameter, skipping empty values.
func (p Params) SetOptString(key, value string) Params {
	if value != "" {
		p[key] = value
	}
	return p
}

// SetStringer adds a parameter from its String method.
func (p Params) SetStringer(key string, value fmt.Stringer) Params {
	p[key] = value.String()
	return p
}

// SetDecimal adds a decimal parameter as its exact fixed-point string,
// skipping nil values.
func (p Params) SetDecimal(key string, value *Decimal) Params {
	if value != nil {
		p[key] = value.Text('f')
	}
	return p
}

// SetInt64 adds an integer parameter.
func (p Params) SetInt64(key string, value int64) Params {
	p[key] = value
	return p
}

// Query renders the parameters as a string map for use as URL query
// values.
func (p Params) Query() map[string]string {
	out := make(map[string]string, len(p))
	for k, v := range p {
		switch val := v.(type) {
		case string:
			out[k] = val
		case int64:
			out[k] = strconv.FormatInt(val, 10)
		case int:
			out[k] = strconv.Itoa(val)
		case bool:
			out[k] = strconv.FormatBool(val)
		default:
			out[k] = fmt.Sprintf("%v", val)
		}
	}
	return out
}
