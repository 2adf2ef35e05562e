package core

import (
	"errors"
	"fmt"
)

// ErrorCode is a stable, machine-readable identifier for an error
// condition raised by this library.
type ErrorCode string

// Error code constants.
const (
	// Metadata errors.
	ErrCodeMalformedMetadata ErrorCode = "MALFORMED_METADATA"
	ErrCodeDuplicateSymbol   ErrorCode = "DUPLICATE_SYMBOL"
	ErrCodeDuplicateCurrency ErrorCode = "DUPLICATE_CURRENCY"
	ErrCodeNotLoaded         ErrorCode = "METADATA_NOT_LOADED"
	ErrCodeSymbolNotFound    ErrorCode = "SYMBOL_NOT_FOUND"
	ErrCodeCurrencyNotFound  ErrorCode = "CURRENCY_NOT_FOUND"

	// Filter violations.
	ErrCodeSymbolNotTradable   ErrorCode = "SYMBOL_NOT_TRADABLE"
	ErrCodePriceRequired       ErrorCode = "PRICE_REQUIRED"
	ErrCodePriceOutOfRange     ErrorCode = "PRICE_OUT_OF_RANGE"
	ErrCodePriceRounding       ErrorCode = "PRICE_ROUNDING"
	ErrCodeFractionalQuantity  ErrorCode = "FRACTIONAL_QUANTITY_NOT_ALLOWED"
	ErrCodeQuantityOutOfRange  ErrorCode = "QUANTITY_OUT_OF_RANGE"
	ErrCodeNotionalTooSmall    ErrorCode = "NOTIONAL_TOO_SMALL"
	ErrCodeOrderAmountTooLarge ErrorCode = "ORDER_AMOUNT_TOO_LARGE"

	// Order preparation errors.
	ErrCodeMethodNotSupported ErrorCode = "ORDER_METHOD_NOT_SUPPORTED"

	// Signing errors.
	ErrCodeInvalidSecret ErrorCode = "INVALID_SECRET_ENCODING"
	ErrCodeAuthRequired  ErrorCode = "AUTHENTICATION_REQUIRED"

	// Transport and response errors.
	ErrCodeBadStatus    ErrorCode = "BAD_STATUS_CODE"
	ErrCodeUnsuccessful ErrorCode = "UNSUCCESSFUL_RESPONSE"
	ErrCodeNullData     ErrorCode = "NULL_DATA"
	ErrCodeEmptyData    ErrorCode = "EMPTY_DATA"
	ErrCodeCircuitOpen  ErrorCode = "CIRCUIT_BREAKER_OPEN"
)

// coded is implemented by every structured error in this package.
type coded interface {
	ErrorCode() ErrorCode
}

// IsErrorCode reports whether err carries the given error code.
func IsErrorCode(err error, code ErrorCode) bool {
	var c coded
	if errors.As(err, &c) {
		return c.ErrorCode() == code
	}
	return false
}

// MetadataError reports a problem with exchange metadata: a malformed
// payload, a uniqueness violation, or a failed lookup.
type MetadataError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// Error implements the error interface.
func (e *MetadataError) Error() string {
	return fmt.Sprintf("metadata: [%s] %s", e.Code, e.Message)
}

// ErrorCode returns the machine-readable code.
func (e *MetadataError) ErrorCode() ErrorCode { return e.Code }

// NewMetadataError creates a MetadataError with a formatted message.
func NewMetadataError(code ErrorCode, format string, args ...any) *MetadataError {
	return &MetadataError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// FilterViolation reports that an order failed validation against a
// symbol's filters. The order was not sent.
type FilterViolation struct {
	Code    ErrorCode `json:"code"`
	Symbol  string    `json:"symbol"`
	Message string    `json:"message"`
}

// Error implements the error interface.
func (e *FilterViolation) Error() string {
	return fmt.Sprintf("filter: [%s] %s: %s", e.Code, e.Symbol, e.Message)
}

// ErrorCode returns the machine-readable code.
func (e *FilterViolation) ErrorCode() ErrorCode { return e.Code }

// NewFilterViolation creates a FilterViolation with a formatted message.
func NewFilterViolation(code ErrorCode, symbol, format string, args ...any) *FilterViolation {
	return &FilterViolation{Code: code, Symbol: symbol, Message: fmt.Sprintf(format, args...)}
}

// SigningError reports a problem constructing the authentication
// envelope, such as a secret that is not valid base64.
type SigningError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// Error implements the error interface.
func (e *SigningError) Error() string {
	return fmt.Sprintf("signing: [%s] %s", e.Code, e.Message)
}

// ErrorCode returns the machine-readable code.
func (e *SigningError) ErrorCode() ErrorCode { return e.Code }

// APIError reports a failed exchange request: a non-200 status code, an
// unsuccessful response envelope, or a missing data field.
type APIError struct {
	Code ErrorCode `json:"code"`
	// StatusCode is the HTTP status code, when known.
	StatusCode int `json:"status_code,omitempty"`
	// ResponseCode is the exchange's numeric error code, when present.
	ResponseCode int64  `json:"response_code,omitempty"`
	Message      string `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.ResponseCode != 0 {
		return fmt.Sprintf("api: [%s] (%d/%d) %s", e.Code, e.StatusCode, e.ResponseCode, e.Message)
	}
	return fmt.Sprintf("api: [%s] (%d) %s", e.Code, e.StatusCode, e.Message)
}

// ErrorCode returns the machine-readable code.
func (e *APIError) ErrorCode() ErrorCode { return e.Code }
