package core

// Envelope is the wrapper the exchange puts around every JSON response:
//
//	{"data": ..., "success": true, "message": null, "code": 0}
type Envelope[T any] struct {
	Data    *T      `json:"data"`
	Success bool    `json:"success"`
	Message *string `json:"message"`
	Code    int64   `json:"code"`
}

// Result unwraps the envelope. It fails with ErrCodeUnsuccessful when the
// success flag is false and with ErrCodeNullData when the data field is
// missing from a successful response.
func (e *Envelope[T]) Result() (*T, error) {
	if !e.Success {
		msg := ""
		if e.Message != nil {
			msg = *e.Message
		}
		return nil, &APIError{Code: ErrCodeUnsuccessful, ResponseCode: e.Code, Message: msg}
	}
	if e.Data == nil {
		return nil, &APIError{Code: ErrCodeNullData, Message: "null data field"}
	}
	return e.Data, nil
}
