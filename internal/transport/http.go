// Package transport wraps the resty HTTP client with the JSON codec and
// logging used across the library. It knows nothing about signing or
// exchange semantics.
package transport

import (
	"context"
	"io"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"resty.dev/v3"
)

// Config holds transport-level settings.
type Config struct {
	BaseURL      string        `validate:"required,url"`
	Timeout      time.Duration `validate:"min=1ms"`
	MaxRetries   int           `validate:"min=0"`
	RetryWaitMin time.Duration `validate:"min=0"`
	RetryWaitMax time.Duration `validate:"min=0"`
}

// Client is a thin resty wrapper with sonic JSON codecs and structured
// request/response logging.
type Client struct {
	client *resty.Client
	logger zerolog.Logger
}

// RequestOption mutates a single outgoing request.
type RequestOption func(*resty.Request)

// NewClient creates a transport client from the given configuration.
func NewClient(config *Config, logger zerolog.Logger) (*Client, error) {
	if err := validator.New().Struct(config); err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(config.BaseURL)
	client.SetTimeout(config.Timeout)
	client.SetRetryCount(config.MaxRetries)
	client.SetRetryWaitTime(config.RetryWaitMin)
	client.SetRetryMaxWaitTime(config.RetryWaitMax)
	client.SetHeader("Content-Type", "application/json")

	client.AddContentTypeEncoder("application/json", func(w io.Writer, v any) error {
		data, err := sonic.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	})
	client.AddContentTypeDecoder("application/json", func(r io.Reader, v any) error {
		data, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		return sonic.Unmarshal(data, v)
	})

	client.AddRequestMiddleware(func(_ *resty.Client, req *resty.Request) error {
		logger.Debug().
			Str("method", req.Method).
			Str("url", req.URL).
			Msg("http request")
		return nil
	})
	client.AddResponseMiddleware(func(_ *resty.Client, resp *resty.Response) error {
		logger.Debug().
			Str("method", resp.Request.Method).
			Str("url", resp.Request.URL).
			Int("status", resp.StatusCode()).
			Int("size", len(resp.Bytes())).
			Msg("http response")
		return nil
	})

	return &Client{client: client, logger: logger}, nil
}

// Close releases the underlying connections.
func (c *Client) Close() error {
	return c.client.Close()
}

// Get performs a GET request against path.
func (c *Client) Get(ctx context.Context, path string, opts ...RequestOption) (*resty.Response, error) {
	req := c.client.R().SetContext(ctx)
	for _, opt := range opts {
		opt(req)
	}
	return req.Get(path)
}

// Post performs a POST request with the given body.
func (c *Client) Post(ctx context.Context, path string, body any, opts ...RequestOption) (*resty.Response, error) {
	req := c.client.R().SetContext(ctx).SetBody(body)
	for _, opt := range opts {
		opt(req)
	}
	return req.Post(path)
}

// Delete performs a DELETE request against path.
func (c *Client) Delete(ctx context.Context, path string, opts ...RequestOption) (*resty.Response, error) {
	req := c.client.R().SetContext(ctx)
	for _, opt := range opts {
		opt(req)
	}
	return req.Delete(path)
}

// WithHeaders sets headers on one request.
func WithHeaders(headers map[string]string) RequestOption {
	return func(r *resty.Request) {
		r.SetHeaders(headers)
	}
}

// WithQueryParams sets query parameters on one request.
func WithQueryParams(params map[string]string) RequestOption {
	return func(r *resty.Request) {
		r.SetQueryParams(params)
	}
}
