package transport

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) *Config {
	return &Config{
		BaseURL:      baseURL,
		Timeout:      5 * time.Second,
		MaxRetries:   0,
		RetryWaitMin: 10 * time.Millisecond,
		RetryWaitMax: 100 * time.Millisecond,
	}
}

func TestNewClient_RejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
	}{
		{"missing base url", &Config{Timeout: time.Second}},
		{"not a url", &Config{BaseURL: "not a url", Timeout: time.Second}},
		{"zero timeout", &Config{BaseURL: "https://api.example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.config, zerolog.Nop())
			assert.Error(t, err)
		})
	}
}

func TestClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v2/ticker", r.URL.Path)
		assert.Equal(t, "BTCTRY", r.URL.Query().Get("pairSymbol"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL), zerolog.Nop())
	require.NoError(t, err)
	defer client.Close()

	resp, err := client.Get(context.Background(), "/api/v2/ticker",
		WithQueryParams(map[string]string{"pairSymbol": "BTCTRY"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.JSONEq(t, `{"success":true}`, string(resp.Bytes()))
}

func TestClient_Post_SendsHeadersAndBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.Header.Get("X-PCK"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"pairSymbol":"BTCTRY"}`, string(body))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL), zerolog.Nop())
	require.NoError(t, err)
	defer client.Close()

	resp, err := client.Post(context.Background(), "/api/v1/order",
		[]byte(`{"pairSymbol":"BTCTRY"}`),
		WithHeaders(map[string]string{"X-PCK": "test-key"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
}

func TestClient_Delete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "123", r.URL.Query().Get("id"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":null}`))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL), zerolog.Nop())
	require.NoError(t, err)
	defer client.Close()

	resp, err := client.Delete(context.Background(), "/api/v1/order",
		WithQueryParams(map[string]string{"id": "123"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
}

func TestClient_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL), zerolog.Nop())
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = client.Get(ctx, "/api/v2/ticker")
	assert.Error(t, err)
}
