// Package auth builds the authentication envelope for private endpoints:
// an HMAC-SHA256 signature over the API key and a per-request nonce,
// carried in the X-PCK, X-Stamp and X-Signature headers.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strconv"
	"sync"
	"time"

	"btcturk/pkg/core"
)

// Authentication header names.
const (
	// HeaderPublicKey carries the API key.
	HeaderPublicKey = "X-PCK"
	// HeaderNonce carries the request nonce (millisecond timestamp).
	HeaderNonce = "X-Stamp"
	// HeaderSignature carries the base64 HMAC-SHA256 signature.
	HeaderSignature = "X-Signature"
)

// Keys holds an API key pair. The secret is base64-decoded once at
// construction; signing itself is pure and safe for concurrent use.
//
// Keys never persists nonces. Uniqueness within the exchange's replay
// window is the caller's responsibility via a NonceSource.
type Keys struct {
	publicKey string
	secret    []byte
}

// NewKeys creates a key pair from the public API key and the base64
// encoded secret.
func NewKeys(publicKey, privateKey string) (*Keys, error) {
	secret, err := base64.StdEncoding.DecodeString(privateKey)
	if err != nil {
		return nil, &core.SigningError{
			Code:    core.ErrCodeInvalidSecret,
			Message: "private key is not valid base64: " + err.Error(),
		}
	}
	return &Keys{publicKey: publicKey, secret: secret}, nil
}

// PublicKey returns the public API key.
func (k *Keys) PublicKey() string {
	return k.publicKey
}

// Sign computes the base64 HMAC-SHA256 signature of publicKey+nonce.
// Identical inputs always produce an identical signature.
func (k *Keys) Sign(nonce string) string {
	mac := hmac.New(sha256.New, k.secret)
	mac.Write([]byte(k.publicKey + nonce))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Headers returns the full authentication header set for one request.
func (k *Keys) Headers(nonce string) map[string]string {
	return map[string]string{
		HeaderPublicKey: k.publicKey,
		HeaderNonce:     nonce,
		HeaderSignature: k.Sign(nonce),
	}
}

// NonceSource yields monotonically increasing nonce values, one per
// request.
type NonceSource interface {
	Next() string
}

// NonceFunc adapts a plain function to a NonceSource.
type NonceFunc func() string

// Next calls f.
func (f NonceFunc) Next() string { return f() }

// TimestampNonce derives nonces from the wall clock in milliseconds and
// bumps by one when two requests land in the same millisecond, so values
// never repeat within a process.
type TimestampNonce struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewTimestampNonce creates a nonce source backed by the system clock.
func NewTimestampNonce() *TimestampNonce {
	return &TimestampNonce{now: time.Now}
}

// Next returns the next nonce value.
func (n *TimestampNonce) Next() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	ms := n.now().UnixMilli()
	if ms <= n.last {
		ms = n.last + 1
	}
	n.last = ms
	return strconv.FormatInt(ms, 10)
}
