package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"btcturk/pkg/core"
)

const (
	testPublicKey  = "63762e79-cb5c-4c0b-b714-5f0ce94bf100"
	testPrivateKey = "L2tW3CeHzXH16im1pIhofRw0GdlqCdb8"
)

func TestNewKeys(t *testing.T) {
	keys, err := NewKeys(testPublicKey, testPrivateKey)
	require.NoError(t, err)
	assert.Equal(t, testPublicKey, keys.PublicKey())
}

func TestNewKeys_RejectsBadBase64(t *testing.T) {
	_, err := NewKeys(testPublicKey, "not base64 !!!")
	assert.True(t, core.IsErrorCode(err, core.ErrCodeInvalidSecret))
}

func TestKeys_SignIsDeterministic(t *testing.T) {
	keys, err := NewKeys(testPublicKey, testPrivateKey)
	require.NoError(t, err)

	sig1 := keys.Sign("1700000000000")
	sig2 := keys.Sign("1700000000000")
	assert.Equal(t, sig1, sig2)

	// A different nonce must change the signature.
	assert.NotEqual(t, sig1, keys.Sign("1700000000001"))
}

func TestKeys_SignMatchesReference(t *testing.T) {
	keys, err := NewKeys(testPublicKey, testPrivateKey)
	require.NoError(t, err)

	nonce := "1700000000000"
	got, err := base64.StdEncoding.DecodeString(keys.Sign(nonce))
	require.NoError(t, err)

	secret, err := base64.StdEncoding.DecodeString(testPrivateKey)
	require.NoError(t, err)
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(testPublicKey + nonce))

	assert.True(t, hmac.Equal(mac.Sum(nil), got))
}

func TestKeys_Headers(t *testing.T) {
	keys, err := NewKeys(testPublicKey, testPrivateKey)
	require.NoError(t, err)

	headers := keys.Headers("1700000000000")
	assert.Equal(t, testPublicKey, headers[HeaderPublicKey])
	assert.Equal(t, "1700000000000", headers[HeaderNonce])
	assert.Equal(t, keys.Sign("1700000000000"), headers[HeaderSignature])
	assert.Len(t, headers, 3)
}

func TestTimestampNonce_Monotonic(t *testing.T) {
	frozen := time.UnixMilli(1700000000000)
	n := &TimestampNonce{now: func() time.Time { return frozen }}

	// With a frozen clock each nonce still advances.
	assert.Equal(t, "1700000000000", n.Next())
	assert.Equal(t, "1700000000001", n.Next())
	assert.Equal(t, "1700000000002", n.Next())

	frozen = time.UnixMilli(1700000005000)
	assert.Equal(t, "1700000005000", n.Next())
}

func TestTimestampNonce_ClockSkewBackwards(t *testing.T) {
	now := time.UnixMilli(1700000005000)
	n := &TimestampNonce{now: func() time.Time { return now }}

	assert.Equal(t, "1700000005000", n.Next())

	// A backwards clock step must not repeat or regress the nonce.
	now = time.UnixMilli(1700000000000)
	assert.Equal(t, "1700000005001", n.Next())
}

func TestNonceFunc(t *testing.T) {
	src := NonceFunc(func() string { return "42" })
	assert.Equal(t, "42", src.Next())
}
