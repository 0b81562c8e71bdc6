package security_test

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickethub/payouts_backend/internal/adapters/security"
	"github.com/tickethub/payouts_backend/internal/apperrors"
	"github.com/tickethub/payouts_backend/internal/core/ports"
)

func newTestCipher(t *testing.T) ports.FieldCipher {
	t.Helper()
	key := make([]byte, 32)
	_, err := io.ReadFull(rand.Reader, key)
	require.NoError(t, err)

	c, err := security.NewFieldCipher(key, slog.Default())
	require.NoError(t, err)
	return c
}

func TestFieldCipher_RoundTrip(t *testing.T) {
	c := newTestCipher(t)

	token, err := c.EncryptField("021000021")
	require.NoError(t, err)

	plaintext, err := c.DecryptField(token)
	require.NoError(t, err)
	assert.Equal(t, "021000021", plaintext)
}

func TestFieldCipher_TokenFormat(t *testing.T) {
	c := newTestCipher(t)

	token, err := c.EncryptField("12345678")
	require.NoError(t, err)

	parts := strings.SplitN(token, ":", 2)
	require.Len(t, parts, 2)
	nonce, err := hex.DecodeString(parts[0])
	require.NoError(t, err)
	assert.Len(t, nonce, 12)
	_, err = hex.DecodeString(parts[1])
	assert.NoError(t, err)
}

func TestFieldCipher_DistinctTokensPerCall(t *testing.T) {
	c := newTestCipher(t)

	t1, err := c.EncryptField("same value")
	require.NoError(t, err)
	t2, err := c.EncryptField("same value")
	require.NoError(t, err)

	// Fresh nonce per call: identical plaintexts must not collide.
	assert.NotEqual(t, t1, t2)
}

func TestFieldCipher_MalformedToken(t *testing.T) {
	c := newTestCipher(t)

	for _, token := range []string{
		"no-separator",
		"zz:abcd",
		"abcd:zz",
		"abcd:abcd", // nonce too short
	} {
		_, err := c.DecryptField(token)
		require.Error(t, err, token)
		assert.ErrorIs(t, err, apperrors.ErrDecryption, token)
	}
}

func TestFieldCipher_WrongKey(t *testing.T) {
	c1 := newTestCipher(t)
	c2 := newTestCipher(t)

	token, err := c1.EncryptField("secret")
	require.NoError(t, err)

	_, err = c2.DecryptField(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrDecryption)
}

func TestFieldCipher_TamperedCiphertext(t *testing.T) {
	c := newTestCipher(t)

	token, err := c.EncryptField("secret")
	require.NoError(t, err)

	// Flip the last hex digit of the payload.
	last := token[len(token)-1]
	replacement := byte('0')
	if last == '0' {
		replacement = '1'
	}
	tampered := token[:len(token)-1] + string(replacement)

	_, err = c.DecryptField(tampered)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrDecryption)
}

func TestNewFieldCipher_RejectsBadKeyLength(t *testing.T) {
	_, err := security.NewFieldCipher(make([]byte, 15), slog.Default())
	assert.Error(t, err)
}

func TestDeriveKey_HexSecretDecodedDirectly(t *testing.T) {
	secret := strings.Repeat("ab", 32)
	key, err := security.DeriveKey(secret)
	require.NoError(t, err)
	decoded, _ := hex.DecodeString(secret)
	assert.Equal(t, decoded, key)
}

func TestDeriveKey_PassphraseStretched(t *testing.T) {
	key, err := security.DeriveKey("a passphrase")
	require.NoError(t, err)
	assert.Len(t, key, 32)

	again, err := security.DeriveKey("a passphrase")
	require.NoError(t, err)
	assert.Equal(t, key, again)

	other, err := security.DeriveKey("another passphrase")
	require.NoError(t, err)
	assert.NotEqual(t, key, other)
}

func TestDeriveKey_EmptySecret(t *testing.T) {
	_, err := security.DeriveKey("")
	assert.Error(t, err)
}

func TestGenerateKey(t *testing.T) {
	key, err := security.GenerateKey()
	require.NoError(t, err)
	assert.Len(t, key, 32)

	other, err := security.GenerateKey()
	require.NoError(t, err)
	assert.NotEqual(t, key, other)

	_, err = security.NewFieldCipher(key, slog.Default())
	assert.NoError(t, err)
}
