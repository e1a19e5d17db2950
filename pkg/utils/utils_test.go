package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	secret := "test-secret-key"

	ciphertext, err := Encrypt("platform-token-value", secret)
	require.NoError(t, err)
	assert.NotEqual(t, "platform-token-value", ciphertext)

	plaintext, err := Decrypt(ciphertext, secret)
	require.NoError(t, err)
	assert.Equal(t, "platform-token-value", plaintext)
}

func TestDecryptWrongKeyFails(t *testing.T) {
	ciphertext, err := Encrypt("payload", "key-one")
	require.NoError(t, err)

	_, err = Decrypt(ciphertext, "key-two")
	assert.Error(t, err)
}

func TestDecryptMalformedInput(t *testing.T) {
	_, err := Decrypt("not-base64!!!", "key")
	assert.Error(t, err)

	_, err = Decrypt("", "key")
	assert.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42, "secret")
	require.NoError(t, err)

	claims, err := ValidateToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(42, "secret")
	require.NoError(t, err)

	_, err = ValidateToken(token, "other-secret")
	assert.Error(t, err)
}

func TestGenerateRandomKey(t *testing.T) {
	a, err := GenerateRandomKey()
	require.NoError(t, err)
	b, err := GenerateRandomKey()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(a, "vk_"))
	assert.Len(t, a, 35)
	assert.NotEqual(t, a, b)
}
