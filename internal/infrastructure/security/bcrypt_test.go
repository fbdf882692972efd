package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher_HashIsSaltedPerCall(t *testing.T) {
	h := NewBcryptHasher(4)

	d1, err := h.Hash("secret")
	require.NoError(t, err)
	d2, err := h.Hash("secret")
	require.NoError(t, err)

	assert.NotEqual(t, d1, d2, "two hashes of the same plaintext must differ")
	assert.NoError(t, h.Compare(d1, "secret"))
	assert.NoError(t, h.Compare(d2, "secret"))
}

func TestBcryptHasher_CompareMismatch(t *testing.T) {
	h := NewBcryptHasher(4)

	digest, err := h.Hash("secret")
	require.NoError(t, err)

	assert.Error(t, h.Compare(digest, "not-secret"))
}

func TestBcryptHasher_CompareGarbageDigest(t *testing.T) {
	h := NewBcryptHasher(4)

	// must return an error, never panic
	assert.Error(t, h.Compare("not-a-bcrypt-digest", "secret"))
}

func TestBcryptHasher_NeverStoresPlaintext(t *testing.T) {
	h := NewBcryptHasher(4)

	digest, err := h.Hash("secret")
	require.NoError(t, err)
	assert.NotContains(t, digest, "secret")
	assert.NotEmpty(t, digest)
}

func TestNewBcryptHasher_DefaultCost(t *testing.T) {
	h := NewBcryptHasher(0)

	digest, err := h.Hash("x")
	require.NoError(t, err)
	assert.NoError(t, h.Compare(digest, "x"))
}
