package security

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartlearn/platform-api/internal/domain"
)

func TestJWTSigner_RoundTrip(t *testing.T) {
	s := NewJWTSigner("secret", "smartlearn")

	token, err := s.Sign("u-1", "a@b.com", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 3, len(strings.Split(token, ".")))

	claims, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "a@b.com", claims.Username)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.Exp, time.Minute)
}

func TestJWTSigner_Expired(t *testing.T) {
	s := NewJWTSigner("secret", "smartlearn")

	// a token whose 1h lifetime ended one minute ago
	token, err := s.Sign("u-1", "a@b.com", -time.Minute)
	require.NoError(t, err)

	_, err = s.Verify(token)
	require.Error(t, err)
	assert.True(t, domain.Is(err, "token_expired"))
}

func TestJWTSigner_StillValidBeforeExpiry(t *testing.T) {
	s := NewJWTSigner("secret", "smartlearn")

	// 30 minutes of a 1h lifetime left
	token, err := s.Sign("u-1", "a@b.com", 30*time.Minute)
	require.NoError(t, err)

	_, err = s.Verify(token)
	assert.NoError(t, err)
}

func TestJWTSigner_WrongSecret(t *testing.T) {
	issuer := NewJWTSigner("secret-a", "smartlearn")
	verifier := NewJWTSigner("secret-b", "smartlearn")

	token, err := issuer.Sign("u-1", "a@b.com", time.Hour)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.Error(t, err)
	assert.True(t, domain.Is(err, "token_invalid"))
}

func TestJWTSigner_Garbage(t *testing.T) {
	s := NewJWTSigner("secret", "smartlearn")

	_, err := s.Verify("not.a.jwt")
	require.Error(t, err)
	assert.True(t, domain.Is(err, "token_invalid"))
}

func TestJWTSigner_SecretNotInPayload(t *testing.T) {
	s := NewJWTSigner("super-secret-value", "smartlearn")

	token, err := s.Sign("u-1", "a@b.com", time.Hour)
	require.NoError(t, err)
	assert.NotContains(t, token, "super-secret-value")
}
