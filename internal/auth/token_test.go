package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	mgr := NewTokenManager("test-secret", 24*time.Hour)

	token, err := mgr.Issue("user-123", "user")
	require.NoError(t, err)

	claims, err := mgr.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "user", claims.Role)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenExpiryBoundary(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mgr := NewTokenManager("test-secret", 24*time.Hour)
	mgr.now = func() time.Time { return issued }

	token, err := mgr.Issue("user-123", "user")
	require.NoError(t, err)

	mgr.now = func() time.Time { return issued.Add(23 * time.Hour) }
	_, err = mgr.Verify(token)
	assert.NoError(t, err, "token should still be valid at T+23h")

	mgr.now = func() time.Time { return issued.Add(25 * time.Hour) }
	_, err = mgr.Verify(token)
	assert.Error(t, err, "token should be rejected at T+25h")
}

func TestTokenBadSignature(t *testing.T) {
	issuer := NewTokenManager("one-secret", 24*time.Hour)
	verifier := NewTokenManager("another-secret", 24*time.Hour)

	token, err := issuer.Issue("user-123", "user")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.Error(t, err)
}

func TestTokenMalformed(t *testing.T) {
	mgr := NewTokenManager("test-secret", 24*time.Hour)

	_, err := mgr.Verify("not-a-token")
	assert.Error(t, err)
}
