package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	s := NewTokenService("secret", time.Hour)
	raw, err := s.Issue("student@x.io")
	require.NoError(t, err)

	claims, err := s.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "student@x.io", claims.Email)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokenRejects(t *testing.T) {
	s := NewTokenService("secret", time.Hour)

	_, err := s.Issue("")
	assert.Error(t, err)

	other := NewTokenService("other", time.Hour)
	raw, err := other.Issue("a@x.io")
	require.NoError(t, err)
	_, err = s.Parse(raw)
	assert.Error(t, err, "signature from another key")

	expired := NewTokenService("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	raw, err = expired.Issue("a@x.io")
	require.NoError(t, err)
	_, err = s.Parse(raw)
	assert.Error(t, err, "expired token")
}
