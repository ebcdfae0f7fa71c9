package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	svc := NewSessionService("secret", 12)
	assert.NoError(t, svc.VerifyPassword(hash, "correct horse"))
	assert.Error(t, svc.VerifyPassword(hash, "wrong"))
	assert.Error(t, svc.VerifyPassword("", "anything"))
}

func TestSessionTokenRoundTrip(t *testing.T) {
	svc := NewSessionService("secret", 12)

	token, err := svc.GenerateToken()
	require.NoError(t, err)
	assert.NoError(t, svc.ValidateToken(token))

	other := NewSessionService("different-secret", 12)
	assert.Error(t, other.ValidateToken(token))
	assert.Error(t, svc.ValidateToken("garbage"))
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := NewSessionService("secret", -1)

	token, err := svc.GenerateToken()
	require.NoError(t, err)
	assert.Error(t, svc.ValidateToken(token))
}
