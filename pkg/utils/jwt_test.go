package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yatrasutra/invoice-backend/pkg/apperror"
)

func TestValidateAccessTokenRoundtrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Minute, time.Hour)
	userID := uuid.New()

	token, err := m.GenerateAccessToken(userID, "agent@yatrasutra.com", "agent")
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "agent", claims.Role)
}

func TestValidateAccessTokenExpired(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute, time.Hour)

	token, err := m.GenerateAccessToken(uuid.New(), "agent@yatrasutra.com", "agent")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	assert.ErrorIs(t, err, apperror.ErrTokenExpired)
}

func TestValidateAccessTokenGarbage(t *testing.T) {
	m := NewJWTManager("test-secret", time.Minute, time.Hour)

	_, err := m.ValidateAccessToken("not-a-token")
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)
}

func TestValidateAccessTokenWrongSecret(t *testing.T) {
	signer := NewJWTManager("one-secret", time.Minute, time.Hour)
	verifier := NewJWTManager("another-secret", time.Minute, time.Hour)

	token, err := signer.GenerateAccessToken(uuid.New(), "agent@yatrasutra.com", "agent")
	require.NoError(t, err)

	_, err = verifier.ValidateAccessToken(token)
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)
}

func TestValidateRefreshTokenExpired(t *testing.T) {
	m := NewJWTManager("test-secret", time.Minute, -time.Hour)

	token, err := m.GenerateRefreshToken(uuid.New())
	require.NoError(t, err)

	_, err = m.ValidateRefreshToken(token)
	assert.ErrorIs(t, err, apperror.ErrTokenExpired)
}
