package jwt

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestNewServiceValidation(t *testing.T) {
	_, err := NewService(Config{SecretKey: "", Duration: time.Hour})
	assert.ErrorIs(t, err, ErrEmptySecretKey)

	_, err = NewService(Config{SecretKey: "short", Duration: time.Hour})
	assert.ErrorIs(t, err, ErrWeakSecretKey)

	_, err = NewService(Config{SecretKey: testSecret, Duration: 0})
	assert.ErrorIs(t, err, ErrInvalidDuration)

	s, err := NewService(Config{SecretKey: testSecret, Duration: time.Hour})
	require.NoError(t, err)
	assert.NotNil(t, s)
}

func TestGenerateAndValidateToken(t *testing.T) {
	s, err := NewService(Config{SecretKey: testSecret, Duration: time.Hour})
	require.NoError(t, err)

	tok, err := s.GenerateToken(42, "alice", 7, "QA_INSPECTOR")
	require.NoError(t, err)

	claims, err := s.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, uint(7), claims.RoleID)
	assert.Equal(t, "QA_INSPECTOR", claims.RoleCode)
}

func TestValidateTokenFailures(t *testing.T) {
	s, err := NewService(Config{SecretKey: testSecret, Duration: time.Millisecond})
	require.NoError(t, err)

	tok, err := s.GenerateToken(1, "bob", 1, "ADMIN")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	_, err = s.ValidateToken(tok)
	assert.ErrorIs(t, err, ErrExpiredToken)

	_, err = s.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// token signed with a different key
	other, err := NewService(Config{SecretKey: strings.Repeat("x", 32), Duration: time.Hour})
	require.NoError(t, err)
	foreign, err := other.GenerateToken(1, "bob", 1, "ADMIN")
	require.NoError(t, err)
	_, err = s.ValidateToken(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
