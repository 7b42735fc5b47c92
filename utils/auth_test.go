package utils

import (
	"testing"

	"github.com/mockanytime/dakplus/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTP(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		otp, err := GenerateOTP()
		require.NoError(t, err)
		assert.Len(t, otp, 6)
		seen[otp] = true
	}
	// Not a strict guarantee, but ten collisions in a row would mean the
	// generator is broken.
	assert.Greater(t, len(seen), 1)
}

func TestHashAndCheckOTP(t *testing.T) {
	hash, err := HashOTP("482913")
	require.NoError(t, err)
	assert.NotEqual(t, "482913", hash)

	assert.True(t, CheckOTP("482913", hash))
	assert.False(t, CheckOTP("000000", hash))
	assert.False(t, CheckOTP("482913", "not-a-hash"))
}

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-jwt-secret")

	user := &models.User{ID: "user-123", Email: "ravi@example.com"}
	token, err := GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-jwt-secret")

	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-one")
	user := &models.User{ID: "user-123", Email: "ravi@example.com"}
	token, err := GenerateToken(user)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "secret-two")
	_, err = ValidateToken(token)
	assert.Error(t, err)
}
