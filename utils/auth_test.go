package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"home-service-server/config"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	assert.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong-pass", hash))
	assert.False(t, CheckPasswordHash("s3cret-pass", "not-a-hash"))
}

func TestGenerateAndVerifyToken(t *testing.T) {
	config.Load()

	token, err := GenerateToken(42, "WORKER")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := VerifyToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "WORKER", claims.Role)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	config.Load()

	_, err := VerifyToken("not.a.token")
	assert.Error(t, err)

	_, err = VerifyToken("")
	assert.Error(t, err)
}

func TestValidatePhoneNumber(t *testing.T) {
	assert.True(t, ValidatePhoneNumber("0123456789"))

	assert.False(t, ValidatePhoneNumber("123456789"))    // too short
	assert.False(t, ValidatePhoneNumber("12345678901"))  // too long
	assert.False(t, ValidatePhoneNumber("12345abcde"))   // letters
	assert.False(t, ValidatePhoneNumber("12345 6789 "))  // spaces
	assert.False(t, ValidatePhoneNumber("+1234567890"))  // plus prefix
	assert.False(t, ValidatePhoneNumber(""))
}
