package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"home-service-server/models"
)

func TestGenerateOTPCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := GenerateOTPCode()
		assert.NoError(t, err)
		assert.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "code %q must be digits only", code)
		}
	}
}

func TestCheckOTP(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	fresh := func() *models.OTP {
		return &models.OTP{
			Code:      "123456",
			ExpiresAt: now.Add(OTPTTL),
		}
	}

	t.Run("valid code", func(t *testing.T) {
		assert.NoError(t, CheckOTP(fresh(), "123456", now))
	})

	t.Run("wrong code", func(t *testing.T) {
		err := CheckOTP(fresh(), "654321", now)
		assert.ErrorIs(t, err, ErrOTPVerification)
	})

	t.Run("expired code", func(t *testing.T) {
		otp := fresh()
		err := CheckOTP(otp, "123456", now.Add(OTPTTL+time.Second))
		assert.ErrorIs(t, err, ErrOTPVerification)
	})

	t.Run("expires exactly at the boundary", func(t *testing.T) {
		otp := fresh()
		assert.ErrorIs(t, CheckOTP(otp, "123456", otp.ExpiresAt), ErrOTPVerification)
	})

	t.Run("attempts exhausted", func(t *testing.T) {
		otp := fresh()
		otp.Attempts = OTPMaxAttempts
		err := CheckOTP(otp, "123456", now)
		assert.ErrorIs(t, err, ErrOTPVerification)
	})

	t.Run("already verified", func(t *testing.T) {
		otp := fresh()
		otp.IsVerified = true
		err := CheckOTP(otp, "123456", now)
		assert.ErrorIs(t, err, ErrOTPVerification)
	})

	t.Run("last attempt still counts", func(t *testing.T) {
		otp := fresh()
		otp.Attempts = OTPMaxAttempts - 1
		assert.NoError(t, CheckOTP(otp, "123456", now))
	})
}

func TestCheckOTPFailureIsUniform(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	wrongCode := CheckOTP(&models.OTP{Code: "123456", ExpiresAt: now.Add(time.Minute)}, "000000", now)
	expired := CheckOTP(&models.OTP{Code: "123456", ExpiresAt: now.Add(-time.Minute)}, "123456", now)
	exhausted := CheckOTP(&models.OTP{Code: "123456", ExpiresAt: now.Add(time.Minute), Attempts: OTPMaxAttempts}, "123456", now)

	// A caller must not be able to tell the failure causes apart
	assert.Equal(t, wrongCode, expired)
	assert.Equal(t, wrongCode, exhausted)
}
