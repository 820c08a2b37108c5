package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"home-service-server/database"
	"home-service-server/models"
)

const (
	// OTPTTL is how long a generated code stays valid
	OTPTTL = 5 * time.Minute
	// OTPMaxAttempts is how many wrong codes a worker may submit per OTP
	OTPMaxAttempts = 5
)

// ErrOTPVerification is returned for every verification failure. The
// message deliberately does not distinguish a bad code from a bad booking
// id, an expired code, or exhausted attempts.
var ErrOTPVerification = errors.New("OTP verification failed")

// GenerateOTPCode returns a random 6-digit code
func GenerateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// IssueOTP creates (or replaces) the OTP for a booking. The code is tied
// to the customer, who hands it to the worker in person.
func IssueOTP(booking *models.Booking) (*models.OTP, error) {
	code, err := GenerateOTPCode()
	if err != nil {
		return nil, err
	}

	otp := models.OTP{
		UserID:     booking.UserID,
		BookingID:  booking.ID,
		Code:       code,
		Attempts:   0,
		IsVerified: false,
		ExpiresAt:  time.Now().Add(OTPTTL),
	}

	// A regenerated code replaces the previous one for the booking
	err = database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "booking_id"}},
		UpdateAll: true,
	}).Create(&otp).Error
	if err != nil {
		return nil, err
	}

	return &otp, nil
}

// CheckOTP validates a submitted code against a stored OTP. It does not
// touch the database; callers persist the attempt counter themselves.
func CheckOTP(otp *models.OTP, code string, now time.Time) error {
	if otp.IsVerified {
		return ErrOTPVerification
	}
	if otp.IsExpired(now) {
		return ErrOTPVerification
	}
	if otp.Attempts >= OTPMaxAttempts {
		return ErrOTPVerification
	}
	if otp.Code != code {
		return ErrOTPVerification
	}
	return nil
}

// VerifyOTP checks the code a worker collected for one of their reached
// bookings and, on success, moves the booking to IN_PROGRESS. Every
// failure path returns the same ErrOTPVerification.
func VerifyOTP(workerID uint, bookingID uint, code string) (*models.Booking, error) {
	var booking models.Booking
	if err := database.DB.Preload("Service").Preload("User").
		Where("id = ? AND worker_id = ?", bookingID, workerID).
		First(&booking).Error; err != nil {
		return nil, ErrOTPVerification
	}

	if booking.Status != models.BookingStatusReached {
		return nil, ErrOTPVerification
	}

	var otp models.OTP
	if err := database.DB.Where("booking_id = ?", booking.ID).First(&otp).Error; err != nil {
		return nil, ErrOTPVerification
	}

	if err := CheckOTP(&otp, code, time.Now()); err != nil {
		// Count the failed attempt unless the code was already dead
		if !otp.IsVerified && otp.Attempts < OTPMaxAttempts {
			database.DB.Model(&otp).Update("attempts", gorm.Expr("attempts + 1"))
		}
		return nil, ErrOTPVerification
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&otp).Update("is_verified", true).Error; err != nil {
			return err
		}
		booking.Status = models.BookingStatusInProgress
		return tx.Model(&booking).Update("status", models.BookingStatusInProgress).Error
	})
	if err != nil {
		return nil, ErrOTPVerification
	}

	return &booking, nil
}

// PurgeExpiredOTPs deletes unverified codes past their TTL
func PurgeExpiredOTPs() error {
	return database.DB.Where("is_verified = ? AND expires_at <= ?", false, time.Now()).
		Delete(&models.OTP{}).Error
}
