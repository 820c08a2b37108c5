package models

import (
	"time"
)

// OTP is the one-time code a worker must collect from the customer in
// person before a reached booking can move to IN_PROGRESS.
type OTP struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"not null"`
	BookingID  uint      `json:"booking_id" gorm:"uniqueIndex;not null"`
	Code       string    `json:"-" gorm:"size:6;not null"`
	Attempts   int       `json:"attempts" gorm:"default:0"`
	IsVerified bool      `json:"is_verified" gorm:"default:false"`
	ExpiresAt  time.Time `json:"expires_at" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Relationships
	User    User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Booking Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
}

// TableName specifies the table name for the OTP model
func (OTP) TableName() string {
	return "otps"
}

// IsExpired reports whether the code's TTL has passed. A code dies at its
// expiry instant, matching the purge job's expires_at <= now cutoff.
func (o *OTP) IsExpired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}
