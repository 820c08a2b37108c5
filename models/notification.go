package models

import (
	"time"
)

type NotificationType string

const (
	NotificationBookingStatus    NotificationType = "BOOKING_STATUS"
	NotificationAssignment       NotificationType = "ASSIGNMENT"
	NotificationOTP              NotificationType = "OTP"
	NotificationPayment          NotificationType = "PAYMENT"
	NotificationSystem           NotificationType = "SYSTEM"
	NotificationBookingRejection NotificationType = "BOOKING_REJECTION"
)

type Notification struct {
	ID               uint             `json:"id" gorm:"primaryKey"`
	UserID           uint             `json:"user_id" gorm:"not null;index"`
	Title            string           `json:"title" gorm:"size:200;not null"`
	Message          string           `json:"message" gorm:"type:text;not null"`
	NotificationType NotificationType `json:"notification_type" gorm:"type:varchar(20);not null"`
	IsRead           bool             `json:"is_read" gorm:"default:false"`
	CreatedAt        time.Time        `json:"created_at" gorm:"autoCreateTime"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for the Notification model
func (Notification) TableName() string {
	return "notifications"
}
