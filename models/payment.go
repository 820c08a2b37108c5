package models

import (
	"time"
)

type PaymentStatus string

const (
	PaymentStatusSuccess PaymentStatus = "SUCCESS"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

type PaymentMethod string

const (
	PaymentMethodCard       PaymentMethod = "CARD"
	PaymentMethodUPI        PaymentMethod = "UPI"
	PaymentMethodNetBanking PaymentMethod = "NET_BANKING"
	PaymentMethodWallet     PaymentMethod = "WALLET"
	PaymentMethodCOD        PaymentMethod = "COD"
)

// Payment records the settled amount for a booking, split between the
// platform and the worker. One payment per booking; immutable once SUCCESS.
type Payment struct {
	ID              uint          `json:"id" gorm:"primaryKey"`
	BookingID       uint          `json:"booking_id" gorm:"uniqueIndex;not null"`
	TotalAmount     float64       `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	AdminCommission float64       `json:"admin_commission" gorm:"type:decimal(10,2);not null"` // 20% of total
	ProviderAmount  float64       `json:"provider_amount" gorm:"type:decimal(10,2);not null"`  // 80% of total
	PaymentStatus   PaymentStatus `json:"payment_status" gorm:"type:varchar(10);not null;default:'FAILED'"`
	PaymentMethod   PaymentMethod `json:"payment_method" gorm:"type:varchar(20);not null;default:'CARD'"`
	TransactionID   *string       `json:"transaction_id" gorm:"size:100;uniqueIndex"`
	CreatedAt       time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}

// ValidPaymentMethod checks whether the given method is a known one
func ValidPaymentMethod(method string) bool {
	switch PaymentMethod(method) {
	case PaymentMethodCard, PaymentMethodUPI, PaymentMethodNetBanking,
		PaymentMethodWallet, PaymentMethodCOD:
		return true
	default:
		return false
	}
}
