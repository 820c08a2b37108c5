package models

import (
	"time"
)

// RatingReview is a 1-5 star rating a customer leaves for a completed,
// paid booking, or directly for a catalog service.
type RatingReview struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_booking"`
	WorkerID  *uint     `json:"worker_id"`
	ServiceID *uint     `json:"service_id"`
	BookingID *uint     `json:"booking_id" gorm:"uniqueIndex:idx_user_booking"`
	Rating    int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Review    string    `json:"review" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Relationships
	User    User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Worker  *User    `json:"worker,omitempty" gorm:"foreignKey:WorkerID"`
	Service *Service `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	Booking *Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
}

// TableName specifies the table name for the RatingReview model
func (RatingReview) TableName() string {
	return "rating_reviews"
}

// RatingCreateRequest represents the request structure for creating a rating
type RatingCreateRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Review  string `json:"review"`
	Service *uint  `json:"service"`
	Booking *uint  `json:"booking"`
}

// RatingResponse represents the response structure for a rating
type RatingResponse struct {
	ID             uint      `json:"id"`
	BookingID      *uint     `json:"booking"`
	UserUsername   string    `json:"user_username"`
	WorkerUsername *string   `json:"worker_username"`
	ServiceName    *string   `json:"service_name"`
	Rating         int       `json:"rating"`
	Review         string    `json:"review"`
	CreatedAt      time.Time `json:"created_at"`
}
