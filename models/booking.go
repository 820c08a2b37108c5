package models

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "PENDING"
	BookingStatusAssigned   BookingStatus = "ASSIGNED"
	BookingStatusConfirmed  BookingStatus = "CONFIRMED"
	BookingStatusReached    BookingStatus = "REACHED"
	BookingStatusInProgress BookingStatus = "IN_PROGRESS"
	BookingStatusDelayed    BookingStatus = "DELAYED"
	BookingStatusCompleted  BookingStatus = "COMPLETED"
	BookingStatusCancelled  BookingStatus = "CANCELLED"
)

type Booking struct {
	ID        uint          `json:"id" gorm:"primaryKey"`
	UserID    uint          `json:"user_id" gorm:"not null"`
	ServiceID uint          `json:"service_id" gorm:"not null"`
	WorkerID  *uint         `json:"worker_id"` // Null until an admin assigns a worker
	Status    BookingStatus `json:"status" gorm:"type:varchar(20);not null;default:'PENDING';check:status IN ('PENDING','ASSIGNED','CONFIRMED','REACHED','IN_PROGRESS','DELAYED','COMPLETED','CANCELLED')"`
	Address   string        `json:"address" gorm:"type:text;not null"`
	Date      time.Time     `json:"date" gorm:"not null"`
	TimeSlot  string        `json:"time_slot" gorm:"size:20;not null"` // e.g. "9:00 AM - 11:00 AM"

	// Delay negotiation: the original slot stays in place while a
	// suggestion is pending
	SuggestedDate *time.Time `json:"suggested_date"`
	SuggestedTime *string    `json:"suggested_time" gorm:"size:20"`

	IsRated   bool       `json:"is_rated" gorm:"default:false"`
	ReachedAt *time.Time `json:"reached_at"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	User    User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Service Service  `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	Worker  *User    `json:"worker,omitempty" gorm:"foreignKey:WorkerID"`
	Payment *Payment `json:"payment,omitempty" gorm:"foreignKey:BookingID"`
}

// TableName specifies the table name for the Booking model
func (Booking) TableName() string {
	return "bookings"
}

// IsTerminal reports whether no further status mutation is allowed.
// Payment creation on COMPLETED is the one exception, handled separately.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

// CanCancel reports whether a user may still cancel a booking in this status
func (s BookingStatus) CanCancel() bool {
	return s == BookingStatusPending || s == BookingStatusAssigned
}

// CanSuggestDelay reports whether an admin may propose a new slot. DELAYED
// is included so a booking flagged by the overdue sweep, which attaches no
// suggestion of its own, can still be rescheduled; re-suggesting simply
// replaces any pending suggestion.
func (s BookingStatus) CanSuggestDelay() bool {
	switch s {
	case BookingStatusAssigned, BookingStatusConfirmed, BookingStatusReached, BookingStatusDelayed:
		return true
	default:
		return false
	}
}

// validTransitions enumerates every status change a request may drive.
// Anything not listed here is rejected before touching the row.
var validTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:    {BookingStatusAssigned, BookingStatusCancelled},
	BookingStatusAssigned:   {BookingStatusConfirmed, BookingStatusPending, BookingStatusDelayed, BookingStatusCancelled},
	BookingStatusConfirmed:  {BookingStatusReached, BookingStatusDelayed},
	BookingStatusReached:    {BookingStatusInProgress, BookingStatusDelayed},
	BookingStatusInProgress: {BookingStatusCompleted},
	BookingStatusDelayed:    {BookingStatusAssigned, BookingStatusDelayed, BookingStatusCancelled},
	BookingStatusCompleted:  {},
	BookingStatusCancelled:  {},
}

// CanTransition reports whether moving from one status to another is legal
func CanTransition(from, to BookingStatus) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// HasSuggestion reports whether a delay suggestion is pending on the booking
func (b *Booking) HasSuggestion() bool {
	return b.SuggestedDate != nil && b.SuggestedTime != nil
}

// AcceptSuggestion overwrites the scheduled slot with the suggested one and
// clears the suggestion fields. Returns false if no suggestion is pending.
func (b *Booking) AcceptSuggestion() bool {
	if !b.HasSuggestion() {
		return false
	}
	b.Date = *b.SuggestedDate
	b.TimeSlot = *b.SuggestedTime
	b.SuggestedDate = nil
	b.SuggestedTime = nil
	b.Status = BookingStatusAssigned
	return true
}

// ClearSuggestion drops a pending suggestion without applying it
func (b *Booking) ClearSuggestion() {
	b.SuggestedDate = nil
	b.SuggestedTime = nil
}

// BookingCreateRequest represents the request structure for creating a booking
type BookingCreateRequest struct {
	Service  uint   `json:"service" binding:"required"`
	Date     string `json:"date" binding:"required"` // YYYY-MM-DD
	TimeSlot string `json:"time_slot" binding:"required"`
	Address  string `json:"address" binding:"required"`
}
