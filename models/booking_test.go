package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct {
		from, to BookingStatus
	}{
		{BookingStatusPending, BookingStatusAssigned},
		{BookingStatusPending, BookingStatusCancelled},
		{BookingStatusAssigned, BookingStatusConfirmed},
		{BookingStatusAssigned, BookingStatusPending},
		{BookingStatusAssigned, BookingStatusDelayed},
		{BookingStatusAssigned, BookingStatusCancelled},
		{BookingStatusConfirmed, BookingStatusReached},
		{BookingStatusConfirmed, BookingStatusDelayed},
		{BookingStatusReached, BookingStatusInProgress},
		{BookingStatusReached, BookingStatusDelayed},
		{BookingStatusInProgress, BookingStatusCompleted},
		{BookingStatusDelayed, BookingStatusAssigned},
		{BookingStatusDelayed, BookingStatusDelayed},
		{BookingStatusDelayed, BookingStatusCancelled},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransition(tc.from, tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	denied := []struct {
		from, to BookingStatus
	}{
		{BookingStatusPending, BookingStatusConfirmed},
		{BookingStatusPending, BookingStatusCompleted},
		{BookingStatusAssigned, BookingStatusInProgress},
		{BookingStatusConfirmed, BookingStatusCancelled},
		{BookingStatusConfirmed, BookingStatusCompleted},
		{BookingStatusReached, BookingStatusCompleted},
		{BookingStatusReached, BookingStatusCancelled},
		{BookingStatusInProgress, BookingStatusCancelled},
		{BookingStatusInProgress, BookingStatusDelayed},
		{BookingStatusCompleted, BookingStatusPending},
		{BookingStatusCompleted, BookingStatusInProgress},
		{BookingStatusCancelled, BookingStatusPending},
		{BookingStatusCancelled, BookingStatusAssigned},
	}
	for _, tc := range denied {
		assert.False(t, CanTransition(tc.from, tc.to), "%s -> %s should be denied", tc.from, tc.to)
	}
}

func TestTerminalStatuses(t *testing.T) {
	assert.True(t, BookingStatusCompleted.IsTerminal())
	assert.True(t, BookingStatusCancelled.IsTerminal())
	assert.False(t, BookingStatusPending.IsTerminal())
	assert.False(t, BookingStatusInProgress.IsTerminal())

	// Terminal statuses allow no outgoing transitions
	assert.Empty(t, validTransitions[BookingStatusCompleted])
	assert.Empty(t, validTransitions[BookingStatusCancelled])
}

func TestCanCancel(t *testing.T) {
	assert.True(t, BookingStatusPending.CanCancel())
	assert.True(t, BookingStatusAssigned.CanCancel())

	for _, s := range []BookingStatus{
		BookingStatusConfirmed, BookingStatusReached, BookingStatusInProgress,
		BookingStatusDelayed, BookingStatusCompleted, BookingStatusCancelled,
	} {
		assert.False(t, s.CanCancel(), "%s should not be cancellable", s)
	}
}

func TestCanSuggestDelay(t *testing.T) {
	assert.True(t, BookingStatusAssigned.CanSuggestDelay())
	assert.True(t, BookingStatusConfirmed.CanSuggestDelay())
	assert.True(t, BookingStatusReached.CanSuggestDelay())
	assert.True(t, BookingStatusDelayed.CanSuggestDelay())

	assert.False(t, BookingStatusPending.CanSuggestDelay())
	assert.False(t, BookingStatusInProgress.CanSuggestDelay())
	assert.False(t, BookingStatusCompleted.CanSuggestDelay())
	assert.False(t, BookingStatusCancelled.CanSuggestDelay())
}

// A booking the overdue sweep flags DELAYED carries no suggestion. The admin
// must still be able to reschedule it, and the table must allow every exit.
func TestAutoDelayedBookingIsRecoverable(t *testing.T) {
	booking := &Booking{Status: BookingStatusDelayed}

	assert.False(t, booking.HasSuggestion())
	assert.True(t, booking.Status.CanSuggestDelay())

	assert.True(t, CanTransition(BookingStatusDelayed, BookingStatusDelayed))
	assert.True(t, CanTransition(BookingStatusDelayed, BookingStatusAssigned))
	assert.True(t, CanTransition(BookingStatusDelayed, BookingStatusCancelled))
}

func TestAcceptSuggestion(t *testing.T) {
	originalDate := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	suggestedDate := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	suggestedTime := "2:00 PM - 4:00 PM"

	booking := &Booking{
		Status:        BookingStatusDelayed,
		Date:          originalDate,
		TimeSlot:      "9:00 AM - 11:00 AM",
		SuggestedDate: &suggestedDate,
		SuggestedTime: &suggestedTime,
	}

	assert.True(t, booking.HasSuggestion())
	assert.True(t, booking.AcceptSuggestion())

	// The suggested slot replaces the original and the suggestion clears
	assert.Equal(t, suggestedDate, booking.Date)
	assert.Equal(t, suggestedTime, booking.TimeSlot)
	assert.Nil(t, booking.SuggestedDate)
	assert.Nil(t, booking.SuggestedTime)
	assert.Equal(t, BookingStatusAssigned, booking.Status)
	assert.False(t, booking.HasSuggestion())
}

func TestAcceptSuggestionWithoutPendingSuggestion(t *testing.T) {
	booking := &Booking{
		Status:   BookingStatusDelayed,
		Date:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		TimeSlot: "9:00 AM - 11:00 AM",
	}

	assert.False(t, booking.AcceptSuggestion())
	assert.Equal(t, BookingStatusDelayed, booking.Status)
	assert.Equal(t, "9:00 AM - 11:00 AM", booking.TimeSlot)
}

func TestClearSuggestion(t *testing.T) {
	suggestedDate := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	suggestedTime := "2:00 PM - 4:00 PM"
	originalDate := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	booking := &Booking{
		Status:        BookingStatusDelayed,
		Date:          originalDate,
		TimeSlot:      "9:00 AM - 11:00 AM",
		SuggestedDate: &suggestedDate,
		SuggestedTime: &suggestedTime,
	}

	booking.ClearSuggestion()

	// The original slot stays untouched
	assert.Equal(t, originalDate, booking.Date)
	assert.Equal(t, "9:00 AM - 11:00 AM", booking.TimeSlot)
	assert.False(t, booking.HasSuggestion())
}
