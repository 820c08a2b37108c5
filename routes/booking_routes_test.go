package routes

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"home-service-server/models"
)

// setBookingStatus must reject an illegal transition before any database
// write; with no database wired, reaching the write would panic.
func TestSetBookingStatusRejectsIllegalTransition(t *testing.T) {
	tests := []struct {
		from models.BookingStatus
		to   models.BookingStatus
	}{
		{models.BookingStatusCompleted, models.BookingStatusPending},
		{models.BookingStatusCancelled, models.BookingStatusAssigned},
		{models.BookingStatusPending, models.BookingStatusCompleted},
		{models.BookingStatusConfirmed, models.BookingStatusCancelled},
		{models.BookingStatusInProgress, models.BookingStatusDelayed},
	}

	for _, tc := range tests {
		booking := &models.Booking{Status: tc.from}

		err := setBookingStatus(booking, tc.to, nil)
		assert.ErrorIs(t, err, errIllegalTransition, "%s -> %s must be rejected", tc.from, tc.to)

		// The struct stays untouched on rejection
		assert.Equal(t, tc.from, booking.Status)
	}
}
