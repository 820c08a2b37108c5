package jobs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlotStartTime(t *testing.T) {
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		slot     string
		wantHour int
		wantMin  int
	}{
		{"9:00 AM - 11:00 AM", 9, 0},
		{"11:30 AM - 1:30 PM", 11, 30},
		{"2:00 PM - 4:00 PM", 14, 0},
		{"12:00 PM - 2:00 PM", 12, 0},
		{"12:00 AM - 2:00 AM", 0, 0},
		{"9:00 AM", 9, 0}, // no end part
	}

	for _, tc := range tests {
		t.Run(tc.slot, func(t *testing.T) {
			start, err := SlotStartTime(date, tc.slot)
			assert.NoError(t, err)
			assert.Equal(t, tc.wantHour, start.Hour())
			assert.Equal(t, tc.wantMin, start.Minute())
			assert.Equal(t, date.Year(), start.Year())
			assert.Equal(t, date.Month(), start.Month())
			assert.Equal(t, date.Day(), start.Day())
		})
	}
}

func TestSlotStartTimeInvalid(t *testing.T) {
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	for _, slot := range []string{"", "morning", "25:00 AM - 26:00 AM"} {
		_, err := SlotStartTime(date, slot)
		assert.Error(t, err, "slot %q should not parse", slot)
	}
}
