package services

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeSplit(t *testing.T) {
	tests := []struct {
		name           string
		total          float64
		wantCommission float64
		wantProvider   float64
	}{
		{"round total", 100.00, 20.00, 80.00},
		{"small total", 5.00, 1.00, 4.00},
		{"cents", 99.99, 19.99, 80.00},
		{"odd cent goes to provider", 0.05, 0.01, 0.04},
		{"single cent", 0.01, 0.00, 0.01},
		{"zero", 0.00, 0.00, 0.00},
		{"large total", 12345.67, 2469.13, 9876.54},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			commission, provider := ComputeSplit(tc.total)
			assert.InDelta(t, tc.wantCommission, commission, 0.0001)
			assert.InDelta(t, tc.wantProvider, provider, 0.0001)

			// The split must reconstruct the total exactly in cents
			assert.InDelta(t, tc.total, commission+provider, 0.0001)
		})
	}
}

func TestNewTransactionID(t *testing.T) {
	pattern := regexp.MustCompile(`^txn_[0-9a-f]{12}$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewTransactionID()
		assert.Regexp(t, pattern, id)
		assert.False(t, seen[id], "transaction ids must not repeat")
		seen[id] = true
	}
}
