package services

import (
	"math"
	"strings"

	"github.com/google/uuid"
)

// CommissionRate is the platform's share of every payment
const CommissionRate = 0.20

// ComputeSplit divides a total between the platform (20%) and the worker
// (80%). Amounts are computed in cents so that commission + provider always
// equals the total exactly, with any odd cent going to the provider.
func ComputeSplit(total float64) (adminCommission, providerAmount float64) {
	totalCents := int64(math.Round(total * 100))
	commissionCents := totalCents * 20 / 100
	providerCents := totalCents - commissionCents
	return float64(commissionCents) / 100, float64(providerCents) / 100
}

// NewTransactionID returns a unique id for a simulated payment
func NewTransactionID() string {
	return "txn_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}
