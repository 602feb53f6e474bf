package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

type Payment struct {
	ID            string
	BookingID     string
	PayerID       string
	Amount        decimal.Decimal
	PlatformFee   decimal.Decimal
	HostAmount    decimal.Decimal
	Method        string
	Status        PaymentStatus
	TransactionID *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Active reports whether the payment still counts against the
// one-active-payment-per-booking invariant.
func (p Payment) Active() bool { return p.Status != PaymentRefunded }

// SplitFee computes the platform/host split for amount at feePct percent.
// Only the fee is rounded; the host amount is the remainder, so the two sum
// to amount exactly.
func SplitFee(amount, feePct decimal.Decimal) (platformFee, hostAmount decimal.Decimal) {
	platformFee = amount.Mul(feePct).Div(decimal.NewFromInt(100)).Round(2)
	hostAmount = amount.Sub(platformFee)
	return platformFee, hostAmount
}

// EarningsMonth is one row of the host earnings aggregation.
type EarningsMonth struct {
	Month         string // YYYY-MM
	TotalEarnings decimal.Decimal
	TotalFees     decimal.Decimal
	Payments      int
}
