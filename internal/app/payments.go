package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"stayhub/internal/domain"
)

// PaymentService records settlements: it splits a confirmed booking's total
// between platform and host, enforces the one-active-payment invariant, and
// handles refund reversal. Payment and booking writes share one transaction.
type PaymentService struct {
	tx         domain.Transactor
	payments   domain.PaymentRepository
	bookings   domain.BookingRepository
	properties domain.PropertyRepository
	feePct     decimal.Decimal
}

func NewPaymentService(tx domain.Transactor, pay domain.PaymentRepository, b domain.BookingRepository, p domain.PropertyRepository, feePct decimal.Decimal) *PaymentService {
	return &PaymentService{tx: tx, payments: pay, bookings: b, properties: p, feePct: feePct}
}

type ProcessPaymentInput struct {
	BookingID     string
	PayerID       string
	Method        string
	TransactionID *string
}

func (s *PaymentService) Process(ctx context.Context, in ProcessPaymentInput) (domain.Payment, error) {
	var payment domain.Payment
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		booking, err := s.bookings.GetBookingForUpdate(ctx, in.BookingID)
		if err != nil {
			return fmt.Errorf("load booking %s: %w", in.BookingID, err)
		}
		if booking.GuestID != in.PayerID {
			return fmt.Errorf("%w: only the booking guest may pay", domain.ErrUnauthorized)
		}
		// duplicate check runs first so a booking already settled and advanced
		// to paid rejects as a duplicate, not as a bad state
		exists, err := s.payments.ActivePaymentExists(ctx, in.BookingID)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrDuplicatePayment
		}
		if booking.Status != domain.BookingConfirmed {
			return fmt.Errorf("%w: booking must be confirmed, is %s", domain.ErrInvalidState, booking.Status)
		}

		amount := booking.TotalPrice
		fee, hostAmount := domain.SplitFee(amount, s.feePct)

		payment, err = s.payments.CreatePayment(ctx, domain.Payment{
			ID:            uuid.NewString(),
			BookingID:     in.BookingID,
			PayerID:       in.PayerID,
			Amount:        amount,
			PlatformFee:   fee,
			HostAmount:    hostAmount,
			Method:        in.Method,
			Status:        domain.PaymentCompleted,
			TransactionID: in.TransactionID,
		})
		if err != nil {
			return err
		}
		_, err = s.bookings.UpdateBookingStatus(ctx, in.BookingID, domain.BookingPaid)
		return err
	})
	if err != nil {
		return domain.Payment{}, err
	}
	return payment, nil
}

// Refund marks a completed payment refunded and reverts its booking to
// cancelled. Only the property's host may refund.
func (s *PaymentService) Refund(ctx context.Context, paymentID, requesterID string, reason *string) (domain.Payment, error) {
	var refunded domain.Payment
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		payment, err := s.payments.GetPaymentForUpdate(ctx, paymentID)
		if err != nil {
			return fmt.Errorf("load payment %s: %w", paymentID, err)
		}
		booking, err := s.bookings.GetBooking(ctx, payment.BookingID)
		if err != nil {
			return err
		}
		property, err := s.properties.GetProperty(ctx, booking.PropertyID)
		if err != nil {
			return err
		}

		if payment.Status != domain.PaymentCompleted {
			return fmt.Errorf("%w: only completed payments can be refunded", domain.ErrInvalidState)
		}
		if property.HostID != requesterID {
			return fmt.Errorf("%w: only the host may refund", domain.ErrUnauthorized)
		}

		refunded, err = s.payments.UpdatePaymentStatus(ctx, paymentID, domain.PaymentRefunded)
		if err != nil {
			return err
		}
		_, err = s.bookings.UpdateBookingStatus(ctx, payment.BookingID, domain.BookingCancelled)
		return err
	})
	if err != nil {
		return domain.Payment{}, err
	}
	return refunded, nil
}

// Get returns a payment visible to its payer or the receiving host.
func (s *PaymentService) Get(ctx context.Context, paymentID, requesterID string) (domain.Payment, error) {
	payment, err := s.payments.GetPayment(ctx, paymentID)
	if err != nil {
		return domain.Payment{}, err
	}
	booking, err := s.bookings.GetBooking(ctx, payment.BookingID)
	if err != nil {
		return domain.Payment{}, err
	}
	property, err := s.properties.GetProperty(ctx, booking.PropertyID)
	if err != nil {
		return domain.Payment{}, err
	}
	if payment.PayerID != requesterID && property.HostID != requesterID {
		return domain.Payment{}, domain.ErrUnauthorized
	}
	return payment, nil
}

func (s *PaymentService) ListForUser(ctx context.Context, userID string, role domain.Role) ([]domain.Payment, error) {
	if role == domain.RoleGuest {
		return s.payments.ListPaymentsByPayer(ctx, userID)
	}
	return s.payments.ListPaymentsByHost(ctx, userID)
}

func (s *PaymentService) HostEarnings(ctx context.Context, hostID string, from, to time.Time) ([]domain.EarningsMonth, error) {
	return s.payments.HostEarnings(ctx, hostID, from, to)
}
