package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"stayhub/internal/clock"
	"stayhub/internal/domain"
)

// BookingService owns the booking state machine: creation with availability,
// self-booking and price rules, and role-gated status transitions.
type BookingService struct {
	tx         domain.Transactor
	bookings   domain.BookingRepository
	properties domain.PropertyRepository
	checker    *AvailabilityChecker
	clock      clock.Clock
}

func NewBookingService(tx domain.Transactor, b domain.BookingRepository, p domain.PropertyRepository, clk clock.Clock) *BookingService {
	return &BookingService{
		tx:         tx,
		bookings:   b,
		properties: p,
		checker:    NewAvailabilityChecker(b),
		clock:      clk,
	}
}

type CreateBookingInput struct {
	PropertyID string
	CheckIn    time.Time
	CheckOut   time.Time
	Guests     int
	GuestID    string
}

// Create reserves [CheckIn, CheckOut) on the property for the guest. The
// property row is locked for the whole check-then-insert sequence so two
// overlapping requests cannot both pass the availability check.
func (s *BookingService) Create(ctx context.Context, in CreateBookingInput) (domain.Booking, error) {
	checkIn := domain.NormalizeDate(in.CheckIn)
	checkOut := domain.NormalizeDate(in.CheckOut)
	if !checkIn.Before(checkOut) {
		return domain.Booking{}, fmt.Errorf("%w: check-out must be after check-in", domain.ErrInvalidState)
	}
	if checkIn.Before(domain.NormalizeDate(s.clock.Now())) {
		return domain.Booking{}, fmt.Errorf("%w: check-in is in the past", domain.ErrInvalidState)
	}

	var created domain.Booking
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		property, err := s.properties.GetPropertyForUpdate(ctx, in.PropertyID)
		if err != nil {
			return fmt.Errorf("load property %s: %w", in.PropertyID, err)
		}

		free, err := s.checker.IsAvailable(ctx, in.PropertyID, checkIn, checkOut, "")
		if err != nil {
			return err
		}
		if !free {
			return domain.ErrAvailabilityConflict
		}

		if property.HostID == in.GuestID {
			return domain.ErrSelfBooking
		}

		nights := domain.Nights(checkIn, checkOut)
		total := property.PricePerNight.Mul(decimal.NewFromInt(int64(nights)))

		created, err = s.bookings.CreateBooking(ctx, domain.Booking{
			ID:         uuid.NewString(),
			PropertyID: in.PropertyID,
			GuestID:    in.GuestID,
			CheckIn:    checkIn,
			CheckOut:   checkOut,
			Guests:     in.Guests,
			TotalPrice: total,
			Status:     domain.BookingPending,
		})
		return err
	})
	if err != nil {
		return domain.Booking{}, err
	}
	return created, nil
}

// UpdateStatus moves a booking along one edge of its state machine. The
// booking row is locked so concurrent transitions serialize instead of
// producing a lost update.
func (s *BookingService) UpdateStatus(ctx context.Context, bookingID, requesterID string, target domain.BookingStatus) (domain.Booking, error) {
	var updated domain.Booking
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		booking, err := s.bookings.GetBookingForUpdate(ctx, bookingID)
		if err != nil {
			return fmt.Errorf("load booking %s: %w", bookingID, err)
		}
		property, err := s.properties.GetProperty(ctx, booking.PropertyID)
		if err != nil {
			return fmt.Errorf("load property %s: %w", booking.PropertyID, err)
		}

		rel := domain.RoleOf(booking, property, requesterID)
		if rel == domain.RelNone {
			return domain.ErrUnauthorized
		}
		if !domain.ValidTransition(booking.Status, target) {
			return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, booking.Status, target)
		}
		if !domain.ActorMayTransition(rel, booking.Status, target) {
			return fmt.Errorf("%w: transition %s -> %s not permitted for this user", domain.ErrUnauthorized, booking.Status, target)
		}

		updated, err = s.bookings.UpdateBookingStatus(ctx, bookingID, target)
		return err
	})
	if err != nil {
		return domain.Booking{}, err
	}
	return updated, nil
}

// Get returns a booking visible to its guest or the property's host.
func (s *BookingService) Get(ctx context.Context, bookingID, requesterID string) (domain.Booking, error) {
	booking, err := s.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return domain.Booking{}, err
	}
	property, err := s.properties.GetProperty(ctx, booking.PropertyID)
	if err != nil {
		return domain.Booking{}, err
	}
	if domain.RoleOf(booking, property, requesterID) == domain.RelNone {
		return domain.Booking{}, domain.ErrUnauthorized
	}
	return booking, nil
}

// ListForUser returns the user's bookings: as guest their own, as host the
// bookings on their properties.
func (s *BookingService) ListForUser(ctx context.Context, userID string, role domain.Role) ([]domain.Booking, error) {
	if role == domain.RoleGuest {
		return s.bookings.ListBookingsByGuest(ctx, userID)
	}
	return s.bookings.ListBookingsByHost(ctx, userID)
}
