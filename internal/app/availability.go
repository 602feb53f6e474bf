package app

import (
	"context"
	"time"

	"stayhub/internal/domain"
)

// AvailabilityChecker decides whether a date range can be booked for a
// property. It is a pure predicate over the store's non-cancelled bookings;
// conflicts are surfaced by the caller, not here. The store-side row lock in
// BookingService.Create is the authoritative guard against races; this check
// is the early-rejection layer.
type AvailabilityChecker struct {
	bookings domain.BookingRepository
}

func NewAvailabilityChecker(bookings domain.BookingRepository) *AvailabilityChecker {
	return &AvailabilityChecker{bookings: bookings}
}

// IsAvailable reports whether [checkIn, checkOut) is free on the property,
// ignoring the booking with excludeID (pass "" for none).
func (c *AvailabilityChecker) IsAvailable(ctx context.Context, propertyID string, checkIn, checkOut time.Time, excludeID string) (bool, error) {
	existing, err := c.bookings.ListActiveBookings(ctx, propertyID, excludeID)
	if err != nil {
		return false, err
	}
	for _, b := range existing {
		if domain.Overlaps(checkIn, checkOut, b.CheckIn, b.CheckOut) {
			return false, nil
		}
	}
	return true, nil
}
