package app

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"stayhub/internal/clock"
	"stayhub/internal/domain"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("decimal %q: %v", s, err)
	}
	return d
}

func seedBookingWorld(t *testing.T) (*fakeStore, *BookingService) {
	t.Helper()
	store := newFakeStore()
	store.properties["prop1"] = domain.Property{
		ID: "prop1", HostID: "host1", PricePerNight: dec(t, "100.00"), Status: domain.PropertyActive,
	}
	svc := NewBookingService(store, store, store, clock.NewFixed(domain.Date(2026, 3, 1)))
	return store, svc
}

func TestCreateBooking(t *testing.T) {
	_, svc := seedBookingWorld(t)

	b, err := svc.Create(context.Background(), CreateBookingInput{
		PropertyID: "prop1",
		CheckIn:    domain.Date(2026, 3, 10),
		CheckOut:   domain.Date(2026, 3, 14),
		Guests:     2,
		GuestID:    "guest1",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if b.Status != domain.BookingPending {
		t.Fatalf("status = %s, want pending", b.Status)
	}
	if !b.TotalPrice.Equal(dec(t, "400.00")) {
		t.Fatalf("total = %s, want 400.00", b.TotalPrice)
	}
}

func TestCreateBookingValidation(t *testing.T) {
	_, svc := seedBookingWorld(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		in      CreateBookingInput
		wantErr error
	}{
		{
			"check-out before check-in",
			CreateBookingInput{PropertyID: "prop1", CheckIn: domain.Date(2026, 3, 14), CheckOut: domain.Date(2026, 3, 10), Guests: 1, GuestID: "g"},
			domain.ErrInvalidState,
		},
		{
			"zero nights",
			CreateBookingInput{PropertyID: "prop1", CheckIn: domain.Date(2026, 3, 10), CheckOut: domain.Date(2026, 3, 10), Guests: 1, GuestID: "g"},
			domain.ErrInvalidState,
		},
		{
			"check-in in the past",
			CreateBookingInput{PropertyID: "prop1", CheckIn: domain.Date(2026, 2, 20), CheckOut: domain.Date(2026, 2, 22), Guests: 1, GuestID: "g"},
			domain.ErrInvalidState,
		},
		{
			"host books own property",
			CreateBookingInput{PropertyID: "prop1", CheckIn: domain.Date(2026, 3, 10), CheckOut: domain.Date(2026, 3, 12), Guests: 1, GuestID: "host1"},
			domain.ErrSelfBooking,
		},
		{
			"unknown property",
			CreateBookingInput{PropertyID: "nope", CheckIn: domain.Date(2026, 3, 10), CheckOut: domain.Date(2026, 3, 12), Guests: 1, GuestID: "g"},
			domain.ErrNotFound,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.in)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestCreateBookingAvailability(t *testing.T) {
	store, svc := seedBookingWorld(t)
	ctx := context.Background()

	store.bookings["b1"] = domain.Booking{
		ID: "b1", PropertyID: "prop1", GuestID: "other",
		CheckIn: domain.Date(2026, 3, 10), CheckOut: domain.Date(2026, 3, 14),
		Status: domain.BookingConfirmed,
	}

	// overlapping request is refused
	_, err := svc.Create(ctx, CreateBookingInput{
		PropertyID: "prop1", CheckIn: domain.Date(2026, 3, 12), CheckOut: domain.Date(2026, 3, 16), Guests: 1, GuestID: "guest1",
	})
	if !errors.Is(err, domain.ErrAvailabilityConflict) {
		t.Fatalf("err = %v, want availability conflict", err)
	}

	// back-to-back with the existing stay is fine
	if _, err := svc.Create(ctx, CreateBookingInput{
		PropertyID: "prop1", CheckIn: domain.Date(2026, 3, 14), CheckOut: domain.Date(2026, 3, 16), Guests: 1, GuestID: "guest1",
	}); err != nil {
		t.Fatalf("back-to-back: %v", err)
	}
}

func TestCreateBookingIgnoresCancelled(t *testing.T) {
	store, svc := seedBookingWorld(t)

	store.bookings["b1"] = domain.Booking{
		ID: "b1", PropertyID: "prop1", GuestID: "other",
		CheckIn: domain.Date(2026, 3, 10), CheckOut: domain.Date(2026, 3, 14),
		Status: domain.BookingCancelled,
	}

	if _, err := svc.Create(context.Background(), CreateBookingInput{
		PropertyID: "prop1", CheckIn: domain.Date(2026, 3, 10), CheckOut: domain.Date(2026, 3, 14), Guests: 1, GuestID: "guest1",
	}); err != nil {
		t.Fatalf("cancelled booking should not block: %v", err)
	}
}

func TestConcurrentCreateSingleWinner(t *testing.T) {
	store, svc := seedBookingWorld(t)
	ctx := context.Background()

	const attempts = 16
	var g errgroup.Group
	results := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		i := i
		g.Go(func() error {
			_, err := svc.Create(ctx, CreateBookingInput{
				PropertyID: "prop1",
				CheckIn:    domain.Date(2026, 3, 10),
				CheckOut:   domain.Date(2026, 3, 12),
				Guests:     1,
				GuestID:    "guest1",
			})
			results[i] = err
			return nil
		})
	}
	_ = g.Wait()

	var wins, conflicts int
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, domain.ErrAvailabilityConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 || conflicts != attempts-1 {
		t.Fatalf("wins = %d, conflicts = %d; want exactly one winner", wins, conflicts)
	}
	if len(store.bookings) != 1 {
		t.Fatalf("stored bookings = %d, want 1", len(store.bookings))
	}
}

func TestUpdateStatus(t *testing.T) {
	cases := []struct {
		name      string
		from      domain.BookingStatus
		target    domain.BookingStatus
		requester string
		wantErr   error
	}{
		{"host confirms pending", domain.BookingPending, domain.BookingConfirmed, "host1", nil},
		{"guest cannot confirm", domain.BookingPending, domain.BookingConfirmed, "guest1", domain.ErrUnauthorized},
		{"guest cancels pending", domain.BookingPending, domain.BookingCancelled, "guest1", nil},
		{"guest cancels confirmed", domain.BookingConfirmed, domain.BookingCancelled, "guest1", nil},
		{"host completes confirmed", domain.BookingConfirmed, domain.BookingCompleted, "host1", nil},
		{"guest cannot complete", domain.BookingConfirmed, domain.BookingCompleted, "guest1", domain.ErrUnauthorized},
		{"pending cannot complete", domain.BookingPending, domain.BookingCompleted, "host1", domain.ErrInvalidTransition},
		{"cancelled is terminal", domain.BookingCancelled, domain.BookingConfirmed, "host1", domain.ErrInvalidTransition},
		{"completed is terminal", domain.BookingCompleted, domain.BookingCancelled, "host1", domain.ErrInvalidTransition},
		{"paid not settable directly", domain.BookingConfirmed, domain.BookingPaid, "host1", domain.ErrInvalidTransition},
		{"stranger denied", domain.BookingPending, domain.BookingConfirmed, "stranger", domain.ErrUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store, svc := seedBookingWorld(t)
			store.bookings["b1"] = domain.Booking{
				ID: "b1", PropertyID: "prop1", GuestID: "guest1",
				CheckIn: domain.Date(2026, 3, 10), CheckOut: domain.Date(2026, 3, 12),
				Status: tc.from,
			}

			b, err := svc.UpdateStatus(context.Background(), "b1", tc.requester, tc.target)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("err = %v, want %v", err, tc.wantErr)
				}
				if got := store.bookings["b1"].Status; got != tc.from {
					t.Fatalf("status changed to %s on failed transition", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("update: %v", err)
			}
			if b.Status != tc.target {
				t.Fatalf("status = %s, want %s", b.Status, tc.target)
			}
		})
	}
}

func TestGetBookingVisibility(t *testing.T) {
	store, svc := seedBookingWorld(t)
	store.bookings["b1"] = domain.Booking{ID: "b1", PropertyID: "prop1", GuestID: "guest1", Status: domain.BookingPending}
	ctx := context.Background()

	if _, err := svc.Get(ctx, "b1", "guest1"); err != nil {
		t.Fatalf("guest: %v", err)
	}
	if _, err := svc.Get(ctx, "b1", "host1"); err != nil {
		t.Fatalf("host: %v", err)
	}
	if _, err := svc.Get(ctx, "b1", "stranger"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("stranger: err = %v, want unauthorized", err)
	}
}
