package app

import (
	"context"
	"errors"
	"testing"

	"stayhub/internal/clock"
	"stayhub/internal/domain"
)

func seedPaymentWorld(t *testing.T) (*fakeStore, *PaymentService) {
	t.Helper()
	store := newFakeStore()
	store.properties["prop1"] = domain.Property{
		ID: "prop1", HostID: "host1", PricePerNight: dec(t, "100.00"), Status: domain.PropertyActive,
	}
	store.bookings["b1"] = domain.Booking{
		ID: "b1", PropertyID: "prop1", GuestID: "guest1",
		CheckIn: domain.Date(2026, 3, 10), CheckOut: domain.Date(2026, 3, 14),
		TotalPrice: dec(t, "400.00"), Status: domain.BookingConfirmed,
	}
	svc := NewPaymentService(store, store, store, store, dec(t, "15"))
	return store, svc
}

func TestProcessPayment(t *testing.T) {
	store, svc := seedPaymentWorld(t)

	p, err := svc.Process(context.Background(), ProcessPaymentInput{
		BookingID: "b1", PayerID: "guest1", Method: "card",
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if !p.Amount.Equal(dec(t, "400.00")) || !p.PlatformFee.Equal(dec(t, "60.00")) || !p.HostAmount.Equal(dec(t, "340.00")) {
		t.Fatalf("split = %s/%s/%s", p.Amount, p.PlatformFee, p.HostAmount)
	}
	if p.Status != domain.PaymentCompleted {
		t.Fatalf("status = %s, want completed", p.Status)
	}
	if got := store.bookings["b1"].Status; got != domain.BookingPaid {
		t.Fatalf("booking status = %s, want paid", got)
	}
}

func TestProcessPaymentRejections(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*fakeStore)
		payer   string
		wantErr error
	}{
		{"only the guest pays", nil, "host1", domain.ErrUnauthorized},
		{"stranger cannot pay", nil, "stranger", domain.ErrUnauthorized},
		{
			"pending booking not payable",
			func(s *fakeStore) {
				b := s.bookings["b1"]
				b.Status = domain.BookingPending
				s.bookings["b1"] = b
			},
			"guest1", domain.ErrInvalidState,
		},
		{
			"cancelled booking not payable",
			func(s *fakeStore) {
				b := s.bookings["b1"]
				b.Status = domain.BookingCancelled
				s.bookings["b1"] = b
			},
			"guest1", domain.ErrInvalidState,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store, svc := seedPaymentWorld(t)
			if tc.mutate != nil {
				tc.mutate(store)
			}
			_, err := svc.Process(context.Background(), ProcessPaymentInput{BookingID: "b1", PayerID: tc.payer, Method: "card"})
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
			if len(store.payments) != 0 {
				t.Fatal("payment stored despite rejection")
			}
		})
	}
}

func TestProcessPaymentDuplicate(t *testing.T) {
	store, svc := seedPaymentWorld(t)
	ctx := context.Background()

	if _, err := svc.Process(ctx, ProcessPaymentInput{BookingID: "b1", PayerID: "guest1", Method: "card"}); err != nil {
		t.Fatalf("first payment: %v", err)
	}
	_, err := svc.Process(ctx, ProcessPaymentInput{BookingID: "b1", PayerID: "guest1", Method: "card"})
	if !errors.Is(err, domain.ErrDuplicatePayment) {
		t.Fatalf("err = %v, want duplicate payment", err)
	}

	// the rejected retry must not disturb the settled booking
	b, err := store.GetBooking(ctx, "b1")
	if err != nil {
		t.Fatalf("get booking: %v", err)
	}
	if b.Status != domain.BookingPaid {
		t.Fatalf("booking status = %s, want paid", b.Status)
	}
}

func TestRefund(t *testing.T) {
	store, svc := seedPaymentWorld(t)
	ctx := context.Background()

	p, err := svc.Process(ctx, ProcessPaymentInput{BookingID: "b1", PayerID: "guest1", Method: "card"})
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	// only the host refunds
	if _, err := svc.Refund(ctx, p.ID, "guest1", nil); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("guest refund: err = %v, want unauthorized", err)
	}

	refunded, err := svc.Refund(ctx, p.ID, "host1", nil)
	if err != nil {
		t.Fatalf("refund: %v", err)
	}
	if refunded.Status != domain.PaymentRefunded {
		t.Fatalf("payment status = %s, want refunded", refunded.Status)
	}
	if got := store.bookings["b1"].Status; got != domain.BookingCancelled {
		t.Fatalf("booking status = %s, want cancelled", got)
	}

	// a refunded payment cannot be refunded again
	if _, err := svc.Refund(ctx, p.ID, "host1", nil); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("double refund: err = %v, want invalid state", err)
	}
}

func TestPaymentVisibility(t *testing.T) {
	store, svc := seedPaymentWorld(t)
	ctx := context.Background()
	store.payments["pay1"] = domain.Payment{ID: "pay1", BookingID: "b1", PayerID: "guest1", Status: domain.PaymentCompleted}

	if _, err := svc.Get(ctx, "pay1", "guest1"); err != nil {
		t.Fatalf("payer: %v", err)
	}
	if _, err := svc.Get(ctx, "pay1", "host1"); err != nil {
		t.Fatalf("host: %v", err)
	}
	if _, err := svc.Get(ctx, "pay1", "stranger"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("stranger: err = %v, want unauthorized", err)
	}
}

// Full lifecycle: book four nights at 100.00, confirm, settle at 15%,
// then refund.
func TestBookingSettlementRoundTrip(t *testing.T) {
	store := newFakeStore()
	store.properties["prop1"] = domain.Property{
		ID: "prop1", HostID: "host1", PricePerNight: dec(t, "100.00"), Status: domain.PropertyActive,
	}
	bookings := NewBookingService(store, store, store, clock.NewFixed(domain.Date(2026, 3, 1)))
	payments := NewPaymentService(store, store, store, store, dec(t, "15"))
	ctx := context.Background()

	b, err := bookings.Create(ctx, CreateBookingInput{
		PropertyID: "prop1", CheckIn: domain.Date(2026, 3, 10), CheckOut: domain.Date(2026, 3, 14),
		Guests: 2, GuestID: "guest1",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !b.TotalPrice.Equal(dec(t, "400.00")) {
		t.Fatalf("total = %s, want 400.00", b.TotalPrice)
	}

	if _, err := bookings.UpdateStatus(ctx, b.ID, "host1", domain.BookingConfirmed); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	p, err := payments.Process(ctx, ProcessPaymentInput{BookingID: b.ID, PayerID: "guest1", Method: "card"})
	if err != nil {
		t.Fatalf("pay: %v", err)
	}
	if !p.PlatformFee.Equal(dec(t, "60.00")) || !p.HostAmount.Equal(dec(t, "340.00")) {
		t.Fatalf("split = %s/%s, want 60.00/340.00", p.PlatformFee, p.HostAmount)
	}

	if _, err := payments.Refund(ctx, p.ID, "host1", nil); err != nil {
		t.Fatalf("refund: %v", err)
	}
	if got := store.bookings[b.ID].Status; got != domain.BookingCancelled {
		t.Fatalf("booking status after refund = %s, want cancelled", got)
	}

	// the dates are bookable again once the original is cancelled
	if _, err := bookings.Create(ctx, CreateBookingInput{
		PropertyID: "prop1", CheckIn: domain.Date(2026, 3, 10), CheckOut: domain.Date(2026, 3, 14),
		Guests: 2, GuestID: "guest2",
	}); err != nil {
		t.Fatalf("rebook after refund: %v", err)
	}
}
