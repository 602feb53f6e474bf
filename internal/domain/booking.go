package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
	// BookingPaid is reachable only through settlement, never through
	// UpdateStatus. A refund reverts it to cancelled.
	BookingPaid BookingStatus = "paid"
)

type Booking struct {
	ID         string
	PropertyID string
	GuestID    string
	CheckIn    time.Time // day precision, UTC midnight
	CheckOut   time.Time // exclusive
	Guests     int
	TotalPrice decimal.Decimal
	Status     BookingStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Rel is the relationship of an acting user to a booking.
type Rel int

const (
	RelNone Rel = iota
	RelGuest
	RelHost
)

// RoleOf resolves the relationship of userID to a booking and its property.
// Pure; the only "failure" is RelNone.
func RoleOf(b Booking, p Property, userID string) Rel {
	switch userID {
	case p.HostID:
		return RelHost
	case b.GuestID:
		return RelGuest
	}
	return RelNone
}

type edge struct{ from, to BookingStatus }

// transitionActors is the full directed-edge table of the booking state
// machine together with the actors permitted to drive each edge. Edges not
// present are illegal; completed and cancelled have no outgoing edges.
var transitionActors = map[edge][]Rel{
	{BookingPending, BookingConfirmed}:   {RelHost},
	{BookingPending, BookingCancelled}:   {RelHost, RelGuest},
	{BookingConfirmed, BookingCancelled}: {RelHost, RelGuest},
	{BookingConfirmed, BookingCompleted}: {RelHost},
}

// ValidTransition reports whether the edge from→to exists at all,
// independent of who is asking.
func ValidTransition(from, to BookingStatus) bool {
	_, ok := transitionActors[edge{from, to}]
	return ok
}

// ActorMayTransition reports whether rel is permitted to drive from→to.
// Callers must check ValidTransition first; an unknown edge is never
// permitted.
func ActorMayTransition(rel Rel, from, to BookingStatus) bool {
	for _, allowed := range transitionActors[edge{from, to}] {
		if rel == allowed {
			return true
		}
	}
	return false
}
