package domain

import "testing"

func TestValidTransition(t *testing.T) {
	statuses := []BookingStatus{BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted, BookingPaid}
	legal := map[edge]bool{
		{BookingPending, BookingConfirmed}:   true,
		{BookingPending, BookingCancelled}:   true,
		{BookingConfirmed, BookingCancelled}: true,
		{BookingConfirmed, BookingCompleted}: true,
	}
	// exhaustive over the whole status grid: everything outside the four
	// listed edges must be rejected, including self-loops and anything
	// into or out of paid
	for _, from := range statuses {
		for _, to := range statuses {
			want := legal[edge{from, to}]
			if got := ValidTransition(from, to); got != want {
				t.Errorf("ValidTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestActorMayTransition(t *testing.T) {
	cases := []struct {
		name     string
		rel      Rel
		from, to BookingStatus
		expected bool
	}{
		{"host confirms", RelHost, BookingPending, BookingConfirmed, true},
		{"guest cannot confirm", RelGuest, BookingPending, BookingConfirmed, false},
		{"guest cancels pending", RelGuest, BookingPending, BookingCancelled, true},
		{"host cancels pending", RelHost, BookingPending, BookingCancelled, true},
		{"guest cancels confirmed", RelGuest, BookingConfirmed, BookingCancelled, true},
		{"host completes", RelHost, BookingConfirmed, BookingCompleted, true},
		{"guest cannot complete", RelGuest, BookingConfirmed, BookingCompleted, false},
		{"stranger does nothing", RelNone, BookingPending, BookingConfirmed, false},
		{"unknown edge never permitted", RelHost, BookingCancelled, BookingConfirmed, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ActorMayTransition(tc.rel, tc.from, tc.to); got != tc.expected {
				t.Fatalf("ActorMayTransition(%v, %s, %s) = %v, want %v", tc.rel, tc.from, tc.to, got, tc.expected)
			}
		})
	}
}

func TestRoleOf(t *testing.T) {
	b := Booking{GuestID: "guest"}
	p := Property{HostID: "host"}

	if got := RoleOf(b, p, "host"); got != RelHost {
		t.Fatalf("host: got %v", got)
	}
	if got := RoleOf(b, p, "guest"); got != RelGuest {
		t.Fatalf("guest: got %v", got)
	}
	if got := RoleOf(b, p, "stranger"); got != RelNone {
		t.Fatalf("stranger: got %v", got)
	}
}

func TestRoleOfHostWins(t *testing.T) {
	// a host booking their own property resolves as host
	b := Booking{GuestID: "u1"}
	p := Property{HostID: "u1"}
	if got := RoleOf(b, p, "u1"); got != RelHost {
		t.Fatalf("got %v, want RelHost", got)
	}
}
