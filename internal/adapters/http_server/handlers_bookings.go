package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"stayhub/internal/adapters/observability"
	"stayhub/internal/app"
	"stayhub/internal/domain"
)

type createBookingReq struct {
	PropertyID string `json:"property_id"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Guests     int    `json:"guests"`
}

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r)
	var req createBookingReq
	if !decode(w, r, &req) {
		return
	}
	checkIn, err := domain.ParseDate(req.CheckIn)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "check_in must be YYYY-MM-DD")
		return
	}
	checkOut, err := domain.ParseDate(req.CheckOut)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "check_out must be YYYY-MM-DD")
		return
	}
	if req.Guests <= 0 {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "guests must be positive")
		return
	}

	b, err := h.Bookings.Create(r.Context(), app.CreateBookingInput{
		PropertyID: req.PropertyID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Guests:     req.Guests,
		GuestID:    p.UserID,
	})
	if err != nil {
		observability.ObserveBooking("create", bookingOutcome(err))
		writeErr(w, err)
		return
	}
	observability.ObserveBooking("create", "ok")
	writeJSON(w, http.StatusCreated, toBookingDTO(b))
}

type updateBookingStatusReq struct {
	Status string `json:"status"`
}

func (h *Handlers) updateBookingStatus(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r)
	var req updateBookingStatusReq
	if !decode(w, r, &req) {
		return
	}
	target := domain.BookingStatus(req.Status)
	switch target {
	case domain.BookingConfirmed, domain.BookingCancelled, domain.BookingCompleted:
	default:
		// paid is only reachable through the payment flow
		writeProblem(w, http.StatusBadRequest, "Bad Request", "status must be confirmed, cancelled or completed")
		return
	}

	b, err := h.Bookings.UpdateStatus(r.Context(), chi.URLParam(r, "id"), p.UserID, target)
	if err != nil {
		observability.ObserveBooking("transition", bookingOutcome(err))
		writeErr(w, err)
		return
	}
	observability.ObserveBooking("transition", "ok")
	writeJSON(w, http.StatusOK, toBookingDTO(b))
}

func (h *Handlers) getBooking(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r)
	b, err := h.Bookings.Get(r.Context(), chi.URLParam(r, "id"), p.UserID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingDTO(b))
}

// listBookings returns the caller's bookings. ?as=host lists bookings on
// the caller's properties instead of their own stays.
func (h *Handlers) listBookings(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r)
	role := domain.RoleGuest
	if r.URL.Query().Get("as") == "host" {
		role = domain.RoleHost
	}
	bookings, err := h.Bookings.ListForUser(r.Context(), p.UserID, role)
	if err != nil {
		writeErr(w, err)
		return
	}
	out := make([]bookingDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingDTO(b))
	}
	writeJSON(w, http.StatusOK, map[string]any{"bookings": out, "count": len(out)})
}
