package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"stayhub/internal/adapters/ws"
	"stayhub/internal/app"
	"stayhub/internal/clock"
	"stayhub/internal/domain"
)

type Handlers struct {
	Auth          *app.AuthService
	Properties    *app.PropertyService
	Bookings      *app.BookingService
	Payments      *app.PaymentService
	Reviews       *app.ReviewService
	Verifications *app.VerificationService
	Chat          *app.ChatService
	Tokens        Verifier
	WS            *ws.Registry
	Clock         clock.Clock
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	// public
	s.mux.Post("/v1/auth/register", h.register)
	s.mux.Post("/v1/auth/login", h.login)
	s.mux.Get("/v1/properties", h.searchProperties)
	s.mux.Get("/v1/properties/{id}", h.getProperty)
	s.mux.Get("/v1/properties/{id}/reviews", h.listPropertyReviews)
	s.mux.Get("/v1/properties/{id}/stats", h.propertyReviewStats)
	s.mux.Get("/v1/users/{id}/reviews", h.listUserReviews)

	// authenticated
	s.mux.Group(func(r chi.Router) {
		r.Use(Auth(h.Tokens))

		r.Get("/v1/auth/me", h.me)

		r.Post("/v1/properties", h.createProperty)
		r.Put("/v1/properties/{id}", h.updateProperty)
		r.Delete("/v1/properties/{id}", h.deleteProperty)

		r.Post("/v1/bookings", h.createBooking)
		r.Get("/v1/bookings", h.listBookings)
		r.Get("/v1/bookings/{id}", h.getBooking)
		r.Patch("/v1/bookings/{id}/status", h.updateBookingStatus)

		r.Post("/v1/payments", h.processPayment)
		r.Get("/v1/payments", h.listPayments)
		r.Get("/v1/payments/earnings", h.hostEarnings)
		r.Get("/v1/payments/{id}", h.getPayment)
		r.Post("/v1/payments/{id}/refund", h.refundPayment)

		r.Post("/v1/reviews", h.createReview)

		r.Post("/v1/verifications", h.submitVerification)
		r.Get("/v1/verifications/me", h.myVerification)
		r.Patch("/v1/verifications/{id}", h.decideVerification)

		r.Post("/v1/messages", h.sendMessage)
		r.Get("/v1/messages/{userID}", h.conversation)
	})

	// the websocket endpoint authenticates via ?token= because browsers
	// cannot set headers on websocket dials
	s.mux.Get("/v1/ws", h.serveWS)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// writeErr maps domain errors onto HTTP problem responses.
func writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "invalid credentials")
	case errors.Is(err, domain.ErrUnauthorized):
		writeProblem(w, http.StatusForbidden, "Forbidden", err.Error())
	case errors.Is(err, domain.ErrAvailabilityConflict),
		errors.Is(err, domain.ErrSelfBooking),
		errors.Is(err, domain.ErrDuplicatePayment),
		errors.Is(err, domain.ErrDuplicateReview),
		errors.Is(err, domain.ErrEmailTaken):
		writeProblem(w, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrInvalidState):
		writeProblem(w, http.StatusUnprocessableEntity, "Unprocessable Entity", err.Error())
	default:
		log.Error().Err(err).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return false
	}
	return true
}
