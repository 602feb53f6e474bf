package httpserver

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"stayhub/internal/adapters/observability"
	"stayhub/internal/app"
	"stayhub/internal/domain"
)

type processPaymentReq struct {
	BookingID     string  `json:"booking_id"`
	Method        string  `json:"payment_method"`
	TransactionID *string `json:"transaction_id"`
}

func (h *Handlers) processPayment(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r)
	var req processPaymentReq
	if !decode(w, r, &req) {
		return
	}
	if req.BookingID == "" || req.Method == "" {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "booking_id and payment_method are required")
		return
	}

	payment, err := h.Payments.Process(r.Context(), app.ProcessPaymentInput{
		BookingID:     req.BookingID,
		PayerID:       p.UserID,
		Method:        req.Method,
		TransactionID: req.TransactionID,
	})
	if err != nil {
		observability.ObservePayment("process", paymentOutcome(err))
		writeErr(w, err)
		return
	}
	observability.ObservePayment("process", "ok")
	writeJSON(w, http.StatusCreated, toPaymentDTO(payment))
}

type refundReq struct {
	Reason *string `json:"reason"`
}

func (h *Handlers) refundPayment(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r)
	var req refundReq
	if !decode(w, r, &req) {
		return
	}
	payment, err := h.Payments.Refund(r.Context(), chi.URLParam(r, "id"), p.UserID, req.Reason)
	if err != nil {
		observability.ObservePayment("refund", paymentOutcome(err))
		writeErr(w, err)
		return
	}
	observability.ObservePayment("refund", "ok")
	writeJSON(w, http.StatusOK, toPaymentDTO(payment))
}

func (h *Handlers) getPayment(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r)
	payment, err := h.Payments.Get(r.Context(), chi.URLParam(r, "id"), p.UserID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentDTO(payment))
}

func (h *Handlers) listPayments(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r)
	role := domain.RoleGuest
	if r.URL.Query().Get("as") == "host" {
		role = domain.RoleHost
	}
	payments, err := h.Payments.ListForUser(r.Context(), p.UserID, role)
	if err != nil {
		writeErr(w, err)
		return
	}
	out := make([]paymentDTO, 0, len(payments))
	for _, pay := range payments {
		out = append(out, toPaymentDTO(pay))
	}
	writeJSON(w, http.StatusOK, map[string]any{"payments": out, "count": len(out)})
}

// hostEarnings aggregates the caller's host income per month. Defaults to
// the trailing twelve months.
func (h *Handlers) hostEarnings(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r)
	now := h.Clock.Now().UTC()
	from := now.AddDate(-1, 0, 0)
	to := now
	if v := r.URL.Query().Get("from"); v != "" {
		t, err := domain.ParseDate(v)
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Bad Request", "from must be YYYY-MM-DD")
			return
		}
		from = t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, err := domain.ParseDate(v)
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Bad Request", "to must be YYYY-MM-DD")
			return
		}
		to = t
	}
	months, err := h.Payments.HostEarnings(r.Context(), p.UserID, from, to)
	if err != nil {
		writeErr(w, err)
		return
	}
	out := make([]earningsDTO, 0, len(months))
	for _, m := range months {
		out = append(out, toEarningsDTO(m))
	}
	writeJSON(w, http.StatusOK, map[string]any{"earnings": out})
}

func bookingOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrAvailabilityConflict), errors.Is(err, domain.ErrSelfBooking):
		return "conflict"
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrInvalidTransition):
		return "denied"
	default:
		return "error"
	}
}

func paymentOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrDuplicatePayment):
		return "conflict"
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrInvalidState):
		return "denied"
	default:
		return "error"
	}
}
