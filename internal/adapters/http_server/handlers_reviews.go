package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"stayhub/internal/app"
	"stayhub/internal/domain"
)

type createReviewReq struct {
	BookingID  string  `json:"booking_id"`
	RevieweeID string  `json:"reviewee_id"`
	PropertyID *string `json:"property_id"`
	Rating     int     `json:"rating"`
	Comment    *string `json:"comment"`
	ReviewType string  `json:"review_type"`
}

func (h *Handlers) createReview(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r)
	var req createReviewReq
	if !decode(w, r, &req) {
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "rating must be between 1 and 5")
		return
	}
	rt := domain.ReviewType(req.ReviewType)
	if rt != domain.ReviewGuestToHost && rt != domain.ReviewHostToGuest {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "review_type must be guest_to_host or host_to_guest")
		return
	}

	review, err := h.Reviews.Create(r.Context(), app.CreateReviewInput{
		BookingID:  req.BookingID,
		RevieweeID: req.RevieweeID,
		PropertyID: req.PropertyID,
		Rating:     req.Rating,
		Comment:    req.Comment,
		ReviewType: rt,
	}, p.UserID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toReviewDTO(review))
}

func (h *Handlers) listPropertyReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Reviews.PropertyReviews(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	out := make([]reviewDTO, 0, len(reviews))
	for _, v := range reviews {
		out = append(out, toReviewViewDTO(v))
	}
	writeJSON(w, http.StatusOK, map[string]any{"reviews": out, "count": len(out)})
}

func (h *Handlers) listUserReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Reviews.UserReviews(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	out := make([]reviewDTO, 0, len(reviews))
	for _, v := range reviews {
		out = append(out, toReviewViewDTO(v))
	}
	writeJSON(w, http.StatusOK, map[string]any{"reviews": out, "count": len(out)})
}

func (h *Handlers) propertyReviewStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Reviews.PropertyStats(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total_reviews":  stats.TotalReviews,
		"average_rating": stats.AverageRating,
		"star_counts":    stats.StarCounts,
	})
}
