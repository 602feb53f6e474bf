package domain

import "time"

type ReviewType string

const (
	ReviewGuestToHost ReviewType = "guest_to_host"
	ReviewHostToGuest ReviewType = "host_to_guest"
)

type Review struct {
	ID         string
	BookingID  string
	ReviewerID string
	RevieweeID string
	PropertyID *string
	Rating     int // 1..5
	Comment    *string
	ReviewType ReviewType
	CreatedAt  time.Time
}

// ReviewView adds reviewer display fields to a review.
type ReviewView struct {
	Review
	ReviewerName   string
	ReviewerAvatar *string
}

type ReviewStats struct {
	TotalReviews  int
	AverageRating float64
	StarCounts    [5]int // index 0 = one star
}
