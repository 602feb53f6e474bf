package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"stayhub/internal/domain"
)

type ReviewService struct {
	reviews    domain.ReviewRepository
	bookings   domain.BookingRepository
	properties domain.PropertyRepository
}

func NewReviewService(r domain.ReviewRepository, b domain.BookingRepository, p domain.PropertyRepository) *ReviewService {
	return &ReviewService{reviews: r, bookings: b, properties: p}
}

type CreateReviewInput struct {
	BookingID  string
	RevieweeID string
	PropertyID *string
	Rating     int
	Comment    *string
	ReviewType domain.ReviewType
}

// Create records a review for a completed stay. Only the booking's guest or
// host may review, and each (booking, reviewer, reviewee) pair reviews once.
func (s *ReviewService) Create(ctx context.Context, in CreateReviewInput, reviewerID string) (domain.Review, error) {
	booking, err := s.bookings.GetBooking(ctx, in.BookingID)
	if err != nil {
		return domain.Review{}, fmt.Errorf("load booking %s: %w", in.BookingID, err)
	}
	if booking.Status != domain.BookingCompleted {
		return domain.Review{}, fmt.Errorf("%w: reviews require a completed booking", domain.ErrInvalidState)
	}
	property, err := s.properties.GetProperty(ctx, booking.PropertyID)
	if err != nil {
		return domain.Review{}, err
	}
	if domain.RoleOf(booking, property, reviewerID) == domain.RelNone {
		return domain.Review{}, domain.ErrUnauthorized
	}

	exists, err := s.reviews.ReviewExists(ctx, in.BookingID, reviewerID, in.RevieweeID)
	if err != nil {
		return domain.Review{}, err
	}
	if exists {
		return domain.Review{}, domain.ErrDuplicateReview
	}

	return s.reviews.CreateReview(ctx, domain.Review{
		ID:         uuid.NewString(),
		BookingID:  in.BookingID,
		ReviewerID: reviewerID,
		RevieweeID: in.RevieweeID,
		PropertyID: in.PropertyID,
		Rating:     in.Rating,
		Comment:    in.Comment,
		ReviewType: in.ReviewType,
	})
}

// PropertyReviews lists guest-to-host reviews for a property.
func (s *ReviewService) PropertyReviews(ctx context.Context, propertyID string) ([]domain.ReviewView, error) {
	return s.reviews.ListPropertyReviews(ctx, propertyID)
}

func (s *ReviewService) UserReviews(ctx context.Context, userID string) ([]domain.ReviewView, error) {
	return s.reviews.ListUserReviews(ctx, userID)
}

func (s *ReviewService) PropertyStats(ctx context.Context, propertyID string) (domain.ReviewStats, error) {
	return s.reviews.PropertyReviewStats(ctx, propertyID)
}
