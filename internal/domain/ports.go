package domain

import (
	"context"
	"time"
)

// Transactor scopes a function to a single store transaction. Repository
// calls made with the ctx it passes to fn join that transaction; the
// transaction commits iff fn returns nil.
type Transactor interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type UserRepository interface {
	CreateUser(ctx context.Context, u User) (User, error)
	GetUser(ctx context.Context, id string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	SetUserVerified(ctx context.Context, id string, verified bool) error
}

type PropertyRepository interface {
	CreateProperty(ctx context.Context, p Property) (Property, error)
	GetProperty(ctx context.Context, id string) (Property, error)
	// GetPropertyForUpdate takes a row lock; valid only inside WithTx.
	GetPropertyForUpdate(ctx context.Context, id string) (Property, error)
	GetPropertyView(ctx context.Context, id string) (PropertyView, error)
	SearchProperties(ctx context.Context, q PropertySearch) ([]PropertyView, error)
	UpdateProperty(ctx context.Context, p Property) (Property, error)
	DeleteProperty(ctx context.Context, id string) error
}

type BookingRepository interface {
	CreateBooking(ctx context.Context, b Booking) (Booking, error)
	GetBooking(ctx context.Context, id string) (Booking, error)
	// GetBookingForUpdate takes a row lock; valid only inside WithTx.
	GetBookingForUpdate(ctx context.Context, id string) (Booking, error)
	// ListActiveBookings returns all non-cancelled bookings for the
	// property, excluding excludeID when non-empty.
	ListActiveBookings(ctx context.Context, propertyID, excludeID string) ([]Booking, error)
	UpdateBookingStatus(ctx context.Context, id string, status BookingStatus) (Booking, error)
	ListBookingsByGuest(ctx context.Context, guestID string) ([]Booking, error)
	ListBookingsByHost(ctx context.Context, hostID string) ([]Booking, error)
}

type PaymentRepository interface {
	CreatePayment(ctx context.Context, p Payment) (Payment, error)
	GetPayment(ctx context.Context, id string) (Payment, error)
	GetPaymentForUpdate(ctx context.Context, id string) (Payment, error)
	ActivePaymentExists(ctx context.Context, bookingID string) (bool, error)
	UpdatePaymentStatus(ctx context.Context, id string, status PaymentStatus) (Payment, error)
	ListPaymentsByPayer(ctx context.Context, payerID string) ([]Payment, error)
	ListPaymentsByHost(ctx context.Context, hostID string) ([]Payment, error)
	HostEarnings(ctx context.Context, hostID string, from, to time.Time) ([]EarningsMonth, error)
}

type ReviewRepository interface {
	CreateReview(ctx context.Context, r Review) (Review, error)
	ReviewExists(ctx context.Context, bookingID, reviewerID, revieweeID string) (bool, error)
	ListPropertyReviews(ctx context.Context, propertyID string) ([]ReviewView, error)
	ListUserReviews(ctx context.Context, revieweeID string) ([]ReviewView, error)
	PropertyReviewStats(ctx context.Context, propertyID string) (ReviewStats, error)
}

type MessageRepository interface {
	CreateMessage(ctx context.Context, m Message) (Message, error)
	ListConversation(ctx context.Context, userID, otherID string) ([]MessageView, error)
	MarkConversationRead(ctx context.Context, senderID, receiverID string) error
}

type VerificationRepository interface {
	CreateVerification(ctx context.Context, v Verification) (Verification, error)
	GetVerification(ctx context.Context, id string) (Verification, error)
	GetVerificationByUser(ctx context.Context, userID string) (Verification, error)
	UpdateVerificationStatus(ctx context.Context, id string, status VerificationStatus, verifiedAt *time.Time) (Verification, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// PushSender delivers a payload to a user's live connection, if any.
// Implemented by the WebSocket connection registry.
type PushSender interface {
	Push(userID string, v any) bool
}
