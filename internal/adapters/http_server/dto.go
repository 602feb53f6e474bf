package httpserver

import (
	"time"

	"github.com/shopspring/decimal"

	"stayhub/internal/domain"
)

// Wire shapes. Dates travel as YYYY-MM-DD strings, money as decimal
// strings.

type userDTO struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Role      string  `json:"role"`
	Verified  bool    `json:"verified"`
	Phone     *string `json:"phone,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	CreatedAt string  `json:"created_at"`
}

func toUserDTO(u domain.User) userDTO {
	return userDTO{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      string(u.Role),
		Verified:  u.Verified,
		Phone:     u.Phone,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type propertyDTO struct {
	ID            string          `json:"id"`
	HostID        string          `json:"host_id"`
	Title         string          `json:"title"`
	Description   *string         `json:"description,omitempty"`
	PropertyType  string          `json:"property_type"`
	PricePerNight decimal.Decimal `json:"price_per_night"`
	Latitude      float64         `json:"latitude"`
	Longitude     float64         `json:"longitude"`
	Address       string          `json:"address"`
	City          string          `json:"city"`
	Country       string          `json:"country"`
	Guests        int             `json:"guests"`
	Bedrooms      int             `json:"bedrooms"`
	Beds          int             `json:"beds"`
	Bathrooms     float64         `json:"bathrooms"`
	Amenities     []string        `json:"amenities"`
	Images        []string        `json:"images"`
	Rules         *string         `json:"rules,omitempty"`
	Status        string          `json:"status"`
}

func toPropertyDTO(p domain.Property) propertyDTO {
	return propertyDTO{
		ID:            p.ID,
		HostID:        p.HostID,
		Title:         p.Title,
		Description:   p.Description,
		PropertyType:  string(p.PropertyType),
		PricePerNight: p.PricePerNight,
		Latitude:      p.Latitude,
		Longitude:     p.Longitude,
		Address:       p.Address,
		City:          p.City,
		Country:       p.Country,
		Guests:        p.Guests,
		Bedrooms:      p.Bedrooms,
		Beds:          p.Beds,
		Bathrooms:     p.Bathrooms,
		Amenities:     p.Amenities,
		Images:        p.Images,
		Rules:         p.Rules,
		Status:        string(p.Status),
	}
}

type propertyViewDTO struct {
	propertyDTO
	HostName     string   `json:"host_name"`
	HostAvatar   *string  `json:"host_avatar,omitempty"`
	HostVerified bool     `json:"host_verified"`
	AvgRating    float64  `json:"avg_rating"`
	ReviewCount  int      `json:"review_count"`
	DistanceKm   *float64 `json:"distance_km,omitempty"`
}

func toPropertyViewDTO(v domain.PropertyView) propertyViewDTO {
	return propertyViewDTO{
		propertyDTO:  toPropertyDTO(v.Property),
		HostName:     v.HostName,
		HostAvatar:   v.HostAvatar,
		HostVerified: v.HostVerified,
		AvgRating:    v.AvgRating,
		ReviewCount:  v.ReviewCount,
		DistanceKm:   v.DistanceKm,
	}
}

type bookingDTO struct {
	ID         string          `json:"id"`
	PropertyID string          `json:"property_id"`
	GuestID    string          `json:"guest_id"`
	CheckIn    string          `json:"check_in"`
	CheckOut   string          `json:"check_out"`
	Guests     int             `json:"guests"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Status     string          `json:"status"`
	CreatedAt  string          `json:"created_at"`
}

func toBookingDTO(b domain.Booking) bookingDTO {
	return bookingDTO{
		ID:         b.ID,
		PropertyID: b.PropertyID,
		GuestID:    b.GuestID,
		CheckIn:    b.CheckIn.Format(domain.DateLayout),
		CheckOut:   b.CheckOut.Format(domain.DateLayout),
		Guests:     b.Guests,
		TotalPrice: b.TotalPrice,
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type paymentDTO struct {
	ID            string          `json:"id"`
	BookingID     string          `json:"booking_id"`
	PayerID       string          `json:"payer_id"`
	Amount        decimal.Decimal `json:"amount"`
	PlatformFee   decimal.Decimal `json:"platform_fee"`
	HostAmount    decimal.Decimal `json:"host_amount"`
	Method        string          `json:"payment_method"`
	Status        string          `json:"payment_status"`
	TransactionID *string         `json:"transaction_id,omitempty"`
	CreatedAt     string          `json:"created_at"`
}

func toPaymentDTO(p domain.Payment) paymentDTO {
	return paymentDTO{
		ID:            p.ID,
		BookingID:     p.BookingID,
		PayerID:       p.PayerID,
		Amount:        p.Amount,
		PlatformFee:   p.PlatformFee,
		HostAmount:    p.HostAmount,
		Method:        p.Method,
		Status:        string(p.Status),
		TransactionID: p.TransactionID,
		CreatedAt:     p.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type reviewDTO struct {
	ID             string  `json:"id"`
	BookingID      string  `json:"booking_id"`
	ReviewerID     string  `json:"reviewer_id"`
	RevieweeID     string  `json:"reviewee_id"`
	PropertyID     *string `json:"property_id,omitempty"`
	Rating         int     `json:"rating"`
	Comment        *string `json:"comment,omitempty"`
	ReviewType     string  `json:"review_type"`
	ReviewerName   string  `json:"reviewer_name,omitempty"`
	ReviewerAvatar *string `json:"reviewer_avatar,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

func toReviewDTO(r domain.Review) reviewDTO {
	return reviewDTO{
		ID:         r.ID,
		BookingID:  r.BookingID,
		ReviewerID: r.ReviewerID,
		RevieweeID: r.RevieweeID,
		PropertyID: r.PropertyID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		ReviewType: string(r.ReviewType),
		CreatedAt:  r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toReviewViewDTO(v domain.ReviewView) reviewDTO {
	d := toReviewDTO(v.Review)
	d.ReviewerName = v.ReviewerName
	d.ReviewerAvatar = v.ReviewerAvatar
	return d
}

type messageDTO struct {
	ID           string  `json:"id"`
	SenderID     string  `json:"sender_id"`
	ReceiverID   string  `json:"receiver_id"`
	BookingID    *string `json:"booking_id,omitempty"`
	Content      string  `json:"content"`
	Read         bool    `json:"is_read"`
	SenderName   string  `json:"sender_name,omitempty"`
	SenderAvatar *string `json:"sender_avatar,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

func toMessageDTO(m domain.Message) messageDTO {
	return messageDTO{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		BookingID:  m.BookingID,
		Content:    m.Content,
		Read:       m.Read,
		CreatedAt:  m.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toMessageViewDTO(v domain.MessageView) messageDTO {
	d := toMessageDTO(v.Message)
	d.SenderName = v.SenderName
	d.SenderAvatar = v.SenderAvatar
	return d
}

type verificationDTO struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	DocumentType string  `json:"document_type"`
	Status       string  `json:"status"`
	VerifiedAt   *string `json:"verified_at,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

func toVerificationDTO(v domain.Verification) verificationDTO {
	d := verificationDTO{
		ID:           v.ID,
		UserID:       v.UserID,
		DocumentType: v.DocumentType,
		Status:       string(v.Status),
		CreatedAt:    v.CreatedAt.UTC().Format(time.RFC3339),
	}
	if v.VerifiedAt != nil {
		ts := v.VerifiedAt.UTC().Format(time.RFC3339)
		d.VerifiedAt = &ts
	}
	return d
}

type earningsDTO struct {
	Month         string          `json:"month"`
	TotalEarnings decimal.Decimal `json:"total_earnings"`
	TotalFees     decimal.Decimal `json:"total_fees"`
	Payments      int             `json:"payments"`
}

func toEarningsDTO(e domain.EarningsMonth) earningsDTO {
	return earningsDTO{Month: e.Month, TotalEarnings: e.TotalEarnings, TotalFees: e.TotalFees, Payments: e.Payments}
}
