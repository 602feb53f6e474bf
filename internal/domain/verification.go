package domain

import "time"

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationInReview VerificationStatus = "in_review"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

type Verification struct {
	ID               string
	UserID           string
	DocumentType     string
	DocumentNumber   *string
	DocumentFrontURL *string
	DocumentBackURL  *string
	SelfieURL        *string
	Status           VerificationStatus
	VerifiedAt       *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
