package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"stayhub/internal/clock"
	"stayhub/internal/domain"
)

type VerificationService struct {
	verifications domain.VerificationRepository
	users         domain.UserRepository
	clock         clock.Clock
}

func NewVerificationService(v domain.VerificationRepository, u domain.UserRepository, clk clock.Clock) *VerificationService {
	return &VerificationService{verifications: v, users: u, clock: clk}
}

type SubmitVerificationInput struct {
	DocumentType     string
	DocumentNumber   *string
	DocumentFrontURL *string
	DocumentBackURL  *string
	SelfieURL        *string
}

func (s *VerificationService) Submit(ctx context.Context, in SubmitVerificationInput, userID string) (domain.Verification, error) {
	return s.verifications.CreateVerification(ctx, domain.Verification{
		ID:               uuid.NewString(),
		UserID:           userID,
		DocumentType:     in.DocumentType,
		DocumentNumber:   in.DocumentNumber,
		DocumentFrontURL: in.DocumentFrontURL,
		DocumentBackURL:  in.DocumentBackURL,
		SelfieURL:        in.SelfieURL,
		Status:           domain.VerificationPending,
	})
}

// Decide records an admin decision. Approval flips the user's verified flag.
func (s *VerificationService) Decide(ctx context.Context, id string, decision domain.VerificationStatus, reviewer domain.User) (domain.Verification, error) {
	if reviewer.Role != domain.RoleAdmin {
		return domain.Verification{}, fmt.Errorf("%w: only admins review verifications", domain.ErrUnauthorized)
	}
	switch decision {
	case domain.VerificationApproved, domain.VerificationRejected, domain.VerificationInReview:
	default:
		return domain.Verification{}, fmt.Errorf("%w: decision %q", domain.ErrInvalidState, decision)
	}

	var verifiedAt *time.Time
	if decision == domain.VerificationApproved {
		now := s.clock.Now()
		verifiedAt = &now
	}
	v, err := s.verifications.UpdateVerificationStatus(ctx, id, decision, verifiedAt)
	if err != nil {
		return domain.Verification{}, err
	}
	if decision == domain.VerificationApproved {
		if err := s.users.SetUserVerified(ctx, v.UserID, true); err != nil {
			return domain.Verification{}, err
		}
	}
	return v, nil
}

func (s *VerificationService) ForUser(ctx context.Context, userID string) (domain.Verification, error) {
	return s.verifications.GetVerificationByUser(ctx, userID)
}
