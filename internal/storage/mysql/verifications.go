package mysql

import (
	"context"
	"database/sql"
	"time"

	"stayhub/internal/domain"
)

func (r *Repo) CreateVerification(ctx context.Context, v domain.Verification) (domain.Verification, error) {
	_, err := r.q(ctx).ExecContext(ctx, insertVerificationSQL,
		v.ID, v.UserID, v.DocumentType, valStr(v.DocumentNumber),
		valStr(v.DocumentFrontURL), valStr(v.DocumentBackURL), valStr(v.SelfieURL),
		string(v.Status),
	)
	if err != nil {
		return domain.Verification{}, err
	}
	return r.GetVerification(ctx, v.ID)
}

func (r *Repo) GetVerification(ctx context.Context, id string) (domain.Verification, error) {
	return r.scanVerification(r.q(ctx).QueryRowContext(ctx, selectVerificationCols+`WHERE id = ?`, id))
}

func (r *Repo) GetVerificationByUser(ctx context.Context, userID string) (domain.Verification, error) {
	return r.scanVerification(r.q(ctx).QueryRowContext(ctx,
		selectVerificationCols+`WHERE user_id = ? ORDER BY created_at DESC LIMIT 1`, userID))
}

func (r *Repo) UpdateVerificationStatus(ctx context.Context, id string, status domain.VerificationStatus, verifiedAt *time.Time) (domain.Verification, error) {
	var at any
	if verifiedAt != nil {
		at = *verifiedAt
	}
	if _, err := r.q(ctx).ExecContext(ctx, updateVerificationStatusSQL, string(status), at, id); err != nil {
		return domain.Verification{}, err
	}
	return r.GetVerification(ctx, id)
}

func (r *Repo) scanVerification(row *sql.Row) (domain.Verification, error) {
	var v domain.Verification
	var docNum, front, back, selfie sql.NullString
	var status string
	var verifiedAt sql.NullTime
	err := row.Scan(
		&v.ID, &v.UserID, &v.DocumentType, &docNum, &front, &back, &selfie,
		&status, &verifiedAt, &v.CreatedAt, &v.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return domain.Verification{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Verification{}, err
	}
	v.DocumentNumber = strPtr(docNum)
	v.DocumentFrontURL = strPtr(front)
	v.DocumentBackURL = strPtr(back)
	v.SelfieURL = strPtr(selfie)
	v.Status = domain.VerificationStatus(status)
	if verifiedAt.Valid {
		t := verifiedAt.Time
		v.VerifiedAt = &t
	}
	return v, nil
}
