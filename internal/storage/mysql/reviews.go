package mysql

import (
	"context"
	"database/sql"

	"stayhub/internal/domain"
)

func (r *Repo) CreateReview(ctx context.Context, rv domain.Review) (domain.Review, error) {
	_, err := r.q(ctx).ExecContext(ctx, insertReviewSQL,
		rv.ID, rv.BookingID, rv.ReviewerID, rv.RevieweeID, valStr(rv.PropertyID),
		rv.Rating, valStr(rv.Comment), string(rv.ReviewType),
	)
	if err != nil {
		if isDuplicateKey(err) {
			return domain.Review{}, domain.ErrDuplicateReview
		}
		return domain.Review{}, err
	}

	row := r.q(ctx).QueryRowContext(ctx,
		`SELECT id, booking_id, reviewer_id, reviewee_id, property_id, rating, comment, review_type, created_at
		 FROM reviews WHERE id = ?`, rv.ID)
	var out domain.Review
	var propID, comment sql.NullString
	var rtype string
	if err := row.Scan(&out.ID, &out.BookingID, &out.ReviewerID, &out.RevieweeID, &propID,
		&out.Rating, &comment, &rtype, &out.CreatedAt); err != nil {
		return domain.Review{}, err
	}
	out.PropertyID = strPtr(propID)
	out.Comment = strPtr(comment)
	out.ReviewType = domain.ReviewType(rtype)
	return out, nil
}

func (r *Repo) ReviewExists(ctx context.Context, bookingID, reviewerID, revieweeID string) (bool, error) {
	var n int
	err := r.q(ctx).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reviews WHERE booking_id = ? AND reviewer_id = ? AND reviewee_id = ?`,
		bookingID, reviewerID, revieweeID,
	).Scan(&n)
	return n > 0, err
}

func (r *Repo) ListPropertyReviews(ctx context.Context, propertyID string) ([]domain.ReviewView, error) {
	query := selectReviewViewCols + `
WHERE r.property_id = ? AND r.review_type = 'guest_to_host'
ORDER BY r.created_at DESC`
	return r.listReviewViews(ctx, query, propertyID)
}

func (r *Repo) ListUserReviews(ctx context.Context, revieweeID string) ([]domain.ReviewView, error) {
	query := selectReviewViewCols + `
WHERE r.reviewee_id = ?
ORDER BY r.created_at DESC`
	return r.listReviewViews(ctx, query, revieweeID)
}

func (r *Repo) PropertyReviewStats(ctx context.Context, propertyID string) (domain.ReviewStats, error) {
	const q = `
SELECT COUNT(*), COALESCE(AVG(rating), 0),
       SUM(rating = 1), SUM(rating = 2), SUM(rating = 3), SUM(rating = 4), SUM(rating = 5)
FROM reviews
WHERE property_id = ? AND review_type = 'guest_to_host'`
	var st domain.ReviewStats
	var s1, s2, s3, s4, s5 sql.NullInt64
	err := r.q(ctx).QueryRowContext(ctx, q, propertyID).Scan(
		&st.TotalReviews, &st.AverageRating, &s1, &s2, &s3, &s4, &s5,
	)
	if err != nil {
		return domain.ReviewStats{}, err
	}
	st.StarCounts = [5]int{int(s1.Int64), int(s2.Int64), int(s3.Int64), int(s4.Int64), int(s5.Int64)}
	return st, nil
}

func (r *Repo) listReviewViews(ctx context.Context, query string, args ...any) ([]domain.ReviewView, error) {
	rows, err := r.q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ReviewView
	for rows.Next() {
		var rv domain.ReviewView
		var propID, comment, avatar sql.NullString
		var rtype string
		if err := rows.Scan(
			&rv.ID, &rv.BookingID, &rv.ReviewerID, &rv.RevieweeID, &propID,
			&rv.Rating, &comment, &rtype, &rv.CreatedAt,
			&rv.ReviewerName, &avatar,
		); err != nil {
			return nil, err
		}
		rv.PropertyID = strPtr(propID)
		rv.Comment = strPtr(comment)
		rv.ReviewType = domain.ReviewType(rtype)
		rv.ReviewerAvatar = strPtr(avatar)
		out = append(out, rv)
	}
	return out, rows.Err()
}
