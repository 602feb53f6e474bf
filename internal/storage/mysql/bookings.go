package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"stayhub/internal/domain"
)

func (r *Repo) CreateBooking(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	_, err := r.q(ctx).ExecContext(ctx, insertBookingSQL,
		b.ID, b.PropertyID, b.GuestID,
		b.CheckIn.Format(domain.DateLayout), b.CheckOut.Format(domain.DateLayout),
		b.Guests, b.TotalPrice.StringFixed(2), string(b.Status),
	)
	if err != nil {
		return domain.Booking{}, err
	}
	return r.GetBooking(ctx, b.ID)
}

func (r *Repo) GetBooking(ctx context.Context, id string) (domain.Booking, error) {
	return r.scanBooking(r.q(ctx).QueryRowContext(ctx, selectBookingCols+`WHERE id = ?`, id))
}

// GetBookingForUpdate locks the booking row until the surrounding
// transaction ends. Must only be called inside WithTx.
func (r *Repo) GetBookingForUpdate(ctx context.Context, id string) (domain.Booking, error) {
	return r.scanBooking(r.q(ctx).QueryRowContext(ctx, selectBookingCols+`WHERE id = ? FOR UPDATE`, id))
}

func (r *Repo) ListActiveBookings(ctx context.Context, propertyID, excludeID string) ([]domain.Booking, error) {
	query := selectBookingCols + `WHERE property_id = ? AND status <> 'cancelled'`
	args := []any{propertyID}
	if excludeID != "" {
		query += ` AND id <> ?`
		args = append(args, excludeID)
	}
	return r.listBookings(ctx, query, args...)
}

func (r *Repo) UpdateBookingStatus(ctx context.Context, id string, status domain.BookingStatus) (domain.Booking, error) {
	res, err := r.q(ctx).ExecContext(ctx, updateBookingStatusSQL, string(status), id)
	if err != nil {
		return domain.Booking{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, gerr := r.GetBooking(ctx, id); gerr != nil {
			return domain.Booking{}, fmt.Errorf("booking %s: %w", id, domain.ErrNotFound)
		}
	}
	return r.GetBooking(ctx, id)
}

func (r *Repo) ListBookingsByGuest(ctx context.Context, guestID string) ([]domain.Booking, error) {
	return r.listBookings(ctx, selectBookingCols+`WHERE guest_id = ? ORDER BY created_at DESC`, guestID)
}

func (r *Repo) ListBookingsByHost(ctx context.Context, hostID string) ([]domain.Booking, error) {
	const q = `
SELECT b.id, b.property_id, b.guest_id, b.check_in, b.check_out, b.guests, b.total_price, b.status, b.created_at, b.updated_at
FROM bookings b
JOIN properties p ON p.id = b.property_id
WHERE p.host_id = ?
ORDER BY b.created_at DESC`
	return r.listBookings(ctx, q, hostID)
}

func (r *Repo) listBookings(ctx context.Context, query string, args ...any) ([]domain.Booking, error) {
	rows, err := r.q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Booking
	for rows.Next() {
		var b domain.Booking
		var status string
		if err := rows.Scan(
			&b.ID, &b.PropertyID, &b.GuestID, &b.CheckIn, &b.CheckOut,
			&b.Guests, &b.TotalPrice, &status, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		b.Status = domain.BookingStatus(status)
		b.CheckIn = domain.NormalizeDate(b.CheckIn)
		b.CheckOut = domain.NormalizeDate(b.CheckOut)
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *Repo) scanBooking(row *sql.Row) (domain.Booking, error) {
	var b domain.Booking
	var status string
	err := row.Scan(
		&b.ID, &b.PropertyID, &b.GuestID, &b.CheckIn, &b.CheckOut,
		&b.Guests, &b.TotalPrice, &status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return domain.Booking{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Booking{}, err
	}
	b.Status = domain.BookingStatus(status)
	b.CheckIn = domain.NormalizeDate(b.CheckIn)
	b.CheckOut = domain.NormalizeDate(b.CheckOut)
	return b, nil
}
