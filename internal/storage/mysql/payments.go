package mysql

import (
	"context"
	"database/sql"
	"time"

	"stayhub/internal/domain"
)

func (r *Repo) CreatePayment(ctx context.Context, p domain.Payment) (domain.Payment, error) {
	_, err := r.q(ctx).ExecContext(ctx, insertPaymentSQL,
		p.ID, p.BookingID, p.PayerID,
		p.Amount.StringFixed(2), p.PlatformFee.StringFixed(2), p.HostAmount.StringFixed(2),
		p.Method, string(p.Status), valStr(p.TransactionID),
	)
	if err != nil {
		// unique index over the generated active_booking_id column is the
		// authoritative one-active-payment guard
		if isDuplicateKey(err) {
			return domain.Payment{}, domain.ErrDuplicatePayment
		}
		return domain.Payment{}, err
	}
	return r.GetPayment(ctx, p.ID)
}

func (r *Repo) GetPayment(ctx context.Context, id string) (domain.Payment, error) {
	return r.scanPayment(r.q(ctx).QueryRowContext(ctx, selectPaymentCols+`WHERE id = ?`, id))
}

func (r *Repo) GetPaymentForUpdate(ctx context.Context, id string) (domain.Payment, error) {
	return r.scanPayment(r.q(ctx).QueryRowContext(ctx, selectPaymentCols+`WHERE id = ? FOR UPDATE`, id))
}

func (r *Repo) ActivePaymentExists(ctx context.Context, bookingID string) (bool, error) {
	var n int
	err := r.q(ctx).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM payments WHERE booking_id = ? AND payment_status <> 'refunded'`, bookingID,
	).Scan(&n)
	return n > 0, err
}

func (r *Repo) UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) (domain.Payment, error) {
	if _, err := r.q(ctx).ExecContext(ctx, updatePaymentStatusSQL, string(status), id); err != nil {
		return domain.Payment{}, err
	}
	return r.GetPayment(ctx, id)
}

func (r *Repo) ListPaymentsByPayer(ctx context.Context, payerID string) ([]domain.Payment, error) {
	return r.listPayments(ctx, selectPaymentCols+`WHERE payer_id = ? ORDER BY created_at DESC`, payerID)
}

func (r *Repo) ListPaymentsByHost(ctx context.Context, hostID string) ([]domain.Payment, error) {
	const q = `
SELECT pay.id, pay.booking_id, pay.payer_id, pay.amount, pay.platform_fee, pay.host_amount, pay.payment_method, pay.payment_status, pay.transaction_id, pay.created_at, pay.updated_at
FROM payments pay
JOIN bookings b ON b.id = pay.booking_id
JOIN properties p ON p.id = b.property_id
WHERE p.host_id = ?
ORDER BY pay.created_at DESC`
	return r.listPayments(ctx, q, hostID)
}

func (r *Repo) HostEarnings(ctx context.Context, hostID string, from, to time.Time) ([]domain.EarningsMonth, error) {
	rows, err := r.q(ctx).QueryContext(ctx, hostEarningsSQL, hostID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.EarningsMonth
	for rows.Next() {
		var em domain.EarningsMonth
		if err := rows.Scan(&em.Month, &em.TotalEarnings, &em.TotalFees, &em.Payments); err != nil {
			return nil, err
		}
		out = append(out, em)
	}
	return out, rows.Err()
}

func (r *Repo) listPayments(ctx context.Context, query string, args ...any) ([]domain.Payment, error) {
	rows, err := r.q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Payment
	for rows.Next() {
		var p domain.Payment
		var status string
		var txID sql.NullString
		if err := rows.Scan(
			&p.ID, &p.BookingID, &p.PayerID, &p.Amount, &p.PlatformFee, &p.HostAmount,
			&p.Method, &status, &txID, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		p.Status = domain.PaymentStatus(status)
		p.TransactionID = strPtr(txID)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) scanPayment(row *sql.Row) (domain.Payment, error) {
	var p domain.Payment
	var status string
	var txID sql.NullString
	err := row.Scan(
		&p.ID, &p.BookingID, &p.PayerID, &p.Amount, &p.PlatformFee, &p.HostAmount,
		&p.Method, &status, &txID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return domain.Payment{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Payment{}, err
	}
	p.Status = domain.PaymentStatus(status)
	p.TransactionID = strPtr(txID)
	return p, nil
}
