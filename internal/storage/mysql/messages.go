package mysql

import (
	"context"
	"database/sql"

	"stayhub/internal/domain"
)

func (r *Repo) CreateMessage(ctx context.Context, m domain.Message) (domain.Message, error) {
	_, err := r.q(ctx).ExecContext(ctx, insertMessageSQL,
		m.ID, m.SenderID, m.ReceiverID, valStr(m.BookingID), m.Content,
	)
	if err != nil {
		return domain.Message{}, err
	}

	row := r.q(ctx).QueryRowContext(ctx,
		`SELECT id, sender_id, receiver_id, booking_id, content, is_read, created_at
		 FROM messages WHERE id = ?`, m.ID)
	var out domain.Message
	var bookingID sql.NullString
	if err := row.Scan(&out.ID, &out.SenderID, &out.ReceiverID, &bookingID, &out.Content, &out.Read, &out.CreatedAt); err != nil {
		return domain.Message{}, err
	}
	out.BookingID = strPtr(bookingID)
	return out, nil
}

func (r *Repo) ListConversation(ctx context.Context, userID, otherID string) ([]domain.MessageView, error) {
	rows, err := r.q(ctx).QueryContext(ctx, selectConversationSQL, userID, otherID, otherID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.MessageView
	for rows.Next() {
		var mv domain.MessageView
		var bookingID, avatar sql.NullString
		if err := rows.Scan(
			&mv.ID, &mv.SenderID, &mv.ReceiverID, &bookingID, &mv.Content, &mv.Read, &mv.CreatedAt,
			&mv.SenderName, &avatar,
		); err != nil {
			return nil, err
		}
		mv.BookingID = strPtr(bookingID)
		mv.SenderAvatar = strPtr(avatar)
		out = append(out, mv)
	}
	return out, rows.Err()
}

func (r *Repo) MarkConversationRead(ctx context.Context, senderID, receiverID string) error {
	_, err := r.q(ctx).ExecContext(ctx, markConversationReadSQL, senderID, receiverID)
	return err
}
