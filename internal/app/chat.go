package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"stayhub/internal/domain"
)

// ChatService persists messages and fans them out to the receiver's live
// connection through the push sender, when one is registered.
type ChatService struct {
	messages   domain.MessageRepository
	bookings   domain.BookingRepository
	properties domain.PropertyRepository
	push       domain.PushSender
}

func NewChatService(m domain.MessageRepository, b domain.BookingRepository, p domain.PropertyRepository, push domain.PushSender) *ChatService {
	return &ChatService{messages: m, bookings: b, properties: p, push: push}
}

type SendMessageInput struct {
	ReceiverID string
	BookingID  *string
	Content    string
}

// Send stores a message. When the message is bound to a booking, only that
// booking's guest and host may converse, in either direction.
func (s *ChatService) Send(ctx context.Context, in SendMessageInput, senderID string) (domain.Message, error) {
	if in.BookingID != nil {
		booking, err := s.bookings.GetBooking(ctx, *in.BookingID)
		if err != nil {
			return domain.Message{}, fmt.Errorf("load booking %s: %w", *in.BookingID, err)
		}
		property, err := s.properties.GetProperty(ctx, booking.PropertyID)
		if err != nil {
			return domain.Message{}, err
		}
		guestToHost := senderID == booking.GuestID && in.ReceiverID == property.HostID
		hostToGuest := senderID == property.HostID && in.ReceiverID == booking.GuestID
		if !guestToHost && !hostToGuest {
			return domain.Message{}, fmt.Errorf("%w: not a participant of this booking", domain.ErrUnauthorized)
		}
	}

	msg, err := s.messages.CreateMessage(ctx, domain.Message{
		ID:         uuid.NewString(),
		SenderID:   senderID,
		ReceiverID: in.ReceiverID,
		BookingID:  in.BookingID,
		Content:    in.Content,
	})
	if err != nil {
		return domain.Message{}, err
	}

	s.push.Push(in.ReceiverID, map[string]any{"type": "new_message", "message": msg})
	return msg, nil
}

// Conversation returns the two-way message history and marks the other
// side's unread messages as read.
func (s *ChatService) Conversation(ctx context.Context, userID, otherID string) ([]domain.MessageView, error) {
	msgs, err := s.messages.ListConversation(ctx, userID, otherID)
	if err != nil {
		return nil, err
	}
	if err := s.messages.MarkConversationRead(ctx, otherID, userID); err != nil {
		return nil, err
	}
	return msgs, nil
}
