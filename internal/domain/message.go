package domain

import "time"

type Message struct {
	ID         string
	SenderID   string
	ReceiverID string
	BookingID  *string
	Content    string
	Read       bool
	CreatedAt  time.Time
}

type MessageView struct {
	Message
	SenderName   string
	SenderAvatar *string
}
