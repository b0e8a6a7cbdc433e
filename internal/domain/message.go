package domain

import "time"

// Message is a single chat message within a room.
type Message struct {
	MessageID  string    `json:"id" dynamodbav:"message_id"`
	RoomID     string    `json:"roomId" dynamodbav:"room_id"`
	SenderID   string    `json:"senderId" dynamodbav:"sender_id"`
	SenderName string    `json:"sender" dynamodbav:"sender_name"`
	Content    string    `json:"content" dynamodbav:"content"`
	CreatedAt  time.Time `json:"timestamp" dynamodbav:"created_at"`
}

type SendMessageRequest struct {
	RoomID  string `json:"roomId" validate:"required"`
	Content string `json:"content" validate:"required,max=2000"`
}
