package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/studlink-api/internal/domain"
	"github.com/studlink-api/internal/pkg/id"
)

// maxListLimit caps the number of messages returned for a room.
const maxListLimit = 100

type Service interface {
	ListMessages(ctx context.Context, roomID string) ([]domain.Message, error)
	SendMessage(ctx context.Context, senderID string, req domain.SendMessageRequest) (*domain.Message, error)
}

type messageStore interface {
	Put(ctx context.Context, m *domain.Message) error
	ListByRoom(ctx context.Context, roomID string, limit int32) ([]domain.Message, error)
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

type service struct {
	messages messageStore
	users    userStore
}

func NewService(messages messageStore, users userStore) Service {
	return &service{messages: messages, users: users}
}

func (s *service) ListMessages(ctx context.Context, roomID string) ([]domain.Message, error) {
	if roomID == "" {
		return nil, fmt.Errorf("room id is required: %w", domain.ErrMissingInput)
	}
	return s.messages.ListByRoom(ctx, roomID, maxListLimit)
}

func (s *service) SendMessage(ctx context.Context, senderID string, req domain.SendMessageRequest) (*domain.Message, error) {
	u, err := s.users.Get(ctx, senderID)
	if err != nil {
		return nil, err
	}
	m := &domain.Message{
		MessageID:  id.New(),
		RoomID:     req.RoomID,
		SenderID:   u.UserID,
		SenderName: u.FullName,
		Content:    req.Content,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.messages.Put(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}
