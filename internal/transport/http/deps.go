package http

import (
	"context"

	"github.com/studlink-api/internal/domain"
	jwtinfra "github.com/studlink-api/internal/infrastructure/jwt"
)

// ChallengeStore is the minimal interface the router requires from an OTP
// challenge backend. Consume must execute the read-check-delete sequence
// atomically so concurrent verifications cannot both succeed.
type ChallengeStore interface {
	Put(ctx context.Context, c *domain.Challenge) error
	Consume(ctx context.Context, email, code string) (*domain.Challenge, error)
	Delete(ctx context.Context, email string) error
}

// UserRepository is the minimal interface the router requires from a user store.
type UserRepository interface {
	Put(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

// MessageRepository is the minimal interface the router requires from a message store.
type MessageRepository interface {
	Put(ctx context.Context, m *domain.Message) error
	ListByRoom(ctx context.Context, roomID string, limit int32) ([]domain.Message, error)
}

// CommunityRepository is the minimal interface the router requires from a community store.
type CommunityRepository interface {
	Scan(ctx context.Context) ([]domain.Community, error)
	Get(ctx context.Context, communityID string) (*domain.Community, error)
	Put(ctx context.Context, c *domain.Community) error
	HardDelete(ctx context.Context, communityID string) error
}

// ObjectStore is the minimal interface the router requires from an object storage backend.
type ObjectStore interface {
	UploadBase64(ctx context.Context, key, b64Data string) (string, error)
	Delete(ctx context.Context, key string) error
}

// Mailer sends emails.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	ChallengeStore ChallengeStore
	UserRepo       UserRepository
	MessageRepo    MessageRepository
	CommunityRepo  CommunityRepository
	ObjectStore    ObjectStore
	Mailer         Mailer
	JWTProvider    *jwtinfra.Provider
}
