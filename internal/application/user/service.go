package user

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/studlink-api/internal/domain"
)

const fieldAvatarURL = "avatar_url"

type UpdateAvatarRequest struct {
	Filename    string `json:"filename" validate:"required"`
	ImageBase64 string `json:"imageBase64" validate:"required"`
}

type Service interface {
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateAvatar(ctx context.Context, userID string, req UpdateAvatarRequest) (string, error)
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type objectStore interface {
	UploadBase64(ctx context.Context, key, b64Data string) (string, error)
	Delete(ctx context.Context, key string) error
}

type service struct {
	repo  userStore
	store objectStore
}

func NewService(repo userStore, store objectStore) Service {
	return &service{repo: repo, store: store}
}

func (s *service) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.Get(ctx, userID)
}

// UpdateAvatar uploads the image under avatars/<user_id>/<filename> and
// stores the resulting URL on the user record.
func (s *service) UpdateAvatar(ctx context.Context, userID string, req UpdateAvatarRequest) (string, error) {
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	// Strip any directory components from the client-supplied name.
	key := fmt.Sprintf("avatars/%s/%s", userID, path.Base(req.Filename))
	url, err := s.store.UploadBase64(ctx, key, req.ImageBase64)
	if err != nil {
		return "", err
	}
	if err := s.repo.Update(ctx, userID, map[string]interface{}{fieldAvatarURL: url}); err != nil {
		return "", err
	}
	// Clean up the replaced object. Best effort: the new avatar is already
	// live, so a failed delete only leaves an orphan behind.
	if oldKey := avatarKey(u.AvatarURL); oldKey != "" && oldKey != key {
		if err := s.store.Delete(ctx, oldKey); err != nil {
			slog.Warn("failed to delete old avatar object", "user_id", userID, "key", oldKey, "err", err)
		}
	}
	return url, nil
}

// avatarKey extracts the object key from a stored avatar URL. Keys always
// start with "avatars/", whatever the bucket addressing scheme.
func avatarKey(url string) string {
	if i := strings.Index(url, "avatars/"); i >= 0 {
		return url[i:]
	}
	return ""
}
