package community

import (
	"context"
	"time"

	"github.com/studlink-api/internal/domain"
	"github.com/studlink-api/internal/pkg/id"
)

type Service interface {
	List(ctx context.Context) ([]domain.Community, error)
	Create(ctx context.Context, creatorID string, req domain.CreateCommunityRequest) (*domain.Community, error)
	Delete(ctx context.Context, communityID string) error
}

type communityStore interface {
	Scan(ctx context.Context) ([]domain.Community, error)
	Get(ctx context.Context, communityID string) (*domain.Community, error)
	Put(ctx context.Context, c *domain.Community) error
	HardDelete(ctx context.Context, communityID string) error
}

type service struct {
	repo communityStore
}

func NewService(repo communityStore) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]domain.Community, error) {
	return s.repo.Scan(ctx)
}

func (s *service) Create(ctx context.Context, creatorID string, req domain.CreateCommunityRequest) (*domain.Community, error) {
	access := req.Access
	if access == "" {
		access = domain.AccessPublic
	}
	c := &domain.Community{
		CommunityID: id.New(),
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Members:     1, // creator is the first member
		Access:      access,
		CreatedBy:   creatorID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Put(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Delete(ctx context.Context, communityID string) error {
	if _, err := s.repo.Get(ctx, communityID); err != nil {
		return err
	}
	return s.repo.HardDelete(ctx, communityID)
}
