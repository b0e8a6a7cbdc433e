package community

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/studlink-api/internal/domain"
)

type mockCommunityStore struct{ mock.Mock }

func (m *mockCommunityStore) Scan(ctx context.Context) ([]domain.Community, error) {
	args := m.Called(ctx)
	if cs, _ := args.Get(0).([]domain.Community); cs != nil {
		return cs, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockCommunityStore) Get(ctx context.Context, communityID string) (*domain.Community, error) {
	args := m.Called(ctx, communityID)
	if c, _ := args.Get(0).(*domain.Community); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockCommunityStore) Put(ctx context.Context, c *domain.Community) error {
	return m.Called(ctx, c).Error(0)
}
func (m *mockCommunityStore) HardDelete(ctx context.Context, communityID string) error {
	return m.Called(ctx, communityID).Error(0)
}

func TestCreate_DefaultsToPublic(t *testing.T) {
	repo := &mockCommunityStore{}
	repo.On("Put", mock.Anything, mock.AnythingOfType("*domain.Community")).Return(nil)

	svc := NewService(repo)
	c, err := svc.Create(context.Background(), "u1", domain.CreateCommunityRequest{
		Name: "CS Club", Category: "academics",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.AccessPublic, c.Access)
	assert.Equal(t, "u1", c.CreatedBy)
	assert.Equal(t, 1, c.Members)
	assert.NotEmpty(t, c.CommunityID)
}

func TestCreate_KeepsRequestedAccess(t *testing.T) {
	repo := &mockCommunityStore{}
	repo.On("Put", mock.Anything, mock.AnythingOfType("*domain.Community")).Return(nil)

	svc := NewService(repo)
	c, err := svc.Create(context.Background(), "u1", domain.CreateCommunityRequest{
		Name: "Secret Society", Access: domain.AccessPrivate,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.AccessPrivate, c.Access)
}

func TestDelete_NotFound(t *testing.T) {
	repo := &mockCommunityStore{}
	repo.On("Get", mock.Anything, "missing").Return(nil, domain.ErrNotFound)

	svc := NewService(repo)
	err := svc.Delete(context.Background(), "missing")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	repo.AssertNotCalled(t, "HardDelete", mock.Anything, mock.Anything)
}

func TestDelete_HappyPath(t *testing.T) {
	repo := &mockCommunityStore{}
	repo.On("Get", mock.Anything, "c1").Return(&domain.Community{CommunityID: "c1"}, nil)
	repo.On("HardDelete", mock.Anything, "c1").Return(nil)

	svc := NewService(repo)
	require.NoError(t, svc.Delete(context.Background(), "c1"))
	repo.AssertExpectations(t)
}

func TestList(t *testing.T) {
	repo := &mockCommunityStore{}
	repo.On("Scan", mock.Anything).Return([]domain.Community{
		{CommunityID: "c1", Name: "CS Club"},
	}, nil)

	svc := NewService(repo)
	cs, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, cs, 1)
	assert.Equal(t, "CS Club", cs[0].Name)
}
