package mocks

import (
	"context"

	"github.com/haguru/filmdb/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for interfaces.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

// NewMockUserRepository returns a mock whose expectations are asserted at test cleanup.
func NewMockUserRepository(t testingT) *MockUserRepository {
	m := &MockUserRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockUserRepository) AddUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	ret := args.Get(0)
	if ret == nil {
		return nil, args.Error(1)
	}
	return ret.(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	ret := args.Get(0)
	if ret == nil {
		return nil, args.Error(1)
	}
	return ret.(*models.User), args.Error(1)
}

func (m *MockUserRepository) EnsureIndices(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
