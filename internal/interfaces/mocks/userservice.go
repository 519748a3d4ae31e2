package mocks

import (
	"context"

	"github.com/haguru/filmdb/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockUserService is a mock for interfaces.UserService.
type MockUserService struct {
	mock.Mock
}

// NewMockUserService returns a mock whose expectations are asserted at test cleanup.
func NewMockUserService(t testingT) *MockUserService {
	m := &MockUserService{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockUserService) RegisterUser(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func (m *MockUserService) ValidateLogin(ctx context.Context, username, password string) (*models.User, error) {
	args := m.Called(ctx, username, password)
	ret := args.Get(0)
	if ret == nil {
		return nil, args.Error(1)
	}
	return ret.(*models.User), args.Error(1)
}

func (m *MockUserService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	ret := args.Get(0)
	if ret == nil {
		return nil, args.Error(1)
	}
	return ret.(*models.User), args.Error(1)
}

func (m *MockUserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	ret := args.Get(0)
	if ret == nil {
		return nil, args.Error(1)
	}
	return ret.(*models.User), args.Error(1)
}
