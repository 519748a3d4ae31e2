package mocks

import (
	"context"

	"github.com/haguru/filmdb/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockFilmRepository is a mock for interfaces.FilmRepository.
type MockFilmRepository struct {
	mock.Mock
}

// NewMockFilmRepository returns a mock whose expectations are asserted at test cleanup.
func NewMockFilmRepository(t testingT) *MockFilmRepository {
	m := &MockFilmRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockFilmRepository) ListFilms(ctx context.Context, query models.FilmQuery) ([]models.Film, error) {
	args := m.Called(ctx, query)
	ret := args.Get(0)
	if ret == nil {
		return nil, args.Error(1)
	}
	return ret.([]models.Film), args.Error(1)
}

func (m *MockFilmRepository) GetFilm(ctx context.Context, id int64) (*models.Film, error) {
	args := m.Called(ctx, id)
	ret := args.Get(0)
	if ret == nil {
		return nil, args.Error(1)
	}
	return ret.(*models.Film), args.Error(1)
}

func (m *MockFilmRepository) CreateFilm(ctx context.Context, film models.Film) (*models.Film, error) {
	args := m.Called(ctx, film)
	ret := args.Get(0)
	if ret == nil {
		return nil, args.Error(1)
	}
	return ret.(*models.Film), args.Error(1)
}

func (m *MockFilmRepository) UpdateFilm(ctx context.Context, id int64, patch models.FilmPatch) (*models.Film, error) {
	args := m.Called(ctx, id, patch)
	ret := args.Get(0)
	if ret == nil {
		return nil, args.Error(1)
	}
	return ret.(*models.Film), args.Error(1)
}

func (m *MockFilmRepository) DeleteFilm(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockFilmRepository) EnsureIndices(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
