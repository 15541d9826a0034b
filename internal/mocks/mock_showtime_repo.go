package mocks

import (
	"context"

	"github.com/prakharagrawal10/movie-api-backend/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockShowtimeRepo struct {
	mock.Mock
	domain.ShowtimeRepository
}

func (m *MockShowtimeRepo) Create(ctx context.Context, showtime *domain.Showtime) error {
	args := m.Called(ctx, showtime)
	return args.Error(0)
}

func (m *MockShowtimeRepo) GetByKey(ctx context.Context, key domain.ShowtimeKey) (*domain.Showtime, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Showtime), args.Error(1)
}

func (m *MockShowtimeRepo) GetAllByMovie(ctx context.Context, movieTitle string) ([]*domain.Showtime, error) {
	args := m.Called(ctx, movieTitle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Showtime), args.Error(1)
}
