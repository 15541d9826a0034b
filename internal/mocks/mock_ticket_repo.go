package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/prakharagrawal10/movie-api-backend/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockTicketRepo struct {
	mock.Mock
	domain.TicketRepository
}

func (m *MockTicketRepo) GetById(ctx context.Context, id uuid.UUID) (*domain.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *MockTicketRepo) GetAllByEmail(ctx context.Context, email string) ([]*domain.Ticket, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Ticket), args.Error(1)
}

func (m *MockTicketRepo) SetQRCode(ctx context.Context, id uuid.UUID, qrCode string) error {
	args := m.Called(ctx, id, qrCode)
	return args.Error(0)
}

func (m *MockTicketRepo) MarkUsed(ctx context.Context, id uuid.UUID) (*domain.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}
