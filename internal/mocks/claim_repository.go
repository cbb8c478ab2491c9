package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"berbagi/internal/domain"
	"berbagi/internal/repository"
)

type ClaimRepository struct {
	mock.Mock
}

func (m *ClaimRepository) Create(ctx context.Context, claim *domain.Claim) error {
	args := m.Called(ctx, claim)
	return args.Error(0)
}

func (m *ClaimRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Claim, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Claim), args.Error(1)
}

func (m *ClaimRepository) List(ctx context.Context, userID uuid.UUID, filter domain.ClaimFilter, params domain.PaginationParams) ([]domain.Claim, int64, error) {
	args := m.Called(ctx, userID, filter, params)
	return args.Get(0).([]domain.Claim), args.Get(1).(int64), args.Error(2)
}

func (m *ClaimRepository) ListEvents(ctx context.Context, claimID uuid.UUID) ([]domain.ClaimEvent, error) {
	args := m.Called(ctx, claimID)
	return args.Get(0).([]domain.ClaimEvent), args.Error(1)
}

// ApplyTransition feeds the snapshot given to Return into fn, so the caller's
// state machine callback runs as it would inside the real transaction.
func (m *ClaimRepository) ApplyTransition(ctx context.Context, claimID uuid.UUID, fn repository.TransitionFunc) (domain.ClaimTransition, error) {
	args := m.Called(ctx, claimID)
	if err := args.Error(1); err != nil {
		return domain.ClaimTransition{}, err
	}
	return fn(args.Get(0).(domain.ClaimSnapshot))
}
