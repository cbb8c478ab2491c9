package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"berbagi/internal/domain"
)

type ResourceRepository struct {
	mock.Mock
}

func (m *ResourceRepository) Create(ctx context.Context, resource *domain.Resource) error {
	args := m.Called(ctx, resource)
	return args.Error(0)
}

func (m *ResourceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Resource, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Resource), args.Error(1)
}

func (m *ResourceRepository) Update(ctx context.Context, resource *domain.Resource) error {
	args := m.Called(ctx, resource)
	return args.Error(0)
}

func (m *ResourceRepository) Cancel(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *ResourceRepository) ActiveClaimantIDs(ctx context.Context, resourceID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, resourceID)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *ResourceRepository) ParticipantIDs(ctx context.Context, resourceID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, resourceID)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *ResourceRepository) ListExpiringBetween(ctx context.Context, from, to time.Time) ([]domain.Resource, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]domain.Resource), args.Error(1)
}

func (m *ResourceRepository) ListStartingBetween(ctx context.Context, from, to time.Time) ([]domain.Resource, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]domain.Resource), args.Error(1)
}
