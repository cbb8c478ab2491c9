package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"berbagi/internal/domain"
)

type ActorResolver struct {
	mock.Mock
}

func (m *ActorResolver) Resolve(ctx context.Context, userID uuid.UUID) (domain.Actor, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.Actor), args.Error(1)
}

func (m *ActorResolver) Invalidate(ctx context.Context, userID uuid.UUID) {
	m.Called(ctx, userID)
}
