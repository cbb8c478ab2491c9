package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"berbagi/internal/domain"
	"berbagi/internal/service/notification"
)

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) Dispatch(ctx context.Context, candidate domain.Candidate) (notification.DispatchResult, error) {
	args := m.Called(ctx, candidate)
	return args.Get(0).(notification.DispatchResult), args.Error(1)
}

func (m *NotificationService) DispatchAll(ctx context.Context, candidates []domain.Candidate) []notification.DispatchResult {
	args := m.Called(ctx, candidates)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]notification.DispatchResult)
}

func (m *NotificationService) List(ctx context.Context, userID uuid.UUID, filter domain.NotificationFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	args := m.Called(ctx, userID, filter, params)
	return args.Get(0).(domain.PaginatedResponse[domain.Notification]), args.Error(1)
}

func (m *NotificationService) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}
