package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"berbagi/internal/domain"
)

type PreferenceRepository struct {
	mock.Mock
}

func (m *PreferenceRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*domain.NotificationPreference, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NotificationPreference), args.Error(1)
}

func (m *PreferenceRepository) UpdateType(ctx context.Context, userID uuid.UUID, notifType domain.NotificationType, vector domain.ChannelVector) (*domain.NotificationPreference, error) {
	args := m.Called(ctx, userID, notifType, vector)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NotificationPreference), args.Error(1)
}

func (m *PreferenceRepository) UpdateGlobal(ctx context.Context, userID uuid.UUID, field domain.GlobalPreferenceField, value bool) (*domain.NotificationPreference, error) {
	args := m.Called(ctx, userID, field, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NotificationPreference), args.Error(1)
}
