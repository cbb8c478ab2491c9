package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"berbagi/internal/domain"
)

// Sink mocks a push or email delivery channel.
type Sink struct {
	mock.Mock
}

func (m *Sink) Send(ctx context.Context, userID uuid.UUID, payload domain.DeliveryPayload) error {
	args := m.Called(ctx, userID, payload)
	return args.Error(0)
}

type RealtimePublisher struct {
	mock.Mock
}

func (m *RealtimePublisher) Publish(ctx context.Context, notif domain.Notification) error {
	args := m.Called(ctx, notif)
	return args.Error(0)
}
