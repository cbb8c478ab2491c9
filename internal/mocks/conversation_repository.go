package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"berbagi/internal/domain"
)

type ConversationRepository struct {
	mock.Mock
}

func (m *ConversationRepository) Start(ctx context.Context, conv *domain.Conversation, first *domain.Message) error {
	args := m.Called(ctx, conv, first)
	return args.Error(0)
}

func (m *ConversationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversation), args.Error(1)
}

func (m *ConversationRepository) AddMessage(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
